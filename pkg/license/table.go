package license

import (
	"maps"
	"strings"
)

// Table maps license identifiers (SPDX-style, compared case-insensitively)
// to ports license tags. The zero value maps nothing.
type Table struct {
	tags map[string]string
}

var defaultTags = map[string]string{
	"agpl-3.0":           "AGPLv3",
	"apache-2.0":         "APACHE20",
	"artistic-2.0":       "ART20",
	"bsd-2-clause":       "BSD2CLAUSE",
	"bsd-3-clause-clear": "BSD3CLAUSE",
	"bsd-3-clause":       "BSD3CLAUSE",
	"cc0-1.0":            "CC0-1.0",
	"epl-1.0":            "EPL",
	"gpl-2.0":            "GPLv2",
	"gpl-3.0":            "GPLv3",
	"isc":                "ISCL",
	"lgpl-2.1":           "LGPL21",
	"lgpl-3.0":           "LGPL3",
	"mit":                "MIT",
	"mpl-2.0":            "MPL",
	"ofl-1.1":            "OFL11",
}

// DefaultTable returns the table of licenses the ports framework knows.
func DefaultTable() Table {
	return NewTable(defaultTags)
}

// NewTable builds a table from id → tag pairs.
func NewTable(entries map[string]string) Table {
	t := Table{tags: make(map[string]string, len(entries))}
	for id, tag := range entries {
		t.tags[strings.ToLower(strings.TrimSpace(id))] = tag
	}
	return t
}

// With returns a copy of t extended with entries. Entries override
// existing mappings.
func (t Table) With(entries map[string]string) Table {
	out := Table{tags: maps.Clone(t.tags)}
	if out.tags == nil {
		out.tags = make(map[string]string, len(entries))
	}
	for id, tag := range entries {
		out.tags[strings.ToLower(strings.TrimSpace(id))] = tag
	}
	return out
}

// Lookup returns the ports tag for id.
func (t Table) Lookup(id string) (string, bool) {
	tag, ok := t.tags[strings.ToLower(strings.TrimSpace(id))]
	return tag, ok
}

// Len returns the number of mapped identifiers.
func (t Table) Len() int {
	return len(t.tags)
}
