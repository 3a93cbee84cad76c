package ports

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/pyport/pkg/license"
	"github.com/matzehuels/pyport/pkg/metadata"
	"github.com/matzehuels/pyport/pkg/pyversion"
	"github.com/matzehuels/pyport/pkg/requirement"
)

const (
	// FillMe marks values the maintainer has to fill in by hand.
	FillMe = "# FILL ME"

	// alignWidth is the key length below which an extra tab is emitted.
	alignWidth = 7

	depSeparator = " \\\n\t\t\t"
)

// DefaultCategories are the categories of a generated Python port.
var DefaultCategories = []string{"devel", "python"}

// Descriptor is the resolved content of a port Makefile.
type Descriptor struct {
	CreatedBy     string   // "Full Name <email>", may be empty
	Name          string   // PORTNAME, lower case
	Version       string   // PORTVERSION
	Categories    []string // CATEGORIES
	MasterSites   string   // MASTER_SITES
	PkgNamePrefix string   // PKGNAMEPREFIX
	Maintainer    string   // MAINTAINER, FillMe when unknown
	Comment       string   // COMMENT, FillMe when unknown
	WWW           string   // WWW, omitted when empty
	License       license.Fields
	RunDepends    []requirement.Dependency
	Python        pyversion.Support
	UsePython     []string // USE_PYTHON
}

// NewDescriptor builds a descriptor from a package record and the
// resolved fields. Identity fields are left for the caller to fill.
func NewDescriptor(rec *metadata.Record, lic license.Fields, deps []requirement.Dependency, py pyversion.Support) *Descriptor {
	return &Descriptor{
		Name:          strings.ToLower(rec.Name),
		Version:       rec.Version,
		Categories:    DefaultCategories,
		MasterSites:   "CHEESESHOP",
		PkgNamePrefix: "${PYTHON_PKGNAMEPREFIX}",
		Maintainer:    FillMe,
		Comment:       Comment(rec.Summary),
		WWW:           rec.HomePage,
		License:       lic,
		RunDepends:    deps,
		Python:        py,
		UsePython:     []string{"autoplist", "distutils"},
	}
}

// Comment turns a package summary into a COMMENT value: first letter upper
// case, trailing periods removed.
func Comment(summary string) string {
	s := strings.TrimRight(strings.Join(strings.Fields(summary), " "), ".")
	if s == "" {
		return FillMe
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// WriteTo renders the Makefile to w.
func (d *Descriptor) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer

	b.WriteString("# Created by:")
	if d.CreatedBy != "" {
		b.WriteString(" " + d.CreatedBy)
	}
	b.WriteString("\n# $FreeBSD$\n\n")

	add(&b, "PORTNAME", d.Name)
	add(&b, "PORTVERSION", d.Version)
	add(&b, "CATEGORIES", strings.Join(d.Categories, " "))
	add(&b, "MASTER_SITES", d.MasterSites)
	add(&b, "PKGNAMEPREFIX", d.PkgNamePrefix)
	b.WriteByte('\n')

	add(&b, "MAINTAINER", orFillMe(d.Maintainer))
	add(&b, "COMMENT", orFillMe(d.Comment))
	if d.WWW != "" {
		add(&b, "WWW", d.WWW)
	}
	b.WriteByte('\n')

	if d.License.Confirmed {
		add(&b, "LICENSE", d.License.Tag)
		if d.License.File != "" {
			add(&b, "LICENSE_FILE", "${WRKSRC}/"+d.License.File)
		}
	} else {
		declared := d.License.Declared
		if declared == "" {
			declared = license.Unknown
		}
		add(&b, "# LICENSE", declared+" # Ensure this is valid! See ${PORTSDIR}/Mk/bsd.licenses.db.mk.")
	}
	b.WriteByte('\n')

	if len(d.RunDepends) > 0 {
		deps := make([]string, len(d.RunDepends))
		for i, dep := range d.RunDepends {
			deps[i] = dep.String()
		}
		add(&b, "RUN_DEPENDS", strings.Join(deps, depSeparator))
		b.WriteByte('\n')
	}

	add(&b, "USES", d.Python.Uses())
	add(&b, "USE_PYTHON", strings.Join(d.UsePython, " "))
	b.WriteString("\n.include <bsd.port.mk>\n")

	n, err := w.Write(b.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("write makefile: %w", err)
	}
	return int64(n), nil
}

func add(b *bytes.Buffer, key, value string) {
	b.WriteString(key + "=")
	if len(key) < alignWidth {
		b.WriteByte('\t')
	}
	b.WriteString("\t" + value + "\n")
}

func orFillMe(s string) string {
	if s == "" {
		return FillMe
	}
	return s
}
