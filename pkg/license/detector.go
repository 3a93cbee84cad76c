package license

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

// candidates are license file names in order of preference, lower case.
var candidates = []string{
	"license",
	"license.txt",
	"license.md",
	"license.rst",
	"licence",
	"licence.txt",
	"licence.md",
	"copying",
	"copying.txt",
	"copying.md",
	"unlicense",
	"license-mit",
	"license.mit",
	"mit-license",
	"copyright",
}

var spdxTagRE = regexp.MustCompile(`SPDX-License-Identifier:\s*([A-Za-z0-9.+\-() ]+?)\s*(?:\*/|-->)?\s*$`)

// fingerprint identifies a license by phrases that appear in its text.
type fingerprint struct {
	id      string
	phrases []string
}

var fingerprints = []fingerprint{
	{"mit", []string{
		"permission is hereby granted, free of charge",
		"the above copyright notice and this permission notice shall be included",
	}},
	{"isc", []string{
		"permission to use, copy, modify, and/or distribute this software for any purpose with or without fee is hereby granted",
	}},
	{"bsd-2-clause", []string{
		"redistributions of source code must retain the above copyright notice",
		"redistributions in binary form must reproduce the above copyright notice",
	}},
	{"bsd-3-clause", []string{
		"redistributions of source code must retain the above copyright notice",
		"redistributions in binary form must reproduce the above copyright notice",
		"neither the name of",
	}},
	{"bsd-3-clause-clear", []string{
		"redistributions of source code must retain the above copyright notice",
		"redistributions in binary form must reproduce the above copyright notice",
		"neither the name of",
		"no express or implied licenses to any party's patent rights are granted by this license",
	}},
	{"apache-2.0", []string{
		"apache license",
		"version 2.0, january 2004",
	}},
	{"gpl-2.0", []string{
		"gnu general public license",
		"version 2, june 1991",
	}},
	{"gpl-3.0", []string{
		"gnu general public license",
		"version 3, 29 june 2007",
	}},
	{"lgpl-2.1", []string{
		"gnu lesser general public license",
		"version 2.1, february 1999",
		"gnu general public license",
	}},
	{"lgpl-3.0", []string{
		"gnu lesser general public license",
		"version 3, 29 june 2007",
		"incorporates the terms and conditions of version 3 of the gnu general public license",
	}},
	{"agpl-3.0", []string{
		"gnu affero general public license",
		"version 3, 19 november 2007",
	}},
	{"mpl-2.0", []string{
		"mozilla public license version 2.0",
	}},
	{"epl-1.0", []string{
		"eclipse public license - v 1.0",
	}},
	{"artistic-2.0", []string{
		"the artistic license 2.0",
	}},
	{"cc0-1.0", []string{
		"cc0 1.0 universal",
	}},
	{"ofl-1.1", []string{
		"sil open font license",
		"version 1.1",
	}},
}

// FileDetector detects licenses from well-known license files.
type FileDetector struct{}

// Detect implements [Detector]. Files are tried in order of preference; the
// first one that yields a match wins.
func (FileDetector) Detect(dir string) (*Detection, error) {
	files, err := licenseFiles(dir)
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if det := detectText(data); det != nil {
			det.File = name
			return det, nil
		}
	}
	return nil, nil
}

// licenseFiles lists the license files in dir, most preferred first.
func licenseFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && slices.Contains(candidates, strings.ToLower(e.Name())) {
			files = append(files, e.Name())
		}
	}
	slices.SortFunc(files, func(a, b string) int {
		return slices.Index(candidates, strings.ToLower(a)) - slices.Index(candidates, strings.ToLower(b))
	})
	return files, nil
}

func detectText(data []byte) *Detection {
	if id := spdxTag(data); id != "" {
		return &Detection{ID: strings.ToLower(id), Confidence: 1}
	}
	return matchFingerprint(normalizeText(data))
}

// spdxTag returns the first valid SPDX-License-Identifier in data.
func spdxTag(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		m := spdxTagRE.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		id := strings.TrimSpace(m[1])
		if ok, _ := spdxexp.ValidateLicenses([]string{id}); ok {
			return id
		}
	}
	return ""
}

// matchFingerprint scores every fingerprint by the share of phrases found.
// Ties go to the fingerprint with more phrases, which is the more specific
// license.
func matchFingerprint(text string) *Detection {
	var (
		best      *fingerprint
		bestScore float64
	)
	for i := range fingerprints {
		fp := &fingerprints[i]
		found := 0
		for _, p := range fp.phrases {
			if strings.Contains(text, p) {
				found++
			}
		}
		if found == 0 {
			continue
		}
		score := float64(found) / float64(len(fp.phrases))
		if score > bestScore || (score == bestScore && best != nil && len(fp.phrases) > len(best.phrases)) {
			best, bestScore = fp, score
		}
	}
	if best == nil || bestScore < 0.5 {
		return nil
	}
	return &Detection{ID: best.id, Confidence: bestScore}
}

// normalizeText lowercases text and collapses whitespace and comment
// leaders so phrases match across line breaks.
func normalizeText(data []byte) string {
	fields := strings.FieldsFunc(strings.ToLower(string(data)), func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '*', '#':
			return true
		}
		return false
	})
	return strings.Join(fields, " ")
}
