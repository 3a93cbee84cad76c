package license

import "testing"

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	if table.Len() != 16 {
		t.Errorf("Len() = %d, want 16", table.Len())
	}

	tests := []struct {
		id, want string
		ok       bool
	}{
		{"mit", "MIT", true},
		{"MIT", "MIT", true},
		{" Apache-2.0 ", "APACHE20", true},
		{"bsd-3-clause-clear", "BSD3CLAUSE", true},
		{"lgpl-2.1", "LGPL21", true},
		{"made-up-license", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := table.Lookup(tt.id)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.id, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTableWith(t *testing.T) {
	base := DefaultTable()
	ext := base.With(map[string]string{"Zlib": "ZLIB", "mit": "MITX"})

	if tag, _ := ext.Lookup("zlib"); tag != "ZLIB" {
		t.Errorf("extended Lookup(zlib) = %q, want ZLIB", tag)
	}
	if tag, _ := ext.Lookup("mit"); tag != "MITX" {
		t.Errorf("extended Lookup(mit) = %q, want MITX", tag)
	}
	if _, ok := base.Lookup("zlib"); ok {
		t.Error("With() modified the original table")
	}
	if tag, _ := base.Lookup("mit"); tag != "MIT" {
		t.Errorf("original Lookup(mit) = %q, want MIT", tag)
	}
}

func TestZeroTable(t *testing.T) {
	var table Table
	if _, ok := table.Lookup("mit"); ok {
		t.Error("zero Table should map nothing")
	}
	if tag, _ := table.With(map[string]string{"mit": "MIT"}).Lookup("mit"); tag != "MIT" {
		t.Errorf("zero Table With() Lookup = %q, want MIT", tag)
	}
}
