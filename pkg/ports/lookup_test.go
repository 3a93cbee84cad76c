package ports

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeTree(t *testing.T, origins ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, o := range origins {
		dir := filepath.Join(root, filepath.FromSlash(o))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "Makefile"), []byte("PORTNAME=\tx\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// A directory without Makefile is not a port.
	if err := os.MkdirAll(filepath.Join(root, "devel", "py-notaport"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestTreeLookup(t *testing.T) {
	root := makeTree(t, "devel/py-six", "www/py-requests", "textproc/py-Jinja2", "devel/py-Jinja2")
	l := NewTreeLookup(root)
	ctx := context.Background()

	tests := []struct {
		name   string
		origin string
		ok     bool
	}{
		{"py-six", "devel/py-six", true},
		{"py-requests", "www/py-requests", true},
		{"py-jinja2", "devel/py-Jinja2", true},
		{"py-notaport", "", false},
		{"py-missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, ok, err := l.Lookup(ctx, tt.name)
			if err != nil {
				t.Fatalf("Lookup() error: %v", err)
			}
			if origin != tt.origin || ok != tt.ok {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.name, origin, ok, tt.origin, tt.ok)
			}
		})
	}
}

func TestTreeLookupMissingRoot(t *testing.T) {
	l := NewTreeLookup(filepath.Join(t.TempDir(), "nope"))
	if _, _, err := l.Lookup(context.Background(), "py-six"); err == nil {
		t.Error("Lookup() on missing tree should fail")
	}
}

func TestTreeLookupCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewTreeLookup(t.TempDir()).Lookup(ctx, "py-six"); err == nil {
		t.Error("Lookup() with canceled context should fail")
	}
}

const sampleIndex = `py39-six-1.16.0|/usr/ports/devel/py-six|/usr/local|Python 2 and 3 compatibility utilities|/usr/ports/devel/py-six/pkg-descr|python@FreeBSD.org|devel python|||https://pypi.org/project/six/|||
py39-requests-2.28.1|/usr/ports/www/py-requests|/usr/local|HTTP library written in Python for human beings|/usr/ports/www/py-requests/pkg-descr|python@FreeBSD.org|www python|||https://pypi.org/project/requests/|||
garbage line
py39-Jinja2-3.1.2|/usr/ports/devel/py-Jinja2/|/usr/local|Fast and easy to use stand-alone template engine|
`

func TestIndexLookup(t *testing.T) {
	l, err := ParseIndex(strings.NewReader(sampleIndex))
	if err != nil {
		t.Fatalf("ParseIndex() error: %v", err)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}

	tests := []struct {
		name   string
		origin string
		ok     bool
	}{
		{"py-six", "devel/py-six", true},
		{"py-requests", "www/py-requests", true},
		{"py-jinja2", "devel/py-Jinja2", true},
		{"py-missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, ok, err := l.Lookup(context.Background(), tt.name)
			if err != nil {
				t.Fatalf("Lookup() error: %v", err)
			}
			if origin != tt.origin || ok != tt.ok {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.name, origin, ok, tt.origin, tt.ok)
			}
		})
	}
}

func TestOpenIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "INDEX-14")
	if err := os.WriteFile(path, []byte(sampleIndex), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := OpenIndex(path)
	if err != nil {
		t.Fatalf("OpenIndex() error: %v", err)
	}
	if _, ok, _ := l.Lookup(context.Background(), "py-six"); !ok {
		t.Error("expected py-six in index")
	}

	if _, err := OpenIndex(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("OpenIndex() on missing file should fail")
	}
}
