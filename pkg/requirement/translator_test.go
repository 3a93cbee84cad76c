package requirement

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func mapLookup(origins map[string]string) Lookup {
	return LookupFunc(func(_ context.Context, name string) (string, bool, error) {
		origin, ok := origins[name]
		return origin, ok, nil
	})
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestTranslateSortsCaseInsensitively(t *testing.T) {
	tr := NewTranslator(mapLookup(map[string]string{
		"py-zeta":  "devel/py-zeta",
		"py-alpha": "misc/py-alpha",
	}), WithLogger(quietLogger()))

	deps, err := tr.Translate(context.Background(), []string{"Zeta (>=1.0)", "alpha (>2.0)"})
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}

	want := []string{
		"${PYTHON_PKGNAMEPREFIX}alpha>2.0:${PORTSDIR}/misc/py-alpha",
		"${PYTHON_PKGNAMEPREFIX}Zeta>=1.0:${PORTSDIR}/devel/py-zeta",
	}
	if len(deps) != len(want) {
		t.Fatalf("got %d deps, want %d", len(deps), len(want))
	}
	for i, d := range deps {
		if d.String() != want[i] {
			t.Errorf("deps[%d] = %q, want %q", i, d.String(), want[i])
		}
		if d.Placeholder {
			t.Errorf("deps[%d] unexpectedly marked as placeholder", i)
		}
	}
}

func TestTranslateStableForEqualNames(t *testing.T) {
	tr := NewTranslator(nil, WithLogger(quietLogger()))

	deps, err := tr.Translate(context.Background(), []string{"foo (>=2.0)", "b", "FOO (>=1.0)"})
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	got := []string{deps[0].Name + deps[0].Normalized(), deps[1].Name, deps[2].Name + deps[2].Normalized()}
	want := []string{"b", "foo>=2.0", "FOO>=1.0"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("deps[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTranslatePlaceholder(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranslator(mapLookup(nil), WithLogger(log.New(&buf)))

	deps, err := tr.Translate(context.Background(), []string{"Unknown-Lib"})
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if len(deps) != 1 {
		t.Fatalf("got %d deps, want 1", len(deps))
	}
	d := deps[0]
	if !d.Placeholder {
		t.Error("expected placeholder dependency")
	}
	if d.Origin != "XXX/py-unknown-lib" {
		t.Errorf("Origin = %q, want %q", d.Origin, "XXX/py-unknown-lib")
	}
	if got, want := d.String(), "${PYTHON_PKGNAMEPREFIX}Unknown-Lib>=0:${PORTSDIR}/XXX/py-unknown-lib"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !strings.Contains(buf.String(), "no port found") {
		t.Errorf("expected placeholder diagnostic, got log %q", buf.String())
	}
}

func TestTranslateSkipsMalformed(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranslator(mapLookup(map[string]string{"py-six": "devel/py-six"}), WithLogger(log.New(&buf)))

	deps, err := tr.Translate(context.Background(), []string{"foo (1.0)", "six"})
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if len(deps) != 1 || deps[0].Name != "six" {
		t.Fatalf("deps = %v, want only six", deps)
	}
	if !strings.Contains(buf.String(), "malformed") {
		t.Errorf("expected malformed diagnostic, got log %q", buf.String())
	}
}

func TestTranslateMarkers(t *testing.T) {
	specs := []string{"pytest; extra == 'test'", "six"}

	t.Run("included by default", func(t *testing.T) {
		var buf bytes.Buffer
		tr := NewTranslator(nil, WithLogger(log.New(&buf)))
		deps, err := tr.Translate(context.Background(), specs)
		if err != nil {
			t.Fatalf("Translate() error: %v", err)
		}
		if len(deps) != 2 {
			t.Fatalf("got %d deps, want 2", len(deps))
		}
		if !strings.Contains(buf.String(), "environment marker") {
			t.Errorf("expected marker diagnostic, got log %q", buf.String())
		}
	})

	t.Run("excluded when configured", func(t *testing.T) {
		tr := NewTranslator(nil, WithLogger(quietLogger()), WithExcludeMarked(true))
		deps, err := tr.Translate(context.Background(), specs)
		if err != nil {
			t.Fatalf("Translate() error: %v", err)
		}
		if len(deps) != 1 || deps[0].Name != "six" {
			t.Fatalf("deps = %v, want only six", deps)
		}
	})
}

func TestTranslateLookupError(t *testing.T) {
	boom := errors.New("index unreadable")
	tr := NewTranslator(LookupFunc(func(context.Context, string) (string, bool, error) {
		return "", false, boom
	}), WithLogger(quietLogger()))

	_, err := tr.Translate(context.Background(), []string{"six"})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapping %v", err, boom)
	}
}

func TestTranslateCustomPrefix(t *testing.T) {
	var asked string
	tr := NewTranslator(LookupFunc(func(_ context.Context, name string) (string, bool, error) {
		asked = name
		return "", false, nil
	}), WithPrefix("py3-"), WithLogger(quietLogger()))

	if _, err := tr.Translate(context.Background(), []string{"Six"}); err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if asked != "py3-six" {
		t.Errorf("lookup name = %q, want %q", asked, "py3-six")
	}
}

func TestTranslateEmpty(t *testing.T) {
	tr := NewTranslator(nil, WithLogger(quietLogger()))
	deps, err := tr.Translate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if len(deps) != 0 {
		t.Errorf("got %d deps, want 0", len(deps))
	}
}

func TestTranslateNormalizedNames(t *testing.T) {
	tr := NewTranslator(mapLookup(map[string]string{
		"py-typing-extensions": "devel/py-typing-extensions",
		"py-zope.interface":    "devel/py-zope.interface",
	}), WithLogger(quietLogger()))

	deps, err := tr.Translate(context.Background(), []string{
		"typing_extensions (>=4.0)",
		"zope.interface",
		"Foo_Bar.baz",
	})
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}

	want := map[string]string{
		"typing_extensions": "devel/py-typing-extensions",
		"zope.interface":    "devel/py-zope.interface",
		"Foo_Bar.baz":       "XXX/py-foo-bar-baz",
	}
	if len(deps) != len(want) {
		t.Fatalf("got %d deps, want %d", len(deps), len(want))
	}
	for _, d := range deps {
		if d.Origin != want[d.Name] {
			t.Errorf("%s: Origin = %q, want %q", d.Name, d.Origin, want[d.Name])
		}
	}
}
