package ports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/pyport/pkg/license"
	"github.com/matzehuels/pyport/pkg/metadata"
	"github.com/matzehuels/pyport/pkg/pyversion"
	"github.com/matzehuels/pyport/pkg/requirement"
)

func render(t *testing.T, d *Descriptor) string {
	t.Helper()
	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}
	return buf.String()
}

func fullDescriptor() *Descriptor {
	rec := &metadata.Record{
		Name:     "Flask",
		Version:  "2.0.0",
		Summary:  "a simple framework for building complex web applications.",
		HomePage: "https://palletsprojects.com/p/flask",
	}
	deps := []requirement.Dependency{
		{Requirement: requirement.Requirement{Name: "click", Constraint: ">=7.1.2"}, Origin: "devel/py-click"},
		{Requirement: requirement.Requirement{Name: "Jinja2", Constraint: ">=3.0"}, Origin: "devel/py-Jinja2"},
	}
	d := NewDescriptor(rec,
		license.Fields{Tag: "BSD3CLAUSE", File: "LICENSE.rst", Confirmed: true},
		deps,
		pyversion.Support{Kind: pyversion.KindBounded, Range: "3.8+", Comment: "3.6, 3.7, 3.8, 3.9"},
	)
	d.CreatedBy = "Jane Doe <jane@example.org>"
	d.Maintainer = "jane@example.org"
	return d
}

func TestDescriptorWriteTo(t *testing.T) {
	want := "# Created by: Jane Doe <jane@example.org>\n" +
		"# $FreeBSD$\n" +
		"\n" +
		"PORTNAME=\tflask\n" +
		"PORTVERSION=\t2.0.0\n" +
		"CATEGORIES=\tdevel python\n" +
		"MASTER_SITES=\tCHEESESHOP\n" +
		"PKGNAMEPREFIX=\t${PYTHON_PKGNAMEPREFIX}\n" +
		"\n" +
		"MAINTAINER=\tjane@example.org\n" +
		"COMMENT=\tA simple framework for building complex web applications\n" +
		"WWW=\t\thttps://palletsprojects.com/p/flask\n" +
		"\n" +
		"LICENSE=\tBSD3CLAUSE\n" +
		"LICENSE_FILE=\t${WRKSRC}/LICENSE.rst\n" +
		"\n" +
		"RUN_DEPENDS=\t${PYTHON_PKGNAMEPREFIX}click>=7.1.2:${PORTSDIR}/devel/py-click \\\n" +
		"\t\t\t${PYTHON_PKGNAMEPREFIX}Jinja2>=3.0:${PORTSDIR}/devel/py-Jinja2\n" +
		"\n" +
		"USES=\t\tpython:3.8+ # 3.6, 3.7, 3.8, 3.9\n" +
		"USE_PYTHON=\tautoplist distutils\n" +
		"\n" +
		".include <bsd.port.mk>\n"

	if got := render(t, fullDescriptor()); got != want {
		t.Errorf("WriteTo() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDescriptorMinimal(t *testing.T) {
	d := NewDescriptor(&metadata.Record{Name: "tiny", Version: "0.1"},
		license.Fields{Declared: "GPL"}, nil, pyversion.Support{})

	want := "# Created by:\n" +
		"# $FreeBSD$\n" +
		"\n" +
		"PORTNAME=\ttiny\n" +
		"PORTVERSION=\t0.1\n" +
		"CATEGORIES=\tdevel python\n" +
		"MASTER_SITES=\tCHEESESHOP\n" +
		"PKGNAMEPREFIX=\t${PYTHON_PKGNAMEPREFIX}\n" +
		"\n" +
		"MAINTAINER=\t# FILL ME\n" +
		"COMMENT=\t# FILL ME\n" +
		"\n" +
		"# LICENSE=\tGPL # Ensure this is valid! See ${PORTSDIR}/Mk/bsd.licenses.db.mk.\n" +
		"\n" +
		"USES=\t\tpython\n" +
		"USE_PYTHON=\tautoplist distutils\n" +
		"\n" +
		".include <bsd.port.mk>\n"

	got := render(t, d)
	if got != want {
		t.Errorf("WriteTo() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	for _, key := range []string{"RUN_DEPENDS", "LICENSE_FILE", "WWW"} {
		if strings.Contains(got, key) {
			t.Errorf("minimal descriptor should omit %s", key)
		}
	}
}

func TestDescriptorDeterministic(t *testing.T) {
	first := render(t, fullDescriptor())
	for range 5 {
		if got := render(t, fullDescriptor()); got != first {
			t.Fatal("WriteTo() output is not stable")
		}
	}
	if !strings.HasSuffix(first, ">\n") || strings.HasSuffix(first, "\n\n") {
		t.Error("output must end with exactly one newline")
	}
}

func TestDescriptorEmptyDeclaredLicense(t *testing.T) {
	d := NewDescriptor(&metadata.Record{Name: "x", Version: "1"}, license.Fields{}, nil, pyversion.Support{})
	if got := render(t, d); !strings.Contains(got, "# LICENSE=\tUNKNOWN # Ensure") {
		t.Errorf("expected UNKNOWN advisory, got:\n%s", got)
	}
}

func TestComment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", FillMe},
		{"   ", FillMe},
		{"...", FillMe},
		{"simple tool.", "Simple tool"},
		{"HTTP for Humans.", "HTTP for Humans"},
		{"ends with dots...", "Ends with dots"},
		{"  spaced\n  summary ", "Spaced summary"},
		{"élan vital", "Élan vital"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Comment(tt.in); got != tt.want {
				t.Errorf("Comment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
