package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/pyport/pkg/errors"
	"github.com/matzehuels/pyport/pkg/license"
	"github.com/matzehuels/pyport/pkg/pipeline"
	"github.com/matzehuels/pyport/pkg/pyversion"
)

func TestReportPrinter(t *testing.T) {
	report := &pipeline.Report{
		Ports: []pipeline.Port{
			{
				Package:      "Flask",
				Version:      "2.0.0",
				Dir:          "out/py-flask",
				Python:       pyversion.Support{Kind: pyversion.KindBounded, Range: "3.10-3.11", Comment: "3.10, 3.11"},
				License:      license.Fields{Tag: "BSD3CLAUSE", File: "LICENSE.rst", Confirmed: true},
				Dependencies: 3,
				Placeholders: 2,
			},
			{
				Package:  "six",
				Version:  "1.16.0",
				Dir:      "out/py-six",
				License:  license.Fields{Declared: "MIT"},
				NoSource: true,
			},
		},
		NoSource: []string{"six"},
		Failed: []pipeline.Failure{
			{Package: "missing", Err: errors.New(errors.ErrCodePackageNotFound, "package missing not found")},
		},
	}

	var buf bytes.Buffer
	reportPrinter{w: &buf}.print(report)
	out := buf.String()

	for _, want := range []string{
		"Flask",
		"out/py-flask",
		"BSD3CLAUSE",
		"python:3.10-3.11 # 3.10, 3.11",
		"2 placeholders",
		"MIT (unconfirmed)",
		"No source distribution, port not checksummed:",
		"missing: package missing not found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "PACKAGE_NOT_FOUND") {
		t.Errorf("failure shows the error code instead of the message:\n%s", out)
	}
	if strings.Index(out, "Flask") > strings.Index(out, "Failed:") {
		t.Errorf("ports must be listed before failures:\n%s", out)
	}
}

func TestReportPrinterEmpty(t *testing.T) {
	var buf bytes.Buffer
	reportPrinter{w: &buf}.print(nil)
	reportPrinter{w: &buf}.print(&pipeline.Report{})
	if buf.Len() != 0 {
		t.Errorf("empty report printed %q", buf.String())
	}
}
