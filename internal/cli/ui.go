package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pyport/pkg/errors"
	"github.com/matzehuels/pyport/pkg/pipeline"
)

var (
	colorAccent = lipgloss.Color("36")  // port names
	colorOK     = lipgloss.Color("35")  // generated ports
	colorReview = lipgloss.Color("220") // anything the porter must check by hand
	colorFailed = lipgloss.Color("167")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	styleName   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleReview = lipgloss.NewStyle().Foreground(colorReview)
	styleOK     = lipgloss.NewStyle().Foreground(colorOK)
	styleFailed = lipgloss.NewStyle().Foreground(colorFailed)
	styleLabel  = lipgloss.NewStyle().Foreground(colorLabel).Width(10)
)

const (
	markOK     = "✓"
	markFailed = "✗"
	markReview = "!"
	markDir    = "→"
)

// reportPrinter writes the end-of-run summary of a generate batch.
type reportPrinter struct {
	w io.Writer
}

// print summarizes report: one block per generated port, then the packages
// without a source distribution, then the failures.
func (p reportPrinter) print(report *pipeline.Report) {
	if report == nil {
		return
	}
	for _, port := range report.Ports {
		p.port(port)
	}
	if len(report.NoSource) > 0 {
		p.section(styleReview.Render(markReview), styleReview.Render("No source distribution, port not checksummed:"))
		for _, pkg := range report.NoSource {
			p.detail(pkg)
		}
	}
	if len(report.Failed) > 0 {
		p.section(styleFailed.Render(markFailed), "Failed:")
		for _, f := range report.Failed {
			p.detail(f.Package + ": " + errors.UserMessage(f.Err))
		}
	}
}

func (p reportPrinter) port(port pipeline.Port) {
	fmt.Fprintf(p.w, "%s %s %s\n", styleOK.Render(markOK), styleName.Render(port.Package), styleMuted.Render(port.Version))
	fmt.Fprintf(p.w, "  %s %s\n", styleMuted.Render(markDir), port.Dir)

	lic := port.License.Tag
	if !port.License.Confirmed {
		lic = styleReview.Render(port.License.Declared + " (unconfirmed)")
	}
	p.field("license", lic)
	p.field("python", port.Python.Uses())

	switch {
	case port.Placeholders > 0:
		p.field("depends", fmt.Sprintf("%d (%s)", port.Dependencies,
			styleReview.Render(fmt.Sprintf("%d placeholders", port.Placeholders))))
	case port.Dependencies > 0:
		p.field("depends", fmt.Sprint(port.Dependencies))
	}
}

func (p reportPrinter) section(mark, title string) {
	fmt.Fprintf(p.w, "\n%s %s\n", mark, title)
}

func (p reportPrinter) field(label, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", styleLabel.Render(label), value)
}

func (p reportPrinter) detail(s string) {
	fmt.Fprintf(p.w, "  %s\n", styleMuted.Render(s))
}
