package ports

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// NoDescription replaces a missing long description in pkg-descr.
const NoDescription = "!! NO DESCRIPTION FOUND. !!"

// descrWidth is the column pkg-descr paragraphs are wrapped at.
const descrWidth = 80

// WriteDescr renders a pkg-descr file: the description wrapped to 80
// columns paragraph by paragraph, followed by the WWW line.
func WriteDescr(w io.Writer, description, www string) error {
	var paragraphs []string
	for _, p := range strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n\n") {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			continue
		}
		paragraphs = append(paragraphs, ansi.Wordwrap(p, descrWidth, ""))
	}

	text := NoDescription
	if len(paragraphs) > 0 {
		text = strings.Join(paragraphs, "\n\n")
	}
	if _, err := fmt.Fprintf(w, "%s\n\nWWW: %s\n", text, www); err != nil {
		return fmt.Errorf("write pkg-descr: %w", err)
	}
	return nil
}
