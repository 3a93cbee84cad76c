package distfile

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/matzehuels/pyport/pkg/errors"
)

// DefaultMake is the make binary used when none is configured. The ports
// framework requires BSD make.
const DefaultMake = "make"

// Checksummer fetches the distribution files of a port into distDir and
// records their checksums.
type Checksummer interface {
	MakeSum(ctx context.Context, portDir, distDir string) error
}

// Make runs the ports framework's makesum target.
type Make struct {
	Path   string    // make binary, DefaultMake when empty
	Stdout io.Writer // receives make output, discarded when nil
	Stderr io.Writer // receives make diagnostics in addition to the error
}

// MakeSum implements [Checksummer].
func (m Make) MakeSum(ctx context.Context, portDir, distDir string) error {
	bin := m.Path
	if bin == "" {
		bin = DefaultMake
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "makesum")
	cmd.Dir = portDir
	cmd.Env = append(os.Environ(), "DISTDIR="+distDir)
	cmd.Stdout = m.Stdout
	cmd.Stderr = &stderr
	if m.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, m.Stderr)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := lastLine(stderr.String()); msg != "" {
			return errors.Wrap(errors.ErrCodeChecksum, err, "%s makesum in %s: %s", bin, portDir, msg)
		}
		return errors.Wrap(errors.ErrCodeChecksum, err, "%s makesum in %s", bin, portDir)
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
