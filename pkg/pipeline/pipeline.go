// Package pipeline generates FreeBSD port skeletons for PyPI packages.
//
// This package ties the resolvers together into the per-package flow the
// CLI runs:
//
//  1. Fetch: Load the package record from the registry
//  2. Describe: Resolve Python support, dependencies, and the declared
//     license, then write Makefile and pkg-descr
//  3. Makesum: Let the ports framework fetch and checksum the sdist
//  4. Extract: Unpack the sdist and detect its license file
//  5. Regenerate: Rewrite the Makefile when a license was confirmed
//
// Packages are processed one at a time. A package that fails is recorded
// in the [Report] and the run continues; a failing checksum tool aborts the
// whole run because every later package would fail the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(pypi.NewClient(""), ports.NewTreeLookup("/usr/ports"), logger)
//	report, err := runner.Run(ctx, pipeline.Options{
//	    Dir:      "ports",
//	    Packages: []string{"flask", "requests"},
//	})
package pipeline

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/pyport/pkg/errors"
	"github.com/matzehuels/pyport/pkg/license"
	"github.com/matzehuels/pyport/pkg/pyversion"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DistDirName is the directory below Options.Dir that receives sdists.
	DistDirName = "_distdir"

	// workDirName is the directory below the dist dir that sdists are
	// extracted into.
	workDirName = "_work"

	portPrefix = "py-"
)

// =============================================================================
// Options
// =============================================================================

// Options configures one run.
type Options struct {
	Dir        string   // Output directory; one port directory per package is created below it
	DistDir    string   // Distribution file directory (default: Dir/_distdir)
	Packages   []string // PyPI package names
	CreatedBy  string   // "# Created by:" value, may be empty
	Maintainer string   // MAINTAINER, may be empty
	Categories []string // CATEGORIES (default: ports.DefaultCategories)
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if strings.TrimSpace(o.Dir) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output directory is required")
	}
	if len(o.Packages) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one package is required")
	}
	for _, pkg := range o.Packages {
		if err := errors.ValidatePythonPackageName(pkg); err != nil {
			return err
		}
	}
	if o.DistDir == "" {
		o.DistDir = filepath.Join(o.Dir, DistDirName)
	}
	return nil
}

// PortName returns the port directory name for a package: "py-" plus the
// lower-cased name, with an upstream "py-" prefix removed first.
func PortName(pkg string) string {
	name := strings.ToLower(pkg)
	return portPrefix + strings.TrimPrefix(name, portPrefix)
}

// =============================================================================
// Results
// =============================================================================

// Port describes one generated port.
type Port struct {
	Package      string            // Upstream name
	Version      string            // Upstream version
	Dir          string            // Port directory
	Python       pyversion.Support // Resolved USES=python
	License      license.Fields    // Final license fields
	Dependencies int               // RUN_DEPENDS entries
	Placeholders int               // RUN_DEPENDS entries needing review
	NoSource     bool              // No sdist was published
}

// Failure records a package that could not be generated.
type Failure struct {
	Package string
	Err     error
}

// Report summarizes a run.
type Report struct {
	Ports    []Port
	NoSource []string // Packages without a source distribution
	Failed   []Failure
}

// OK reports whether every package produced a complete port.
func (r *Report) OK() bool {
	return len(r.NoSource) == 0 && len(r.Failed) == 0
}

// Generated returns the names of packages with a port directory.
func (r *Report) Generated() []string {
	names := make([]string, len(r.Ports))
	for i, p := range r.Ports {
		names[i] = p.Package
	}
	return slices.Clip(names)
}
