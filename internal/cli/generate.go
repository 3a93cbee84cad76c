package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pyport/pkg/config"
	"github.com/matzehuels/pyport/pkg/distfile"
	"github.com/matzehuels/pyport/pkg/errors"
	"github.com/matzehuels/pyport/pkg/integrations/pypi"
	"github.com/matzehuels/pyport/pkg/license"
	"github.com/matzehuels/pyport/pkg/observability"
	"github.com/matzehuels/pyport/pkg/pipeline"
	"github.com/matzehuels/pyport/pkg/ports"
	"github.com/matzehuels/pyport/pkg/pyversion"
	"github.com/matzehuels/pyport/pkg/requirement"
)

// generateOpts holds the command-line flags for the generate command.
// Non-empty values override the config file.
type generateOpts struct {
	portsDir string // ports tree searched for dependencies
	index    string // ports INDEX file, preferred over portsDir
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <dir> <package>...",
		Short: "Generate FreeBSD ports for PyPI packages",
		Long: `Generate a FreeBSD port for each PyPI package below <dir>.

Each port gets its own directory, py-<name>, holding a Makefile and pkg-descr.
When the package publishes a source distribution, "make makesum" fetches and
checksums it, the archive is extracted, and the Makefile is rewritten with the
license found in the source tree.

Dependencies are looked up in the ports tree (or INDEX file). Dependencies
without a port are written with an XXX/ placeholder origin for review.

Examples:
  pyport generate ~/ports flask
  pyport generate --index /usr/ports/INDEX-14 . requests urllib3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.portsDir, "ports-dir", "", "ports tree used to resolve dependencies (default from config)")
	cmd.Flags().StringVar(&opts.index, "index", "", "ports INDEX file used instead of the ports tree")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, out io.Writer, opts generateOpts, dir string, packages []string) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.portsDir != "" {
		cfg.PortsDir = opts.portsDir
		cfg.IndexFile = ""
	}
	if opts.index != "" {
		cfg.IndexFile = opts.index
	}

	id, err := loadIdentity()
	if err != nil {
		return err
	}
	if id.Email == "" {
		logger.Warn("no EMAIL in ~/.porttools, MAINTAINER needs filling in")
	}

	runner, err := c.newRunner(cfg)
	if err != nil {
		return err
	}
	if c.verbose {
		hooks := observability.NewLogHooks(logger)
		observability.SetPipelineHooks(hooks)
		observability.SetHTTPHooks(hooks)
		defer observability.Reset()
	}

	prog := newProgress(logger)
	report, err := runner.Run(ctx, pipeline.Options{
		Dir:        dir,
		Packages:   packages,
		CreatedBy:  id.CreatedBy(),
		Maintainer: id.Email,
		Categories: cfg.Categories,
	})
	reportPrinter{w: out}.print(report)
	if err != nil {
		return err
	}
	prog.done(summary(report, len(packages)))
	return nil
}

// newRunner wires the pipeline collaborators from cfg.
func (c *CLI) newRunner(cfg config.Config) (*pipeline.Runner, error) {
	local, err := cfg.Versions()
	if err != nil {
		return nil, err
	}
	lookup, err := newLookup(cfg)
	if err != nil {
		return nil, err
	}

	r := pipeline.NewRunner(pypi.NewClient(cfg.PyPIURL), lookup, c.Logger)
	r.Resolver = pyversion.NewResolver(local)
	r.Translator = requirement.NewTranslator(lookup,
		requirement.WithExcludeMarked(cfg.ExcludeMarked),
		requirement.WithLogger(c.Logger))
	r.Normalizer = license.NewNormalizer(license.DefaultTable().With(cfg.Licenses),
		license.WithMinConfidence(cfg.MinConfidence),
		license.WithLogger(c.Logger))
	r.Checksummer = distfile.Make{Path: cfg.Make, Stderr: os.Stderr}
	return r, nil
}

// newLookup returns the INDEX lookup when an index file is configured,
// else a lookup over the ports tree. A missing tree is a configuration
// error reported before any package is processed.
func newLookup(cfg config.Config) (requirement.Lookup, error) {
	if cfg.IndexFile != "" {
		index, err := ports.OpenIndex(cfg.IndexFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "ports index %s", cfg.IndexFile)
		}
		return index, nil
	}
	if cfg.PortsDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "either ports_dir or index_file is required")
	}
	info, err := os.Stat(cfg.PortsDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "ports tree %s", cfg.PortsDir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "ports tree %s is not a directory", cfg.PortsDir)
	}
	return ports.NewTreeLookup(cfg.PortsDir), nil
}

func loadIdentity() (config.Identity, error) {
	path, err := config.PorttoolsPath()
	if err != nil {
		return config.Identity{}, nil
	}
	return config.LoadIdentity(path)
}

// summary is the closing log line of a generate run.
func summary(report *pipeline.Report, requested int) string {
	msg := fmt.Sprintf("Generated %d of %d ports", len(report.Ports), requested)
	if n := len(report.NoSource); n > 0 {
		msg += fmt.Sprintf(", %d without source", n)
	}
	return msg
}
