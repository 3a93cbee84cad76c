package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pyport/pkg/distfile"
	"github.com/matzehuels/pyport/pkg/errors"
	"github.com/matzehuels/pyport/pkg/integrations"
	"github.com/matzehuels/pyport/pkg/license"
	"github.com/matzehuels/pyport/pkg/metadata"
	"github.com/matzehuels/pyport/pkg/observability"
	"github.com/matzehuels/pyport/pkg/ports"
	"github.com/matzehuels/pyport/pkg/pyversion"
	"github.com/matzehuels/pyport/pkg/requirement"
)

// Fetcher loads the registry record of a package.
type Fetcher interface {
	FetchRecord(ctx context.Context, name string) (*metadata.Record, error)
}

// Runner generates ports. Its collaborators are exported so callers can
// replace any of them after [NewRunner].
//
// The Runner keeps no per-run state; Run may be called repeatedly.
type Runner struct {
	Fetcher     Fetcher
	Resolver    *pyversion.Resolver
	Translator  *requirement.Translator
	Normalizer  *license.Normalizer
	Detector    license.Detector
	Checksummer distfile.Checksummer
	Logger      *log.Logger
}

// NewRunner creates a runner with default collaborators: the default
// local Python versions, the default license table, file-based license
// detection, and "make makesum".
// If logger is nil, log.Default() is used.
func NewRunner(fetcher Fetcher, lookup requirement.Lookup, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher:     fetcher,
		Resolver:    pyversion.NewResolver(pyversion.DefaultLocal),
		Translator:  requirement.NewTranslator(lookup, requirement.WithLogger(logger)),
		Normalizer:  license.NewNormalizer(license.DefaultTable(), license.WithLogger(logger)),
		Detector:    license.FileDetector{},
		Checksummer: distfile.Make{},
		Logger:      logger,
	}
}

// Run generates a port for every package in opts. Per-package failures
// are collected in the report. The returned error is non-nil only when the
// run was aborted: by a run-fatal error, invalid options, or cancellation.
// The report covers the packages processed until then.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return report, err
	}
	if err := os.MkdirAll(opts.DistDir, 0o755); err != nil {
		return report, errors.Wrap(errors.ErrCodeInvalidPath, err, "create dist dir")
	}
	distDir, err := filepath.Abs(opts.DistDir)
	if err != nil {
		return report, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve dist dir")
	}
	opts.DistDir = distDir

	for _, pkg := range opts.Packages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		port, err := r.Generate(ctx, opts, pkg)
		switch {
		case err == nil:
			report.Ports = append(report.Ports, *port)
			if port.NoSource {
				report.NoSource = append(report.NoSource, port.Package)
			}
		case errors.IsFatal(err), ctx.Err() != nil:
			report.Failed = append(report.Failed, Failure{Package: pkg, Err: err})
			return report, err
		default:
			r.Logger.Error("port generation failed", "package", pkg, "err", err)
			report.Failed = append(report.Failed, Failure{Package: pkg, Err: err})
		}
	}
	return report, nil
}

// Generate runs the full flow for a single package.
func (r *Runner) Generate(ctx context.Context, opts Options, pkg string) (port *Port, err error) {
	hooks := observability.Pipeline()
	hooks.OnPackageStart(ctx, pkg)
	start := time.Now()
	defer func() { hooks.OnPackageComplete(ctx, pkg, time.Since(start), err) }()

	var rec *metadata.Record
	err = r.stage(ctx, pkg, "fetch", func() error {
		rec, err = r.fetch(ctx, pkg)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Info("generating port", "package", rec.Name, "version", rec.Version)

	portDir := filepath.Join(opts.Dir, PortName(rec.Name))
	if err := os.MkdirAll(portDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create port dir")
	}

	support := r.Resolver.Resolve(pyversion.Collect(pyversion.Classifiers(rec.Classifiers)))
	switch {
	case support.Kind == pyversion.KindNoMatch:
		r.Logger.Warn("no declared python version is available locally", "package", rec.Name, "declared", support.Comment)
	case support.Relaxed:
		r.Logger.Warn("python support derived from major-only classifiers", "package", rec.Name, "declared", support.Comment)
	}

	deps, err := r.Translator.Translate(ctx, rec.RequiresDist)
	if err != nil {
		return nil, err
	}

	port = &Port{
		Package:      rec.Name,
		Version:      rec.Version,
		Dir:          portDir,
		Python:       support,
		Dependencies: len(deps),
		Placeholders: countPlaceholders(deps),
	}

	desc := ports.NewDescriptor(rec, r.Normalizer.Apply(rec, nil), deps, support)
	desc.CreatedBy = opts.CreatedBy
	if opts.Maintainer != "" {
		desc.Maintainer = opts.Maintainer
	}
	if len(opts.Categories) > 0 {
		desc.Categories = opts.Categories
	}
	port.License = desc.License

	err = r.stage(ctx, pkg, "describe", func() error {
		if err := writeMakefile(portDir, desc); err != nil {
			return err
		}
		return writeDescr(portDir, rec)
	})
	if err != nil {
		return nil, err
	}

	if rec.SourceDist == nil {
		r.Logger.Warn("no source distribution found", "package", rec.Name, "version", rec.Version)
		port.NoSource = true
		return port, nil
	}

	err = r.stage(ctx, pkg, "makesum", func() error {
		return r.Checksummer.MakeSum(ctx, portDir, opts.DistDir)
	})
	if err != nil {
		return nil, err
	}

	archive := filepath.Join(opts.DistDir, rec.SourceDist.Filename)
	if err := distfile.VerifySHA256(archive, rec.SourceDist.SHA256); err != nil {
		return nil, err
	}

	var srcDir string
	err = r.stage(ctx, pkg, "extract", func() error {
		workDir := filepath.Join(opts.DistDir, workDirName, PortName(rec.Name))
		if err := os.RemoveAll(workDir); err != nil {
			return errors.Wrap(errors.ErrCodeExtract, err, "clean %s", workDir)
		}
		srcDir, err = distfile.Extract(archive, workDir)
		return err
	})
	if err != nil {
		return nil, err
	}

	var det *license.Detection
	_ = r.stage(ctx, pkg, "license", func() error {
		det, err = r.Detector.Detect(srcDir)
		if err != nil {
			r.Logger.Warn("license detection failed", "package", rec.Name, "err", err)
		}
		return err
	})
	if det == nil {
		r.Logger.Info("no license file recognised, keeping declared license", "package", rec.Name)
		return port, nil
	}

	fields := r.Normalizer.Apply(rec, det)
	if !fields.Confirmed {
		return port, nil
	}
	desc.License = fields
	port.License = fields
	r.Logger.Info("license confirmed", "package", rec.Name, "license", fields.Tag, "file", fields.File)

	err = r.stage(ctx, pkg, "regenerate", func() error {
		return writeMakefile(portDir, desc)
	})
	if err != nil {
		return nil, err
	}
	return port, nil
}

func (r *Runner) fetch(ctx context.Context, pkg string) (*metadata.Record, error) {
	rec, err := r.Fetcher.FetchRecord(ctx, pkg)
	switch {
	case err == nil:
		return rec, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case stderrors.Is(err, integrations.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodePackageNotFound, err, "package %s not found", pkg)
	default:
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", pkg)
	}
}

// stage runs fn and reports its duration to the pipeline hooks.
func (r *Runner) stage(ctx context.Context, pkg, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	observability.Pipeline().OnStageComplete(ctx, pkg, name, time.Since(start), err)
	return err
}

func countPlaceholders(deps []requirement.Dependency) int {
	n := 0
	for _, d := range deps {
		if d.Placeholder {
			n++
		}
	}
	return n
}

func writeMakefile(dir string, desc *ports.Descriptor) error {
	return writeFile(filepath.Join(dir, "Makefile"), func(f *os.File) error {
		_, err := desc.WriteTo(f)
		return err
	})
}

func writeDescr(dir string, rec *metadata.Record) error {
	return writeFile(filepath.Join(dir, "pkg-descr"), func(f *os.File) error {
		return ports.WriteDescr(f, rec.Description, rec.WWW())
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
