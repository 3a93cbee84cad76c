package requirement

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pyport/pkg/integrations"
)

const (
	// DefaultPrefix namespaces Python ports in the ports tree.
	DefaultPrefix = "py-"

	// PlaceholderCategory is the category used when no port was found.
	// The resulting origin is deliberately invalid so it cannot slip
	// through review.
	PlaceholderCategory = "XXX"
)

// Lookup finds the origin ("category/port") of an existing port.
// Implementations return ok=false when no port matches.
type Lookup interface {
	Lookup(ctx context.Context, name string) (origin string, ok bool, err error)
}

// LookupFunc adapts a function to [Lookup].
type LookupFunc func(ctx context.Context, name string) (string, bool, error)

// Lookup calls f.
func (f LookupFunc) Lookup(ctx context.Context, name string) (string, bool, error) {
	return f(ctx, name)
}

// Dependency is a requirement resolved to a port origin.
type Dependency struct {
	Requirement
	Origin      string // Port origin, e.g. "www/py-requests"
	Placeholder bool   // Origin is a placeholder that needs manual review
}

// String renders the dependency in ports *_DEPENDS syntax.
func (d Dependency) String() string {
	return fmt.Sprintf("${PYTHON_PKGNAMEPREFIX}%s%s:${PORTSDIR}/%s", d.Name, d.Normalized(), d.Origin)
}

// Translator turns dependency specifiers into sorted [Dependency] values.
type Translator struct {
	lookup        Lookup
	prefix        string
	excludeMarked bool
	logger        *log.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithPrefix sets the port name prefix (default [DefaultPrefix]).
func WithPrefix(p string) Option {
	return func(t *Translator) { t.prefix = p }
}

// WithExcludeMarked drops dependencies that carry an environment marker
// instead of only reporting them.
func WithExcludeMarked(v bool) Option {
	return func(t *Translator) { t.excludeMarked = v }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// NewTranslator creates a Translator backed by lookup.
func NewTranslator(lookup Lookup, opts ...Option) *Translator {
	t := &Translator{lookup: lookup, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.Default()
	}
	return t
}

// Translate parses and resolves every specifier. Malformed specifiers are
// logged and skipped. The result is sorted case-insensitively by name;
// entries with equal names keep their input order.
//
// An error is returned only when the lookup collaborator fails.
func (t *Translator) Translate(ctx context.Context, specs []string) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(specs))
	for _, spec := range specs {
		req, err := Parse(spec)
		if err != nil {
			t.logger.Warn("skipping malformed requirement", "spec", spec, "err", err)
			continue
		}

		if req.Marker != "" {
			if t.excludeMarked {
				t.logger.Warn("excluding dependency with environment marker", "dependency", req.Name, "marker", req.Marker)
				continue
			}
			t.logger.Warn("dependency has environment marker", "dependency", req.Name, "marker", req.Marker)
		}

		dep, err := t.resolve(ctx, req)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	slices.SortStableFunc(deps, func(a, b Dependency) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return deps, nil
}

// resolve looks the dependency up under its lower-cased name, then under
// its PEP 503 form ("typing_extensions" -> "typing-extensions"). Ports keep
// either spelling, e.g. py-zope.interface and py-typing-extensions.
func (t *Translator) resolve(ctx context.Context, req Requirement) (Dependency, error) {
	names := []string{t.prefix + strings.ToLower(req.Name)}
	if canonical := t.prefix + integrations.NormalizePkgName(req.Name); canonical != names[0] {
		names = append(names, canonical)
	}

	if t.lookup != nil {
		for _, name := range names {
			origin, ok, err := t.lookup.Lookup(ctx, name)
			if err != nil {
				return Dependency{}, fmt.Errorf("lookup %s: %w", name, err)
			}
			if ok {
				return Dependency{Requirement: req, Origin: origin}, nil
			}
		}
	}

	origin := PlaceholderCategory + "/" + names[len(names)-1]
	t.logger.Warn("no port found, placeholder needs review", "dependency", req.Name, "origin", origin)
	return Dependency{Requirement: req, Origin: origin, Placeholder: true}, nil
}
