package pyversion

import "slices"

// Kind classifies the outcome of [Resolver.Resolve].
type Kind int

const (
	// KindUnconstrained means the package declares no Python versions at all.
	KindUnconstrained Kind = iota
	// KindAll means the declared versions cover every local version.
	KindAll
	// KindBounded means Range restricts the local versions.
	KindBounded
	// KindNoMatch means no local version is supported upstream. This is a
	// data-quality condition, not an error: the port is emitted without a
	// constraint and the caller reports a diagnostic.
	KindNoMatch
)

func (k Kind) String() string {
	switch k {
	case KindUnconstrained:
		return "unconstrained"
	case KindAll:
		return "all"
	case KindBounded:
		return "bounded"
	case KindNoMatch:
		return "no-match"
	default:
		return "unknown"
	}
}

// Support is the resolved Python support of a port.
type Support struct {
	Kind    Kind
	Range   string // "3.8+", "-3.9", "3.8-3.10", "3.8", or "" for no constraint
	Comment string // Upstream versions ascending, e.g. "2.7, 3.6, 3.7"
	Relaxed bool   // Matched through a major-only classifier
}

// Uses renders the USES value, e.g. "python:3.8+ # 3.8, 3.9".
func (s Support) Uses() string {
	v := "python"
	if s.Range != "" {
		v += ":" + s.Range
	}
	if s.Comment != "" {
		v += " # " + s.Comment
	}
	return v
}

// DefaultLocal is the local-support set used when none is configured.
var DefaultLocal = []Version{V(2, 7), V(3, 9), V(3, 10), V(3, 11), V(3, 12)}

// Resolver intersects upstream versions with the locally supported set.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	local []Version
}

// NewResolver returns a Resolver for the given local-support set.
// The slice is copied, sorted, and deduplicated.
func NewResolver(local []Version) *Resolver {
	return &Resolver{local: normalize(local)}
}

// Local returns a copy of the local-support set in ascending order.
func (r *Resolver) Local() []Version { return slices.Clone(r.local) }

// Resolve computes the range expression for the upstream versions.
func (r *Resolver) Resolve(upstream []Version) Support {
	upstream = normalize(upstream)
	if len(upstream) == 0 {
		return Support{Kind: KindUnconstrained}
	}
	comment := join(upstream)

	if matching := r.intersect(upstream); len(matching) > 0 {
		s := r.render(matching)
		s.Comment = comment
		return s
	}

	if relaxed := r.relax(upstream); len(relaxed) > 0 {
		s := r.render(relaxed)
		s.Comment = comment
		s.Relaxed = true
		return s
	}

	return Support{Kind: KindNoMatch, Comment: comment}
}

func (r *Resolver) intersect(upstream []Version) []Version {
	var out []Version
	for _, v := range r.local {
		if _, ok := slices.BinarySearchFunc(upstream, v, Compare); ok {
			out = append(out, v)
		}
	}
	return out
}

// relax matches every local version whose major is declared without a minor.
func (r *Resolver) relax(upstream []Version) []Version {
	var out []Version
	for _, v := range r.local {
		if slices.Contains(upstream, MajorOnly(v.Major)) {
			out = append(out, v)
		}
	}
	return out
}

// render expects matching to be a non-empty ascending subset of r.local.
func (r *Resolver) render(matching []Version) Support {
	lo, hi := matching[0], matching[len(matching)-1]
	minBound := Compare(r.local[0], lo) < 0
	maxBound := Compare(r.local[len(r.local)-1], hi) > 0

	switch {
	case minBound && maxBound:
		if lo == hi {
			return Support{Kind: KindBounded, Range: lo.String()}
		}
		return Support{Kind: KindBounded, Range: lo.String() + "-" + hi.String()}
	case minBound:
		return Support{Kind: KindBounded, Range: lo.String() + "+"}
	case maxBound:
		return Support{Kind: KindBounded, Range: "-" + hi.String()}
	default:
		return Support{Kind: KindAll}
	}
}
