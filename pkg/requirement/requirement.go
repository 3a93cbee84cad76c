package requirement

import (
	"regexp"
	"strings"

	"github.com/matzehuels/pyport/pkg/errors"
)

var (
	requirementRE = regexp.MustCompile(`^\s*([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(?:\(([^)]*)\)|([^;()]*?))\s*(?:;\s*(.*?))?\s*$`)
	clauseRE      = regexp.MustCompile(`^(===|~=|==|!=|<=|>=|<|>)\s*[A-Za-z0-9.*+!_-]+$`)
)

// Requirement is a parsed dependency specifier.
type Requirement struct {
	Name       string   // Name as written upstream (case preserved)
	Extras     []string // Requested extras, e.g. ["socks"] (nil when none)
	Constraint string   // Raw version constraint, e.g. ">=2.0,<3" (may be empty)
	Marker     string   // Environment marker, e.g. "extra == 'test'" (may be empty)
}

// Normalized returns the constraint reduced to a single lower bound.
func (r Requirement) Normalized() string {
	return NormalizeConstraint(r.Constraint)
}

// Parse parses a dependency specifier. A specifier that cannot be parsed
// yields an error with code [errors.ErrCodeMalformedRequirement].
func Parse(spec string) (Requirement, error) {
	m := requirementRE.FindStringSubmatch(spec)
	if m == nil {
		return Requirement{}, errors.New(errors.ErrCodeMalformedRequirement, "cannot parse requirement %q", spec)
	}

	constraint := m[3]
	if constraint == "" {
		constraint = m[4]
	}
	constraint, err := cleanConstraint(constraint)
	if err != nil {
		return Requirement{}, errors.Wrap(errors.ErrCodeMalformedRequirement, err, "requirement %q", spec)
	}

	return Requirement{
		Name:       m[1],
		Extras:     splitExtras(m[2]),
		Constraint: constraint,
		Marker:     strings.TrimSpace(m[5]),
	}, nil
}

// cleanConstraint validates each comma-separated clause and strips spaces.
func cleanConstraint(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return "", nil
	}
	clauses := strings.Split(c, ",")
	for i, clause := range clauses {
		clause = strings.Join(strings.Fields(clause), "")
		if !clauseRE.MatchString(clause) {
			return "", errors.New(errors.ErrCodeMalformedRequirement, "invalid version clause %q", strings.TrimSpace(clauses[i]))
		}
		clauses[i] = clause
	}
	return strings.Join(clauses, ","), nil
}

func splitExtras(s string) []string {
	var extras []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			extras = append(extras, e)
		}
	}
	return extras
}
