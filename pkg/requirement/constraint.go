package requirement

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Floor is the constraint used when no usable lower bound exists.
const Floor = ">=0"

var releaseRE = regexp.MustCompile(`^(?:(\d+)!)?v?(\d+(?:\.\d+)*)`)

// NormalizeConstraint reduces a version constraint to ">=X", ">X", or
// [Floor]. See the package documentation for the rules.
func NormalizeConstraint(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return Floor
	}

	operand, inclusive, ok := lowerBound(c)
	if !ok {
		return Floor
	}

	sign, ok := compareZero(operand)
	switch {
	case !ok || sign < 0:
		return Floor
	case sign == 0 && inclusive:
		return Floor
	case inclusive:
		return ">=" + operand
	default:
		return ">" + operand
	}
}

// lowerBound returns the operand of the first clause that starts with ">"
// or "=". ">=" and "==" make the bound inclusive.
func lowerBound(c string) (operand string, inclusive, ok bool) {
	for _, clause := range strings.Split(c, ",") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, ">="), strings.HasPrefix(clause, "=="):
			return cleanOperand(clause[2:]), true, true
		case strings.HasPrefix(clause, ">"), strings.HasPrefix(clause, "="):
			return cleanOperand(clause[1:]), false, true
		}
	}
	return "", false, false
}

func cleanOperand(s string) string {
	s = strings.TrimLeft(strings.TrimSpace(s), "=")
	return strings.TrimSuffix(strings.TrimSpace(s), ".*")
}

// compareZero compares the numeric release segment of v with "0".
// PEP 440 suffixes (rc1, .post2, +local) are ignored; a non-zero epoch
// makes any version positive.
func compareZero(v string) (int, bool) {
	m := releaseRE.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}
	if m[1] != "" {
		epoch, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return 0, false
		}
		if epoch > 0 {
			return 1, true
		}
	}

	var release [3]uint64
	for i, part := range strings.Split(m[2], ".") {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return 0, false
		}
		if i >= len(release) {
			// semver has three components; 0.0.0.1 is still above zero.
			if n > 0 && release == [3]uint64{} {
				return 1, true
			}
			continue
		}
		release[i] = n
	}
	sv := semver.New(release[0], release[1], release[2], "", "")
	return sv.Compare(semver.New(0, 0, 0, "", "")), true
}
