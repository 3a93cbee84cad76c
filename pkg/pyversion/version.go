package pyversion

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Unspecified marks a version that only names a major release.
const Unspecified = -1

// Version is a Python interpreter version.
type Version struct {
	Major int
	Minor int // Unspecified for "major only"
}

// V returns the version major.minor.
func V(major, minor int) Version { return Version{Major: major, Minor: minor} }

// MajorOnly returns the version that names only major.
func MajorOnly(major int) Version { return Version{Major: major, Minor: Unspecified} }

// HasMinor reports whether v names a specific minor release.
func (v Version) HasMinor() bool { return v.Minor != Unspecified }

// String renders "3" or "3.8".
func (v Version) String() string {
	if !v.HasMinor() {
		return strconv.Itoa(v.Major)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare orders versions by major, then minor, with Unspecified first.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	return cmp.Compare(a.Minor, b.Minor)
}

// Parse reads "3" or "3.10". Components after the minor are ignored.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("pyversion: parse %q: %w", s, err)
	}
	if len(parts) == 1 {
		return MajorOnly(major), nil
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("pyversion: parse %q: %w", s, err)
	}
	return V(major, minor), nil
}

// Collect drains seq into an ascending, duplicate-free slice.
func Collect(seq iter.Seq[Version]) []Version {
	return normalize(slices.Collect(seq))
}

func normalize(vs []Version) []Version {
	vs = slices.Clone(vs)
	slices.SortFunc(vs, Compare)
	return slices.Compact(vs)
}

func join(vs []Version) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = v.String()
	}
	return strings.Join(s, ", ")
}
