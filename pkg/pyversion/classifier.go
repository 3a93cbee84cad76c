package pyversion

import (
	"iter"
	"regexp"
	"strconv"
	"strings"
)

var classifierSep = regexp.MustCompile(`\s*::\s*`)

// Classifier segments that introduce an interpreter version.
const (
	classifierTopic    = "Programming Language"
	classifierLanguage = "Python"
)

// Classifiers yields the Python versions declared by classifiers, in
// classifier order. The sequence is lazy and meant to be consumed once;
// callers must sort (see [Collect]) before relying on ordering.
func Classifiers(classifiers []string) iter.Seq[Version] {
	return func(yield func(Version) bool) {
		for _, c := range classifiers {
			v, ok := parseClassifier(c)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

func parseClassifier(c string) (Version, bool) {
	parts := classifierSep.Split(strings.TrimSpace(c), -1)
	if len(parts) < 3 || parts[0] != classifierTopic || parts[1] != classifierLanguage {
		return Version{}, false
	}

	raw := strings.Split(parts[2], ".")
	if raw[0] != "2" && raw[0] != "3" {
		return Version{}, false
	}
	major, _ := strconv.Atoi(raw[0])
	if len(raw) == 1 {
		return MajorOnly(major), true
	}

	minor, err := strconv.Atoi(raw[1])
	if err != nil || minor < 0 {
		return Version{}, false
	}
	return V(major, minor), true
}
