package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxPackageNameLen = 256
	maxPathLen        = 500
)

// pep508Name matches a distribution name as PEP 508 allows it.
var pep508Name = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ValidatePackageName rejects names that cannot safely become a single
// directory below the output directory: empty or overlong names, control
// characters, separators and "..".
func ValidatePackageName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPackage, "package name is empty")
	case len(name) > maxPackageNameLen:
		return New(ErrCodeInvalidPackage, "package name longer than %d bytes", maxPackageNameLen)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPackage, "package name %q contains control characters", name)
	case strings.ContainsAny(name, `/\`):
		return New(ErrCodeInvalidPackage, "package name %q contains a path separator", name)
	case strings.Contains(name, ".."):
		return New(ErrCodeInvalidPackage, "package name %q contains %q", name, "..")
	}
	return nil
}

// ValidatePythonPackageName checks name with [ValidatePackageName] and
// against the PEP 508 name grammar.
func ValidatePythonPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !pep508Name.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Python package name %q", name)
	}
	return nil
}

// ValidatePath checks a slash-separated relative path taken from an
// archive or a source tree. It must not be absolute, contain "..", control
// characters or backslashes.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path is empty")
	case len(path) > maxPathLen:
		return New(ErrCodeInvalidPath, "path longer than %d bytes", maxPathLen)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path %q contains control characters", path)
	case strings.HasPrefix(path, "/"):
		return New(ErrCodeInvalidPath, "path %q is absolute", path)
	case strings.Contains(path, `\`):
		return New(ErrCodeInvalidPath, "path %q contains a backslash", path)
	}
	for _, elem := range strings.Split(path, "/") {
		if elem == ".." {
			return New(ErrCodeInvalidPath, "path %q escapes its root", path)
		}
	}
	return nil
}

// ValidateURL accepts http and https URLs only.
func ValidateURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	return nil
}
