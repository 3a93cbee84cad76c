package integrations

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// requestTimeout bounds a single registry request, body included.
const requestTimeout = 10 * time.Second

var (
	// ErrNotFound means the registry has no such package (HTTP 404).
	ErrNotFound = errors.New("not found in registry")

	// ErrNetwork covers transport failures and unexpected HTTP statuses.
	ErrNetwork = errors.New("registry request failed")
)

// NewHTTPClient returns the client used for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

var separatorRuns = regexp.MustCompile(`[-_.]+`)

// NormalizePkgName returns the PEP 503 form of a distribution name: lower
// case, with every run of "-", "_" and "." collapsed into one "-". PyPI
// serves /pypi/<name>/json under this form.
func NormalizePkgName(name string) string {
	return separatorRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
