package pypi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/pyport/pkg/integrations"
	"github.com/matzehuels/pyport/pkg/metadata"
)

// DefaultBaseURL is the PyPI JSON API.
const DefaultBaseURL = "https://pypi.org/pypi"

// PackageInfo holds metadata for a Python package from PyPI.
//
// Zero values: All string fields are empty, slices are nil, Sdist is nil.
// This struct is safe for concurrent reads after construction.
type PackageInfo struct {
	Name         string            // Package name as published (e.g., "Flask", never empty in valid info)
	Version      string            // Current version (e.g., "2.0.0", never empty in valid info)
	Summary      string            // One-line description (may be empty)
	Description  string            // Long description (may be empty)
	HomePage     string            // Homepage URL (may be empty)
	PackageURL   string            // PyPI project page
	License      string            // Declared license (may be empty)
	Classifiers  []string          // Trove classifiers
	RequiresDist []string          // Raw dependency specifiers, markers included
	ProjectURLs  map[string]string // Project URLs from metadata (may be nil)
	Sdist        *File             // Source distribution of Version, nil when none
}

// File is a release artifact.
type File struct {
	Filename string
	URL      string
	SHA256   string
	Size     int64
}

// Client provides access to the PyPI package registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client for the JSON API at baseURL. An empty
// baseURL selects [DefaultBaseURL].
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchPackage retrieves metadata for the current release of a package.
//
// Returns:
//   - PackageInfo populated with metadata on success
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchPackage(ctx context.Context, pkg string) (*PackageInfo, error) {
	name := integrations.NormalizePkgName(pkg)

	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name)), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return nil, err
	}

	info := data.Info
	urls := make(map[string]string, len(info.ProjectURLs))
	for k, v := range info.ProjectURLs {
		if s, ok := v.(string); ok {
			urls[k] = s
		}
	}

	return &PackageInfo{
		Name:         info.Name,
		Version:      info.Version,
		Summary:      info.Summary,
		Description:  info.Description,
		HomePage:     homePage(info.HomePage, urls),
		PackageURL:   info.PackageURL,
		License:      declaredLicense(info.License, info.LicenseExpression, info.Classifiers),
		Classifiers:  info.Classifiers,
		RequiresDist: info.RequiresDist,
		ProjectURLs:  urls,
		Sdist:        findSdist(data, info.Version),
	}, nil
}

// FetchRecord retrieves a package and converts it into a metadata record.
func (c *Client) FetchRecord(ctx context.Context, pkg string) (*metadata.Record, error) {
	info, err := c.FetchPackage(ctx, pkg)
	if err != nil {
		return nil, err
	}
	return info.Record(), nil
}

// Record converts the package info into a metadata record.
func (p *PackageInfo) Record() *metadata.Record {
	rec := &metadata.Record{
		Name:         p.Name,
		Version:      p.Version,
		Summary:      p.Summary,
		Description:  p.Description,
		HomePage:     p.HomePage,
		PackageURL:   p.PackageURL,
		Classifiers:  p.Classifiers,
		RequiresDist: p.RequiresDist,
		License:      p.License,
	}
	if p.Sdist != nil {
		rec.SourceDist = &metadata.Distribution{
			Filename: p.Sdist.Filename,
			URL:      p.Sdist.URL,
			SHA256:   p.Sdist.SHA256,
			Size:     p.Sdist.Size,
		}
	}
	return rec
}

type apiResponse struct {
	Info     apiInfo              `json:"info"`
	URLs     []apiFile            `json:"urls"`
	Releases map[string][]apiFile `json:"releases"`
}

type apiInfo struct {
	Name              string         `json:"name"`
	Version           string         `json:"version"`
	Summary           string         `json:"summary"`
	Description       string         `json:"description"`
	License           string         `json:"license"`
	LicenseExpression string         `json:"license_expression"`
	Classifiers       []string       `json:"classifiers"`
	RequiresDist      []string       `json:"requires_dist"`
	ProjectURLs       map[string]any `json:"project_urls"`
	HomePage          string         `json:"home_page"`
	PackageURL        string         `json:"package_url"`
}

type apiFile struct {
	Filename    string            `json:"filename"`
	URL         string            `json:"url"`
	PackageType string            `json:"packagetype"`
	Size        int64             `json:"size"`
	Digests     map[string]string `json:"digests"`
	Yanked      bool              `json:"yanked"`
}

// findSdist picks the source distribution of version. The files of the
// current release are listed under "urls"; "releases" is consulted for
// older API responses that omit it.
func findSdist(data apiResponse, version string) *File {
	files := data.URLs
	if len(files) == 0 {
		files = data.Releases[version]
	}
	for _, f := range files {
		if f.PackageType == "sdist" && !f.Yanked {
			return &File{
				Filename: f.Filename,
				URL:      f.URL,
				SHA256:   f.Digests["sha256"],
				Size:     f.Size,
			}
		}
	}
	return nil
}

var homePageKeys = []string{"Homepage", "homepage", "Home", "Home Page", "Documentation", "Source"}

// homePage prefers the home_page field and falls back to project URLs,
// which newer packages use exclusively.
func homePage(home string, urls map[string]string) string {
	if home = strings.TrimSpace(home); home != "" && home != "UNKNOWN" {
		return home
	}
	for _, key := range homePageKeys {
		if u := urls[key]; u != "" {
			return u
		}
	}
	return ""
}

// declaredLicense extracts the license declaration from PyPI data. It
// prefers the license field, then the PEP 639 license expression, then the
// last segment of a "License ::" classifier.
func declaredLicense(license, expression string, classifiers []string) string {
	if license = strings.TrimSpace(license); license != "" && license != "UNKNOWN" {
		return license
	}
	if expression = strings.TrimSpace(expression); expression != "" {
		return expression
	}
	for _, c := range classifiers {
		if strings.HasPrefix(c, "License :: ") {
			parts := strings.Split(c, " :: ")
			if len(parts) >= 3 {
				return parts[len(parts)-1]
			}
		}
	}
	return ""
}
