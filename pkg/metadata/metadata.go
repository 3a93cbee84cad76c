// Package metadata defines the package record that flows through port
// generation.
//
// A [Record] is an immutable snapshot of one package's registry data. It is
// built once by the pipeline from the registry response, read by the version
// and requirement resolvers, and discarded after the port files are written.
// The only mutation permitted after construction is attaching the resolved
// license fields, which is done by license.Normalizer.Apply.
package metadata

// Record holds the registry facts needed to describe one port.
type Record struct {
	Name         string   // Upstream package name, case preserved (e.g., "Flask")
	Version      string   // Current release version (e.g., "2.0.0")
	Summary      string   // One-line summary (may be empty)
	Description  string   // Long description (may be empty)
	HomePage     string   // Project home page (may be empty)
	PackageURL   string   // Registry page, used when HomePage is empty
	Classifiers  []string // Trove classifiers in registry order
	RequiresDist []string // Raw dependency specifiers (nil when none declared)
	License      string   // Declared license string, free text

	// Resolved license fields. Empty until a detection has been confirmed.
	LicenseID   string // Ports license tag (e.g., "BSD3CLAUSE")
	LicenseFile string // License file path relative to the source root

	SourceDist *Distribution // Source distribution of Version, nil when none was published
}

// Distribution describes a downloadable release artifact.
type Distribution struct {
	Filename string // Archive file name (e.g., "Flask-2.0.0.tar.gz")
	URL      string // Download URL
	SHA256   string // Hex digest published by the registry (may be empty)
	Size     int64  // Size in bytes (0 when unknown)
}

// WWW returns the project home page, falling back to the registry page.
func (r *Record) WWW() string {
	if r.HomePage != "" {
		return r.HomePage
	}
	return r.PackageURL
}

// HasConfirmedLicense reports whether a detected license was attached.
func (r *Record) HasConfirmedLicense() bool {
	return r.LicenseID != ""
}
