package license

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pyport/pkg/metadata"
)

// Unknown is the declared license used when upstream declares none.
const Unknown = "UNKNOWN"

// Detection is a license recognised in a source tree.
type Detection struct {
	ID         string  // License identifier, e.g. "mit"
	File       string  // License file relative to the source root
	Confidence float64 // Match confidence in [0, 1]
}

// Detector finds the license of an extracted source tree. It returns nil
// without error when no license could be recognised.
type Detector interface {
	Detect(dir string) (*Detection, error)
}

// Fields are the resolved license fields of a port.
type Fields struct {
	Tag       string // Ports license tag, set when Confirmed
	File      string // License file relative to the source root, set when Confirmed
	Declared  string // Upstream declaration, set when not Confirmed
	Confirmed bool
}

// Normalizer resolves detections against a [Table].
type Normalizer struct {
	table         Table
	minConfidence float64
	logger        *log.Logger
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithMinConfidence ignores detections below c. Zero accepts every
// detection.
func WithMinConfidence(c float64) NormalizerOption {
	return func(n *Normalizer) { n.minConfidence = c }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) NormalizerOption {
	return func(n *Normalizer) { n.logger = l }
}

// NewNormalizer creates a Normalizer using table.
func NewNormalizer(table Table, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{table: table}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = log.Default()
	}
	return n
}

// Normalize resolves the license fields from the upstream declaration and
// an optional detection.
func (n *Normalizer) Normalize(declared string, det *Detection) Fields {
	if det != nil {
		if det.Confidence < n.minConfidence {
			n.logger.Warn("ignoring low-confidence license detection",
				"license", det.ID, "confidence", det.Confidence, "min", n.minConfidence)
		} else if tag, ok := n.table.Lookup(det.ID); ok {
			return Fields{Tag: tag, File: det.File, Confirmed: true}
		} else {
			n.logger.Warn("detected license has no ports tag", "license", det.ID, "file", det.File)
		}
	}
	return Fields{Declared: advisory(declared)}
}

// Apply normalizes the license of rec and stores the confirmed fields on
// it. Unconfirmed results clear any previously attached license.
func (n *Normalizer) Apply(rec *metadata.Record, det *Detection) Fields {
	f := n.Normalize(rec.License, det)
	rec.LicenseID, rec.LicenseFile = f.Tag, f.File
	return f
}

// advisory reduces a declared license to a single line. Some packages put
// the full license text into the field.
func advisory(declared string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(declared), "\n")
	if line = strings.TrimSpace(line); line == "" {
		return Unknown
	}
	return line
}
