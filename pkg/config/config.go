// Package config loads pyport settings.
//
// Settings live in a TOML file, by default
// $XDG_CONFIG_HOME/pyport/config.toml (falling back to
// ~/.config/pyport/config.toml). A missing file yields [Default]. The
// porter's identity is read separately from ~/.porttools, the file shared
// with the FreeBSD porttools scripts (see [LoadIdentity]).
//
// Example config.toml:
//
//	python_versions = ["3.9", "3.10", "3.11"]
//	categories      = ["devel", "python"]
//	ports_dir       = "/usr/ports"
//	exclude_marked  = false
//	min_confidence  = 0.0
//
//	[licenses]
//	zlib = "ZLIB"
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pyport/pkg/errors"
	"github.com/matzehuels/pyport/pkg/pyversion"
)

const (
	appName = "pyport"

	// DefaultPyPIURL is the PyPI JSON API base.
	DefaultPyPIURL = "https://pypi.org/pypi"

	// DefaultPortsDir is where a ports tree is usually checked out.
	DefaultPortsDir = "/usr/ports"
)

// Config holds pyport settings.
type Config struct {
	PythonVersions []string          `toml:"python_versions"`      // Versions the ports tree builds for
	Categories     []string          `toml:"categories"`           // CATEGORIES of generated ports
	PortsDir       string            `toml:"ports_dir"`            // Ports tree used to find dependencies
	IndexFile      string            `toml:"index_file,omitempty"` // Ports INDEX, preferred over PortsDir when set
	Make           string            `toml:"make"`                 // make binary
	PyPIURL        string            `toml:"pypi_url"`             // Registry API base
	ExcludeMarked  bool              `toml:"exclude_marked"`       // Drop marker-gated dependencies
	MinConfidence  float64           `toml:"min_confidence"`       // Ignore license detections below this
	Licenses       map[string]string `toml:"licenses,omitempty"`   // Extra license id → ports tag mappings
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PythonVersions: defaultVersions(),
		Categories:     []string{"devel", "python"},
		PortsDir:       DefaultPortsDir,
		Make:           "make",
		PyPIURL:        DefaultPyPIURL,
	}
}

func defaultVersions() []string {
	vs := make([]string, len(pyversion.DefaultLocal))
	for i, v := range pyversion.DefaultLocal {
		vs[i] = v.String()
	}
	return vs
}

// DefaultPath returns the config file location following XDG conventions.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default]. A missing file
// is not an error. Unknown keys are.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(string(data))
}

// Parse decodes TOML settings on top of [Default].
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if _, err := c.Versions(); err != nil {
		return err
	}
	if len(c.Categories) == 0 || slices.Contains(c.Categories, "") {
		return errors.New(errors.ErrCodeInvalidConfig, "categories must be non-empty")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_confidence must be between 0 and 1, got %v", c.MinConfidence)
	}
	if err := errors.ValidateURL(c.PyPIURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "pypi_url")
	}
	return nil
}

// Versions parses PythonVersions. Only major versions 2 and 3 exist.
func (c Config) Versions() ([]pyversion.Version, error) {
	if len(c.PythonVersions) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "python_versions must not be empty")
	}
	out := make([]pyversion.Version, 0, len(c.PythonVersions))
	for _, s := range c.PythonVersions {
		v, err := pyversion.Parse(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "python_versions")
		}
		if !v.HasMinor() || (v.Major != 2 && v.Major != 3) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "python_versions: %q must be 2.x or 3.x", s)
		}
		out = append(out, v)
	}
	return out, nil
}

// Write encodes the settings as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
