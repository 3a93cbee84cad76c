package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pyport/pkg/errors"
)

// Identity is the porter named in generated ports.
type Identity struct {
	FullName string
	Email    string
}

// CreatedBy renders the "# Created by:" value, empty unless both name and
// email are known.
func (id Identity) CreatedBy() string {
	if id.FullName == "" || id.Email == "" {
		return ""
	}
	return fmt.Sprintf("%s <%s>", id.FullName, id.Email)
}

// PorttoolsPath returns the location of ~/.porttools.
func PorttoolsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".porttools"), nil
}

// LoadIdentity reads EMAIL and FULLNAME from a porttools file. A missing
// file yields an empty identity.
func LoadIdentity(path string) (Identity, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Identity{}, nil
	}
	if err != nil {
		return Identity{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()
	return ParseIdentity(f)
}

// ParseIdentity reads shell-style KEY="value" assignments. Other keys,
// comments, and blank lines are ignored.
func ParseIdentity(r io.Reader) (Identity, error) {
	var id Identity
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "EMAIL":
			id.Email = unquote(value)
		case "FULLNAME":
			id.FullName = unquote(value)
		}
	}
	if err := sc.Err(); err != nil {
		return id, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read porttools")
	}
	return id, nil
}

func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
