package distfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/pyport/pkg/errors"
)

// SHA256 returns the hex-encoded SHA-256 digest of the file at path.
func SHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open distfile: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash distfile: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifySHA256 checks the file at path against want. An empty want skips
// the check, since not every registry publishes digests.
func VerifySHA256(path, want string) error {
	if want == "" {
		return nil
	}
	got, err := SHA256(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, want) {
		return errors.New(errors.ErrCodeDigestMismatch, "%s: sha256 %s does not match published %s", path, got, want)
	}
	return nil
}
