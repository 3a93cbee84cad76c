package distfile

import (
	"archive/tar"
	"compress/bzip2"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/ulikunitz/xz"

	"github.com/matzehuels/pyport/pkg/errors"
)

// Format is an archive format recognised by [Extract].
type Format int

const (
	FormatUnknown Format = iota
	FormatTar
	FormatTarGz
	FormatTarXz
	FormatTarBz2
	FormatZip
)

// DetectFormat picks the archive format from the file name.
func DetectFormat(name string) Format {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return FormatTarXz
	case strings.HasSuffix(name, ".tar.bz2"), strings.HasSuffix(name, ".tbz"), strings.HasSuffix(name, ".tbz2"):
		return FormatTarBz2
	case strings.HasSuffix(name, ".tar"):
		return FormatTar
	case strings.HasSuffix(name, ".zip"):
		return FormatZip
	default:
		return FormatUnknown
	}
}

// Extract unpacks archive into dest and returns the source root: the single
// top-level directory of the archive if there is one, else dest itself.
// Entries that would land outside dest are rejected.
func Extract(archive, dest string) (string, error) {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeExtract, err, "create %s", dest)
	}

	x := &extractor{dest: filepath.Clean(dest), tops: make(map[string]bool)}
	var err error
	switch DetectFormat(archive) {
	case FormatZip:
		err = x.zip(archive)
	case FormatUnknown:
		return "", errors.New(errors.ErrCodeExtract, "unsupported archive format: %s", filepath.Base(archive))
	default:
		err = x.tarball(archive)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExtract, err, "extract %s", filepath.Base(archive))
	}
	return x.root(), nil
}

type extractor struct {
	dest   string
	tops   map[string]bool // first path segment of every entry
	nested bool            // some entry lives below a top-level directory
}

func (x *extractor) tarball(archive string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader
	switch DetectFormat(archive) {
	case FormatTarGz:
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		r = gr
	case FormatTarXz:
		xr, err := xz.NewReader(f)
		if err != nil {
			return err
		}
		r = xr
	case FormatTarBz2:
		r = bzip2.NewReader(f)
	default:
		r = f
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeXGlobalHeader, tar.TypeXHeader:
			continue
		}

		target, err := x.target(hdr.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(target, 0o755)
		case tar.TypeReg:
			err = writeFile(target, tr, hdr.FileInfo().Mode())
		case tar.TypeSymlink:
			err = x.symlink(target, hdr.Linkname)
		case tar.TypeLink:
			var src string
			if src, err = x.target(hdr.Linkname); err == nil && src != "" {
				err = os.Link(src, target)
			}
		default:
			// Devices and FIFOs have no place in a source tree.
		}
		if err != nil {
			return err
		}
	}
}

func (x *extractor) zip(archive string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, zf := range zr.File {
		target, err := x.target(zf.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		err = writeFile(target, rc, zf.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// target maps an archive entry name to a path below dest. It returns ""
// for entries naming the archive root.
func (x *extractor) target(name string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(name, "./"))
	if clean == "." {
		return "", nil
	}
	if err := errors.ValidatePath(clean); err != nil {
		return "", fmt.Errorf("entry %q: %w", name, err)
	}

	top, rest, _ := strings.Cut(clean, "/")
	x.tops[top] = true
	if rest != "" {
		x.nested = true
	}

	target := filepath.Join(x.dest, filepath.FromSlash(clean))
	if !within(x.dest, target) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return target, nil
}

func (x *extractor) symlink(target, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("symlink %s points to absolute path %q", target, linkname)
	}
	if !within(x.dest, filepath.Join(filepath.Dir(target), linkname)) {
		return fmt.Errorf("symlink %s escapes destination", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.Symlink(linkname, target)
}

func (x *extractor) root() string {
	if len(x.tops) == 1 && x.nested {
		for top := range x.tops {
			return filepath.Join(x.dest, top)
		}
	}
	return x.dest
}

func writeFile(target string, r io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm()|0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
