package ports

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// TreeLookup finds ports in a ports tree checked out at Root. Port names
// are matched case-insensitively. The tree is scanned once, on first use.
type TreeLookup struct {
	root string

	once    sync.Once
	origins map[string]string
	err     error
}

// NewTreeLookup returns a lookup over the ports tree at root.
func NewTreeLookup(root string) *TreeLookup {
	return &TreeLookup{root: root}
}

// Lookup implements requirement.Lookup.
func (l *TreeLookup) Lookup(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	l.once.Do(l.scan)
	if l.err != nil {
		return "", false, l.err
	}
	origin, ok := l.origins[strings.ToLower(name)]
	return origin, ok, nil
}

func (l *TreeLookup) scan() {
	makefiles, err := filepath.Glob(filepath.Join(l.root, "*", "*", "Makefile"))
	if err != nil {
		l.err = fmt.Errorf("scan ports tree %s: %w", l.root, err)
		return
	}
	if len(makefiles) == 0 {
		if _, err := os.Stat(l.root); err != nil {
			l.err = fmt.Errorf("scan ports tree: %w", err)
			return
		}
	}

	slices.Sort(makefiles)
	l.origins = make(map[string]string, len(makefiles))
	for _, mk := range makefiles {
		dir := filepath.Dir(mk)
		origin := filepath.Base(filepath.Dir(dir)) + "/" + filepath.Base(dir)
		key := strings.ToLower(filepath.Base(dir))
		if _, dup := l.origins[key]; !dup {
			l.origins[key] = origin
		}
	}
}

// IndexLookup finds ports in a ports INDEX file. Each INDEX line is a
// pipe-separated record whose second field is the port directory, e.g.
// "/usr/ports/devel/py-six".
type IndexLookup struct {
	origins map[string]string
}

// OpenIndex reads the INDEX file at path.
func OpenIndex(path string) (*IndexLookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()
	return ParseIndex(f)
}

// ParseIndex reads INDEX records from r. Lines with fewer than two fields
// are skipped.
func ParseIndex(r io.Reader) (*IndexLookup, error) {
	l := &IndexLookup{origins: make(map[string]string)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.SplitN(sc.Text(), "|", 3)
		if len(fields) < 2 {
			continue
		}
		dir := path.Clean(strings.TrimSpace(fields[1]))
		name := path.Base(dir)
		category := path.Base(path.Dir(dir))
		if name == "." || name == "/" || category == "." || category == "/" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := l.origins[key]; !dup {
			l.origins[key] = category + "/" + name
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return l, nil
}

// Lookup implements requirement.Lookup.
func (l *IndexLookup) Lookup(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	origin, ok := l.origins[strings.ToLower(name)]
	return origin, ok, nil
}

// Len returns the number of ports in the index.
func (l *IndexLookup) Len() int {
	return len(l.origins)
}
