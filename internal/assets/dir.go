package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir serves templates from a directory on disk.
type Dir struct {
	root string // absolute, symlinks resolved
}

// OpenDir returns a Dir rooted at path. The path must name a readable
// directory; ErrBadDir is returned otherwise.
func OpenDir(path string) (*Dir, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadDir)
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDir, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	info, err := os.Stat(root)
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrBadDir, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrBadDir, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDir, err)
	}

	return &Dir{root: root}, nil
}

// Root returns the resolved directory.
func (d *Dir) Root() string {
	return d.root
}

// LoadTemplate reads {root}/{name}.tmpl.
func (d *Dir) LoadTemplate(name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}

	path, err := d.contained(filepath.Join(d.root, fileName(name)))
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- contained in root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrRead, err)
	}
	return string(content), nil
}

// contained resolves symlinks in path and checks the result stays under
// root. A missing file keeps its unresolved path and fails on read.
func (d *Dir) contained(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	rel, err := filepath.Rel(d.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrEscape, path)
	}
	return path, nil
}

var _ Source = (*Dir)(nil)
