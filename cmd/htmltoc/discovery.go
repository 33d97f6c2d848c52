package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	htmltoc "github.com/alnah/go-htmltoc"
	"github.com/alnah/go-htmltoc/internal/fileutil"
)

// discoverAssets walks source recursively and returns every file with a
// supported extension, sorted by full path (ordinal) so the registry order
// is stable across filesystems.
func discoverAssets(source string) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoInput, source)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, source)
	}

	var files []string
	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if fileutil.HasExtension(path, htmltoc.SupportedExtensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
