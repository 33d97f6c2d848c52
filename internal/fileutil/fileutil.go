// Package fileutil holds small path predicates shared by the CLI and the
// config loader.
package fileutil

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// isDir stats path. ok is false when path cannot be stat'ed.
func isDir(path string) (dir, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return false, false
	}
	return info.IsDir(), true
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	dir, ok := isDir(path)
	return ok && !dir
}

// DirExists reports whether path names a directory.
func DirExists(path string) bool {
	dir, ok := isDir(path)
	return ok && dir
}

// IsFilePath reports whether s should be read as a path rather than a bare
// config name: any slash or backslash makes it a path, so "board" is a
// name while "./board.yaml" and `C:\board.yaml` are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// HasExtension reports whether path's extension is one of exts, compared
// case-sensitively.
func HasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	return ext != "" && slices.Contains(exts, ext)
}
