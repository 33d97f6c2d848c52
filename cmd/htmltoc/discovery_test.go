package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestDiscoverAssets - Recursive scan, filtering and ordering
// ---------------------------------------------------------------------------

func TestDiscoverAssets(t *testing.T) {
	t.Parallel()

	t.Run("sorted by full path", func(t *testing.T) {
		t.Parallel()

		root := setupTestDir(t, map[string]string{
			"style.css":        "",
			"index.html":       "",
			"img/logo.png":     "",
			"img/sub/icon.png": "",
			"about.html":       "",
			"readme.md":        "",
			"script.js":        "",
			"UPPER.HTML":       "",
			"archive.html.bak": "",
		})

		got, err := discoverAssets(root)
		if err != nil {
			t.Fatalf("discoverAssets() error = %v", err)
		}

		want := []string{
			filepath.Join(root, "about.html"),
			filepath.Join(root, "img", "logo.png"),
			filepath.Join(root, "img", "sub", "icon.png"),
			filepath.Join(root, "index.html"),
			filepath.Join(root, "style.css"),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("discoverAssets() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		got, err := discoverAssets(t.TempDir())
		if err != nil {
			t.Fatalf("discoverAssets() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("discoverAssets() = %v, want none", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := discoverAssets(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		root := setupTestDir(t, map[string]string{"index.html": ""})
		_, err := discoverAssets(filepath.Join(root, "index.html"))
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("error = %v, want ErrNotDirectory", err)
		}
	})
}
