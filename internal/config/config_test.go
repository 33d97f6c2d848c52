package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return p
}

// isolateConfigDirs points the working directory and the user config
// directory at fresh temporary directories and returns the latter's htmltoc
// subdirectory, created.
func isolateConfigDirs(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)
	t.Chdir(t.TempDir())

	base, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	dir := filepath.Join(base, AppDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	want := &Config{
		Registry: RegistryConfig{Capacity: 16},
		Target:   TargetConfig{HostedMacro: "WIN32", Header: "esp_common.h"},
		Encoding: EncodingConfig{Newline: "lf"},
	}
	got := DefaultConfig()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Value ranges and field lengths
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	long := func(n int) string { return strings.Repeat("a", n) }

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "max capacity", modify: func(c *Config) { c.Registry.Capacity = MaxCapacity }},
		{name: "empty newline means lf", modify: func(c *Config) { c.Encoding.Newline = "" }},
		{name: "crlf", modify: func(c *Config) { c.Encoding.Newline = NewlineCRLF }},
		{name: "macro with digits", modify: func(c *Config) { c.Target.HostedMacro = "_WIN32_HOST2" }},
		{name: "header in subdirectory", modify: func(c *Config) { c.Target.Header = "freertos/FreeRTOS.h" }},
		{name: "path at limit", modify: func(c *Config) { c.Templates.Path = long(MaxPathLength) }},

		{name: "zero capacity", modify: func(c *Config) { c.Registry.Capacity = 0 }, wantErr: ErrInvalidValue},
		{name: "capacity too large", modify: func(c *Config) { c.Registry.Capacity = MaxCapacity + 1 }, wantErr: ErrInvalidValue},
		{name: "unknown newline", modify: func(c *Config) { c.Encoding.Newline = "cr" }, wantErr: ErrInvalidValue},
		{name: "macro starting with digit", modify: func(c *Config) { c.Target.HostedMacro = "32WIN" }, wantErr: ErrInvalidValue},
		{name: "macro with dash", modify: func(c *Config) { c.Target.HostedMacro = "HOST-BUILD" }, wantErr: ErrInvalidValue},
		{name: "empty macro", modify: func(c *Config) { c.Target.HostedMacro = "" }, wantErr: ErrInvalidValue},
		{name: "macro too long", modify: func(c *Config) { c.Target.HostedMacro = strings.Repeat("M", MaxMacroLength+1) }, wantErr: ErrFieldTooLong},
		{name: "empty header", modify: func(c *Config) { c.Target.Header = "" }, wantErr: ErrInvalidValue},
		{name: "header with quote", modify: func(c *Config) { c.Target.Header = `x".h` }, wantErr: ErrInvalidValue},
		{name: "header with newline", modify: func(c *Config) { c.Target.Header = "x\n.h" }, wantErr: ErrInvalidValue},
		{name: "header too long", modify: func(c *Config) { c.Target.Header = long(MaxHeaderLength+1) }, wantErr: ErrFieldTooLong},
		{name: "input dir too long", modify: func(c *Config) { c.Input.DefaultDir = long(MaxPathLength+1) }, wantErr: ErrFieldTooLong},
		{name: "output dir too long", modify: func(c *Config) { c.Output.DefaultDir = long(MaxPathLength+1) }, wantErr: ErrFieldTooLong},
		{name: "template path too long", modify: func(c *Config) { c.Templates.Path = long(MaxPathLength+1) }, wantErr: ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_NamesField(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Output.DefaultDir = strings.Repeat("d", MaxPathLength+1)

	err := cfg.Validate()
	want := "output.defaultDir (4097 chars, max 4096)"
	if err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("Validate() error = %v, want it to contain %q", err, want)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Reading, decoding and validating a file
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	full := `input:
  defaultDir: ./www
output:
  defaultDir: ./main/www
registry:
  capacity: 32
  excludeFailed: true
target:
  hostedMacro: HOST_BUILD
  header: board.h
encoding:
  legacyNarrowing: true
  newline: crlf
templates:
  path: ./templates
check:
  links: true
`

	tests := []struct {
		name    string
		content string
		want    *Config
		wantErr error
	}{
		{
			name:    "every field",
			content: full,
			want: &Config{
				Input:     InputConfig{DefaultDir: "./www"},
				Output:    OutputConfig{DefaultDir: "./main/www"},
				Registry:  RegistryConfig{Capacity: 32, ExcludeFailed: true},
				Target:    TargetConfig{HostedMacro: "HOST_BUILD", Header: "board.h"},
				Encoding:  EncodingConfig{LegacyNarrowing: true, Newline: NewlineCRLF},
				Templates: TemplatesConfig{Path: "./templates"},
				Check:     CheckConfig{Links: true},
			},
		},
		{
			name:    "absent keys keep defaults",
			content: "registry:\n  excludeFailed: true\n",
			want: func() *Config {
				c := DefaultConfig()
				c.Registry.ExcludeFailed = true
				return c
			}(),
		},
		{name: "syntax error", content: "input: [unclosed", wantErr: ErrConfigParse},
		{name: "unknown key", content: "registry:\n  size: 8\n", wantErr: ErrConfigParse},
		{name: "duplicate key", content: "registry:\n  capacity: 8\n  capacity: 9\n", wantErr: ErrConfigParse},
		{name: "empty file", content: "", wantErr: ErrConfigParse},
		{name: "value out of range", content: "registry:\n  capacity: 0\n", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), "htmltoc.yaml", tt.content)
			got, err := LoadConfig(path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
			if tt.want == nil {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig("/nonexistent/htmltoc.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unreadable file is not reported as missing", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced")
		}

		path := writeConfig(t, t.TempDir(), "locked.yaml", "registry:\n  capacity: 4\n")
		if err := os.Chmod(path, 0); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

		_, err := LoadConfig(path)
		if err == nil || errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want a read error", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - Lookup of bare names
//
// Notes:
// - not parallel: each case changes the working directory and HOME
// ---------------------------------------------------------------------------

func TestLoadConfig_ByName(t *testing.T) {
	tests := []struct {
		name         string
		local        map[string]string // files in the working directory
		user         map[string]string // files in <user config dir>/htmltoc
		wantCapacity int
	}{
		{
			name:         "yaml in working directory",
			local:        map[string]string{"board.yaml": "registry:\n  capacity: 8\n"},
			wantCapacity: 8,
		},
		{
			name:         "yml when no yaml",
			local:        map[string]string{"board.yml": "registry:\n  capacity: 9\n"},
			wantCapacity: 9,
		},
		{
			name: "yaml preferred over yml",
			local: map[string]string{
				"board.yaml": "registry:\n  capacity: 10\n",
				"board.yml":  "registry:\n  capacity: 11\n",
			},
			wantCapacity: 10,
		},
		{
			name:         "user config directory",
			user:         map[string]string{"board.yaml": "registry:\n  capacity: 12\n"},
			wantCapacity: 12,
		},
		{
			name:         "working directory shadows user config directory",
			local:        map[string]string{"board.yml": "registry:\n  capacity: 13\n"},
			user:         map[string]string{"board.yaml": "registry:\n  capacity: 14\n"},
			wantCapacity: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userDir := isolateConfigDirs(t)
			for name, content := range tt.local {
				writeConfig(t, ".", name, content)
			}
			for name, content := range tt.user {
				writeConfig(t, userDir, name, content)
			}

			cfg, err := LoadConfig("board")
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if cfg.Registry.Capacity != tt.wantCapacity {
				t.Errorf("Registry.Capacity = %d, want %d", cfg.Registry.Capacity, tt.wantCapacity)
			}
		})
	}

	t.Run("not found lists candidates", func(t *testing.T) {
		isolateConfigDirs(t)

		_, err := LoadConfig("board")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "board.yml") {
			t.Errorf("error should list tried paths, got: %v", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Run("path is returned as is", func(t *testing.T) {
		got := SearchPaths("./board.yaml")
		if diff := cmp.Diff([]string{"./board.yaml"}, got); diff != "" {
			t.Errorf("SearchPaths() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("name searches local then user config dir", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME drives os.UserConfigDir on Linux only")
		}
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		want := []string{
			"board.yaml",
			"board.yml",
			filepath.Join(xdg, AppDir, "board.yaml"),
			filepath.Join(xdg, AppDir, "board.yml"),
		}
		if diff := cmp.Diff(want, SearchPaths("board")); diff != "" {
			t.Errorf("SearchPaths() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{"capacity: 16", "hostedMacro: WIN32", "header: esp_common.h", "newline: lf"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() output missing %q, got:\n%s", want, data)
		}
	}
}
