// Package config loads and validates htmltoc configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-htmltoc/internal/fileutil"
	"github.com/alnah/go-htmltoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under the user config directory searched for
// named configs.
const AppDir = "htmltoc"

// Registry limits, kept in sync with the generator.
const (
	DefaultCapacity = 16
	MaxCapacity     = 4096
)

// Target defaults.
const (
	DefaultHostedMacro = "WIN32"
	DefaultHeader      = "esp_common.h"
)

// Newline values.
const (
	NewlineLF   = "lf"
	NewlineCRLF = "crlf"
)

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxMacroLength  = 63   // significant initial characters of a macro name (C99)
	MaxHeaderLength = 255  // file name limit of common filesystems
)

// Config holds all configuration for code generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Registry  RegistryConfig  `yaml:"registry"`
	Target    TargetConfig    `yaml:"target"`
	Encoding  EncodingConfig  `yaml:"encoding"`
	Templates TemplatesConfig `yaml:"templates"`
	Check     CheckConfig     `yaml:"check"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default source directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default destination (empty = same as source)
}

// RegistryConfig defines the generated page table.
type RegistryConfig struct {
	Capacity      int  `yaml:"capacity"`      // WWW_MAX_PAGES (default: 16)
	ExcludeFailed bool `yaml:"excludeFailed"` // Leave failed assets out of webpages.*
}

// TargetConfig defines the preamble of webpages.c.
type TargetConfig struct {
	HostedMacro string `yaml:"hostedMacro"` // Selects stdio/stdlib/string (default: WIN32)
	Header      string `yaml:"header"`      // Included otherwise (default: esp_common.h)
}

// EncodingConfig defines how text assets and output files are encoded.
type EncodingConfig struct {
	LegacyNarrowing bool   `yaml:"legacyNarrowing"` // Reduce text to 7-bit ASCII
	Newline         string `yaml:"newline"`         // "lf" or "crlf" (default: lf)
}

// TemplatesConfig defines template loading options.
type TemplatesConfig struct {
	Path string `yaml:"path"` // Empty = use embedded templates
}

// fieldLimit bounds the length of one string field.
type fieldLimit struct {
	key   string
	value string
	max   int
}

// limits lists every length-bounded field with its YAML key.
func (c *Config) limits() []fieldLimit {
	return []fieldLimit{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"templates.path", c.Templates.Path, MaxPathLength},
		{"target.hostedMacro", c.Target.HostedMacro, MaxMacroLength},
		{"target.header", c.Target.Header, MaxHeaderLength},
	}
}

// CheckConfig enables optional checks run after generation.
type CheckConfig struct {
	Links bool `yaml:"links"` // Warn about references to pages not in the registry
}

// Validate reports the first out-of-range value. LoadConfig calls it;
// callers building a Config by hand should too.
func (c *Config) Validate() error {
	for _, l := range c.limits() {
		if err := checkLength(l); err != nil {
			return err
		}
	}

	if c.Registry.Capacity < 1 || c.Registry.Capacity > MaxCapacity {
		return fmt.Errorf("%w: registry.capacity must be between 1 and %d, got %d", ErrInvalidValue, MaxCapacity, c.Registry.Capacity)
	}
	if c.Encoding.Newline != "" && c.Encoding.Newline != NewlineLF && c.Encoding.Newline != NewlineCRLF {
		return fmt.Errorf("%w: encoding.newline %q (must be lf or crlf)", ErrInvalidValue, c.Encoding.Newline)
	}
	if !isIdentifier(c.Target.HostedMacro) {
		return fmt.Errorf("%w: target.hostedMacro %q is not a C identifier", ErrInvalidValue, c.Target.HostedMacro)
	}
	// The header lands inside #include "...".
	if c.Target.Header == "" || strings.ContainsAny(c.Target.Header, "\"\r\n") {
		return fmt.Errorf("%w: target.header %q", ErrInvalidValue, c.Target.Header)
	}
	return nil
}

func checkLength(l fieldLimit) error {
	if n := len(l.value); n > l.max {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, l.key, n, l.max)
	}
	return nil
}

// isIdentifier reports whether s is a valid C identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// DefaultConfig returns the configuration that reproduces legacy output.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{Capacity: DefaultCapacity},
		Target:   TargetConfig{HostedMacro: DefaultHostedMacro, Header: DefaultHeader},
		Encoding: EncodingConfig{Newline: NewlineLF},
	}
}

// LoadConfig reads the config named by nameOrPath. A value that looks like
// a path is read directly; a bare name is looked up in SearchPaths order.
// Keys absent from the file keep their DefaultConfig value. A missing file
// is an error, never a silent fallback to defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path, err := resolveConfigPath(nameOrPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-selected config
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

// configExtensions are tried in order for named configs.
var configExtensions = []string{".yaml", ".yml"}

// SearchPaths returns the candidate files LoadConfig tries for nameOrPath,
// in order: the path itself, or for a name the current directory and then
// <user config dir>/htmltoc/, each with .yaml and .yml.
func SearchPaths(nameOrPath string) []string {
	if fileutil.IsFilePath(nameOrPath) {
		return []string{nameOrPath}
	}

	paths := make([]string, 0, len(configExtensions)*2) // 2 locations
	for _, ext := range configExtensions {
		paths = append(paths, nameOrPath+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, nameOrPath+ext))
		}
	}
	return paths
}

// resolveConfigPath returns nameOrPath when it is a path, else the first
// existing candidate of SearchPaths.
func resolveConfigPath(nameOrPath string) (string, error) {
	if fileutil.IsFilePath(nameOrPath) {
		return nameOrPath, nil
	}
	candidates := SearchPaths(nameOrPath)
	for _, p := range candidates {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}
