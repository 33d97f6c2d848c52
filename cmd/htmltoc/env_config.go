package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-htmltoc/internal/config"
)

// envPrefix marks environment variables read by htmltoc.
const envPrefix = "HTMLTOC_"

// envConfig holds configuration from environment variables.
// Provides build-script-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // HTMLTOC_CONFIG: config file name or path
	InputDir       string // HTMLTOC_INPUT_DIR: default source directory
	OutputDir      string // HTMLTOC_OUTPUT_DIR: default destination directory
	Capacity       int    // HTMLTOC_CAPACITY: WWW_MAX_PAGES (0 = unset)
	Newline        string // HTMLTOC_NEWLINE: lf or crlf
	LegacyEncoding *bool  // HTMLTOC_LEGACY_ENCODING: 8-bit narrowing of text assets
	TemplatePath   string // HTMLTOC_TEMPLATE_PATH: registry template directory
	CheckLinks     *bool  // HTMLTOC_CHECK_LINKS: broken reference warnings
}

// knownEnvVars lists valid HTMLTOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTMLTOC_CONFIG":          true,
	"HTMLTOC_INPUT_DIR":       true,
	"HTMLTOC_OUTPUT_DIR":      true,
	"HTMLTOC_CAPACITY":        true,
	"HTMLTOC_NEWLINE":         true,
	"HTMLTOC_LEGACY_ENCODING": true,
	"HTMLTOC_TEMPLATE_PATH":   true,
	"HTMLTOC_CHECK_LINKS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numeric and boolean values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("HTMLTOC_CONFIG"),
		InputDir:     os.Getenv("HTMLTOC_INPUT_DIR"),
		OutputDir:    os.Getenv("HTMLTOC_OUTPUT_DIR"),
		Newline:      strings.ToLower(os.Getenv("HTMLTOC_NEWLINE")),
		TemplatePath: os.Getenv("HTMLTOC_TEMPLATE_PATH"),
	}

	if v := os.Getenv("HTMLTOC_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Capacity = n
		}
	}

	cfg.LegacyEncoding = envBool("HTMLTOC_LEGACY_ENCODING")
	cfg.CheckLinks = envBool("HTMLTOC_CHECK_LINKS")

	return cfg
}

// envBool returns the parsed value of name, or nil when it is unset or
// not a boolean.
func envBool(name string) *bool {
	b, err := strconv.ParseBool(os.Getenv(name))
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars writes a warning for every unrecognized HTMLTOC_*
// variable, e.g. HTMLTOC_CAPACITIES instead of HTMLTOC_CAPACITY.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment variables over cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Capacity > 0 {
		cfg.Registry.Capacity = env.Capacity
	}
	if env.Newline != "" {
		cfg.Encoding.Newline = env.Newline
	}
	if env.LegacyEncoding != nil {
		cfg.Encoding.LegacyNarrowing = *env.LegacyEncoding
	}
	if env.TemplatePath != "" {
		cfg.Templates.Path = env.TemplatePath
	}
	if env.CheckLinks != nil {
		cfg.Check.Links = *env.CheckLinks
	}
}
