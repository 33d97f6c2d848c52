package main

import (
	"bytes"
	"errors"
	"fmt"

	htmltoc "github.com/alnah/go-htmltoc"
	"github.com/alnah/go-htmltoc/internal/highlight"
)

// Color modes for preview output.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// ErrInvalidColorMode is returned for an unknown --color value.
var ErrInvalidColorMode = errors.New("invalid color mode")

// runPreview prints the unit generate would write for one asset, without
// touching the filesystem.
func runPreview(args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return flagError(err)
	}
	if len(positional) != 1 {
		printPreviewUsage(env.Stdout)
		return nil
	}

	useColor, err := resolveColor(flags.color, env.Color)
	if err != nil {
		return err
	}

	nl, err := htmltoc.ParseNewline(flags.encoding.newline)
	if err != nil {
		return err
	}

	a := htmltoc.NewAsset(positional[0])
	u, err := htmltoc.EncodeAsset(a, flags.encoding.legacyEncoding)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Path, err)
	}

	var buf bytes.Buffer
	if err := htmltoc.EmitUnit(&buf, a, u, nl); err != nil {
		return err
	}

	if !useColor {
		_, err := env.Stdout.Write(buf.Bytes())
		return err
	}

	style := flags.style
	if style == "" {
		style = highlight.DefaultStyle
	}
	return highlight.C(env.Stdout, buf.String(), style)
}

// resolveColor decides whether to highlight, given the --color mode and
// whether stdout is a color terminal.
func resolveColor(mode string, terminal bool) (bool, error) {
	switch mode {
	case colorAuto, "":
		return terminal, nil
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q (must be auto, always or never)", ErrInvalidColorMode, mode)
	}
}
