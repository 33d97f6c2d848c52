package main

import (
	"io"
	"os"

	"github.com/gookit/color"
)

// Environment holds injectable dependencies for testability.
// Includes I/O and terminal capabilities.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Color  bool // Stdout is a color-capable terminal
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Color:  isColorTerminal(os.Stdout),
	}
}

// isColorTerminal reports whether f is a character device whose terminal
// advertises color support.
func isColorTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	return color.SupportColor()
}
