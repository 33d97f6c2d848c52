package main

import (
	"errors"
	"os"

	htmltoc "github.com/alnah/go-htmltoc"
	"github.com/alnah/go-htmltoc/internal/config"
)

// Exit codes of the htmltoc CLI. Codes above 2 are htmltoc specific.
const (
	ExitSuccess = 0
	ExitGeneral = 1 // unexpected failure
	ExitUsage   = 2 // bad flags, config or templates
	ExitIO      = 3 // unreadable source, unwritable destination, --strict failures
)

// exitClasses maps sentinel errors to exit codes. The first class with a
// match wins, so I/O causes take precedence over usage causes.
var exitClasses = []struct {
	code   int
	causes []error
}{
	{ExitIO, []error{
		os.ErrNotExist,
		os.ErrPermission,
		ErrNoInput,
		ErrNotDirectory,
		ErrAssetsFailed,
		htmltoc.ErrReadAsset,
		htmltoc.ErrWriteUnit,
		htmltoc.ErrWriteRegistry,
		htmltoc.ErrCreateDestination,
	}},
	{ExitUsage, []error{
		ErrUsage,
		ErrUnsupportedShell,
		ErrInvalidColorMode,
		config.ErrConfigNotFound,
		config.ErrConfigParse,
		config.ErrFieldTooLong,
		config.ErrInvalidValue,
		htmltoc.ErrInvalidCapacity,
		htmltoc.ErrInvalidNewline,
		htmltoc.ErrInvalidTarget,
		htmltoc.ErrInvalidTemplate,
		htmltoc.ErrTemplateNotFound,
		htmltoc.ErrInvalidTemplatePath,
	}},
}

// exitCodeFor classifies err. Errors must be wrapped with %w to be
// recognized.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	for _, class := range exitClasses {
		for _, cause := range class.causes {
			if errors.Is(err, cause) {
				return class.code
			}
		}
	}
	return ExitGeneral
}
