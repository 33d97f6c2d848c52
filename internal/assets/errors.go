package assets

import "errors"

// Sentinel errors for template loading.
var (
	ErrNotFound    = errors.New("template not found")
	ErrUnknownName = errors.New("unknown template name")
	ErrBadDir      = errors.New("invalid template directory")
	ErrRead        = errors.New("failed to read template")
	ErrEscape      = errors.New("template resolves outside its directory")
)
