package htmltoc

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadAsset         = errors.New("failed to read asset")
	ErrWriteUnit         = errors.New("failed to write source unit")
	ErrWriteRegistry     = errors.New("failed to write page registry")
	ErrCreateDestination = errors.New("failed to create destination directory")

	// Registry errors.
	ErrRegistryFull    = errors.New("page registry is full")
	ErrInvalidCapacity = errors.New("invalid registry capacity")

	// Naming errors.
	ErrInvalidSymbol = errors.New("asset name is not a valid C identifier")

	// Decoding errors.
	ErrMalformedLiteral = errors.New("malformed source literal")

	// Option validation errors.
	ErrInvalidNewline      = errors.New("invalid newline style")
	ErrInvalidTemplate     = errors.New("invalid registry template")
	ErrTemplateNotFound    = errors.New("registry template not found")
	ErrInvalidTemplatePath = errors.New("invalid template path")
	ErrInvalidTarget       = errors.New("invalid target settings")
)
