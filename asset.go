package htmltoc

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind classifies an asset by how it is framed and encoded.
type Kind int

// Asset kinds.
const (
	KindUnknown    Kind = iota // no header, no body
	KindMarkup                 // .html, text encoded
	KindStylesheet             // .css, text encoded
	KindImage                  // .png, binary encoded
)

// Extensions recognized by KindForPath. Matching is case-sensitive.
const (
	ExtMarkup     = ".html"
	ExtStylesheet = ".css"
	ExtImage      = ".png"
)

// SupportedExtensions lists the extensions the converter picks up, in
// discovery order.
var SupportedExtensions = []string{ExtMarkup, ExtStylesheet, ExtImage}

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindMarkup:
		return "markup"
	case KindStylesheet:
		return "stylesheet"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// IsText reports whether the kind is emitted as string literals.
func (k Kind) IsText() bool {
	return k == KindMarkup || k == KindStylesheet
}

// KindForPath returns the kind implied by the file extension of path.
func KindForPath(path string) Kind {
	switch filepath.Ext(path) {
	case ExtMarkup:
		return KindMarkup
	case ExtStylesheet:
		return KindStylesheet
	case ExtImage:
		return KindImage
	default:
		return KindUnknown
	}
}

// Asset is one source file to embed. It is immutable once built.
type Asset struct {
	Path   string // source file path
	Kind   Kind
	Name   string // public HTTP path, always "/" + base name
	Symbol string // base name with dots replaced by underscores
}

// NewAsset derives the asset description for a source file path.
func NewAsset(path string) Asset {
	return Asset{
		Path:   path,
		Kind:   KindForPath(path),
		Name:   PublicName(path),
		Symbol: SymbolName(path),
	}
}

// PublicName returns the HTTP path under which the asset is registered.
func PublicName(path string) string {
	return "/" + filepath.Base(path)
}

// SymbolName returns the identifier fragment used for the asset's array
// and length symbols. Only dots are replaced; see ValidateSymbol.
func SymbolName(path string) string {
	return strings.ReplaceAll(filepath.Base(path), ".", "_")
}

// ArrayIdent returns the C identifier of the asset's byte array.
func (a Asset) ArrayIdent() string {
	return "www_" + a.Symbol + "_array"
}

// LengthIdent returns the C identifier of the asset's length constant.
func (a Asset) LengthIdent() string {
	return "www_" + a.Symbol + "_length"
}

// UnitFileName returns the base name of the generated source unit.
func (a Asset) UnitFileName() string {
	return a.Symbol + ".c"
}

// ValidateSymbol checks that the generated identifiers are valid C.
// Base names with characters other than letters, digits, dots and
// underscores still produce output, so this is advisory.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSymbol)
	}
	for _, r := range symbol {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		return fmt.Errorf("%w: %q contains %q", ErrInvalidSymbol, symbol, r)
	}
	return nil
}
