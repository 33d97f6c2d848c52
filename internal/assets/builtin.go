package assets

import (
	"embed"
	"fmt"
)

//go:embed templates/*.tmpl
var builtinFS embed.FS

// Builtin serves the templates compiled into the binary.
type Builtin struct{}

// LoadTemplate returns the built-in template for name.
func (Builtin) LoadTemplate(name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}

	content, err := builtinFS.ReadFile("templates/" + fileName(name))
	if err != nil {
		return "", fmt.Errorf("%w: built-in %q", ErrNotFound, name)
	}
	return string(content), nil
}

var _ Source = Builtin{}
