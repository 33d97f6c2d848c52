package assets

import "fmt"

// Template names.
const (
	DeclarationsTemplate = "declarations" // webpages.h
	DefinitionsTemplate  = "definitions"  // webpages.c
)

// templateExt is appended to template names to form file names.
const templateExt = ".tmpl"

// TemplateNames returns the names of all registry templates, in render order.
func TemplateNames() []string {
	return []string{DeclarationsTemplate, DefinitionsTemplate}
}

// CheckName returns ErrUnknownName unless name is one of TemplateNames.
// Sources call it before touching storage, so a name can never carry a
// path.
func CheckName(name string) error {
	for _, known := range TemplateNames() {
		if name == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// fileName returns the file holding template name.
func fileName(name string) string {
	return name + templateExt
}
