package assets

// Source loads registry templates by name.
type Source interface {
	// LoadTemplate returns the template text for name (without .tmpl).
	// Returns ErrNotFound if the source lacks it and ErrUnknownName if
	// name is not a registry template.
	LoadTemplate(name string) (string, error)
}
