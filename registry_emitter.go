package htmltoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/alnah/go-htmltoc/internal/assets"
)

// Defaults for the generated webpages.c preamble.
const (
	DefaultHostedMacro  = "WIN32"
	DefaultTargetHeader = "esp_common.h"
)

// Generated registry file names.
const (
	DeclarationsFile = "webpages.h"
	DefinitionsFile  = "webpages.c"
)

// RegistrySettings parameterizes the generated registry sources.
type RegistrySettings struct {
	Capacity     int     // WWW_MAX_PAGES
	HostedMacro  string  // selects the hosted includes
	TargetHeader string  // included on the embedded target
	Newline      Newline // line terminator of the output
}

// DefaultRegistrySettings returns the settings matching legacy output.
func DefaultRegistrySettings() RegistrySettings {
	return RegistrySettings{
		Capacity:     DefaultCapacity,
		HostedMacro:  DefaultHostedMacro,
		TargetHeader: DefaultTargetHeader,
		Newline:      NewlineLF,
	}
}

// Validate checks the settings before any output is rendered.
func (s RegistrySettings) Validate() error {
	if err := ValidateCapacity(s.Capacity); err != nil {
		return err
	}
	if err := ValidateSymbol(s.HostedMacro); err != nil {
		return fmt.Errorf("%w: hosted macro: %v", ErrInvalidTarget, err)
	}
	if s.TargetHeader == "" || strings.ContainsAny(s.TargetHeader, "\"\r\n") {
		return fmt.Errorf("%w: target header %q", ErrInvalidTarget, s.TargetHeader)
	}
	if s.Newline != NewlineLF && s.Newline != NewlineCRLF {
		return fmt.Errorf("%w: %q", ErrInvalidNewline, s.Newline)
	}
	return nil
}

// registryData is the template context of both registry templates.
type registryData struct {
	Assets       []Asset
	Capacity     int
	HostedMacro  string
	TargetHeader string
}

// RegistryEmitter renders webpages.h and webpages.c.
type RegistryEmitter struct {
	declarations *template.Template
	definitions  *template.Template
}

// NewRegistryEmitter parses the registry templates provided by loader.
// A nil loader uses the built-in templates.
func NewRegistryEmitter(loader AssetLoader) (*RegistryEmitter, error) {
	if loader == nil {
		loader = assets.Builtin{}
	}

	decl, err := parseTemplate(loader, assets.DeclarationsTemplate)
	if err != nil {
		return nil, err
	}
	def, err := parseTemplate(loader, assets.DefinitionsTemplate)
	if err != nil {
		return nil, err
	}

	return &RegistryEmitter{declarations: decl, definitions: def}, nil
}

func parseTemplate(loader AssetLoader, name string) (*template.Template, error) {
	content, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s template: %v", ErrInvalidTemplate, name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s template: %v", ErrInvalidTemplate, name, err)
	}
	return tmpl, nil
}

// WriteDeclarations writes webpages.h for assets to w.
func (e *RegistryEmitter) WriteDeclarations(w io.Writer, list []Asset, s RegistrySettings) error {
	return e.render(w, e.declarations, list, s)
}

// WriteDefinitions writes webpages.c for assets to w. The init function
// registers the assets in the order given.
func (e *RegistryEmitter) WriteDefinitions(w io.Writer, list []Asset, s RegistrySettings) error {
	return e.render(w, e.definitions, list, s)
}

func (e *RegistryEmitter) render(w io.Writer, tmpl *template.Template, list []Asset, s RegistrySettings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	data := registryData{
		Assets:       list,
		Capacity:     s.Capacity,
		HostedMacro:  s.HostedMacro,
		TargetHeader: s.TargetHeader,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteRegistry, tmpl.Name(), err)
	}

	out := buf.Bytes()
	if s.Newline == NewlineCRLF {
		out = toCRLF(out)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteRegistry, err)
	}
	return nil
}

// toCRLF rewrites bare "\n" terminators as "\r\n".
func toCRLF(b []byte) []byte {
	out := make([]byte, 0, len(b)+bytes.Count(b, []byte{'\n'}))
	for i, c := range b {
		if c == '\n' && (i == 0 || b[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, c)
	}
	return out
}

// WriteDeclarations writes webpages.h using the built-in template.
func WriteDeclarations(w io.Writer, list []Asset, s RegistrySettings) error {
	e, err := NewRegistryEmitter(nil)
	if err != nil {
		return err
	}
	return e.WriteDeclarations(w, list, s)
}

// WriteDefinitions writes webpages.c using the built-in template.
func WriteDefinitions(w io.Writer, list []Asset, s RegistrySettings) error {
	e, err := NewRegistryEmitter(nil)
	if err != nil {
		return err
	}
	return e.WriteDefinitions(w, list, s)
}
