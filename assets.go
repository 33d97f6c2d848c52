package htmltoc

import (
	"errors"
	"fmt"

	"github.com/alnah/go-htmltoc/internal/assets"
)

// Template names accepted by AssetLoader.LoadTemplate.
const (
	DeclarationsTemplate = assets.DeclarationsTemplate // webpages.h
	DefinitionsTemplate  = assets.DefinitionsTemplate  // webpages.c
)

// AssetLoader supplies the registry templates by name.
//
// Templates are text/template sources executed with the fields Assets
// (each with Name, ArrayIdent and LengthIdent), Capacity, HostedMacro and
// TargetHeader. A loader returns ErrTemplateNotFound for names it does not
// know.
type AssetLoader interface {
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader returns a loader reading {dir}/{name}.tmpl first and the
// built-in templates otherwise. An empty dir selects the built-ins only.
// A dir that is not a readable directory yields ErrInvalidTemplatePath.
func NewAssetLoader(dir string) (AssetLoader, error) {
	chain, err := assets.NewChain(dir)
	if err != nil {
		return nil, publicAssetError(err)
	}
	return chainLoader{chain: chain}, nil
}

// chainLoader exposes an internal source chain with public sentinels.
type chainLoader struct {
	chain assets.Chain
}

func (l chainLoader) LoadTemplate(name string) (string, error) {
	content, err := l.chain.LoadTemplate(name)
	if err != nil {
		return "", publicAssetError(err)
	}
	return content, nil
}

// publicAssetError tags an internal assets error with the matching public
// sentinel. Both stay reachable through errors.Is.
func publicAssetError(err error) error {
	switch {
	case errors.Is(err, assets.ErrNotFound), errors.Is(err, assets.ErrUnknownName):
		return fmt.Errorf("%w: %w", ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrBadDir), errors.Is(err, assets.ErrEscape):
		return fmt.Errorf("%w: %w", ErrInvalidTemplatePath, err)
	default:
		return err
	}
}

var (
	_ AssetLoader   = chainLoader{}
	_ assets.Source = AssetLoader(nil)
)
