package assets

import (
	"errors"
	"fmt"
)

// Chain asks each source in order. A source that lacks a template passes
// the request on; any other error stops the search.
type Chain []Source

// NewChain returns the chain used by the generator: templates from dir,
// when set, ahead of the built-in ones.
func NewChain(dir string) (Chain, error) {
	if dir == "" {
		return Chain{Builtin{}}, nil
	}

	d, err := OpenDir(dir)
	if err != nil {
		return nil, err
	}
	return Chain{d, Builtin{}}, nil
}

// LoadTemplate returns the first source's template for name.
func (c Chain) LoadTemplate(name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}

	for _, src := range c {
		content, err := src.LoadTemplate(name)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

var _ Source = Chain(nil)
