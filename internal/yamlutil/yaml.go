// Package yamlutil holds the YAML rules shared by every htmltoc file:
// strict decoding with a size cap, and one output layout.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the documents UnmarshalStrict accepts.
const MaxInputSize = 1 << 20

var (
	ErrEmpty    = errors.New("yamlutil: empty document")
	ErrNoTarget = errors.New("yamlutil: nil decode target")
	ErrTooLarge = errors.New("yamlutil: document too large")
)

// strict rejects keys the target does not declare. Keys given twice are
// rejected by the decoder unless AllowDuplicateMapKey is passed.
var strict = []yaml.DecodeOption{yaml.Strict()}

// UnmarshalStrict decodes data into v under the strict rules. Decode errors
// are rendered with their line and column, without source excerpts.
func UnmarshalStrict(data []byte, v any) error {
	return unmarshalLimited(data, v, MaxInputSize)
}

func unmarshalLimited(data []byte, v any, limit int) error {
	switch {
	case len(data) == 0:
		return ErrEmpty
	case len(data) > limit:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), limit)
	case v == nil:
		return ErrNoTarget
	}

	if err := yaml.UnmarshalWithOptions(data, v, strict...); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, false))
	}
	return nil
}

// Marshal renders v with two-space indentation and indented sequences.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
