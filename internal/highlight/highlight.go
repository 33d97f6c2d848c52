// Package highlight renders generated C source with terminal colors.
package highlight

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// terminalFormatter emits 256-color ANSI sequences.
const terminalFormatter = "terminal256"

// C writes src to w highlighted as C. Unknown style names fall back to
// chroma's default style.
func C(w io.Writer, src, style string) error {
	lexer := lexers.Get("c")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get(terminalFormatter)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return fmt.Errorf("tokenizing C source: %w", err)
	}

	if err := formatter.Format(w, styles.Get(style), iterator); err != nil {
		return fmt.Errorf("formatting C source: %w", err)
	}
	return nil
}
