package htmltoc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-htmltoc/internal/charset"
)

// maxLineSize bounds a single text line. Generated literals longer than
// this would exceed what embedded toolchains accept anyway.
const maxLineSize = 16 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextEncoder encodes markup and stylesheets as one quoted string literal
// per source line, prefixed with the header literal.
type TextEncoder struct {
	// LegacyNarrowing maps every line through the 8-bit code page and then
	// to 7-bit ASCII before escaping. Off means input is taken as is.
	LegacyNarrowing bool
}

// Encode reads r line by line and returns the encoded unit.
// Only double quotes are escaped; backslashes are copied verbatim, so a
// line ending in an odd number of backslashes yields an invalid literal.
func (e TextEncoder) Encode(kind Kind, r io.Reader) (*Unit, error) {
	u := &Unit{Kind: kind}
	if h := Header(kind); h != "" {
		u.Fragments = append(u.Fragments, h)
		u.Size += HeaderSize(kind)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanLines)

	first := true
	for sc.Scan() {
		line := sc.Bytes()
		if first {
			line = bytes.TrimPrefix(line, utf8BOM)
			first = false
		}

		text := string(line)
		if e.LegacyNarrowing {
			text = charset.Narrow(text)
		}

		quotes := strings.Count(text, `"`)
		escaped := strings.ReplaceAll(text, `"`, `\"`)
		u.Size += len(escaped) - quotes + 1
		u.Fragments = append(u.Fragments, "\t\""+escaped+`\n"`)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadAsset, err)
	}

	return u, nil
}

// scanLines splits on "\n", "\r\n" and a lone "\r". A terminator at the end
// of input does not produce a trailing empty line.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r': need one more byte to tell "\r\n" from a lone "\r".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Compile-time interface check.
var _ Encoder = TextEncoder{}
