package htmltoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the encoded form of one asset: the literal fragments that make up
// the array initializer, in order, and the byte size of the array.
type Unit struct {
	Kind      Kind
	Fragments []string
	Size      int
}

// Bytes evaluates the fragments the way a C compiler evaluates the array
// initializer. Text units yield the concatenated string literals plus the
// terminating NUL; image units yield the listed bytes.
func (u *Unit) Bytes() ([]byte, error) {
	switch {
	case u.Kind.IsText():
		return decodeStringFragments(u.Fragments)
	case u.Kind == KindImage:
		return decodeByteFragments(u.Fragments)
	default:
		return nil, nil
	}
}

func decodeStringFragments(fragments []string) ([]byte, error) {
	var out []byte
	for i, f := range fragments {
		lit := strings.TrimLeft(f, "\t ")
		if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
			return nil, fmt.Errorf("%w: fragment %d is not a string literal", ErrMalformedLiteral, i)
		}
		decoded, err := unescapeC(lit[1 : len(lit)-1])
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", i, err)
		}
		out = append(out, decoded...)
	}
	return append(out, 0), nil
}

func decodeByteFragments(fragments []string) ([]byte, error) {
	if len(fragments) < 2 || fragments[0] != "{" || fragments[len(fragments)-1] != "}" {
		return nil, fmt.Errorf("%w: byte list is not brace enclosed", ErrMalformedLiteral)
	}
	var out []byte
	for i, f := range fragments[1 : len(fragments)-1] {
		for _, tok := range strings.Split(f, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseUint(tok, 0, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: fragment %d: %v", ErrMalformedLiteral, i+1, err)
			}
			out = append(out, byte(v))
		}
	}
	return out, nil
}

// unescapeC decodes the body of a C string literal. Unknown escapes decode
// to the escaped character, as most compilers do after a warning.
func unescapeC(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(s) {
			return nil, fmt.Errorf("%w: dangling backslash", ErrMalformedLiteral)
		}
		switch e := s[i]; e {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'v':
			out = append(out, '\v')
		case 'x':
			j := i + 1
			for j < len(s) && isHexDigit(s[j]) {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("%w: \\x without hex digits", ErrMalformedLiteral)
			}
			v, err := strconv.ParseUint(s[i+1:j], 16, 64)
			if err != nil || v > 0xff {
				return nil, fmt.Errorf("%w: hex escape out of range", ErrMalformedLiteral)
			}
			out = append(out, byte(v))
			i = j - 1
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 16)
			if v > 0xff {
				return nil, fmt.Errorf("%w: octal escape out of range", ErrMalformedLiteral)
			}
			out = append(out, byte(v))
			i = j - 1
		default:
			out = append(out, e)
		}
	}
	return out, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
