// Package charset reproduces the lossy 8-bit narrowing that legacy
// generators applied to text assets before emitting them.
//
// Each character is first encoded with the Windows-1252 code page and the
// resulting byte is then read back as 7-bit ASCII. Characters without a
// code page mapping, and code page bytes above 0x7F, both become '?'.
// Characters outside the Basic Multilingual Plane occupied two UTF-16 code
// units in the legacy pipeline and therefore become "??".
//
// The legacy encoder also applied a best-fit fallback before giving up, so
// some unmapped letters came out as a look-alike (ł as l). No best-fit
// table is applied here: such characters become '?', and output differs
// from the legacy generator for them.
package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Replacement is written for every character that does not survive narrowing.
const Replacement = '?'

// maxBMP is the last code point encoded as a single UTF-16 code unit.
const maxBMP = 0xFFFF

// codePage is the 8-bit code page of the legacy build hosts.
var codePage = charmap.Windows1252

// Narrow returns s reduced to 7-bit ASCII. Invalid UTF-8 bytes are
// replaced one for one.
func Narrow(s string) string {
	if isASCII(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteByte(byte(r))
			continue
		}
		if r > maxBMP {
			b.WriteByte(Replacement)
			b.WriteByte(Replacement)
			continue
		}
		c, ok := codePage.EncodeRune(r)
		if !ok || c >= utf8.RuneSelf {
			c = Replacement
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
