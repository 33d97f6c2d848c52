package htmltoc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Encoder turns asset content into an encoded unit.
type Encoder interface {
	Encode(kind Kind, r io.Reader) (*Unit, error)
}

// Newline is the line terminator written to generated files.
type Newline string

// Supported line terminators.
const (
	NewlineLF   Newline = "\n"
	NewlineCRLF Newline = "\r\n"
)

// ParseNewline maps "lf" and "crlf" to a Newline. Empty means lf.
func ParseNewline(s string) (Newline, error) {
	switch s {
	case "", "lf":
		return NewlineLF, nil
	case "crlf":
		return NewlineCRLF, nil
	default:
		return "", fmt.Errorf("%w: %q (must be lf or crlf)", ErrInvalidNewline, s)
	}
}

// encoderFor selects the encoder for kind. Unknown kinds have none.
func encoderFor(kind Kind, legacyNarrowing bool) Encoder {
	switch {
	case kind.IsText():
		return TextEncoder{LegacyNarrowing: legacyNarrowing}
	case kind == KindImage:
		return BinaryEncoder{}
	default:
		return nil
	}
}

// EncodeAsset reads the asset's source file and encodes it. Assets of
// unknown kind are not read and yield an empty unit of size zero.
func EncodeAsset(a Asset, legacyNarrowing bool) (*Unit, error) {
	enc := encoderFor(a.Kind, legacyNarrowing)
	if enc == nil {
		return &Unit{Kind: a.Kind}, nil
	}

	f, err := os.Open(a.Path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadAsset, err)
	}
	defer f.Close()

	return enc.Encode(a.Kind, f)
}

// EmitUnit writes the source unit declaring the asset's array followed by
// its length constant. The first fragment shares the declaration line;
// every fragment is terminated by newline.
func EmitUnit(w io.Writer, a Asset, u *Unit, newline Newline) error {
	bw := bufio.NewWriter(w)
	nl := string(newline)

	bw.WriteString("const char " + a.ArrayIdent() + "[] = ")
	for _, f := range u.Fragments {
		bw.WriteString(f)
		bw.WriteString(nl)
	}
	bw.WriteString(";" + nl)
	bw.WriteString("const int " + a.LengthIdent() + " = " + strconv.Itoa(u.Size) + ";" + nl)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteUnit, err)
	}
	return nil
}
