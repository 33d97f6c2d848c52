package htmltoc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// BytesPerLine is the number of body bytes per generated fragment.
const BytesPerLine = 32

const hexDigits = "0123456789abcdef"

// BinaryEncoder encodes images as a brace-enclosed list of hex byte
// literals. Header bytes share one fragment; body bytes are wrapped at
// BytesPerLine per fragment.
type BinaryEncoder struct{}

// Encode streams r and returns the encoded unit.
func (BinaryEncoder) Encode(kind Kind, r io.Reader) (*Unit, error) {
	u := &Unit{Kind: kind, Fragments: []string{"{"}}

	header := Header(kind)
	var line strings.Builder
	line.WriteByte('\t')
	for i := 0; i < len(header); i++ {
		appendHexByte(&line, header[i])
		u.Size++
	}
	u.Fragments = append(u.Fragments, line.String())

	br := bufio.NewReader(r)
	line.Reset()
	count := 0
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadAsset, err)
		}
		if count == BytesPerLine {
			u.Fragments = append(u.Fragments, "\t"+line.String())
			line.Reset()
			count = 0
		}
		appendHexByte(&line, b)
		u.Size++
		count++
	}
	if count > 0 {
		u.Fragments = append(u.Fragments, "\t"+line.String())
	}

	u.Fragments = append(u.Fragments, "}")
	return u, nil
}

// appendHexByte writes b as "0xhh, ".
func appendHexByte(sb *strings.Builder, b byte) {
	sb.WriteString("0x")
	sb.WriteByte(hexDigits[b>>4])
	sb.WriteByte(hexDigits[b&0x0f])
	sb.WriteString(", ")
}

// Compile-time interface check.
var _ Encoder = BinaryEncoder{}
