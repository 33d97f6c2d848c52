package htmltoc

// Header literals prepended to every generated array.
//
// Text kinds carry the header as the C string literal source text, quotes
// and escapes included. The image header is the raw byte sequence because
// the binary encoder emits every header byte as its own hex literal.
const (
	markupHeader     = `"HTTP/1.1 200 OK\r\nContent-type: text/html\r\n\r\n"`
	stylesheetHeader = `"HTTP/1.1 200 OK\r\nContent-type: text/css\r\n\r\n"`
	imageHeader      = "HTTP/1.1 200 OK\r\nContent-type: image/png\r\n\r\n"
)

// headerEscapeOverhead is subtracted from the length of a text header
// literal to obtain its size contribution. The literal text carries two
// quotes and six escape backslashes that do not reach the array, while the
// array gains a terminating NUL. Kept as a constant to match legacy output.
const headerEscapeOverhead = 7

// Header returns the literal header for kind, or "" for KindUnknown.
func Header(kind Kind) string {
	switch kind {
	case KindMarkup:
		return markupHeader
	case KindStylesheet:
		return stylesheetHeader
	case KindImage:
		return imageHeader
	default:
		return ""
	}
}

// HeaderSize returns the number of bytes the header of kind adds to the
// generated array size.
func HeaderSize(kind Kind) int {
	h := Header(kind)
	switch {
	case h == "":
		return 0
	case kind.IsText():
		return len(h) - headerEscapeOverhead
	default:
		return len(h)
	}
}
