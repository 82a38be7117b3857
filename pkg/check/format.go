package check

import (
	"fmt"
	"io"
)

// BufferSize is the fixed capacity of one rendered diagnostic.
const BufferSize = 512

// Emit renders a location-prefixed diagnostic into a buffer of at most
// BufferSize bytes and writes it to w in a single call. An oversized render
// is cut at BufferSize with the final four bytes forced to "...\n": three
// marker characters before the trailing newline, so truncation is visible
// instead of a silent mid-token cut.
func Emit(w io.Writer, loc, format string, args ...interface{}) (int, error) {
	return w.Write(Render(loc, format, args...))
}

// Render produces the bounded diagnostic bytes without writing them.
func Render(loc, format string, args ...interface{}) []byte {
	text := fmt.Sprintf("%s: %s", loc, fmt.Sprintf(format, args...))
	b := []byte(text)
	if len(b) > BufferSize {
		b = b[:BufferSize]
		copy(b[BufferSize-4:], "...\n")
	}
	return b
}
