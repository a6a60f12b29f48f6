// Package proto implements the wire protocol: framing a raw byte
// stream into lines, and parsing lines into typed commands.
//
// Both halves are pure with respect to session state — a Framer only
// owns its private tail buffer and Parse owns nothing at all.
package proto

import (
	"bytes"
	"strings"

	"chatrelay/internal/errors"
)

// ErrLineTooLong is returned by Feed when the buffered tail exceeds
// the configured limit.  Callers should treat it as the client's
// protocol fault and fail the connection.
var ErrLineTooLong = errors.New("line exceeds maximum length")

// Framer converts arbitrarily-chunked bytes into complete
// newline-delimited lines, one instance per connection.
type Framer struct {
	tail    []byte
	maxLine int // 0 or negative = unbounded
}

// NewFramer returns a Framer whose buffered tail may grow to at most
// maxLine bytes.  A non-positive maxLine disables the cap.
func NewFramer(maxLine int) *Framer {
	return &Framer{maxLine: maxLine}
}

// Feed appends chunk to the buffered tail and returns every complete
// line that results, in order.  Lines are trimmed of surrounding
// whitespace (which also swallows \r from CRLF peers); lines that trim
// to nothing are dropped.  The final fragment after the last newline
// is retained as the new tail.
//
// No byte is ever lost or delivered twice, regardless of how the
// stream is chunked.
func (f *Framer) Feed(chunk []byte) ([]string, error) {
	f.tail = append(f.tail, chunk...)

	var lines []string
	for {
		i := bytes.IndexByte(f.tail, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(f.tail[:i]))
		f.tail = f.tail[i+1:]
		if line != "" {
			lines = append(lines, line)
		}
	}

	if f.maxLine > 0 && len(f.tail) > f.maxLine {
		f.tail = nil
		return lines, ErrLineTooLong
	}
	return lines, nil
}

// Pending returns the number of buffered tail bytes (for tests and
// diagnostics).
func (f *Framer) Pending() int { return len(f.tail) }
