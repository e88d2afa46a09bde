package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dshills/x5/internal/engine/rope"
)

// ErrOutOfBounds is returned when an offset, range or line index lies
// outside the buffer.
var ErrOutOfBounds = errors.New("out of bounds")

// Buffer wraps a Rope with line-oriented editing operations.
type Buffer struct {
	rope     rope.Rope
	revision uint64
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{rope: rope.New()}
}

// NewBufferFromString creates a buffer with initial content.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{rope: rope.FromString(strings.ToValidUTF8(s, "�"))}
}

// NewBufferFromReader creates a buffer by streaming r into a rope.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	rp, err := rope.FromReader(r)
	if err != nil {
		return nil, err
	}
	return &Buffer{rope: rp}, nil
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// WriteTo writes the buffer content to w. It implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.rope.WriteTo(w)
}

// CharCount returns the total number of characters.
func (b *Buffer) CharCount() int {
	return b.rope.Len()
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// Revision returns a counter that increases with every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Line returns the text of a line, excluding its terminating newline.
func (b *Buffer) Line(index int) (string, error) {
	if err := b.checkLine(index); err != nil {
		return "", err
	}
	return b.rope.LineText(index), nil
}

// LineToOffset returns the character offset where the line begins.
func (b *Buffer) LineToOffset(index int) (int, error) {
	if err := b.checkLine(index); err != nil {
		return 0, err
	}
	return b.rope.LineStart(index), nil
}

// LineLen returns the character count of a line, excluding its newline.
func (b *Buffer) LineLen(index int) (int, error) {
	if err := b.checkLine(index); err != nil {
		return 0, err
	}
	return b.rope.LineLen(index), nil
}

func (b *Buffer) checkLine(index int) error {
	if index < 0 || index >= b.rope.LineCount() {
		return fmt.Errorf("%w: line %d of %d", ErrOutOfBounds, index, b.rope.LineCount())
	}
	return nil
}

// Write Operations

// Insert inserts one character at the given offset. Invalid runes are
// stored as U+FFFD.
func (b *Buffer) Insert(offset int, ch rune) error {
	if offset < 0 || offset > b.rope.Len() {
		return fmt.Errorf("%w: offset %d of %d", ErrOutOfBounds, offset, b.rope.Len())
	}
	if !utf8.ValidRune(ch) {
		ch = utf8.RuneError
	}
	b.rope = b.rope.Insert(offset, string(ch))
	b.revision++
	return nil
}

// Remove deletes the characters in the half-open range.
// An empty range inside the buffer is a no-op.
func (b *Buffer) Remove(r Range) error {
	if !r.IsValid() || r.Start < 0 || r.End > b.rope.Len() {
		return fmt.Errorf("%w: range %s of %d", ErrOutOfBounds, r, b.rope.Len())
	}
	if r.IsEmpty() {
		return nil
	}
	b.rope = b.rope.Delete(r.Start, r.End)
	b.revision++
	return nil
}
