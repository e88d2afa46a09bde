package cursor

import "fmt"

// Cursor represents an insertion point in the buffer.
type Cursor struct {
	row int
	col int
}

// New creates a cursor at the given position. Negative coordinates clamp to 0.
func New(row, col int) Cursor {
	return Cursor{row: max(row, 0), col: max(col, 0)}
}

// Row returns the cursor's line index.
func (c Cursor) Row() int {
	return c.row
}

// Col returns the cursor's character offset within its line.
func (c Cursor) Col() int {
	return c.col
}

// MoveTo returns a new cursor at the given position.
func (c Cursor) MoveTo(row, col int) Cursor {
	return New(row, col)
}

// WithCol returns a cursor on the same row at the given column.
func (c Cursor) WithCol(col int) Cursor {
	return New(c.row, col)
}

// Clamp returns a cursor whose column does not exceed lineLen.
// The row is never changed.
func (c Cursor) Clamp(lineLen int) Cursor {
	lineLen = max(lineLen, 0)
	if c.col > lineLen {
		return Cursor{row: c.row, col: lineLen}
	}
	return c
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d)", c.row, c.col)
}

// Equals returns true if two cursors are at the same position.
func (c Cursor) Equals(other Cursor) bool {
	return c == other
}

// Compare returns -1 if c < other, 0 if c == other, 1 if c > other,
// ordering by row and then column.
func (c Cursor) Compare(other Cursor) int {
	switch {
	case c.row < other.row:
		return -1
	case c.row > other.row:
		return 1
	case c.col < other.col:
		return -1
	case c.col > other.col:
		return 1
	}
	return 0
}

// Before returns true if c is before other.
func (c Cursor) Before(other Cursor) bool {
	return c.Compare(other) < 0
}

// After returns true if c is after other.
func (c Cursor) After(other Cursor) bool {
	return c.Compare(other) > 0
}
