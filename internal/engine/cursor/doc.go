// Package cursor provides the logical cursor position for text editing.
//
// A Cursor is a (row, column) pair: row is a 0-based line index and column
// is a 0-based character offset within that line, not within the whole
// buffer. The column may sit one past the last character of the line, which
// is where typing appends.
//
// Cursor is an immutable value type. Operations return new cursors:
//
//	c := cursor.New(2, 10)
//	c = c.Clamp(4) // row 2, column 4
//
// Callers own the row invariant (0 <= row < line count); the cursor only
// knows how to keep its column within a line length it is given.
package cursor
