// Package engine provides the core text editor engine for x5.
//
// The engine combines a text buffer, a logical cursor and a viewport into
// a single editing state. It is the only component that mutates any of
// them: callers submit decoded commands through Apply and read the result
// through accessor methods.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: B+ tree rope for character-indexed text storage
//   - buffer: line-oriented insert/remove over the rope
//   - cursor: immutable (row, column) position
//   - renderer/viewport: scroll offset and terminal size
//
// # Basic Usage
//
//	e := engine.New(engine.WithViewport(80, 24))
//	_ = e.Apply(engine.InsertChar('a'))
//	_ = e.Apply(engine.InsertChar('b'))
//	_ = e.Apply(engine.Newline)
//	_ = e.Apply(engine.InsertChar('c'))
//
//	e.Text()   // "ab\nc"
//	e.Cursor() // row 1, column 1
//
// # Commands
//
// Motions at the edge of the buffer and Backspace at its start are no-ops.
// After every command the cursor column is clamped to its line and the
// viewport scrolls the minimal amount needed to keep the cursor row on
// screen.
//
// # Soft Wrap
//
// When an inserted character advances the column to the wrap limit, a
// newline is inserted right after it and the cursor moves to the start of
// the next row. The limit is read at keystroke time; existing lines are
// never reflowed. A wrap width of 0 uses the viewport width and a negative
// wrap width disables wrapping.
//
// # Thread Safety
//
// An Engine is owned by a single goroutine and does no locking.
package engine
