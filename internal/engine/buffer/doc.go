// Package buffer provides the editable text buffer built on top of the rope
// data structure. It serves as the primary interface for text manipulation
// in the editor engine.
//
// All positions are character (rune) offsets. The buffer always contains at
// least one line: an empty buffer is a single zero-length line, and a
// trailing newline is ordinary content that is never added or stripped.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	_ = buf.Insert(5, '!')                         // "Hello!, World!"
//	_ = buf.Remove(buffer.Range{Start: 0, End: 7}) // " World!"
//	line, _ := buf.Line(0)
//
// Operations that receive an offset or line index outside the buffer fail
// with an error wrapping ErrOutOfBounds. A Buffer is owned by a single
// goroutine and does no locking of its own.
package buffer
