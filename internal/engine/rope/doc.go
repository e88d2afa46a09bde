// Package rope provides an immutable rope data structure for text storage.
//
// A rope is a balanced tree whose leaves hold bounded text chunks and whose
// internal nodes cache aggregated metrics (characters, bytes, newlines) for
// their subtree. Every position in the public API is a character (rune)
// offset, never a byte offset.
//
// Key properties:
//   - O(log n) insertion, deletion and line-start lookup
//   - Operations return new ropes; the original is never modified
//   - Concatenation and splitting rebuild only the affected spine, and
//     adjacent small chunks are merged at join points
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")       // "hello, world"
//	r = r.Delete(0, 7)         // "world"
//	start := r.LineStart(0)    // 0
//
// Text stored in a rope must be valid UTF-8; callers that accept arbitrary
// input are expected to sanitize it first.
package rope
