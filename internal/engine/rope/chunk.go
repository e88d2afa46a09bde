package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
// Sizes are measured in bytes; chunk boundaries always fall on rune starts.
const (
	// MinChunkSize is the preferred lower bound for a chunk built from bulk text.
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk represents a bounded string stored in leaf nodes.
// Chunks are immutable once created.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the character count of the chunk.
func (c Chunk) Len() int {
	return c.summary.Chars
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// byteIndex converts a character offset within the chunk to a byte index.
func (c Chunk) byteIndex(char int) int {
	if char <= 0 {
		return 0
	}
	if char >= c.summary.Chars {
		return len(c.data)
	}
	if c.summary.IsASCII() {
		return char
	}
	n := 0
	for i := range c.data {
		if n == char {
			return i
		}
		n++
	}
	return len(c.data)
}

// Split splits a chunk at a character offset, returning two chunks.
func (c Chunk) Split(char int) (Chunk, Chunk) {
	if char <= 0 {
		return Chunk{}, c
	}
	if char >= c.summary.Chars {
		return c, Chunk{}
	}
	i := c.byteIndex(char)
	return NewChunk(c.data[:i]), NewChunk(c.data[i:])
}

// Slice returns the text in the character range [start, end).
func (c Chunk) Slice(start, end int) string {
	if start >= end {
		return ""
	}
	return c.data[c.byteIndex(start):c.byteIndex(end)]
}

// offsetAfterNewline returns the character offset just past the n-th
// newline (1-indexed) in the chunk, or -1 if the chunk has fewer newlines.
func (c Chunk) offsetAfterNewline(n int) int {
	if n <= 0 || n > c.summary.Lines {
		return -1
	}
	chars := 0
	seen := 0
	for _, r := range c.data {
		chars++
		if r == '\n' {
			seen++
			if seen == n {
				return chars
			}
		}
	}
	return -1
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}
		split := findSplitPoint(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:split]))
		remaining = remaining[split:]
	}
	return chunks
}

// findSplitPoint finds a rune boundary near target, preferring the byte
// just after a newline when one is close by.
func findSplitPoint(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !utf8.RuneStart(s[pos]) {
			pos++
		}
	}
	return pos
}
