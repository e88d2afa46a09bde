package rope

import "unicode/utf8"

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add, which lets internal nodes cache the
// totals of their subtree.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the character (rune) count.
	Chars int

	// Lines is the number of newline characters.
	Lines int
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
	}
}

// IsZero returns true if this is the empty summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// IsASCII reports whether every character in the span is a single byte.
func (s TextSummary) IsASCII() bool {
	return s.Bytes == s.Chars
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{
		Bytes: len(s),
		Chars: utf8.RuneCountInString(s),
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			sum.Lines++
		}
	}
	return sum
}
