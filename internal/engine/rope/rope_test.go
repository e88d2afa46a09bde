package rope

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"testing/quick"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	r := New()
	if r.Len() != 0 {
		t.Errorf("New rope should have length 0, got %d", r.Len())
	}
	if !r.IsEmpty() {
		t.Error("New rope should be empty")
	}
	if r.String() != "" {
		t.Errorf("New rope String() should be empty, got %q", r.String())
	}
	if r.LineCount() != 1 {
		t.Errorf("New rope should have 1 line, got %d", r.LineCount())
	}
}

func TestZeroValue(t *testing.T) {
	var r Rope
	if r.Len() != 0 || r.LineCount() != 1 || r.String() != "" {
		t.Fatalf("zero rope: len=%d lines=%d text=%q", r.Len(), r.LineCount(), r.String())
	}
	r = r.Insert(0, "ok")
	if r.String() != "ok" {
		t.Errorf("insert into zero rope = %q", r.String())
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single char", "a"},
		{"short string", "hello"},
		{"with newline", "hello\nworld"},
		{"multiple newlines", "a\nb\nc\nd"},
		{"unicode", "hello 世界 🌍"},
		{"long string", strings.Repeat("abcdefghij", 100)},
		{"very long string", strings.Repeat("x", 10000)},
		{"long unicode", strings.Repeat("日本語ü\n", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.input)
			if r.String() != tt.input {
				t.Errorf("String() = %q, want %q", r.String(), tt.input)
			}
			if want := utf8.RuneCountInString(tt.input); r.Len() != want {
				t.Errorf("Len() = %d, want %d", r.Len(), want)
			}
			if r.ByteLen() != len(tt.input) {
				t.Errorf("ByteLen() = %d, want %d", r.ByteLen(), len(tt.input))
			}
			if want := strings.Count(tt.input, "\n") + 1; r.LineCount() != want {
				t.Errorf("LineCount() = %d, want %d", r.LineCount(), want)
			}
		})
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		offset   int
		text     string
		expected string
	}{
		{"insert at start", "world", 0, "hello ", "hello world"},
		{"insert at end", "hello", 5, " world", "hello world"},
		{"insert in middle", "helloworld", 5, " ", "hello world"},
		{"insert into empty", "", 0, "hello", "hello"},
		{"insert empty string", "hello", 3, "", "hello"},
		{"insert unicode", "hello", 5, " 世界", "hello 世界"},
		{"insert between runes", "世界", 1, "!", "世!界"},
		{"insert past end appends", "ab", 10, "c", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r = r.Insert(tt.offset, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    int
		end      int
		expected string
	}{
		{"delete from start", "hello world", 0, 6, "world"},
		{"delete from end", "hello world", 5, 11, "hello"},
		{"delete from middle", "hello world", 5, 6, "helloworld"},
		{"delete all", "hello", 0, 5, ""},
		{"delete nothing", "hello", 3, 3, "hello"},
		{"delete beyond end", "hello", 0, 100, ""},
		{"delete one rune", "a世b", 1, 2, "ab"},
		{"delete newline", "ab\ncd", 2, 3, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial)
			r = r.Delete(tt.start, tt.end)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		start    int
		end      int
		text     string
		expected string
	}{
		{"replace word", "hello world", 6, 11, "universe", "hello universe"},
		{"replace with shorter", "hello world", 0, 5, "hi", "hi world"},
		{"replace with longer", "hi world", 0, 2, "hello", "hello world"},
		{"replace all", "hello", 0, 5, "world", "world"},
		{"empty range inserts", "ac", 1, 1, "b", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.initial).Replace(tt.start, tt.end, tt.text)
			if got := r.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestImmutability(t *testing.T) {
	original := FromString("hello world")
	_ = original.Insert(5, ",")
	_ = original.Delete(0, 6)
	_, _ = original.Split(3)

	if original.String() != "hello world" {
		t.Errorf("original modified: %q", original.String())
	}
}

func TestSplitConcat(t *testing.T) {
	text := strings.Repeat("line of text ü\n", 200)
	r := FromString(text)
	runes := []rune(text)

	for _, at := range []int{0, 1, 17, 255, 256, 1000, len(runes) - 1, len(runes)} {
		left, right := r.Split(at)
		if left.String() != string(runes[:at]) {
			t.Fatalf("Split(%d) left mismatch", at)
		}
		if right.String() != string(runes[at:]) {
			t.Fatalf("Split(%d) right mismatch", at)
		}
		if joined := left.Concat(right); joined.String() != text {
			t.Fatalf("Concat after Split(%d) mismatch", at)
		}
	}
}

func TestSlice(t *testing.T) {
	r := FromString("héllo wörld")
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 5, "héllo"},
		{6, 11, "wörld"},
		{1, 2, "é"},
		{3, 3, ""},
		{5, 100, " wörld"},
		{8, 2, ""},
	}
	for _, tt := range tests {
		if got := r.Slice(tt.start, tt.end); got != tt.want {
			t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestLines(t *testing.T) {
	r := FromString("first\nsecond\n\nfourth ü")

	tests := []struct {
		line  int
		start int
		end   int
		text  string
	}{
		{0, 0, 5, "first"},
		{1, 6, 12, "second"},
		{2, 13, 13, ""},
		{3, 14, 22, "fourth ü"},
		{4, 22, 22, ""},
	}
	for _, tt := range tests {
		if got := r.LineStart(tt.line); got != tt.start {
			t.Errorf("LineStart(%d) = %d, want %d", tt.line, got, tt.start)
		}
		if got := r.LineEnd(tt.line); got != tt.end {
			t.Errorf("LineEnd(%d) = %d, want %d", tt.line, got, tt.end)
		}
		if got := r.LineText(tt.line); got != tt.text {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.text)
		}
		if got := r.LineLen(tt.line); got != tt.end-tt.start {
			t.Errorf("LineLen(%d) = %d, want %d", tt.line, got, tt.end-tt.start)
		}
	}
}

func TestTrailingNewline(t *testing.T) {
	r := FromString("abc\n")
	if r.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", r.LineCount())
	}
	if got := r.LineText(1); got != "" {
		t.Errorf("LineText(1) = %q, want empty", got)
	}
	if got := r.LineStart(1); got != 4 {
		t.Errorf("LineStart(1) = %d, want 4", got)
	}
}

func TestLinesAcrossChunks(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString(strings.Repeat("é", i%37))
		sb.WriteByte('\n')
	}
	text := sb.String()
	r := FromString(text)
	want := strings.Split(text, "\n")

	if r.LineCount() != len(want) {
		t.Fatalf("LineCount() = %d, want %d", r.LineCount(), len(want))
	}
	for i, line := range want {
		if got := r.LineText(i); got != line {
			t.Fatalf("LineText(%d) = %q, want %q", i, got, line)
		}
	}
}

func TestManySingleInserts(t *testing.T) {
	r := New()
	var want []rune
	for i := 0; i < 3000; i++ {
		ch := rune('a' + i%26)
		if i%40 == 39 {
			ch = '\n'
		}
		at := (i * 7) % (len(want) + 1)
		r = r.Insert(at, string(ch))
		want = append(want[:at], append([]rune{ch}, want[at:]...)...)
	}
	if r.String() != string(want) {
		t.Fatal("content mismatch after many inserts")
	}
	if r.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(want))
	}
	if r.Height() > 12 {
		t.Errorf("tree too tall: height %d", r.Height())
	}
}

func TestChunkBoundsAfterEdits(t *testing.T) {
	r := FromString(strings.Repeat("x", 5000))
	for i := 0; i < 200; i++ {
		r = r.Insert(i*13, "y")
	}
	iter := r.Chunks()
	total := 0
	for iter.Next() {
		c := iter.Chunk()
		if c.IsEmpty() {
			t.Fatal("empty chunk stored")
		}
		if iter.Offset() != total {
			t.Fatalf("chunk offset %d, want %d", iter.Offset(), total)
		}
		total += c.Len()
	}
	if total != r.Len() {
		t.Errorf("chunks cover %d chars, want %d", total, r.Len())
	}
}

func TestEquals(t *testing.T) {
	a := FromString(strings.Repeat("ab", 300))
	b := New()
	for i := 0; i < 300; i++ {
		b = b.Insert(b.Len(), "ab")
	}
	if !a.Equals(b) {
		t.Error("ropes with same text should be equal")
	}
	if a.Equals(b.Insert(0, "z")) {
		t.Error("ropes with different text should not be equal")
	}
}

func TestWriteTo(t *testing.T) {
	text := strings.Repeat("write me\n", 100)
	var buf bytes.Buffer
	n, err := FromString(text).WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(text)) || buf.String() != text {
		t.Errorf("WriteTo wrote %d bytes, content match=%v", n, buf.String() == text)
	}
}

func TestFromReader(t *testing.T) {
	text := strings.Repeat("读取 reader\n", 10000)
	r, err := FromReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if r.String() != text {
		t.Error("content mismatch")
	}
}

func TestBuilderSplitRune(t *testing.T) {
	var b Builder
	data := []byte(strings.Repeat("€", 400))
	// Write in 3-byte-misaligned pieces so runes straddle writes.
	for i := 0; i < len(data); i += 7 {
		end := min(i+7, len(data))
		b.Write(data[i:end])
	}
	r := b.Build()
	if r.Len() != 400 {
		t.Errorf("Len() = %d, want 400", r.Len())
	}
	if r.String() != string(data) {
		t.Error("content mismatch")
	}
}

func TestFromReaderInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"middle", "a\xffb", "a\uFFFDb"},
		{"truncated tail", "ok\xe2\x82", "ok\uFFFD"},
		{"run", "x\xff\xfey", "x\uFFFDy"},
		{"valid", "héllo\n", "héllo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := FromReader(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("FromReader: %v", err)
			}
			if r.String() != tt.want {
				t.Errorf("FromReader(%q) = %q, want %q", tt.in, r.String(), tt.want)
			}
			if r.Len() != utf8.RuneCountInString(tt.want) {
				t.Errorf("Len() = %d, want %d", r.Len(), utf8.RuneCountInString(tt.want))
			}
		})
	}
}

func TestFromReaderLarge(t *testing.T) {
	// Longer than one read buffer, with a multi-byte rune on every boundary.
	text := strings.Repeat("€\n", 3*64*1024)
	r, err := FromReader(iotest.OneByteReader(strings.NewReader(text[:1000])))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if r.String() != text[:1000] {
		t.Error("one-byte reads: content mismatch")
	}

	r, err = FromReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if r.Len() != 2*3*64*1024 || r.LineCount() != 3*64*1024+1 {
		t.Errorf("Len() = %d, LineCount() = %d", r.Len(), r.LineCount())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestFromReaderError(t *testing.T) {
	if _, err := FromReader(failingReader{}); err == nil {
		t.Error("expected read error")
	}
}

func TestInsertDeleteQuick(t *testing.T) {
	f := func(base string, at uint16, ins string) bool {
		base = strings.ToValidUTF8(base, "?")
		ins = strings.ToValidUTF8(ins, "?")
		runes := []rune(base)
		pos := int(at) % (len(runes) + 1)

		r := FromString(base).Insert(pos, ins)
		want := string(runes[:pos]) + ins + string(runes[pos:])
		if r.String() != want {
			return false
		}
		n := utf8.RuneCountInString(ins)
		return r.Delete(pos, pos+n).String() == base
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
