package renderer

import (
	"fmt"
	"slices"

	"github.com/dshills/x5/internal/engine/cursor"
	"github.com/dshills/x5/internal/renderer/viewport"
)

// Source provides read access to the editing state for rendering.
// *engine.Engine satisfies it.
type Source interface {
	// LineCount returns the total number of lines.
	LineCount() int

	// Line returns the text of a line, excluding its newline.
	Line(index int) (string, error)

	// Cursor returns the cursor position in buffer coordinates.
	Cursor() cursor.Cursor

	// ScrollOffset returns the first visible buffer row.
	ScrollOffset() int
}

// Frame is one rendered screen: the visible lines from top to bottom and
// the cursor position in screen coordinates.
type Frame struct {
	Lines   []string
	CursorX int
	CursorY int
}

// Equal reports whether two frames would paint the same screen.
func (f Frame) Equal(other Frame) bool {
	return f.CursorX == other.CursorX &&
		f.CursorY == other.CursorY &&
		slices.Equal(f.Lines, other.Lines)
}

// String returns a short description for debugging.
func (f Frame) String() string {
	return fmt.Sprintf("Frame{lines: %d, cursor: (%d, %d)}", len(f.Lines), f.CursorX, f.CursorY)
}

// Render projects src onto a width x height screen. Each visible line is
// truncated to width characters and the frame never holds more than height
// lines. The scroll offset of src is adjusted locally when height is too
// small to show the cursor from it, so a non-empty frame always places the
// cursor row in [0, height). Render does not modify src.
func Render(src Source, width, height int) (Frame, error) {
	width = max(width, 0)
	height = max(height, 0)

	cur := src.Cursor()
	view := viewport.NewViewport(width, height)
	view.ScrollTo(src.ScrollOffset())
	view.EnsureVisible(cur.Row(), height)
	start, end := view.VisibleRange(src.LineCount(), height)

	frame := Frame{Lines: make([]string, 0, end-start)}
	for row := start; row < end; row++ {
		line, err := src.Line(row)
		if err != nil {
			return Frame{}, fmt.Errorf("render line %d: %w", row, err)
		}
		frame.Lines = append(frame.Lines, truncate(line, width))
	}

	frame.CursorY, frame.CursorX = view.BufferToScreen(cur.Row(), cur.Col())
	return frame, nil
}

// truncate returns the first width characters of s.
func truncate(s string, width int) string {
	n := 0
	for i := range s {
		if n == width {
			return s[:i]
		}
		n++
	}
	return s
}
