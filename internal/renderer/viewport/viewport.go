// Package viewport provides viewport management for the renderer.
//
// A Viewport tracks which buffer row is shown on the first screen row
// (the scroll offset) and the terminal size it is projected onto. Vertical
// scrolling is minimal: EnsureVisible moves the offset only as far as
// needed to bring a row on screen.
package viewport

import "fmt"

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	// First visible buffer row
	topLine int

	// Size in screen cells
	width  int
	height int
}

// NewViewport creates a viewport with the given size.
// Negative dimensions are treated as 0.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:  max(width, 0),
		height: max(height, 0),
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	return v.height
}

// TopLine returns the scroll offset, the first visible buffer row.
func (v *Viewport) TopLine() int {
	return v.topLine
}

// Resize updates the viewport size. The scroll offset is left as is.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
}

// ScrollTo sets the scroll offset directly. Negative values clamp to 0.
func (v *Viewport) ScrollTo(line int) {
	v.topLine = max(line, 0)
}

// EnsureVisible adjusts the scroll offset by the minimal amount so that
// topLine <= row < topLine+height. A non-positive height leaves the offset
// unchanged. Reports whether the offset moved.
func (v *Viewport) EnsureVisible(row, height int) bool {
	if height <= 0 {
		return false
	}
	row = max(row, 0)

	prev := v.topLine
	switch {
	case row < v.topLine:
		v.topLine = row
	case row >= v.topLine+height:
		v.topLine = row - height + 1
	}
	return v.topLine != prev
}

// VisibleRange returns the half-open range of buffer rows to render:
// [topLine, min(topLine+height, lineCount)). The end is never before
// the start.
func (v *Viewport) VisibleRange(lineCount, height int) (start, end int) {
	start = v.topLine
	end = min(start+max(height, 0), lineCount)
	if end < start {
		end = start
	}
	return start, end
}

// IsLineVisible returns true if the row is within the viewport.
func (v *Viewport) IsLineVisible(row int) bool {
	return row >= v.topLine && row < v.topLine+v.height
}

// BufferToScreen converts a buffer position to a screen position.
// One character occupies one screen cell.
func (v *Viewport) BufferToScreen(row, col int) (screenRow, screenCol int) {
	return row - v.topLine, col
}

// ScreenToBuffer converts a screen position to a buffer position.
func (v *Viewport) ScreenToBuffer(screenRow, screenCol int) (row, col int) {
	return screenRow + v.topLine, screenCol
}

// String returns a debug representation of the viewport.
func (v *Viewport) String() string {
	return fmt.Sprintf("Viewport(top=%d, %dx%d)", v.topLine, v.width, v.height)
}

// Clone returns a copy of the viewport.
func (v *Viewport) Clone() *Viewport {
	c := *v
	return &c
}
