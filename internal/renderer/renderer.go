package renderer

import (
	"github.com/dshills/x5/internal/renderer/backend"
)

// Renderer paints frames onto a backend. It remembers the last frame so
// that an unchanged frame is not repainted.
type Renderer struct {
	backend backend.Backend

	last     Frame
	hasLast  bool
	fullDraw bool
	frames   uint64
}

// New creates a renderer that draws on b.
func New(b backend.Backend) *Renderer {
	return &Renderer{backend: b, fullDraw: true}
}

// Backend returns the backend the renderer draws on.
func (r *Renderer) Backend() backend.Backend {
	return r.backend
}

// Invalidate forces the next Draw to repaint the whole screen even if the
// frame did not change.
func (r *Renderer) Invalidate() {
	r.fullDraw = true
}

// Draw paints frame: it clears the screen, writes each line cell by cell,
// places the cursor and flushes once. It reports whether anything was
// painted.
func (r *Renderer) Draw(frame Frame) bool {
	if !r.fullDraw && r.hasLast && frame.Equal(r.last) {
		return false
	}

	width, height := r.backend.Size()

	r.backend.Clear()
	for y, line := range frame.Lines {
		if y >= height {
			break
		}
		x := 0
		for _, ch := range line {
			if x >= width {
				break
			}
			r.backend.SetCell(x, y, ch)
			x++
		}
	}

	if width > 0 && height > 0 {
		cx := min(max(frame.CursorX, 0), width-1)
		cy := min(max(frame.CursorY, 0), height-1)
		r.backend.ShowCursor(cx, cy)
	} else {
		r.backend.HideCursor()
	}

	if r.fullDraw {
		r.backend.Sync()
	} else {
		r.backend.Show()
	}

	r.last = frame
	r.hasLast = true
	r.fullDraw = false
	r.frames++
	return true
}

// FrameCount returns how many frames have been painted.
func (r *Renderer) FrameCount() uint64 {
	return r.frames
}
