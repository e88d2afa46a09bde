// Package renderer provides the display layer for the x5 editor.
//
// Rendering happens in two steps. Render projects the editing state onto a
// Frame: the visible lines truncated to the terminal width, plus the cursor's
// screen position. It has no side effects, so rendering unchanged state twice
// yields equal frames. A Renderer then paints frames onto a backend.Backend.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│   Source (engine, read-only)            │
//	├─────────────────────────────────────────┤
//	│   Render → Frame (pure projection)      │
//	├─────────────────────────────────────────┤
//	│   Renderer.Draw → Backend               │
//	├─────────────────────────────────────────┤
//	│   Terminal (tcell) │ NullBackend        │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b)
//	w, h := b.Size()
//	frame, err := renderer.Render(eng, w, h)
//	if err == nil {
//		r.Draw(frame)
//	}
package renderer
