package engine

// Default configuration values.
const (
	DefaultWidth     = 80
	DefaultHeight    = 24
	DefaultWrapWidth = 0
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithWrapWidth sets the soft wrap limit. 0 wraps at the viewport width,
// a negative value disables wrapping.
func WithWrapWidth(width int) Option {
	return func(e *Engine) {
		e.wrapWidth = width
	}
}

// WithViewport sets the initial terminal size.
func WithViewport(width, height int) Option {
	return func(e *Engine) {
		e.width = width
		e.height = height
	}
}

// WithCursor places the cursor at creation time. The position is clamped
// into the initial content.
func WithCursor(row, col int) Option {
	return func(e *Engine) {
		e.initRow = row
		e.initCol = col
	}
}
