package engine

import (
	"fmt"
	"io"

	"github.com/dshills/x5/internal/engine/buffer"
	"github.com/dshills/x5/internal/engine/cursor"
	"github.com/dshills/x5/internal/renderer/viewport"
)

// Engine is the editing state: buffer, cursor and viewport. It is the sole
// mutator of all three.
type Engine struct {
	buf  *buffer.Buffer
	cur  cursor.Cursor
	view *viewport.Viewport

	wrapWidth int
	quit      bool

	// Initialization
	initContent      string
	width, height    int
	initRow, initCol int
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := configure(opts)
	e.init(buffer.NewBufferFromString(e.initContent))
	return e
}

// NewFromReader creates an Engine whose content is read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	buf, err := buffer.NewBufferFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	e := configure(opts)
	e.init(buf)
	return e, nil
}

func configure(opts []Option) *Engine {
	e := &Engine{
		wrapWidth: DefaultWrapWidth,
		width:     DefaultWidth,
		height:    DefaultHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) init(buf *buffer.Buffer) {
	e.buf = buf
	e.initContent = ""
	e.view = viewport.NewViewport(e.width, e.height)

	row := min(max(e.initRow, 0), buf.LineCount()-1)
	e.cur = cursor.New(row, e.initCol)
	// The initial position is in range, so settle cannot fail.
	_ = e.settle()
}

// Apply executes one command. Motions that would leave the buffer are
// no-ops. A returned error means an internal invariant broke; the state is
// left as it was after the last successful buffer operation.
func (e *Engine) Apply(cmd Command) error {
	var err error
	switch cmd.Kind {
	case CmdNone:
		return nil
	case CmdQuit:
		e.quit = true
		return nil
	case CmdMoveUp:
		err = e.moveUp()
	case CmdMoveDown:
		err = e.moveDown()
	case CmdMoveLeft:
		e.moveLeft()
	case CmdMoveRight:
		err = e.moveRight()
	case CmdInsertChar:
		if cmd.Char == '\n' {
			err = e.newline()
		} else {
			err = e.insertChar(cmd.Char)
		}
	case CmdNewline:
		err = e.newline()
	case CmdBackspace:
		err = e.backspace()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	if err := e.settle(); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

func (e *Engine) moveUp() error {
	if e.cur.Row() == 0 {
		return nil
	}
	return e.moveToRow(e.cur.Row() - 1)
}

func (e *Engine) moveDown() error {
	if e.cur.Row()+1 >= e.buf.LineCount() {
		return nil
	}
	return e.moveToRow(e.cur.Row() + 1)
}

func (e *Engine) moveToRow(row int) error {
	n, err := e.buf.LineLen(row)
	if err != nil {
		return err
	}
	e.cur = e.cur.MoveTo(row, e.cur.Col()).Clamp(n)
	return nil
}

func (e *Engine) moveLeft() {
	if e.cur.Col() > 0 {
		e.cur = e.cur.WithCol(e.cur.Col() - 1)
	}
}

func (e *Engine) moveRight() error {
	n, err := e.buf.LineLen(e.cur.Row())
	if err != nil {
		return err
	}
	if e.cur.Col() < n {
		e.cur = e.cur.WithCol(e.cur.Col() + 1)
	}
	return nil
}

// offset returns the absolute character offset of the cursor.
func (e *Engine) offset() (int, error) {
	start, err := e.buf.LineToOffset(e.cur.Row())
	if err != nil {
		return 0, err
	}
	return start + e.cur.Col(), nil
}

func (e *Engine) insertChar(ch rune) error {
	off, err := e.offset()
	if err != nil {
		return err
	}
	if err := e.buf.Insert(off, ch); err != nil {
		return err
	}
	e.cur = e.cur.WithCol(e.cur.Col() + 1)

	if limit := e.WrapLimit(); limit > 0 && e.cur.Col() >= limit {
		if err := e.buf.Insert(off+1, '\n'); err != nil {
			return err
		}
		e.cur = e.cur.MoveTo(e.cur.Row()+1, 0)
	}
	return nil
}

func (e *Engine) newline() error {
	off, err := e.offset()
	if err != nil {
		return err
	}
	if err := e.buf.Insert(off, '\n'); err != nil {
		return err
	}
	e.cur = e.cur.MoveTo(e.cur.Row()+1, 0)
	return nil
}

func (e *Engine) backspace() error {
	row, col := e.cur.Row(), e.cur.Col()
	if col == 0 && row == 0 {
		return nil
	}

	off, err := e.offset()
	if err != nil {
		return err
	}

	if col > 0 {
		if err := e.buf.Remove(buffer.NewRange(off-1, off)); err != nil {
			return err
		}
		e.cur = e.cur.WithCol(col - 1)
		return nil
	}

	prevLen, err := e.buf.LineLen(row - 1)
	if err != nil {
		return err
	}
	if err := e.buf.Remove(buffer.NewRange(off-1, off)); err != nil {
		return err
	}
	e.cur = e.cur.MoveTo(row-1, prevLen)
	return nil
}

// settle clamps the cursor to its line and scrolls it into view.
func (e *Engine) settle() error {
	n, err := e.buf.LineLen(e.cur.Row())
	if err != nil {
		return err
	}
	e.cur = e.cur.Clamp(n)
	e.view.EnsureVisible(e.cur.Row(), e.view.Height())
	return nil
}

// Resize updates the terminal size and keeps the cursor row visible.
// Existing lines are not reflowed.
func (e *Engine) Resize(width, height int) {
	e.view.Resize(width, height)
	e.view.EnsureVisible(e.cur.Row(), e.view.Height())
}

// SetWrapWidth changes the soft wrap setting for subsequent inserts.
func (e *Engine) SetWrapWidth(width int) {
	e.wrapWidth = width
}

// WrapWidth returns the configured soft wrap setting.
func (e *Engine) WrapWidth() int {
	return e.wrapWidth
}

// WrapLimit returns the column at which an insert wraps, or 0 when
// wrapping is off.
func (e *Engine) WrapLimit() int {
	switch {
	case e.wrapWidth > 0:
		return e.wrapWidth
	case e.wrapWidth == 0:
		return e.view.Width()
	default:
		return 0
	}
}

// Read Operations

// Text returns the full buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// WriteTo writes the buffer content to w. It implements io.WriterTo.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	return e.buf.WriteTo(w)
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() cursor.Cursor {
	return e.cur
}

// ScrollOffset returns the first visible buffer row.
func (e *Engine) ScrollOffset() int {
	return e.view.TopLine()
}

// Size returns the current terminal size.
func (e *Engine) Size() (width, height int) {
	return e.view.Width(), e.view.Height()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// CharCount returns the number of characters.
func (e *Engine) CharCount() int {
	return e.buf.CharCount()
}

// Line returns the text of a line, excluding its newline.
func (e *Engine) Line(index int) (string, error) {
	return e.buf.Line(index)
}

// Revision returns a counter that increases with every buffer mutation.
func (e *Engine) Revision() uint64 {
	return e.buf.Revision()
}

// ShouldQuit reports whether a Quit command has been applied.
func (e *Engine) ShouldQuit() bool {
	return e.quit
}
