package engine

import "fmt"

// CommandKind identifies an editing command.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdMoveUp
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdInsertChar
	CmdNewline
	CmdBackspace
	CmdQuit
)

var commandNames = [...]string{
	CmdNone:       "none",
	CmdMoveUp:     "move_up",
	CmdMoveDown:   "move_down",
	CmdMoveLeft:   "move_left",
	CmdMoveRight:  "move_right",
	CmdInsertChar: "insert_char",
	CmdNewline:    "newline",
	CmdBackspace:  "backspace",
	CmdQuit:       "quit",
}

// String returns the command's snake_case name.
func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("command(%d)", uint8(k))
}

// Command is a decoded editing command. Char is only meaningful for
// CmdInsertChar.
type Command struct {
	Kind CommandKind
	Char rune
}

// Commands without arguments.
var (
	MoveUp    = Command{Kind: CmdMoveUp}
	MoveDown  = Command{Kind: CmdMoveDown}
	MoveLeft  = Command{Kind: CmdMoveLeft}
	MoveRight = Command{Kind: CmdMoveRight}
	Newline   = Command{Kind: CmdNewline}
	Backspace = Command{Kind: CmdBackspace}
	Quit      = Command{Kind: CmdQuit}
)

// InsertChar returns a command that inserts ch at the cursor.
func InsertChar(ch rune) Command {
	return Command{Kind: CmdInsertChar, Char: ch}
}

// String returns a debug representation of the command.
func (c Command) String() string {
	if c.Kind == CmdInsertChar {
		return fmt.Sprintf("insert_char(%q)", c.Char)
	}
	return c.Kind.String()
}
