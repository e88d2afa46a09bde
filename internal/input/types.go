package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/x5/internal/engine"
)

// ErrUnknownAction is returned when an action name cannot be resolved.
var ErrUnknownAction = errors.New("unknown action")

// ActionKind identifies what the session should do with an action.
type ActionKind uint8

const (
	// ActionNone means the key is ignored.
	ActionNone ActionKind = iota
	// ActionCommand applies Command to the engine.
	ActionCommand
	// ActionSave writes the document to disk.
	ActionSave
	// ActionRedraw clears the terminal and repaints.
	ActionRedraw
)

// String returns a string representation of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionCommand:
		return "command"
	case ActionSave:
		return "save"
	case ActionRedraw:
		return "redraw"
	default:
		return "unknown"
	}
}

// Action is a decoded key press.
type Action struct {
	Kind    ActionKind
	Command engine.Command
}

// CommandAction wraps an engine command.
func CommandAction(cmd engine.Command) Action {
	return Action{Kind: ActionCommand, Command: cmd}
}

// String returns a string representation of the action.
func (a Action) String() string {
	if a.Kind == ActionCommand {
		return a.Command.String()
	}
	return a.Kind.String()
}

// namedActions maps action names to actions. "insert:<char>" is handled
// separately.
var namedActions = map[string]Action{
	"none":       {},
	"move_up":    CommandAction(engine.MoveUp),
	"move_down":  CommandAction(engine.MoveDown),
	"move_left":  CommandAction(engine.MoveLeft),
	"move_right": CommandAction(engine.MoveRight),
	"newline":    CommandAction(engine.Newline),
	"backspace":  CommandAction(engine.Backspace),
	"quit":       CommandAction(engine.Quit),
	"save":       {Kind: ActionSave},
	"redraw":     {Kind: ActionRedraw},
}

// insertNames are the names accepted after "insert:" besides a single
// character.
var insertNames = map[string]rune{
	"tab":   '\t',
	"space": ' ',
}

// ParseAction resolves an action name such as "move_up", "save" or
// "insert:tab".
func ParseAction(name string) (Action, error) {
	name = strings.TrimSpace(name)
	if a, ok := namedActions[strings.ToLower(name)]; ok {
		return a, nil
	}

	if arg, ok := strings.CutPrefix(name, "insert:"); ok {
		if r, ok := insertNames[strings.ToLower(arg)]; ok {
			return CommandAction(engine.InsertChar(r)), nil
		}
		if utf8.RuneCountInString(arg) == 1 {
			r, _ := utf8.DecodeRuneInString(arg)
			if r != utf8.RuneError {
				return CommandAction(engine.InsertChar(r)), nil
			}
		}
		return Action{}, fmt.Errorf("%w: %q needs a single character", ErrUnknownAction, name)
	}

	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
