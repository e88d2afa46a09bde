// Package input turns raw key events into editor actions for the x5 editor.
//
// # Architecture
//
//   - key: parses key specifications ("ctrl+s", "<C-s>", "enter") and
//     normalizes backend events into comparable strokes
//   - keymap: maps strokes to action names, with built-in defaults and
//     overrides from configuration
//   - Handler: resolves action names into Actions and decodes events
//
// # Actions
//
// An Action either carries an engine command, or asks the session to save
// or redraw. Action names used in keymaps:
//
//	move_up, move_down, move_left, move_right
//	newline, backspace, quit
//	save, redraw
//	insert:<char>, insert:tab, insert:space
//	none
//
// Unbound printable characters insert themselves.
//
// # Usage
//
//	km, err := input.BuildKeymap(cfg.Keymap, cfg.Path)
//	handler, err := input.NewHandler(km)
//	action := handler.Handle(event)
package input
