// Package key parses and normalizes single key strokes.
package key

import (
	"strings"

	"github.com/dshills/x5/internal/renderer/backend"
)

// Stroke is one normalized key press. Ctrl+letter is always expressed as a
// KeyCtrl* key with no Ctrl modifier, and rune strokes never carry Shift
// since the rune already reflects it.
type Stroke struct {
	Key  backend.Key
	Rune rune
	Mod  backend.ModMask
}

// RuneStroke returns the stroke for a plain character.
func RuneStroke(r rune) Stroke {
	return Stroke{Key: backend.KeyRune, Rune: r}
}

// SpecialStroke returns the stroke for a non-character key.
func SpecialStroke(k backend.Key, mod backend.ModMask) Stroke {
	return Stroke{Key: k, Mod: mod}.Normalize()
}

// FromEvent builds a stroke from a backend key event.
func FromEvent(ev backend.Event) Stroke {
	s := Stroke{Key: ev.Key, Mod: ev.Mod}
	if ev.Key == backend.KeyRune {
		s.Rune = ev.Rune
	}
	return s.Normalize()
}

// Normalize returns the canonical form of s.
func (s Stroke) Normalize() Stroke {
	switch {
	case s.Key == backend.KeyRune:
		if s.Mod.Has(backend.ModCtrl) {
			if k := backend.CtrlKey(s.Rune); k != backend.KeyNone {
				return Stroke{Key: k, Mod: s.Mod &^ (backend.ModCtrl | backend.ModShift)}
			}
		}
		s.Mod &^= backend.ModShift
	case s.Key >= backend.KeyCtrlA && s.Key <= backend.KeyCtrlZ:
		s.Mod &^= backend.ModCtrl | backend.ModShift
		s.Rune = 0
	default:
		s.Rune = 0
	}
	return s
}

// IsPrintable reports whether s is a plain character with no Ctrl, Alt or
// Meta modifier.
func (s Stroke) IsPrintable() bool {
	return s.Key == backend.KeyRune &&
		s.Rune >= ' ' &&
		!s.Mod.Has(backend.ModCtrl|backend.ModAlt|backend.ModMeta)
}

// String returns the canonical key string, for example "ctrl+q",
// "alt+x", "enter" or "a". Parse accepts it back.
func (s Stroke) String() string {
	var sb strings.Builder
	if s.Mod.Has(backend.ModCtrl) {
		sb.WriteString("ctrl+")
	}
	if s.Mod.Has(backend.ModAlt) {
		sb.WriteString("alt+")
	}
	if s.Mod.Has(backend.ModMeta) {
		sb.WriteString("meta+")
	}
	if s.Mod.Has(backend.ModShift) {
		sb.WriteString("shift+")
	}

	switch {
	case s.Key == backend.KeyRune:
		switch s.Rune {
		case ' ':
			sb.WriteString("space")
		case '+':
			sb.WriteString("plus")
		default:
			sb.WriteRune(s.Rune)
		}
	case s.Key >= backend.KeyCtrlA && s.Key <= backend.KeyCtrlZ:
		sb.WriteString("ctrl+")
		sb.WriteRune('a' + rune(s.Key-backend.KeyCtrlA))
	default:
		sb.WriteString(keyNames[s.Key])
	}
	return sb.String()
}

// keyNames holds the canonical name of each special key.
var keyNames = map[backend.Key]string{
	backend.KeyNone:      "none",
	backend.KeyEscape:    "esc",
	backend.KeyEnter:     "enter",
	backend.KeyTab:       "tab",
	backend.KeyBackspace: "backspace",
	backend.KeyDelete:    "delete",
	backend.KeyHome:      "home",
	backend.KeyEnd:       "end",
	backend.KeyPageUp:    "pageup",
	backend.KeyPageDown:  "pagedown",
	backend.KeyUp:        "up",
	backend.KeyDown:      "down",
	backend.KeyLeft:      "left",
	backend.KeyRight:     "right",
}

// KeyFromName returns the special key with the given name, accepting common
// aliases. Names are case-insensitive.
func KeyFromName(name string) backend.Key {
	switch strings.ToLower(name) {
	case "esc", "escape":
		return backend.KeyEscape
	case "enter", "return", "cr":
		return backend.KeyEnter
	case "tab":
		return backend.KeyTab
	case "backspace", "bs":
		return backend.KeyBackspace
	case "delete", "del":
		return backend.KeyDelete
	case "home":
		return backend.KeyHome
	case "end":
		return backend.KeyEnd
	case "pageup", "pgup":
		return backend.KeyPageUp
	case "pagedown", "pgdn":
		return backend.KeyPageDown
	case "up":
		return backend.KeyUp
	case "down":
		return backend.KeyDown
	case "left":
		return backend.KeyLeft
	case "right":
		return backend.KeyRight
	}
	return backend.KeyNone
}

// ModifierFromName returns the modifier with the given name, or ModNone.
func ModifierFromName(name string) backend.ModMask {
	switch strings.ToLower(name) {
	case "ctrl", "control", "c":
		return backend.ModCtrl
	case "alt", "opt", "option", "a":
		return backend.ModAlt
	case "shift", "s":
		return backend.ModShift
	case "meta", "cmd", "super", "m", "d":
		return backend.ModMeta
	}
	return backend.ModNone
}
