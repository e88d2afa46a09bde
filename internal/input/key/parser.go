package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/x5/internal/renderer/backend"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a Stroke.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Esc", "Tab", "Backspace", "Space", "Up"
//   - With modifiers: "Ctrl+S", "ctrl+q", "Alt+x"
//   - Vim-style: "<C-s>", "<A-x>", "<CR>", "<Esc>", "<BS>"
func Parse(spec string) (Stroke, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Stroke{}, ErrEmptySpec
	}

	// Check for Vim-style <...> notation
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"), spec)
	}

	// Check for modifier+key format (Ctrl+S, Alt+x)
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseParts(strings.Split(spec, "+"), spec)
	}

	return parseKey(spec, backend.ModNone, spec)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Stroke {
	s, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return s
}

// parseParts treats every part but the last as a modifier.
func parseParts(parts []string, spec string) (Stroke, error) {
	var mods backend.ModMask
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		mod := ModifierFromName(p)
		if mod == backend.ModNone {
			return Stroke{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods |= mod
	}
	return parseKey(strings.TrimSpace(parts[len(parts)-1]), mods, spec)
}

func parseKey(keyPart string, mods backend.ModMask, spec string) (Stroke, error) {
	if keyPart == "" {
		return Stroke{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return Stroke{Key: backend.KeyRune, Rune: ' ', Mod: mods}.Normalize(), nil
	case "plus":
		return Stroke{Key: backend.KeyRune, Rune: '+', Mod: mods}.Normalize(), nil
	case "lt":
		return Stroke{Key: backend.KeyRune, Rune: '<', Mod: mods}.Normalize(), nil
	case "gt":
		return Stroke{Key: backend.KeyRune, Rune: '>', Mod: mods}.Normalize(), nil
	}

	if k := KeyFromName(keyPart); k != backend.KeyNone {
		return SpecialStroke(k, mods), nil
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		if r == utf8.RuneError || r < ' ' {
			return Stroke{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
		}
		return Stroke{Key: backend.KeyRune, Rune: r, Mod: mods}.Normalize(), nil
	}

	return Stroke{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, keyPart, spec)
}
