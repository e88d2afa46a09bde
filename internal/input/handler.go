package input

import (
	"fmt"

	"github.com/dshills/x5/internal/engine"
	"github.com/dshills/x5/internal/input/key"
	"github.com/dshills/x5/internal/input/keymap"
	"github.com/dshills/x5/internal/renderer/backend"
)

// Handler decodes backend key events into actions using a keymap.
// It is owned by the session goroutine.
type Handler struct {
	keymap  *keymap.Keymap
	actions map[key.Stroke]Action
}

// NewHandler creates a handler for km. Every binding in km must name a
// known action.
func NewHandler(km *keymap.Keymap) (*Handler, error) {
	h := &Handler{}
	if err := h.SetKeymap(km); err != nil {
		return nil, err
	}
	return h, nil
}

// BuildKeymap returns the default keymap with overrides applied on top.
// Override values are action names; "none" removes a default binding.
func BuildKeymap(overrides map[string]string, source string) (*keymap.Keymap, error) {
	km := keymap.DefaultKeymap()
	if len(overrides) == 0 {
		return km, nil
	}
	if err := km.Merge(overrides, source); err != nil {
		return nil, err
	}
	if _, err := resolve(km); err != nil {
		return nil, err
	}
	return km, nil
}

// SetKeymap replaces the active keymap. On error the previous keymap stays
// active.
func (h *Handler) SetKeymap(km *keymap.Keymap) error {
	actions, err := resolve(km)
	if err != nil {
		return err
	}
	h.keymap = km
	h.actions = actions
	return nil
}

// Keymap returns the active keymap.
func (h *Handler) Keymap() *keymap.Keymap {
	return h.keymap
}

// Handle decodes ev. Bound keys resolve through the keymap; unbound
// printable characters insert themselves; anything else is ActionNone.
func (h *Handler) Handle(ev backend.Event) Action {
	if ev.Type != backend.EventKey {
		return Action{}
	}

	s := key.FromEvent(ev)
	if a, ok := h.actions[s]; ok {
		return a
	}
	if s.IsPrintable() {
		return CommandAction(engine.InsertChar(s.Rune))
	}
	return Action{}
}

// resolve parses every action name in km.
func resolve(km *keymap.Keymap) (map[key.Stroke]Action, error) {
	bindings := km.Bindings()
	actions := make(map[key.Stroke]Action, len(bindings))
	for _, b := range bindings {
		a, err := ParseAction(b.Action)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", b.Keys, err)
		}
		actions[key.MustParse(b.Keys)] = a
	}
	return actions, nil
}
