// Package keymap maps key strokes to action names.
package keymap

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/x5/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Formats: "a", "enter", "ctrl+s", "<C-s>"
	Keys string

	// Action is the action name to execute.
	// Examples: "move_up", "save", "insert:tab"
	Action string

	// Description provides documentation for the binding.
	Description string

	// Source records where the binding came from ("default" or a config path).
	Source string
}

// Keymap is a set of bindings indexed by normalized stroke.
// A Keymap is not safe for concurrent mutation.
type Keymap struct {
	Name     string
	bindings map[key.Stroke]Binding
}

// New creates an empty keymap.
func New(name string) *Keymap {
	return &Keymap{
		Name:     name,
		bindings: make(map[key.Stroke]Binding),
	}
}

// Add adds b, replacing any binding for the same stroke.
func (km *Keymap) Add(b Binding) error {
	s, err := key.Parse(b.Keys)
	if err != nil {
		return fmt.Errorf("keymap %s: %w", km.Name, err)
	}
	if strings.TrimSpace(b.Action) == "" {
		return fmt.Errorf("keymap %s: empty action for %q", km.Name, b.Keys)
	}
	b.Keys = s.String()
	km.bindings[s] = b
	return nil
}

// Bind maps the key specification keys to action.
func (km *Keymap) Bind(keys, action string) error {
	return km.Add(Binding{Keys: keys, Action: action})
}

// Unbind removes the binding for keys. It reports whether one existed.
func (km *Keymap) Unbind(keys string) (bool, error) {
	s, err := key.Parse(keys)
	if err != nil {
		return false, err
	}
	_, ok := km.bindings[s]
	delete(km.bindings, s)
	return ok, nil
}

// Lookup returns the binding for s.
func (km *Keymap) Lookup(s key.Stroke) (Binding, bool) {
	b, ok := km.bindings[s.Normalize()]
	return b, ok
}

// Len returns the number of bindings.
func (km *Keymap) Len() int {
	return len(km.bindings)
}

// Bindings returns all bindings sorted by key specification.
func (km *Keymap) Bindings() []Binding {
	out := slices.Collect(maps.Values(km.bindings))
	slices.SortFunc(out, func(a, b Binding) int {
		return strings.Compare(a.Keys, b.Keys)
	})
	return out
}

// Clone returns an independent copy of the keymap.
func (km *Keymap) Clone() *Keymap {
	return &Keymap{
		Name:     km.Name,
		bindings: maps.Clone(km.bindings),
	}
}

// Merge applies overrides, a table from key specification to action name,
// on top of the keymap. The action "none" removes a binding. On error the
// keymap is left unchanged.
func (km *Keymap) Merge(overrides map[string]string, source string) error {
	next := km.Clone()
	specs := slices.Sorted(maps.Keys(overrides))
	for _, spec := range specs {
		action := overrides[spec]
		if action == "none" {
			if _, err := next.Unbind(spec); err != nil {
				return fmt.Errorf("keymap %s: %w", km.Name, err)
			}
			continue
		}
		if err := next.Add(Binding{Keys: spec, Action: action, Source: source}); err != nil {
			return err
		}
	}
	km.bindings = next.bindings
	return nil
}
