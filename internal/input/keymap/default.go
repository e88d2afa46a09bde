package keymap

// DefaultKeymap returns the built-in bindings. Printable characters need no
// binding; they insert themselves.
func DefaultKeymap() *Keymap {
	km := New("default")
	for _, b := range defaultBindings {
		b.Source = "default"
		if err := km.Add(b); err != nil {
			panic("invalid default binding: " + err.Error())
		}
	}
	return km
}

var defaultBindings = []Binding{
	// Movement
	{Keys: "up", Action: "move_up", Description: "Move up"},
	{Keys: "down", Action: "move_down", Description: "Move down"},
	{Keys: "left", Action: "move_left", Description: "Move left"},
	{Keys: "right", Action: "move_right", Description: "Move right"},

	// Editing
	{Keys: "enter", Action: "newline", Description: "Split line"},
	{Keys: "backspace", Action: "backspace", Description: "Delete previous character"},
	{Keys: "tab", Action: "insert:tab", Description: "Insert tab"},

	// Session
	{Keys: "ctrl+q", Action: "quit", Description: "Quit"},
	{Keys: "ctrl+s", Action: "save", Description: "Save file"},
	{Keys: "ctrl+c", Action: "redraw", Description: "Clear and redraw screen"},
	{Keys: "ctrl+l", Action: "redraw", Description: "Clear and redraw screen"},
}
