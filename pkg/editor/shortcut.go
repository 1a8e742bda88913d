package editor

import "strings"

// Modifiers is the modifier key state of a key press.
type Modifiers struct {
	Ctrl  bool
	Meta  bool
	Shift bool
}

func (m Modifiers) primary() bool {
	return m.Ctrl || m.Meta
}

// Shortcut maps a key press on the canvas to a command:
//
//	Delete, Backspace          Delete the selected element
//	Ctrl/Cmd+Z                 Undo
//	Ctrl/Cmd+Shift+Z, Ctrl/Cmd+Y  Redo
//
// Key presses while a text field has focus belong to the field and map to
// nothing. key is the DOM key value ("z", "Z", "Delete", ...).
func Shortcut(key string, mods Modifiers, selected *string, textFocused bool) (Command, bool) {
	if textFocused {
		return nil, false
	}

	switch key {
	case "Delete", "Backspace":
		if selected == nil || mods.primary() {
			return nil, false
		}
		return Delete{ID: *selected}, true
	}

	if !mods.primary() {
		return nil, false
	}
	switch strings.ToLower(key) {
	case "z":
		if mods.Shift {
			return Redo{}, true
		}
		return Undo{}, true
	case "y":
		return Redo{}, true
	}
	return nil, false
}
