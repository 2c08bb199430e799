// Package shortcut maps key presses to history actions.
//
// Ctrl or Meta with Z undoes; Ctrl or Meta with Y, or with Shift+Z, redoes.
// Presses that land in an editable control are left alone so text inputs
// keep their own undo.
package shortcut

import "strings"

// Action is the history command a key press maps to.
type Action int

const (
	None Action = iota
	Undo
	Redo
)

func (a Action) String() string {
	switch a {
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	default:
		return "none"
	}
}

// KeyEvent is a single key press as reported by the host.
type KeyEvent struct {
	Key      string
	Ctrl     bool
	Meta     bool
	Shift    bool
	Editable bool // focus is inside a text field or other editable control
}

// Resolve returns the action for ev.
func Resolve(ev KeyEvent) Action {
	if ev.Editable || !(ev.Ctrl || ev.Meta) {
		return None
	}
	switch strings.ToLower(ev.Key) {
	case "z":
		if ev.Shift {
			return Redo
		}
		return Undo
	case "y":
		return Redo
	default:
		return None
	}
}

// Parse reads a chord such as "ctrl+z", "cmd+shift+z" or "meta+y".
// Unknown modifiers make the chord resolve to None.
func Parse(chord string) KeyEvent {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	ev := KeyEvent{Key: parts[len(parts)-1]}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "control":
			ev.Ctrl = true
		case "meta", "cmd", "command":
			ev.Meta = true
		case "shift":
			ev.Shift = true
		default:
			return KeyEvent{}
		}
	}
	return ev
}
