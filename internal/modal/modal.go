// Package modal implements the optional vim-style two-mode input layer.
package modal

import "wlpick/internal/keybind"

// Mode is the current input mode.
type Mode int

const (
	// Normal is the default mode when modal input is enabled; keys are
	// commands, not text.
	Normal Mode = iota
	// Insert passes keys through to the search field.
	Insert
)

// String returns the display name shown in the mode indicator.
func (m Mode) String() string {
	if m == Insert {
		return "INSERT"
	}
	return "NORMAL"
}

// Op is a discrete command resolved from a key press in modal input.
type Op int

const (
	OpEnterInsert Op = iota
	OpExitInsert
	OpClose
	OpDown
	OpUp
	OpTop
	OpBottom
	OpHalfPageDown
	OpHalfPageUp
	OpSelect
	OpDelete
)

// Machine tracks the mode and the single buffered key used by two-key
// sequences (gg, dd). The pending key has no wall-clock expiry: it stays
// armed until the next key press either completes the sequence or discards
// it.
type Machine struct {
	mode        Mode
	pending     rune
	allowDelete bool
}

// NewMachine returns a machine in Normal mode. allowDelete enables the dd
// sequence; the launcher runs with it disabled so a plain d falls through.
func NewMachine(allowDelete bool) *Machine {
	return &Machine{allowDelete: allowDelete}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// SetMode switches modes and clears any pending sequence key.
func (m *Machine) SetMode(mode Mode) {
	m.mode = mode
	m.pending = 0
}

// Reset returns to Normal mode with no pending key.
func (m *Machine) Reset() {
	m.SetMode(Normal)
}

// HandleKey resolves one key press. The second result is false when the key
// was not consumed: in Insert mode that means the caller routes it to the
// text field, in Normal mode the key is simply dropped (possibly arming a
// sequence).
func (m *Machine) HandleKey(key keybind.Key, mods keybind.Modifier) (Op, bool) {
	if m.mode == Insert {
		return m.handleInsert(key)
	}
	return m.handleNormal(key, mods)
}

func (m *Machine) handleInsert(key keybind.Key) (Op, bool) {
	if key == keybind.KeyEscape {
		m.SetMode(Normal)
		return OpExitInsert, true
	}
	return 0, false
}

func (m *Machine) handleNormal(key keybind.Key, mods keybind.Modifier) (Op, bool) {
	if key == keybind.KeyEscape {
		m.pending = 0
		return OpClose, true
	}
	if key == keybind.KeyReturn || key == keybind.KeyKPEnter {
		m.pending = 0
		return OpSelect, true
	}

	ch, printable := key.Rune()
	if !printable {
		m.pending = 0
		return 0, false
	}

	// Ctrl combos resolve before plain-character sequences, so Ctrl+d pages
	// even when dd is enabled.
	if mods.Has(keybind.ModCtrl) {
		m.pending = 0
		switch ch {
		case 'd':
			return OpHalfPageDown, true
		case 'u':
			return OpHalfPageUp, true
		}
		return 0, false
	}

	switch ch {
	case 'i', 'a', 'A', 'I', '/':
		m.SetMode(Insert)
		return OpEnterInsert, true
	case 'j':
		m.pending = 0
		return OpDown, true
	case 'k':
		m.pending = 0
		return OpUp, true
	case 'g':
		if m.pending == 'g' {
			m.pending = 0
			return OpTop, true
		}
		m.pending = 'g'
		return 0, false
	case 'G':
		m.pending = 0
		return OpBottom, true
	case 'd':
		if m.allowDelete {
			if m.pending == 'd' {
				m.pending = 0
				return OpDelete, true
			}
			m.pending = 'd'
			return 0, false
		}
	}

	m.pending = 0
	return 0, false
}
