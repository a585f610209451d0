package keybind

import "fmt"

// Table maps actions to their ordered chord lists. Chord order within an
// action preserves config insertion order; multiple chords per action are
// allowed (Return and KP_Enter both select by default).
type Table struct {
	binds map[Action][]Chord
}

// DefaultTable returns the built-in bindings.
func DefaultTable() *Table {
	return &Table{binds: map[Action][]Chord{
		ActionSelect: {
			{Key: KeyReturn},
			{Key: KeyKPEnter},
		},
		ActionDelete: {
			{Key: KeyDelete},
		},
		ActionClearSearch: {
			{Key: KeyForRune('u'), Mods: ModCtrl},
		},
		ActionClose: {
			{Key: KeyEscape},
		},
		ActionNext: {
			{Key: KeyDown},
			{Key: KeyTab},
		},
		ActionPrev: {
			{Key: KeyUp},
			{Key: KeyTab, Mods: ModShift},
		},
		ActionPageDown: {
			{Key: KeyPageDown},
		},
		ActionPageUp: {
			{Key: KeyPageUp},
		},
		ActionFirst: {
			{Key: KeyHome},
		},
		ActionLast: {
			{Key: KeyEnd},
		},
	}}
}

// Bind replaces the chord list for an action. An empty chord list keeps the
// existing binding untouched.
func (t *Table) Bind(action Action, chords []Chord) {
	if len(chords) == 0 {
		return
	}
	t.binds[action] = chords
}

// Chords returns the chord list bound to an action.
func (t *Table) Chords(action Action) []Chord {
	return t.binds[action]
}

// Match resolves a live key event to the first action with an exactly
// matching chord. Actions are scanned in a fixed order so resolution is
// deterministic.
func (t *Table) Match(key Key, mods Modifier) (Action, bool) {
	masked := mods & RelevantMods
	for _, action := range actionOrder {
		for _, chord := range t.binds[action] {
			if chord.Key == key && chord.Mods == masked {
				return action, true
			}
		}
	}
	return 0, false
}

// Validate rejects tables where one chord is claimed by two actions. Such a
// config would make resolution order-dependent, so it is refused at load time.
func (t *Table) Validate() error {
	claimed := make(map[Chord]Action)
	for _, action := range actionOrder {
		for _, chord := range t.binds[action] {
			if prev, ok := claimed[chord]; ok {
				return fmt.Errorf("chord bound to both %q and %q", prev, action)
			}
			claimed[chord] = action
		}
	}
	return nil
}
