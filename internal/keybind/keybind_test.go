package keybind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChords(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		expected []Chord
	}{
		{"single named key", "Return", []Chord{{Key: KeyReturn}}},
		{"alias", "esc", []Chord{{Key: KeyEscape}}},
		{"printable char", "u", []Chord{{Key: KeyForRune('u')}}},
		{"modifier combo", "ctrl+u", []Chord{{Key: KeyForRune('u'), Mods: ModCtrl}}},
		{"multiple modifiers", "ctrl+shift+Tab", []Chord{{Key: KeyTab, Mods: ModCtrl | ModShift}}},
		{"multiple chords", "Return KP_Enter", []Chord{{Key: KeyReturn}, {Key: KeyKPEnter}}},
		{"alt alias mod1", "mod1+x", []Chord{{Key: KeyForRune('x'), Mods: ModAlt}}},
		{"super alias mod4", "mod4+space", []Chord{{Key: KeySpace, Mods: ModSuper}}},
		{"page aliases", "pgup pgdn", []Chord{{Key: KeyPageUp}, {Key: KeyPageDown}}},
		{"empty spec", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseChords(tt.spec))
		})
	}
}

func TestParseChords_DropsOnlyMalformedTokens(t *testing.T) {
	// Unknown key token drops that chord; the rest of the spec survives.
	chords := ParseChords("Return bogus_key ctrl+u")
	assert.Equal(t, []Chord{
		{Key: KeyReturn},
		{Key: KeyForRune('u'), Mods: ModCtrl},
	}, chords)
}

func TestParseChords_IgnoresUnknownModifier(t *testing.T) {
	// Unknown modifier token is ignored, the chord itself is kept.
	chords := ParseChords("hyper+Return")
	assert.Equal(t, []Chord{{Key: KeyReturn}}, chords)
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{
		"select", "delete", "clear_search", "close",
		"next", "prev", "page_down", "page_up", "first", "last",
	} {
		a, ok := ParseAction(name)
		require.True(t, ok, name)
		assert.Equal(t, name, a.String())
	}

	_, ok := ParseAction("explode")
	assert.False(t, ok)
}

func TestTable_MatchExact(t *testing.T) {
	table := DefaultTable()

	a, ok := table.Match(KeyReturn, 0)
	require.True(t, ok)
	assert.Equal(t, ActionSelect, a)

	a, ok = table.Match(KeyKPEnter, 0)
	require.True(t, ok)
	assert.Equal(t, ActionSelect, a)

	// Shift+Tab is Prev, plain Tab is Next: modifier match is exact, not subset.
	a, ok = table.Match(KeyTab, ModShift)
	require.True(t, ok)
	assert.Equal(t, ActionPrev, a)

	a, ok = table.Match(KeyTab, 0)
	require.True(t, ok)
	assert.Equal(t, ActionNext, a)

	_, ok = table.Match(KeyReturn, ModCtrl)
	assert.False(t, ok)
}

func TestTable_MatchMasksIrrelevantModifiers(t *testing.T) {
	table := DefaultTable()

	// Bits outside the relevant set (e.g. a lock modifier a compositor might
	// report) are masked off before comparison.
	const lockBit = Modifier(1 << 6)
	a, ok := table.Match(KeyReturn, lockBit)
	require.True(t, ok)
	assert.Equal(t, ActionSelect, a)
}

func TestTable_BindOverride(t *testing.T) {
	table := DefaultTable()
	table.Bind(ActionClose, ParseChords("q ctrl+c"))

	a, ok := table.Match(KeyForRune('q'), 0)
	require.True(t, ok)
	assert.Equal(t, ActionClose, a)

	// Escape no longer bound after override.
	_, ok = table.Match(KeyEscape, 0)
	assert.False(t, ok)
}

func TestTable_BindEmptyKeepsDefault(t *testing.T) {
	table := DefaultTable()
	table.Bind(ActionClose, ParseChords("not_a_key"))

	a, ok := table.Match(KeyEscape, 0)
	require.True(t, ok)
	assert.Equal(t, ActionClose, a)
}

func TestTable_ValidateRejectsDuplicateChord(t *testing.T) {
	table := DefaultTable()
	require.NoError(t, table.Validate())

	table.Bind(ActionClose, ParseChords("Return"))
	assert.Error(t, table.Validate())
}
