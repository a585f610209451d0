package keybind

import (
	"log/slog"
	"strings"
)

// Chord is a logical key plus a modifier bitset. A chord matches a live event
// iff the key is equal and the event's modifiers, masked to RelevantMods,
// equal the chord's modifiers exactly.
type Chord struct {
	Key  Key
	Mods Modifier
}

// Matches reports whether the chord matches a live key event.
func (c Chord) Matches(key Key, mods Modifier) bool {
	return c.Key == key && c.Mods == mods&RelevantMods
}

// ParseChords parses a whitespace-separated binding spec into chords.
// Each token is mod+mod+...+key. Unknown modifier tokens are ignored (logged),
// unknown key tokens drop that single chord. An empty result means the caller
// should keep the default binding for the action.
func ParseChords(spec string) []Chord {
	var chords []Chord
	for _, token := range strings.Fields(spec) {
		if c, ok := parseChord(token); ok {
			chords = append(chords, c)
		} else {
			slog.Debug("dropping unparseable key chord", "token", token)
		}
	}
	return chords
}

func parseChord(token string) (Chord, bool) {
	parts := strings.Split(token, "+")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl", "control":
			mods |= ModCtrl
		case "shift":
			mods |= ModShift
		case "alt", "mod1":
			mods |= ModAlt
		case "super", "mod4":
			mods |= ModSuper
		default:
			slog.Debug("ignoring unknown modifier", "modifier", p)
		}
	}

	key, ok := parseKey(keyPart)
	if !ok {
		return Chord{}, false
	}
	return Chord{Key: key, Mods: mods}, true
}

func parseKey(s string) (Key, bool) {
	if k, ok := keyNames[strings.ToLower(s)]; ok {
		return k, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		r := runes[0]
		if r > 0x20 && r < 0x7f {
			return KeyForRune(r), true
		}
	}
	return 0, false
}
