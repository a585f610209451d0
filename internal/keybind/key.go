package keybind

// Key is a logical keyboard key. Values follow the X11 keysym encoding that
// Wayland compositors and GTK both report, so a front-end can pass key events
// through without translation. Printable ASCII keys equal their codepoint.
type Key uint32

// Named keys used by bindings and the modal input layer.
const (
	KeySpace     Key = 0x0020
	KeyBackSpace Key = 0xff08
	KeyTab       Key = 0xff09
	KeyReturn    Key = 0xff0d
	KeyEscape    Key = 0xff1b
	KeyHome      Key = 0xff50
	KeyLeft      Key = 0xff51
	KeyUp        Key = 0xff52
	KeyRight     Key = 0xff53
	KeyDown      Key = 0xff54
	KeyPageUp    Key = 0xff55
	KeyPageDown  Key = 0xff56
	KeyEnd       Key = 0xff57
	KeyKPEnter   Key = 0xff8d
	KeyDelete    Key = 0xffff
)

// KeyForRune returns the key for a printable character.
func KeyForRune(r rune) Key {
	return Key(r)
}

// Rune returns the printable ASCII character for the key, if it has one.
// Mirrors how the GDK layer exposes unicode values for vim-style sequences.
func (k Key) Rune() (rune, bool) {
	if k > 0x20 && k < 0x7f {
		return rune(k), true
	}
	return 0, false
}

// Modifier is a bitset of the modifier keys relevant to chord matching.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// RelevantMods masks out lock-type modifiers (CapsLock, NumLock) that a live
// event may carry but a chord never specifies.
const RelevantMods = ModCtrl | ModShift | ModAlt | ModSuper

// Has reports whether all modifiers in mask are set.
func (m Modifier) Has(mask Modifier) bool {
	return m&mask == mask
}

// keyNames is the fixed table of named key tokens accepted in binding specs,
// with common aliases.
var keyNames = map[string]Key{
	"return":    KeyReturn,
	"enter":     KeyReturn,
	"kp_enter":  KeyKPEnter,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"tab":       KeyTab,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"backspace": KeyBackSpace,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"page_up":   KeyPageUp,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"page_down": KeyPageDown,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"space":     KeySpace,
}
