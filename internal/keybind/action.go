// Package keybind parses key-binding specs and resolves key events to actions.
package keybind

import "strings"

// Action represents a logical command produced by a key binding.
type Action int

const (
	ActionSelect Action = iota
	ActionDelete
	ActionClearSearch
	ActionClose
	ActionNext
	ActionPrev
	ActionPageDown
	ActionPageUp
	ActionFirst
	ActionLast
)

// actionOrder lists all actions in declaration order. Match iterates this
// slice so resolution is deterministic for a given table.
var actionOrder = []Action{
	ActionSelect,
	ActionDelete,
	ActionClearSearch,
	ActionClose,
	ActionNext,
	ActionPrev,
	ActionPageDown,
	ActionPageUp,
	ActionFirst,
	ActionLast,
}

var actionNames = map[Action]string{
	ActionSelect:      "select",
	ActionDelete:      "delete",
	ActionClearSearch: "clear_search",
	ActionClose:       "close",
	ActionNext:        "next",
	ActionPrev:        "prev",
	ActionPageDown:    "page_down",
	ActionPageUp:      "page_up",
	ActionFirst:       "first",
	ActionLast:        "last",
}

// String returns the config-file name of the action.
func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAction translates a config string to an Action.
// Config strings are translated once at load time, never at dispatch time.
func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, true
		}
	}
	return 0, false
}
