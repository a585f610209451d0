// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"wlpick/internal/keybind"
)

// Anchor names the screen edge or point the popup attaches to. Placement
// itself is the window collaborator's job; the engine only carries the value.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTop         Anchor = "top"
	AnchorTopLeft     Anchor = "top_left"
	AnchorTopRight    Anchor = "top_right"
	AnchorBottom      Anchor = "bottom"
	AnchorBottomLeft  Anchor = "bottom_left"
	AnchorBottomRight Anchor = "bottom_right"
	AnchorCursor      Anchor = "cursor"
)

// ParseAnchor normalizes an anchor string, defaulting to center.
func ParseAnchor(s string) Anchor {
	switch strings.ReplaceAll(strings.ToLower(s), "-", "_") {
	case "top":
		return AnchorTop
	case "top_left", "topleft":
		return AnchorTopLeft
	case "top_right", "topright":
		return AnchorTopRight
	case "bottom":
		return AnchorBottom
	case "bottom_left", "bottomleft":
		return AnchorBottomLeft
	case "bottom_right", "bottomright":
		return AnchorBottomRight
	case "cursor":
		return AnchorCursor
	default:
		return AnchorCenter
	}
}

// WindowConfig holds popup geometry for the window collaborator.
type WindowConfig struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Anchor       string `toml:"anchor"`
	MarginTop    int    `toml:"margin_top"`
	MarginBottom int    `toml:"margin_bottom"`
	MarginLeft   int    `toml:"margin_left"`
	MarginRight  int    `toml:"margin_right"`
}

// StyleConfig holds theme settings.
type StyleConfig struct {
	// Theme is a bundled/user theme name, or a path to a css file.
	Theme string `toml:"theme"`
}

// BehaviorConfig holds behavior flags. The clipboard tool and the launcher
// each read their own subset.
type BehaviorConfig struct {
	VimMode bool `toml:"vim_mode"`

	// Clipboard tool
	MaxItems      int  `toml:"max_items"`
	CloseOnSelect bool `toml:"close_on_select"`
	NotifyOnCopy  bool `toml:"notify_on_copy"`

	// Launcher
	Terminal   string `toml:"terminal"`
	Calculator bool   `toml:"calculator"`
}

// Config is one tool's configuration snapshot. It is immutable once loaded;
// toggle and reload replace it wholesale.
type Config struct {
	Window   WindowConfig      `toml:"window"`
	Style    StyleConfig       `toml:"style"`
	Behavior BehaviorConfig    `toml:"behavior"`
	Keybinds map[string]string `toml:"keybinds"`
}

// DefaultClip returns the clipboard tool defaults.
func DefaultClip() *Config {
	return &Config{
		Window: WindowConfig{Width: 580, Height: 520, Anchor: string(AnchorCenter)},
		Style:  StyleConfig{Theme: "default"},
		Behavior: BehaviorConfig{
			CloseOnSelect: true,
		},
		Keybinds: make(map[string]string),
	}
}

// DefaultLaunch returns the launcher defaults.
func DefaultLaunch() *Config {
	return &Config{
		Window: WindowConfig{Width: 580, Height: 400, Anchor: string(AnchorCenter)},
		Style:  StyleConfig{Theme: "default"},
		Behavior: BehaviorConfig{
			CloseOnSelect: true,
			Terminal:      "kitty",
			Calculator:    true,
		},
		Keybinds: make(map[string]string),
	}
}

// Load reads the tool's config file over the provided defaults. A missing
// file yields the defaults unchanged; a malformed file is an error.
func Load(tool string, defaults *Config, path string) (*Config, error) {
	if path == "" {
		path = Path(tool)
	}

	cfg := *defaults

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// KeybindTable builds the resolver table: defaults overridden per action by
// the config's chord specs. An action whose spec parses to zero chords keeps
// its default binding. A chord claimed by two actions is a config error.
func (c *Config) KeybindTable() (*keybind.Table, error) {
	table := keybind.DefaultTable()

	// Deterministic application order.
	names := make([]string, 0, len(c.Keybinds))
	for name := range c.Keybinds {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := keybind.ParseAction(name)
		if !ok {
			continue
		}
		table.Bind(action, keybind.ParseChords(c.Keybinds[name]))
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("keybinds: %w", err)
	}
	return table, nil
}

// Save writes the configuration, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
