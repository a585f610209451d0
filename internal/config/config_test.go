package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wlpick/internal/keybind"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("wlpick-clip", DefaultClip(), filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 580, cfg.Window.Width)
	assert.Equal(t, 520, cfg.Window.Height)
	assert.True(t, cfg.Behavior.CloseOnSelect)
	assert.False(t, cfg.Behavior.VimMode)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 800
anchor = "top-right"

[behavior]
vim_mode = true
max_items = 100
`)

	cfg, err := Load("wlpick-clip", DefaultClip(), path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 520, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, AnchorTopRight, ParseAnchor(cfg.Window.Anchor))
	assert.True(t, cfg.Behavior.VimMode)
	assert.Equal(t, 100, cfg.Behavior.MaxItems)
	assert.True(t, cfg.Behavior.CloseOnSelect)
}

func TestLoad_LaunchDefaults(t *testing.T) {
	cfg, err := Load("wlpick-launch", DefaultLaunch(), filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "kitty", cfg.Behavior.Terminal)
	assert.True(t, cfg.Behavior.Calculator)
	assert.Equal(t, 400, cfg.Window.Height)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[window\nwidth=")
	_, err := Load("wlpick-clip", DefaultClip(), path)
	assert.Error(t, err)
}

func TestKeybindTable_Overrides(t *testing.T) {
	path := writeConfig(t, `
[keybinds]
close = "q ctrl+q"
select = "Return"
`)
	cfg, err := Load("wlpick-clip", DefaultClip(), path)
	require.NoError(t, err)

	table, err := cfg.KeybindTable()
	require.NoError(t, err)

	a, ok := table.Match(keybind.KeyForRune('q'), 0)
	require.True(t, ok)
	assert.Equal(t, keybind.ActionClose, a)

	// KP_Enter default was replaced by the explicit override.
	_, ok = table.Match(keybind.KeyKPEnter, 0)
	assert.False(t, ok)
}

func TestKeybindTable_UnparseableSpecKeepsDefault(t *testing.T) {
	path := writeConfig(t, `
[keybinds]
close = "no_such_key"
`)
	cfg, err := Load("wlpick-clip", DefaultClip(), path)
	require.NoError(t, err)

	table, err := cfg.KeybindTable()
	require.NoError(t, err)

	a, ok := table.Match(keybind.KeyEscape, 0)
	require.True(t, ok)
	assert.Equal(t, keybind.ActionClose, a)
}

func TestKeybindTable_UnknownActionIgnored(t *testing.T) {
	path := writeConfig(t, `
[keybinds]
fly = "f"
`)
	cfg, err := Load("wlpick-clip", DefaultClip(), path)
	require.NoError(t, err)

	_, err = cfg.KeybindTable()
	assert.NoError(t, err)
}

func TestKeybindTable_DuplicateChordRejected(t *testing.T) {
	path := writeConfig(t, `
[keybinds]
close = "Escape"
clear_search = "Escape"
`)
	cfg, err := Load("wlpick-clip", DefaultClip(), path)
	require.NoError(t, err)

	_, err = cfg.KeybindTable()
	assert.Error(t, err)
}

func TestParseAnchor(t *testing.T) {
	assert.Equal(t, AnchorCenter, ParseAnchor(""))
	assert.Equal(t, AnchorCenter, ParseAnchor("weird"))
	assert.Equal(t, AnchorTopLeft, ParseAnchor("top-left"))
	assert.Equal(t, AnchorTopLeft, ParseAnchor("TopLeft"))
	assert.Equal(t, AnchorCursor, ParseAnchor("cursor"))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")

	cfg := DefaultLaunch()
	cfg.Behavior.Terminal = "foot"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load("wlpick-launch", DefaultLaunch(), path)
	require.NoError(t, err)
	assert.Equal(t, "foot", loaded.Behavior.Terminal)
}
