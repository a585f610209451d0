package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	applied []string
}

func (s *recordingSink) ApplyStylesheet(css string) {
	s.applied = append(s.applied, css)
}

func writeTheme(t *testing.T, dir, name, css string) string {
	t.Helper()
	path := filepath.Join(dir, name+".css")
	require.NoError(t, os.WriteFile(path, []byte(css), 0o644))
	return path
}

func TestGetEmbeddedTheme(t *testing.T) {
	css, ok := GetEmbeddedTheme(DefaultThemeName)
	require.True(t, ok)
	assert.NotEmpty(t, css)

	_, ok = GetEmbeddedTheme("no-such-theme")
	assert.False(t, ok)
}

func TestLoaderLoadEmbedded(t *testing.T) {
	l := NewLoader(t.TempDir(), slog.Default())

	require.NoError(t, l.Load("nord"))
	require.NotNil(t, l.Current())
	assert.Equal(t, "nord", l.Current().Name)
	assert.True(t, l.Current().IsBuiltin)
}

func TestLoaderUserThemeShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "nord", ".pick-container { color: red; }")

	l := NewLoader(dir, slog.Default())
	require.NoError(t, l.Load("nord"))

	require.NotNil(t, l.Current())
	assert.False(t, l.Current().IsBuiltin)
	assert.Contains(t, l.Current().CSS, "color: red")
}

func TestLoaderUnknownFallsBackToDefault(t *testing.T) {
	l := NewLoader(t.TempDir(), slog.Default())

	require.NoError(t, l.Load("does-not-exist"))
	require.NotNil(t, l.Current())
	assert.Equal(t, DefaultThemeName, l.Current().Name)
}

func TestLoaderLoadByPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "custom", ".pick-search { padding: 2px; }")

	l := NewLoader(t.TempDir(), slog.Default())
	require.NoError(t, l.Load(path))

	require.NotNil(t, l.Current())
	assert.Equal(t, path, l.Current().Path)
	assert.Contains(t, l.Current().CSS, "padding: 2px")
}

func TestLoaderApply(t *testing.T) {
	l := NewLoader(t.TempDir(), slog.Default())
	sink := &recordingSink{}
	l.SetSink(sink)

	require.NoError(t, l.Load(DefaultThemeName))
	l.Apply()

	require.Len(t, sink.applied, 1)
	assert.Equal(t, l.Current().CSS, sink.applied[0])
}

func TestLoaderList(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "zebra", "")
	writeTheme(t, dir, "nord", "") // shadows the builtin

	l := NewLoader(dir, slog.Default())
	names := l.List()

	assert.Contains(t, names, "zebra")
	assert.Contains(t, names, "nord")
	assert.Contains(t, names, DefaultThemeName)

	seen := map[string]int{}
	for _, n := range names {
		seen[n]++
	}
	assert.Equal(t, 1, seen["nord"], "shadowed theme listed once")
}

func TestLoaderHas(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "mine", "")

	l := NewLoader(dir, slog.Default())
	assert.True(t, l.Has("mine"))
	assert.True(t, l.Has(DefaultThemeName))
	assert.False(t, l.Has("nope"))
}

func TestThemeReload(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "live", "a")

	theme, err := NewTheme("live", path)
	require.NoError(t, err)
	assert.Equal(t, "a", theme.CSS)

	changed, err := theme.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged file should not report a change")

	// Push the mtime forward; coarse filesystem timestamps would otherwise
	// hide a same-second rewrite.
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	changed, err = theme.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "b", theme.CSS)
}

func TestThemeReloadBuiltinIsNoop(t *testing.T) {
	css, ok := GetEmbeddedTheme(DefaultThemeName)
	require.True(t, ok)
	theme := &Theme{Name: DefaultThemeName, CSS: css, IsBuiltin: true}

	changed, err := theme.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestWatcherSkipsUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "live", "a")

	theme, err := NewTheme("live", path)
	require.NoError(t, err)

	w, err := NewWatcher(theme, slog.Default())
	require.NoError(t, err)
	defer w.Stop()

	fired := make(chan string, 1)
	w.SetChangeCallback(func(css string) { fired <- css })
	require.NoError(t, w.Start())

	w.handleEvent(filepath.Join(dir, "other.css"))
	select {
	case <-fired:
		t.Fatal("callback fired for unrelated file")
	default:
	}
}
