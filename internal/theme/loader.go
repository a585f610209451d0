package theme

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Loader resolves and loads themes with hot-reload support.
//
// Resolution order for a plain theme name:
//  1. User themes directory (~/.config/<tool>/themes/)
//  2. Embedded themes
//
// A value containing a path separator or a .css suffix is loaded as a file
// path directly.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	themesDir string
	current   *Theme
	watcher   *Watcher
	sink      StyleSink
}

// NewLoader creates a loader over the given user themes directory.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		themesDir: themesDir,
	}
}

// SetSink sets the sink that receives stylesheet content on Apply and on
// hot-reload.
func (l *Loader) SetSink(sink StyleSink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = sink
}

// Load resolves and loads the named theme. Falls back to the embedded
// default when the name cannot be resolved.
func (l *Loader) Load(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	// Explicit css path.
	if strings.ContainsRune(name, filepath.Separator) || strings.HasSuffix(name, ".css") {
		t, err := NewTheme(strings.TrimSuffix(filepath.Base(name), ".css"), name)
		if err != nil {
			l.logger.Warn("failed to load theme file, using default", "path", name, "error", err)
			return l.loadEmbedded(DefaultThemeName)
		}
		l.setTheme(t)
		return nil
	}

	// User theme overrides a bundled one of the same name.
	if l.themesDir != "" {
		path := filepath.Join(l.themesDir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err == nil {
				l.setTheme(t)
				l.logger.Info("loaded user theme", "name", name, "path", path)
				return nil
			}
			l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
		}
	}

	return l.loadEmbedded(name)
}

func (l *Loader) loadEmbedded(name string) error {
	css, found := GetEmbeddedTheme(name)
	if !found {
		if name != DefaultThemeName {
			l.logger.Warn("unknown theme, using default", "theme", name)
			return l.loadEmbedded(DefaultThemeName)
		}
		return fmt.Errorf("embedded theme %q missing", name)
	}
	l.setTheme(&Theme{Name: name, CSS: css, IsBuiltin: true})
	l.logger.Info("loaded bundled theme", "name", name)
	return nil
}

// setTheme swaps the current theme and retargets the watcher. Callers hold
// the lock.
func (l *Loader) setTheme(t *Theme) {
	l.current = t
	if l.watcher != nil {
		l.watcher.SetTheme(t)
	}
}

// Current returns the loaded theme, or nil before the first Load.
func (l *Loader) Current() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Apply pushes the current stylesheet to the sink.
func (l *Loader) Apply() {
	l.mu.RLock()
	sink, t := l.sink, l.current
	l.mu.RUnlock()

	if sink != nil && t != nil {
		sink.ApplyStylesheet(t.CSS)
	}
}

// StartHotReload begins watching the current theme file and reapplies on
// change. Builtin themes have no file and are not watched.
func (l *Loader) StartHotReload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		return nil
	}

	w, err := NewWatcher(l.current, l.logger)
	if err != nil {
		return err
	}
	w.SetChangeCallback(func(css string) {
		l.mu.RLock()
		sink := l.sink
		l.mu.RUnlock()
		if sink != nil {
			sink.ApplyStylesheet(css)
		}
	})
	if err := w.Start(); err != nil {
		return err
	}
	l.watcher = w
	return nil
}

// StopHotReload stops the file watcher.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// List returns all available theme names, user themes first, deduplicated.
func (l *Loader) List() []string {
	seen := make(map[string]bool)
	var names []string

	if l.themesDir != "" {
		if entries, err := os.ReadDir(l.themesDir); err == nil {
			for _, e := range entries {
				if strings.HasSuffix(e.Name(), ".css") {
					name := strings.TrimSuffix(e.Name(), ".css")
					if !seen[name] {
						seen[name] = true
						names = append(names, name)
					}
				}
			}
		}
	}

	for _, name := range ListEmbeddedThemes() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

// Has reports whether a theme name resolves to a user or bundled theme.
func (l *Loader) Has(name string) bool {
	for _, n := range l.List() {
		if n == name {
			return true
		}
	}
	return false
}
