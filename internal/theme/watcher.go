package theme

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the active theme file and triggers hot-reload on writes.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	theme   *Theme

	onChange func(css string)

	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher for the given theme. The theme may be nil or
// builtin; SetTheme can retarget it later.
func NewWatcher(theme *Theme, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		theme:   theme,
		done:    make(chan struct{}),
	}, nil
}

// SetChangeCallback sets the callback invoked with new CSS after a reload.
func (w *Watcher) SetChangeCallback(callback func(css string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// SetTheme switches the file being watched.
func (w *Watcher) SetTheme(theme *Theme) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.theme != nil && w.theme.Path != "" {
		_ = w.watcher.Remove(filepath.Dir(w.theme.Path))
	}
	w.theme = theme
	if w.running && theme != nil && theme.Path != "" {
		if err := w.watcher.Add(filepath.Dir(theme.Path)); err != nil {
			w.logger.Warn("failed to watch theme directory", "path", theme.Path, "error", err)
		}
	}
}

// Start begins watching. Watches the containing directory rather than the
// file itself, which survives editors that replace the file on save.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true

	if w.theme != nil && w.theme.Path != "" {
		if err := w.watcher.Add(filepath.Dir(w.theme.Path)); err != nil {
			w.running = false
			w.mu.Unlock()
			return err
		}
	}
	w.mu.Unlock()

	go w.watch()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	_ = w.watcher.Close()
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.handleEvent(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug("theme watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(path string) {
	w.mu.Lock()
	theme := w.theme
	callback := w.onChange
	w.mu.Unlock()

	if theme == nil || theme.Path == "" || filepath.Base(path) != filepath.Base(theme.Path) {
		return
	}

	changed, err := theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if changed {
		w.logger.Info("theme file changed, reloading", "path", theme.Path)
		if callback != nil {
			callback(theme.CSS)
		}
	}
}
