// Package theme provides CSS theming for the popup windows.
package theme

import (
	"os"
	"time"
)

// StyleSink receives stylesheet content to apply. The window collaborator
// (GTK CSS provider) implements it; the TUI and tests use lightweight sinks.
type StyleSink interface {
	ApplyStylesheet(css string)
}

// Theme is a CSS theme with metadata.
type Theme struct {
	Name      string    // Theme name (without .css extension)
	Path      string    // Full path to the CSS file (empty for builtin themes)
	CSS       string    // The CSS content
	ModTime   time.Time // Last modification time
	IsBuiltin bool      // True for embedded themes
}

// NewTheme loads a theme from a CSS file.
func NewTheme(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     string(css),
		ModTime: info.ModTime(),
	}, nil
}

// Reload re-reads the theme file. Returns whether the content changed.
func (t *Theme) Reload() (bool, error) {
	if t.IsBuiltin {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	changed := string(css) != t.CSS
	t.CSS = string(css)
	t.ModTime = info.ModTime()
	return changed, nil
}
