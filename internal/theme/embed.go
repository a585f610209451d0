package theme

import (
	"embed"
	"io/fs"
	"strings"
)

// EmbeddedThemes contains the bundled theme CSS files.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the built-in default theme.
const DefaultThemeName = "default"

// GetEmbeddedTheme retrieves a bundled theme by name.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns the names of all bundled themes.
func ListEmbeddedThemes() []string {
	var themes []string
	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return themes
	}
	for _, entry := range entries {
		themes = append(themes, strings.TrimSuffix(entry.Name(), ".css"))
	}
	return themes
}
