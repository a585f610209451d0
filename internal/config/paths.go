package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the tool's config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Dir(tool string) string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", tool)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, tool)
}

// Path returns the tool's config file path.
func Path(tool string) string {
	return filepath.Join(Dir(tool), "config.toml")
}

// ThemesDir returns the tool's user themes directory.
func ThemesDir(tool string) string {
	return filepath.Join(Dir(tool), "themes")
}

// CacheDir returns the tool's cache directory, creating it if needed.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache.
func CacheDir(tool string) string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", tool)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(cacheHome, tool)
	_ = os.MkdirAll(dir, 0755)
	return dir
}

// ExpandHome expands a leading ~/ in a user-supplied path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
