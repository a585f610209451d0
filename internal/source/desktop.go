package source

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"wlpick/internal/config"
	"wlpick/internal/rank"
)

// DesktopEntry holds the few fields the launcher ranks and executes on.
type DesktopEntry struct {
	Name        string
	Exec        string
	Icon        string
	Description string
	Terminal    bool
	Path        string
}

// DataDirs returns the application directories to scan, user dirs first so
// their entries win deduplication.
func DataDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local/share/applications"))
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir != "" {
			dirs = append(dirs, filepath.Join(dir, "applications"))
		}
	}
	return dirs
}

// execFieldCodes are the desktop-entry placeholders stripped from Exec
// lines before handing them to the shell.
var execFieldCodes = []string{"%f", "%F", "%u", "%U", "%c", "%k", "%i", "%d", "%D"}

// ParseDesktopEntry parses the [Desktop Entry] group of a .desktop file.
// Entries without a Name or Exec, or marked NoDisplay/Hidden, are skipped.
func ParseDesktopEntry(content string) (DesktopEntry, bool) {
	var e DesktopEntry
	var noDisplay, hidden, inGroup bool

	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "[") {
			inGroup = t == "[Desktop Entry]"
			continue
		}
		if !inGroup {
			continue
		}
		key, val, ok := strings.Cut(t, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "Name":
			if e.Name == "" {
				e.Name = val
			}
		case "Exec":
			e.Exec = val
		case "Icon":
			e.Icon = val
		case "Comment", "GenericName":
			if e.Description == "" {
				e.Description = val
			}
		case "Terminal":
			e.Terminal = strings.EqualFold(val, "true")
		case "NoDisplay":
			noDisplay = strings.EqualFold(val, "true")
		case "Hidden":
			hidden = strings.EqualFold(val, "true")
		}
	}

	if e.Name == "" || e.Exec == "" || noDisplay || hidden {
		return DesktopEntry{}, false
	}
	for _, code := range execFieldCodes {
		e.Exec = strings.ReplaceAll(e.Exec, code, "")
	}
	e.Exec = strings.TrimSpace(e.Exec)
	return e, true
}

// LaunchSource scans .desktop files and launches the selected application.
// It owns the per-daemon usage counter that feeds the fuzzy ranking.
type LaunchSource struct {
	logger   *slog.Logger
	terminal string
	dataDirs []string
	usage    *rank.UsageCounter
	entries  map[string]DesktopEntry // keyed by candidate ID (file path)
}

// NewLaunchSource creates a launcher source. terminal is the emulator used
// for Terminal=true entries.
func NewLaunchSource(terminal string, logger *slog.Logger) *LaunchSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &LaunchSource{
		logger:   logger,
		terminal: terminal,
		dataDirs: DataDirs(),
		usage:    rank.NewUsageCounter(),
		entries:  make(map[string]DesktopEntry),
	}
}

// SetConfig picks up the terminal emulator from a reloaded config snapshot.
func (s *LaunchSource) SetConfig(cfg *config.Config) {
	s.terminal = cfg.Behavior.Terminal
}

// Fetch scans the XDG data dirs for desktop entries, deduplicated by name
// and sorted case-insensitively. Usage counts are annotated for ranking.
func (s *LaunchSource) Fetch() ([]rank.Candidate, error) {
	seen := make(map[string]bool)
	s.entries = make(map[string]DesktopEntry)
	var list []DesktopEntry

	for _, dir := range s.dataDirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			e, ok := ParseDesktopEntry(string(content))
			if !ok || seen[e.Name] {
				return nil
			}
			seen[e.Name] = true
			e.Path = path
			list = append(list, e)
			return nil
		})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})

	candidates := make([]rank.Candidate, 0, len(list))
	for _, e := range list {
		s.entries[e.Path] = e
		candidates = append(candidates, rank.Candidate{
			ID:        e.Path,
			Primary:   e.Name,
			Secondary: e.Description,
		})
	}
	s.usage.Annotate(candidates)
	s.logger.Debug("loaded desktop entries", "count", len(candidates))
	return candidates, nil
}

// Delete is not supported for the launcher.
func (s *LaunchSource) Delete(rank.Candidate) error {
	return fmt.Errorf("launcher entries cannot be deleted")
}

// Execute launches the application behind the candidate, or copies a
// calculator result to the clipboard. The entry lookup and usage bump run
// on the caller's goroutine, the same one that calls Fetch; only the
// spawned process outlives the call.
func (s *LaunchSource) Execute(c rank.Candidate) error {
	if c.ID == "calc" {
		copyCmd := exec.Command("wl-copy")
		copyCmd.Stdin = strings.NewReader(c.Primary)
		if err := copyCmd.Start(); err != nil {
			return fmt.Errorf("wl-copy: %w", err)
		}
		go copyCmd.Wait()
		return nil
	}

	e, ok := s.entries[c.ID]
	if !ok {
		return fmt.Errorf("unknown desktop entry %q", c.ID)
	}
	s.usage.Bump(e.Name)
	s.logger.Info("launching application", "name", e.Name, "exec", e.Exec)

	var cmd *exec.Cmd
	if e.Terminal {
		cmd = exec.Command(s.terminal, "-e", "sh", "-c", e.Exec)
	} else {
		cmd = exec.Command("sh", "-c", e.Exec)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", e.Name, err)
	}
	go cmd.Wait()
	return nil
}

// Annotate refreshes usage counts on an existing candidate list so ranking
// picks up a bump without a rescan.
func (s *LaunchSource) Annotate(candidates []rank.Candidate) {
	s.usage.Annotate(candidates)
}

// Usage exposes the counter so a front-end can seed or inspect it.
func (s *LaunchSource) Usage() *rank.UsageCounter { return s.usage }
