// Package source supplies candidates and payload execution for the two
// tools: clipboard history via cliphist and desktop entries for the
// launcher. Fetch failures yield empty lists, never fatal errors.
package source

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"wlpick/internal/config"
	"wlpick/internal/rank"
)

// Notifier posts a desktop notification. Implemented by internal/notify;
// nil disables notifications.
type Notifier interface {
	Notify(summary, body string)
}

const binaryDataMarker = "[[ binary data"

// ClipEntry is one parsed cliphist list line.
type ClipEntry struct {
	Raw     string // the full line, fed back to cliphist decode/delete
	ID      string
	Preview string
	IsImage bool
}

// parseClipLine splits a cliphist list line into id and preview. Lines
// without a tab keep the whole line in both fields.
func parseClipLine(line string) ClipEntry {
	e := ClipEntry{Raw: line, ID: line, Preview: line}
	if id, preview, ok := strings.Cut(line, "\t"); ok {
		e.ID = strings.TrimSpace(id)
		e.Preview = preview
	}
	e.IsImage = strings.Contains(e.Preview, binaryDataMarker)
	return e
}

// ContentType classifies an entry as IMAGE, URL or TEXT.
func (e ClipEntry) ContentType() string {
	if e.IsImage {
		return "IMAGE"
	}
	p := strings.TrimSpace(e.Preview)
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return "URL"
	}
	return "TEXT"
}

var imageFormats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true, "webp": true,
}

// ParseImageMeta extracts dimensions and format from a binary-data preview,
// e.g. "[[ binary data 1.2 MiB png 800x600 ]]" -> "800x600 -- PNG".
func ParseImageMeta(preview string) (string, bool) {
	inner := strings.TrimPrefix(preview, binaryDataMarker)
	inner = strings.TrimSuffix(inner, "]]")

	var dims, format string
	for _, part := range strings.Fields(inner) {
		if format == "" && imageFormats[strings.ToLower(part)] {
			format = strings.ToUpper(part)
			continue
		}
		if strings.ContainsRune(part, 'x') && isDimensions(part) {
			dims = part
		}
	}

	switch {
	case dims != "" && format != "":
		return dims + " -- " + format, true
	case dims != "":
		return dims, true
	case format != "":
		return format, true
	}
	return "", false
}

func isDimensions(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != 'x' {
			return false
		}
	}
	return true
}

// ClipSource fetches clipboard history from cliphist and implements the
// session's Source and Executor over it.
type ClipSource struct {
	logger   *slog.Logger
	maxItems int
	notify   bool
	notifier Notifier
}

// NewClipSource creates a clipboard source. maxItems <= 0 means unlimited;
// notifier may be nil.
func NewClipSource(maxItems int, notifyOnCopy bool, notifier Notifier, logger *slog.Logger) *ClipSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClipSource{
		logger:   logger,
		maxItems: maxItems,
		notify:   notifyOnCopy,
		notifier: notifier,
	}
}

// SetConfig picks up the behavior flags from a reloaded config snapshot.
// Called on the session goroutine, like Fetch and Execute.
func (s *ClipSource) SetConfig(cfg *config.Config) {
	s.maxItems = cfg.Behavior.MaxItems
	s.notify = cfg.Behavior.NotifyOnCopy
}

// Fetch lists the clipboard history. The candidate ID carries the raw line
// so decode and delete can reconstruct the entry.
func (s *ClipSource) Fetch() ([]rank.Candidate, error) {
	out, err := exec.Command("cliphist", "list").Output()
	if err != nil {
		return nil, fmt.Errorf("cliphist list: %w", err)
	}

	var candidates []rank.Candidate
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		if s.maxItems > 0 && len(candidates) >= s.maxItems {
			break
		}
		e := parseClipLine(line)
		secondary := e.ContentType()
		if e.IsImage {
			if meta, ok := ParseImageMeta(e.Preview); ok {
				secondary = meta
			}
		}
		candidates = append(candidates, rank.Candidate{
			ID:        e.Raw,
			Primary:   e.Preview,
			Secondary: secondary,
		})
	}
	return candidates, nil
}

// Execute copies the entry back to the clipboard: cliphist decode piped
// into wl-copy with the right mime type. The pipeline runs on its own
// goroutine so the session loop never waits on cliphist; failures are
// logged, not returned.
func (s *ClipSource) Execute(c rank.Candidate) error {
	e := parseClipLine(c.ID)
	notify := s.notify
	notifier := s.notifier
	logger := s.logger

	go func() {
		decode := exec.Command("cliphist", "decode")
		decode.Stdin = strings.NewReader(e.Raw)
		payload, err := decode.Output()
		if err != nil {
			logger.Warn("cliphist decode failed", "error", err)
			return
		}

		mime := "text/plain"
		if e.IsImage {
			mime = "image/png"
		}
		copyCmd := exec.Command("wl-copy", "--type", mime)
		copyCmd.Stdin = strings.NewReader(string(payload))
		if err := copyCmd.Run(); err != nil {
			logger.Warn("wl-copy failed", "error", err)
			return
		}

		if notify && notifier != nil {
			if e.IsImage {
				notifier.Notify("wlpick-clip", "Image copied")
			} else {
				notifier.Notify("wlpick-clip", "Copied: "+truncate(e.Preview, 50))
			}
		}
	}()
	return nil
}

// Delete removes the entry from the history.
func (s *ClipSource) Delete(c rank.Candidate) error {
	e := parseClipLine(c.ID)
	del := exec.Command("cliphist", "delete")
	del.Stdin = strings.NewReader(e.Raw)
	if err := del.Run(); err != nil {
		return fmt.Errorf("cliphist delete: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
