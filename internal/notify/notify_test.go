package notify

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitWindow(t *testing.T) {
	c := NewClient("wlpick", slog.Default())
	c.SetMinInterval(time.Minute)

	c.lastSent["Copied"] = time.Now()
	count := len(c.lastSent)
	c.Notify("Copied", "again")
	assert.Equal(t, count, len(c.lastSent), "duplicate inside window is dropped")
}

func TestDistinctSummariesTracked(t *testing.T) {
	c := NewClient("wlpick", slog.Default())
	c.lastSent["a"] = time.Now()

	// A different summary is not suppressed by a's window. The send itself
	// may fail without a session bus; only the bookkeeping is asserted.
	c.Notify("b", "")
	assert.Contains(t, c.lastSent, "b")
}
