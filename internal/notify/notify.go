// Package notify posts desktop notifications over the session bus via
// org.freedesktop.Notifications.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"

	// defaultTimeout is how long a copy/reload notification stays up.
	defaultTimeout = 2000 // milliseconds
)

// Client sends notifications. The bus connection is established lazily and
// kept for the daemon's lifetime.
type Client struct {
	mu      sync.Mutex
	logger  *slog.Logger
	appName string
	conn    *dbus.Conn

	// Rate limiting: identical summaries are dropped inside minInterval.
	lastSent    map[string]time.Time
	minInterval time.Duration
}

// NewClient creates a notification client for the given application name.
func NewClient(appName string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger:      logger,
		appName:     appName,
		lastSent:    make(map[string]time.Time),
		minInterval: 5 * time.Second,
	}
}

// SetMinInterval sets the duplicate-suppression window.
func (c *Client) SetMinInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.minInterval = d
}

func (c *Client) connect() (*dbus.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	c.conn = conn
	return conn, nil
}

// Notify posts a transient notification. Failures are logged, never
// propagated; a missing notification daemon must not break the tool.
func (c *Client) Notify(summary, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.lastSent[summary]; ok && time.Since(last) < c.minInterval {
		c.logger.Debug("notification rate-limited", "summary", summary)
		return
	}
	c.lastSent[summary] = time.Now()

	conn, err := c.connect()
	if err != nil {
		c.logger.Debug("notification skipped", "error", err)
		return
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions,
	// hints, expire_timeout)
	call := conn.Object(notifyService, notifyPath).Call(
		notifyInterface+".Notify", 0,
		c.appName,
		uint32(0),
		"edit-copy",
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{
			"transient": dbus.MakeVariant(true),
			"urgency":   dbus.MakeVariant(byte(0)),
		},
		int32(defaultTimeout),
	)
	if call.Err != nil {
		c.logger.Debug("notification failed", "summary", summary, "error", call.Err)
	}
}

// Close releases the bus connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
