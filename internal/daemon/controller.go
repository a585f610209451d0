package daemon

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wlpick/internal/session"
)

// Controller runs the daemon event loop: it owns the pidfile and translates
// process signals into session events. SIGUSR1 toggles visibility, SIGUSR2
// reloads config and styles, SIGINT/SIGTERM shut down cleanly.
type Controller struct {
	pidfile *Pidfile
	sess    *session.Session
	logger  *slog.Logger
}

// NewController wires the session to its pidfile.
func NewController(pidfile *Pidfile, sess *session.Session, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{pidfile: pidfile, sess: sess, logger: logger}
}

// Run blocks until shutdown. The first activation is synthesized as a
// toggle so the window shows immediately after acquiring the pidfile.
func (c *Controller) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.pidfile.Release()

	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, syscall.SIGUSR1, syscall.SIGUSR2, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGUSR1:
					c.logger.Debug("toggle signal received")
					c.sess.Toggle()
				case syscall.SIGUSR2:
					c.logger.Debug("reload signal received")
					c.sess.ReloadStyle()
				case syscall.SIGINT, syscall.SIGTERM:
					c.logger.Info("received signal, shutting down", "signal", sig)
					cancel()
				}
			}
		}
	}()

	c.sess.Toggle()
	c.sess.Run(ctx)
	return nil
}
