package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"wlpick/internal/config"
	"wlpick/internal/daemon"
	"wlpick/internal/session"
	"wlpick/internal/theme"
)

// logPresenter stands in for the overlay window: visibility and view
// updates are logged, rendering itself is the window collaborator's job.
type logPresenter struct {
	logger *slog.Logger
}

func (p *logPresenter) Show() { p.logger.Info("window shown") }
func (p *logPresenter) Hide() { p.logger.Info("window hidden") }

func (p *logPresenter) Render(v session.View) {
	p.logger.Debug("view updated",
		"query", v.Query,
		"mode", v.Mode.String(),
		"results", len(v.Items),
		"selected", v.Selected,
		"visible", v.Visible,
	)
}

// logSink receives reloaded stylesheets for the window collaborator.
type logSink struct {
	logger *slog.Logger
}

func (s *logSink) ApplyStylesheet(css string) {
	s.logger.Debug("stylesheet applied", "bytes", len(css))
}

// styleReloader adapts the theme loader to the session's reload hook.
type styleReloader struct {
	loader *theme.Loader
}

func (r *styleReloader) Reload(name string) error {
	if err := r.loader.Load(name); err != nil {
		return err
	}
	r.loader.Apply()
	return nil
}

// runDaemon is the default invocation: become the daemon or signal the
// running one and exit.
func (a *App) runDaemon() error {
	pidfile := daemon.NewPidfile(a.tool.Name, a.logger)

	if a.opts.theme != "" {
		return a.previewTheme(pidfile)
	}

	acquired, err := pidfile.AcquireOrSignal()
	if err != nil {
		return err
	}
	if !acquired {
		a.logger.Debug("daemon already running, toggled")
		return nil
	}

	cfg, err := a.loadConfig()
	if err != nil {
		pidfile.Release()
		return fmt.Errorf("loading config: %w", err)
	}

	loader := theme.NewLoader(config.ThemesDir(a.tool.Name), a.logger)
	loader.SetSink(&logSink{logger: a.logger})

	themeOverride := os.Getenv(themeOverrideEnv)
	src := a.tool.NewSource(cfg, a.logger)

	sess, err := session.New(session.Options{
		Tool:          a.tool.Name,
		Logger:        a.logger,
		LoadConfig:    a.loadConfig,
		Source:        src,
		Executor:      src,
		Presenter:     &logPresenter{logger: a.logger},
		Styles:        &styleReloader{loader: loader},
		Calc:          a.newCalc(),
		Policy:        a.tool.NewPolicy(),
		AllowDelete:   a.tool.AllowDelete,
		ThemeOverride: themeOverride,
	})
	if err != nil {
		pidfile.Release()
		return err
	}

	if err := loader.Load(sess.Theme()); err != nil {
		a.logger.Warn("theme load failed", "error", err)
	}
	loader.Apply()
	if err := loader.StartHotReload(); err != nil {
		a.logger.Warn("theme hot-reload unavailable", "error", err)
	}
	defer loader.StopHotReload()

	a.logger.Info("daemon started", "pid", os.Getpid(), "theme", sess.Theme())
	ctrl := daemon.NewController(pidfile, sess, a.logger)
	return ctrl.Run(context.Background())
}

func (a *App) newCalc() session.Calculator {
	if a.tool.NewCalc == nil {
		return nil
	}
	return a.tool.NewCalc()
}

// previewTheme validates the requested theme and restarts the daemon with
// it as a transient override.
func (a *App) previewTheme(pidfile *daemon.Pidfile) error {
	loader := theme.NewLoader(config.ThemesDir(a.tool.Name), a.logger)
	if !loader.Has(a.opts.theme) {
		return fmt.Errorf("unknown theme %q (see %q)", a.opts.theme, a.tool.Name+" themes")
	}
	return pidfile.Relaunch([]string{themeOverrideEnv + "=" + a.opts.theme})
}
