// Package cli builds the cobra command tree shared by the two wlpick
// binaries. Each binary contributes a Tool describing its candidate
// source, ranking policy and defaults.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wlpick/internal/config"
	"wlpick/internal/rank"
	"wlpick/internal/session"
)

// themeOverrideEnv carries a transient theme across a preview relaunch.
const themeOverrideEnv = "WLPICK_THEME_OVERRIDE"

// SourceExecutor is the combined candidate source and payload executor a
// tool plugs into the session.
type SourceExecutor interface {
	session.Source
	session.Executor
}

// Tool describes one binary's behavior.
type Tool struct {
	Name  string // binary and pidfile name
	Short string
	Long  string

	Defaults    func() *config.Config
	AllowDelete bool
	NewPolicy   func() rank.Policy
	NewSource   func(cfg *config.Config, logger *slog.Logger) SourceExecutor
	NewCalc     func() session.Calculator // nil for tools without the = prefix
}

type globalOptions struct {
	verbose    bool
	configPath string
	theme      string
}

// App holds the assembled command tree and the state shared across
// subcommands.
type App struct {
	tool   Tool
	opts   globalOptions
	logger *slog.Logger
	root   *cobra.Command
}

// New assembles the command tree for a tool.
func New(tool Tool, version string) *App {
	a := &App{tool: tool}

	a.root = &cobra.Command{
		Use:     tool.Name,
		Short:   tool.Short,
		Long:    tool.Long,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDaemon()
		},
	}

	a.root.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	a.root.PersistentFlags().StringVar(&a.opts.configPath, "config", "",
		fmt.Sprintf("Path to config file (default: ~/.config/%s/config.toml)", tool.Name))
	a.root.Flags().StringVar(&a.opts.theme, "theme", "",
		"Preview a theme: restarts the daemon with a transient theme override")

	a.addToggle()
	a.addReload()
	a.addStatus()
	a.addThemes()
	a.addConfig()
	a.addTUI()

	return a
}

// Execute runs the command tree.
func (a *App) Execute() {
	if err := a.root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger configures the global slog logger. Logs go to stderr so
// stdout stays clean for subcommand output.
func (a *App) setupLogger() {
	level := slog.LevelWarn
	if a.opts.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
}

// loadConfig reads a fresh config snapshot for this tool.
func (a *App) loadConfig() (*config.Config, error) {
	return config.Load(a.tool.Name, a.tool.Defaults(), a.opts.configPath)
}
