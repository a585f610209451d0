package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wlpick/internal/config"
	"wlpick/internal/daemon"
	"wlpick/internal/theme"
	"wlpick/internal/tui"
)

func (a *App) addToggle() {
	a.root.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Toggle the running daemon's window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.NewPidfile(a.tool.Name, a.logger).SignalToggle()
		},
	})
}

func (a *App) addReload() {
	reloadCmd := &cobra.Command{
		Use:   "reload",
		Short: "Restart the running daemon",
		Long:  "Terminates the running daemon and spawns a fresh one, picking up config changes that need a restart.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.NewPidfile(a.tool.Name, a.logger).Relaunch(nil)
		},
	}
	reloadCmd.AddCommand(&cobra.Command{
		Use:   "style",
		Short: "Reload config and theme in place",
		Long:  "Signals the running daemon to re-read its config and stylesheet without restarting or hiding the window.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.NewPidfile(a.tool.Name, a.logger).SignalReload()
		},
	})
	a.root.AddCommand(reloadCmd)
}

func (a *App) addStatus() {
	a.root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			pidfile := daemon.NewPidfile(a.tool.Name, a.logger)
			pid, alive := pidfile.Alive()
			if !alive {
				fmt.Println("not running")
				return nil
			}
			fmt.Printf("running (pid %d)\n", pid)
			if info, err := os.Stat(pidfile.Path()); err == nil {
				fmt.Printf("started %s\n", humanize.Time(info.ModTime()))
			}
			return nil
		},
	})
}

func (a *App) addThemes() {
	a.root.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			loader := theme.NewLoader(config.ThemesDir(a.tool.Name), a.logger)
			for _, name := range loader.List() {
				marker := "  "
				if name == cfg.Style.Theme {
					marker = "* "
				}
				fmt.Println(marker + name)
			}
			return nil
		},
	})
}

func (a *App) addConfig() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file and theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.opts.configPath
			if path == "" {
				path = config.Path(a.tool.Name)
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := a.tool.Defaults().Save(path); err != nil {
				return err
			}
			fmt.Println("wrote", path)

			themesDir := config.ThemesDir(a.tool.Name)
			if err := os.MkdirAll(themesDir, 0o755); err != nil {
				return err
			}
			themePath := filepath.Join(themesDir, theme.DefaultThemeName+".css")
			if _, err := os.Stat(themePath); os.IsNotExist(err) {
				css, _ := theme.GetEmbeddedTheme(theme.DefaultThemeName)
				if err := os.WriteFile(themePath, []byte(css), 0o644); err != nil {
					return err
				}
				fmt.Println("wrote", themePath)
			}
			return nil
		},
	})

	a.root.AddCommand(configCmd)
}

func (a *App) addTUI() {
	a.root.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Run the terminal picker",
		Long:  "Runs a one-shot terminal picker over the same candidates and ranking as the overlay window.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			src := a.tool.NewSource(cfg, a.logger)
			return tui.Run(tui.Options{
				Title:       a.tool.Name,
				Source:      src,
				Executor:    src,
				Policy:      a.tool.NewPolicy(),
				AllowDelete: a.tool.AllowDelete,
			})
		},
	})
}
