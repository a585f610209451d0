// Command wlpick-launch is the application-launcher popup daemon with
// fuzzy ranking, usage-frequency bias and an inline =calculator.
package main

import (
	"fmt"
	"log/slog"

	"wlpick/internal/calc"
	"wlpick/internal/cli"
	"wlpick/internal/config"
	"wlpick/internal/rank"
	"wlpick/internal/session"
	"wlpick/internal/source"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	tool := cli.Tool{
		Name:  "wlpick-launch",
		Short: "Application launcher popup for Wayland",
		Long: `wlpick-launch scans desktop entries and launches the selected
application from a toggleable overlay popup. Results are fuzzy-ranked
with a per-daemon usage bias; a query starting with = evaluates as
arithmetic.`,
		Defaults: config.DefaultLaunch,
		NewPolicy: func() rank.Policy {
			return &rank.FuzzyPolicy{}
		},
		NewSource: func(cfg *config.Config, logger *slog.Logger) cli.SourceExecutor {
			return source.NewLaunchSource(cfg.Behavior.Terminal, logger)
		},
		NewCalc: func() session.Calculator {
			return calc.New()
		},
	}

	cli.New(tool, fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)).Execute()
}
