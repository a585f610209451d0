// Command wlpick-clip is the clipboard-history popup daemon. Running it
// starts the daemon or toggles the window of an already-running one.
package main

import (
	"fmt"
	"log/slog"

	"wlpick/internal/cli"
	"wlpick/internal/config"
	"wlpick/internal/notify"
	"wlpick/internal/rank"
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
		Name:  "wlpick-clip",
		Short: "Clipboard history popup for Wayland",
		Long: `wlpick-clip browses the cliphist clipboard history in a toggleable
overlay popup. The first invocation becomes the daemon; repeat
invocations toggle the window.`,
		Defaults:    config.DefaultClip,
		AllowDelete: true,
		NewPolicy: func() rank.Policy {
			return &rank.SubstringPolicy{}
		},
		NewSource: func(cfg *config.Config, logger *slog.Logger) cli.SourceExecutor {
			// The client is lazy, so it costs nothing while notify_on_copy
			// is off and is ready if a reload turns it on.
			notifier := notify.NewClient("wlpick-clip", logger)
			return source.NewClipSource(cfg.Behavior.MaxItems, cfg.Behavior.NotifyOnCopy, notifier, logger)
		},
	}

	cli.New(tool, fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)).Execute()
}
