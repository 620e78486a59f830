package cmd

import (
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/stagedoor-ui/stagedoor/internal/config"
	"github.com/stagedoor-ui/stagedoor/internal/event"
	"github.com/stagedoor-ui/stagedoor/internal/hook"
	"github.com/stagedoor-ui/stagedoor/internal/logging"
	"github.com/stagedoor-ui/stagedoor/internal/platform"
	"github.com/stagedoor-ui/stagedoor/internal/request"
	"github.com/stagedoor-ui/stagedoor/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the terminal demo",
	Long: `Run the terminal demo: a menu screen that starts an editor and a
confirmation dialog for results. Press ctrl+r at any time to destroy and
recreate every screen; retained controllers keep their state, including
results still waiting to be flushed.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the demo needs a terminal; stdout is not a TTY")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Close()
	}

	var opts []platform.Option
	if cfg.Stage.DebugKinds != "" {
		pattern, err := glob.Compile(cfg.Stage.DebugKinds)
		if err != nil {
			return fmt.Errorf("invalid stage.debug_kinds pattern: %w", err)
		}
		opts = append(opts, platform.WithDebugPattern(pattern))
	}

	bus := event.NewBus()
	codes := request.NewAllocator()
	hk := hook.New(bus, logger)
	stage := platform.New(platform.Config{
		Bus:    bus,
		Logger: logger,
	}, opts...)

	app, err := tui.New(stage, codes, hk, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up demo screens: %w", err)
	}

	// Treat edits to the config file like a device configuration change:
	// every screen object is rebuilt, retained controllers survive.
	if cfg.Stage.RecreateOnChange {
		if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
			watcher, err := config.NewWatcher(cfgFile, func() {
				logger.Info("config file changed, recreating screens")
				app.Driver().RecreateAll()
			}, logger)
			if err != nil {
				logger.Warn("config watch unavailable", "error", err)
			} else {
				watcher.Start()
				defer watcher.Stop()
			}
		}
	}

	return app.Run()
}
