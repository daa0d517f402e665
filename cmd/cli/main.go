package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/cmd/cli/commands"
	"github.com/thecatthatbarks/buzzbot/internal/config"
	"github.com/thecatthatbarks/buzzbot/pkg/utils/logging"
)

var (
	configPath string
	verbose    bool
	app        *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "buzzbot",
		Short: "Buzzbot - assign umpiring duties across a hockey club's fixtures",
		Long: `A CLI tool that assigns a covering umpire team to every fixture on a
match day, balancing the umpiring load across the club's teams while
respecting schedule clashes and travel times between venues.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (defaults to buzzbot_config.yaml in cwd or home)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug output on the console")

	rootCmd.AddCommand(commands.AssignCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateCmd(appRef()))
	rootCmd.AddCommand(commands.LocationsCmd(appRef()))
	rootCmd.AddCommand(commands.PrecomputeCmd(appRef()))
	rootCmd.AddCommand(commands.GenerateCmd(appRef()))
	rootCmd.AddCommand(commands.HistoryCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared context that initApp fills in before any
// command runs.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up the logger and loads the configuration
func initApp() error {
	appRef()
	app.Ctx = context.Background()

	var err error
	app.Logger, err = logging.New(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Configuration loaded",
		zap.Int("teams", len(app.Cfg.Teams)),
		zap.String("heuristic", app.Cfg.Heuristic),
		zap.Bool("sheets", app.Cfg.Sheets != nil),
		zap.Bool("history", app.Cfg.PostgresURL != ""),
	)

	return nil
}
