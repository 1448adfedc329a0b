// Package cli holds the root command, the layered configuration loader
// and the logger shared by the subcommands in internal/cli/commands.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
	"github.com/pzfreo/wormgear-sub002/pkg/kernel/sdfx"
	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

// App is the shared state the subcommands draw on, populated by the
// root command's PersistentPreRunE before any subcommand runs.
type App struct {
	Version string
	Config  *Config
	Logger  *zap.Logger
	Kernel  kernel.Kernel
	Tables  *standards.Tables
}

// Close flushes the logger. Safe on a partially initialised App.
func (a *App) Close() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}

// NewRoot builds the root command and its App. Subcommands are added by
// the caller, which keeps the command package free to depend on this
// one.
func NewRoot(version string) (*cobra.Command, *App) {
	app := &App{Version: version}

	root := &cobra.Command{
		Use:           "wormgear",
		Short:         "Worm drive design calculator and solid model generator",
		Long:          "wormgear derives worm-and-wheel dimension sets, validates them against workshop practice, and synthesises printable solids through a signed-distance-field kernel.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := LoadConfig(cmd.Flags(), cfgPath)
			if err != nil {
				return err
			}
			app.Config = cfg

			logger, err := buildLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			app.Logger = logger
			app.Tables = standards.Default()
			app.Kernel = sdfx.New()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default "+DefaultConfigFile+" if present)")
	pf.Bool("verbose", false, "debug logging")
	return root, app
}

// buildLogger sets up production-style structured logging, raised to
// debug under --verbose.
func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
