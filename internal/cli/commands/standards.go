package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pzfreo/wormgear-sub002/internal/cli"
	"github.com/pzfreo/wormgear-sub002/internal/report"
)

func newStandards(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "Print the module series, keyway table and tuning defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			report.WriteStandards(cmd.OutOrStdout(), app.Tables, app.Config.Tuning)
			return nil
		},
	}
}

func newVersion(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app.Version)
			return nil
		},
	}
}
