package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pzfreo/wormgear-sub002/internal/batch"
	"github.com/pzfreo/wormgear-sub002/internal/cli"
)

// runnerFromFlags builds a batch runner from the merged config plus the
// command's own output flags.
func runnerFromFlags(app *cli.App, out, format string, parts []string, workers int) *batch.Runner {
	if out == "" {
		out = app.Config.Out
	}
	if format == "" {
		format = app.Config.Format
	}
	if workers == 0 {
		workers = app.Config.Workers
	}
	return batch.NewRunner(app.Logger, app.Kernel, app.Tables, app.Config.Tuning, batch.Config{
		OutDir:  out,
		Format:  format,
		Parts:   parts,
		Workers: workers,
	})
}

func newBatch(app *cli.App) *cobra.Command {
	var out, format string
	var parts []string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch glob...",
		Short: "Synthesise every design document matching the globs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := batch.Expand(args)
			if err != nil {
				return err
			}
			runner := runnerFromFlags(app, out, format, parts, workers)
			return runner.Run(cmd.Context(), paths)
		},
	}
	f := cmd.Flags()
	f.StringVar(&out, "out", "", "output directory")
	f.StringVar(&format, "format", "", "stl | 3mf")
	f.StringSliceVar(&parts, "parts", nil, "subset of worm,wheel (default both)")
	f.IntVar(&workers, "workers", 0, "parallel designs")
	return cmd
}

func newWatch(app *cli.App) *cobra.Command {
	var out, format string
	var parts []string
	var workers int
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch glob...",
		Short: "Re-synthesise design documents whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := runnerFromFlags(app, out, format, parts, workers)
			return runner.Watch(cmd.Context(), args, debounce)
		},
	}
	f := cmd.Flags()
	f.StringVar(&out, "out", "", "output directory")
	f.StringVar(&format, "format", "", "stl | 3mf")
	f.StringSliceVar(&parts, "parts", nil, "subset of worm,wheel (default both)")
	f.IntVar(&workers, "workers", 0, "parallel designs")
	f.DurationVar(&debounce, "debounce", batch.DefaultDebounce, "quiet window before a re-run")
	return cmd
}
