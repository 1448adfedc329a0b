package commands

import (
	"github.com/spf13/cobra"

	"github.com/pzfreo/wormgear-sub002/internal/batch"
	"github.com/pzfreo/wormgear-sub002/internal/cli"
	"github.com/pzfreo/wormgear-sub002/internal/docio"
)

func newSynth(app *cli.App) *cobra.Command {
	var df designFlags
	var mf docio.Manufacturing
	var wheelFeat docio.PartFeatures
	var out, format string
	var parts []string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Derive a design and build its solid models",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, name, err := df.document(app)
			if err != nil {
				return err
			}

			// Manufacturing and feature flags override the document
			// only where actually set.
			flags := cmd.Flags()
			if flags.Changed("hobbed") {
				doc.Manufacturing.Hobbed = mf.Hobbed
			}
			if flags.Changed("hob-steps") {
				doc.Manufacturing.HobSteps = mf.HobSteps
			}
			if flags.Changed("throated") {
				doc.Manufacturing.Throated = mf.Throated
			}
			if flags.Changed("face-width") {
				doc.Manufacturing.FaceWidth = mf.FaceWidth
			}
			if flags.Changed("worm-length") {
				doc.Manufacturing.WormLength = mf.WormLength
			}
			if flags.Changed("smoothness") {
				doc.Manufacturing.Smoothness = mf.Smoothness
			}
			if flags.Changed("profile") {
				doc.Manufacturing.Profile = mf.Profile
			}
			if flags.Changed("bore") || flags.Changed("auto-bore") || flags.Changed("keyway") {
				if doc.WheelFeatures == nil {
					doc.WheelFeatures = &docio.PartFeatures{}
				}
				if flags.Changed("bore") {
					doc.WheelFeatures.Bore = wheelFeat.Bore
				}
				if flags.Changed("auto-bore") {
					doc.WheelFeatures.AutoBore = wheelFeat.AutoBore
				}
				if flags.Changed("keyway") {
					doc.WheelFeatures.Keyway = wheelFeat.Keyway
				}
			}

			if out == "" {
				out = app.Config.Out
			}
			if format == "" {
				format = app.Config.Format
			}
			runner := batch.NewRunner(app.Logger, app.Kernel, app.Tables, app.Config.Tuning, batch.Config{
				OutDir: out,
				Format: format,
				Parts:  parts,
			})
			return runner.RunDoc(cmd.Context(), name, doc)
		},
	}
	df.register(cmd)
	f := cmd.Flags()
	f.StringVar(&mf.Profile, "profile", "", "thread profile: trapezoidal | circular-arc | involute")
	f.BoolVar(&mf.Hobbed, "hobbed", false, "cut the wheel by hobbing simulation")
	f.IntVar(&mf.HobSteps, "hob-steps", 0, "hobbing cutting positions")
	f.BoolVar(&mf.Throated, "throated", false, "throat the wheel rim")
	f.Float64Var(&mf.FaceWidth, "face-width", 0, "wheel face width, mm")
	f.Float64Var(&mf.WormLength, "worm-length", 0, "worm length, mm")
	f.IntVar(&mf.Smoothness, "smoothness", 0, "mesh smoothness 1..5")
	f.Float64Var(&wheelFeat.Bore, "bore", 0, "wheel bore diameter, mm")
	f.BoolVar(&wheelFeat.AutoBore, "auto-bore", false, "size the wheel bore automatically")
	f.BoolVar(&wheelFeat.Keyway, "keyway", false, "cut a standard keyway in the wheel bore")
	f.StringVar(&out, "out", "", "output directory")
	f.StringVar(&format, "format", "", "stl | 3mf")
	f.StringSliceVar(&parts, "parts", nil, "subset of worm,wheel (default both)")
	return cmd
}
