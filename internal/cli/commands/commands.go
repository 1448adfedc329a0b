// Package commands defines the wormgear subcommands. Each command
// draws its collaborators from the shared cli.App populated by the
// root command.
package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pzfreo/wormgear-sub002/internal/cli"
	"github.com/pzfreo/wormgear-sub002/internal/docio"
)

// All returns every subcommand, ready to add to the root.
func All(app *cli.App) []*cobra.Command {
	return []*cobra.Command{
		newCalc(app),
		newSynth(app),
		newBatch(app),
		newWatch(app),
		newStandards(app),
		newVersion(app),
	}
}

// designFlags are the shared design inputs: either a document path or
// the strategy fields spelled out as flags.
type designFlags struct {
	doc      string
	strategy string
	module   float64
	ratio    float64
	wheelOD  float64
	wormOD   float64
	centre   float64
	snap     bool

	starts          int
	pressureAngle   float64
	q               float64
	hand            string
	profileShift    float64
	backlash        float64
	wormType        string
	throatReduction float64
}

func (df *designFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&df.doc, "doc", "", "design document (JSON); replaces the design flags")
	f.StringVar(&df.strategy, "strategy", docio.StrategyModuleRatio, "module_ratio | wheel_od | envelope | centre_distance")
	f.Float64Var(&df.module, "module", 0, "module, mm")
	f.Float64Var(&df.ratio, "ratio", 0, "gear ratio (wheel teeth / worm starts)")
	f.Float64Var(&df.wheelOD, "wheel-od", 0, "wheel outer diameter, mm")
	f.Float64Var(&df.wormOD, "worm-od", 0, "worm outer diameter, mm")
	f.Float64Var(&df.centre, "centre", 0, "centre distance, mm")
	f.BoolVar(&df.snap, "snap", false, "snap the module to the standard series")

	f.IntVar(&df.starts, "starts", 0, "worm thread starts (default 1)")
	f.Float64Var(&df.pressureAngle, "pressure-angle", 0, "normal pressure angle, degrees (default 20)")
	f.Float64Var(&df.q, "q", 0, "worm diameter quotient (default from tuning)")
	f.StringVar(&df.hand, "hand", "", "right | left")
	f.Float64Var(&df.profileShift, "profile-shift", 0, "wheel profile shift coefficient")
	f.Float64Var(&df.backlash, "backlash", 0, "backlash, mm")
	f.StringVar(&df.wormType, "worm-type", "", "cylindrical | globoid")
	f.Float64Var(&df.throatReduction, "throat-reduction", 0, "globoid throat reduction, mm")
}

// document resolves the flags to a design document and a base name for
// outputs. A document file wins over the individual flags.
func (df *designFlags) document(app *cli.App) (*docio.Document, string, error) {
	if df.doc != "" {
		doc, err := docio.Load(df.doc, app.Logger)
		if err != nil {
			return nil, "", err
		}
		if df.snap {
			doc.Snap = true
		}
		name := strings.TrimSuffix(filepath.Base(df.doc), filepath.Ext(df.doc))
		return doc, name, nil
	}
	return &docio.Document{
		Version:         docio.CurrentVersion,
		Units:           "mm",
		Strategy:        df.strategy,
		Module:          df.module,
		Ratio:           df.ratio,
		WheelOD:         df.wheelOD,
		WormOD:          df.wormOD,
		Centre:          df.centre,
		Snap:            df.snap,
		Starts:          df.starts,
		PressureAngle:   df.pressureAngle,
		Q:               df.q,
		Hand:            df.hand,
		ProfileShift:    df.profileShift,
		Backlash:        df.backlash,
		WormType:        df.wormType,
		ThroatReduction: df.throatReduction,
	}, "design", nil
}
