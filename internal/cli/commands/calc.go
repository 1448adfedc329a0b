package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pzfreo/wormgear-sub002/internal/cli"
	"github.com/pzfreo/wormgear-sub002/internal/report"
	"github.com/pzfreo/wormgear-sub002/pkg/calc"
	"github.com/pzfreo/wormgear-sub002/pkg/design"
)

// calcOutput is the --format json shape of a derived design.
type calcOutput struct {
	Pair     design.Pair     `json:"pair"`
	Findings design.Findings `json:"findings,omitempty"`
	Residual float64         `json:"residual,omitempty"`
	Snapped  bool            `json:"snapped,omitempty"`
}

func newCalc(app *cli.App) *cobra.Command {
	var df designFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Derive and validate a worm drive design",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := df.document(app)
			if err != nil {
				return err
			}
			calculator := calc.New(app.Tables, app.Config.Tuning)
			res, err := doc.Derive(calculator)
			if err != nil {
				return err
			}
			pair, snapped := res.Pair, false
			if doc.Snap {
				if pair, snapped, err = calculator.Snap(pair); err != nil {
					return err
				}
			}
			intent, err := doc.Intent()
			if err != nil {
				return err
			}
			findings := design.Validate(pair, intent, app.Tables, app.Config.Tuning)

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(calcOutput{
					Pair: pair, Findings: findings, Residual: res.Residual, Snapped: snapped,
				}); err != nil {
					return err
				}
			} else {
				report.WriteDesign(out, pair)
				report.WriteFindings(out, findings)
			}

			if !findings.OK() {
				return fmt.Errorf("design has %d blocking finding(s)", len(findings.Errors()))
			}
			return nil
		},
	}
	df.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of tables")
	return cmd
}
