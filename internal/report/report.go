// Package report renders derived designs, findings and resolved
// features as text tables for the CLI. JSON output bypasses this
// package entirely.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/features"
	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func mm(v float64) string  { return fmt.Sprintf("%.3f mm", v) }
func deg(v float64) string { return fmt.Sprintf("%.2f°", v) }

// WriteDesign renders the three dimensional sections of a pair.
func WriteDesign(w io.Writer, p design.Pair) {
	worm := newTable(w, "Worm")
	worm.AppendRows([]table.Row{
		{"module", mm(p.Worm.Module)},
		{"starts", p.Worm.Starts},
		{"pitch diameter", mm(p.Worm.PitchDiameter)},
		{"tip diameter", mm(p.Worm.TipDiameter)},
		{"root diameter", mm(p.Worm.RootDiameter)},
		{"lead", mm(p.Worm.Lead)},
		{"lead angle", deg(p.Worm.LeadAngle)},
		{"thread thickness", mm(p.Worm.ThreadThickness)},
		{"type", p.Worm.Type.String()},
	})
	if p.Worm.Type == design.Globoid {
		worm.AppendRow(table.Row{"throat reduction", mm(p.Worm.ThroatReduction)})
	}
	worm.Render()

	wheel := newTable(w, "Wheel")
	wheel.AppendRows([]table.Row{
		{"teeth", p.Wheel.ToothCount},
		{"pitch diameter", mm(p.Wheel.PitchDiameter)},
		{"tip diameter", mm(p.Wheel.TipDiameter)},
		{"root diameter", mm(p.Wheel.RootDiameter)},
		{"throat diameter", mm(p.Wheel.ThroatDiameter)},
		{"helix angle", deg(p.Wheel.HelixAngle)},
		{"profile shift", fmt.Sprintf("%.3f", p.Wheel.ProfileShift)},
	})
	wheel.Render()

	asm := newTable(w, "Assembly")
	asm.AppendRows([]table.Row{
		{"centre distance", mm(p.Assembly.CentreDistance)},
		{"pressure angle", deg(p.Assembly.PressureAngle)},
		{"ratio", fmt.Sprintf("%.3f", p.Assembly.Ratio)},
		{"hand", p.Assembly.Hand.String()},
		{"efficiency estimate", fmt.Sprintf("%.1f%%", 100*p.Assembly.EfficiencyEstimate)},
		{"self-locking", p.Assembly.SelfLocking},
	})
	if p.Assembly.Backlash != 0 {
		asm.AppendRow(table.Row{"backlash", mm(p.Assembly.Backlash)})
	}
	asm.Render()
}

// severityRank orders findings errors first for display.
func severityRank(s design.Severity) int {
	switch s {
	case design.SeverityError:
		return 0
	case design.SeverityWarning:
		return 1
	}
	return 2
}

// WriteFindings renders the finding list sorted by severity, worst
// first. An empty list renders nothing.
func WriteFindings(w io.Writer, fs design.Findings) {
	if len(fs) == 0 {
		return
	}
	sorted := append(design.Findings(nil), fs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityRank(sorted[i].Severity) < severityRank(sorted[j].Severity)
	})

	t := newTable(w, "Findings")
	t.AppendHeader(table.Row{"severity", "code", "message", "remediation"})
	for _, f := range sorted {
		t.AppendRow(table.Row{f.Severity.String(), f.Code, f.Message, f.Remediation})
	}
	t.Render()
}

// WriteFeatures renders the resolved feature cuts for one part. A nil
// resolution or a bare part renders nothing.
func WriteFeatures(w io.Writer, part string, res *features.Resolved) {
	if res == nil || (res.Bore == 0 && res.Custom == "") {
		return
	}
	t := newTable(w, "Features: "+part)
	if res.Bore > 0 {
		t.AppendRow(table.Row{"bore", mm(res.Bore)})
	}
	if kw := res.Keyway; kw != nil {
		t.AppendRow(table.Row{"keyway",
			fmt.Sprintf("%.1f × %.1f, hub depth %.1f mm", kw.Width, kw.Height, kw.HubDepth)})
	}
	if fl := res.Flats; fl != nil {
		t.AppendRow(table.Row{"double flat",
			fmt.Sprintf("depth %.2f mm, chord half-width %.2f mm", fl.Depth, fl.HalfWidth)})
	}
	if ss := res.SetScrews; ss != nil {
		t.AppendRow(table.Row{"set screws",
			fmt.Sprintf("%d × ⌀%.1f mm at %v°", ss.Count, ss.Diameter, ss.AnglesDeg)})
	}
	if res.Custom != "" {
		t.AppendRow(table.Row{"custom", res.Custom})
	}
	t.Render()
}

// WriteStandards renders the module series, keyway brackets and tuning
// defaults, for the standards command.
func WriteStandards(w io.Writer, tb *standards.Tables, tn standards.Tuning) {
	mods := newTable(w, "Standard module series (mm)")
	row := table.Row{}
	for _, m := range tb.Modules {
		row = append(row, m)
	}
	mods.AppendRow(row)
	mods.Render()

	keys := newTable(w, "Keyways")
	keys.AppendHeader(table.Row{"bore over", "bore to", "width", "height", "hub depth"})
	for _, b := range tb.Keyways {
		keys.AppendRow(table.Row{mm(b.MinBore), mm(b.MaxBore), mm(b.Width), mm(b.Height), mm(b.HubDepth)})
	}
	keys.Render()

	tun := newTable(w, "Tuning defaults")
	tun.AppendRows([]table.Row{
		{"q default", tn.QDefault},
		{"friction coefficient", tn.FrictionCoefficient},
		{"snap tolerance (relative)", tn.SnapToleranceRel},
		{"minimum rim", mm(tn.MinRim)},
		{"thin-rim warning", mm(tn.ThinRimWarn)},
		{"hob steps default", tn.HobStepsDefault},
		{"simplify cadence", tn.SimplifyEvery},
		{"globoid step cap", tn.GloboidMaxHobSteps},
	})
	tun.Render()
}
