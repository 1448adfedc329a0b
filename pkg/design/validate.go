package design

import (
	"fmt"
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

// checkFunc is one validation rule. Checks are independent, read-only
// and free of side effects; Validate runs every check regardless of
// earlier results so the caller always sees the complete picture.
type checkFunc func(p Pair, intent ManufacturingIntent, tb *standards.Tables, tn standards.Tuning) Findings

// checks run in a fixed order so finding lists are stable across calls.
var checks = []checkFunc{
	checkLeadAngle,
	checkModule,
	checkToothCount,
	checkProportion,
	checkContactRatio,
	checkGloboid,
}

// Validate classifies a derived design against the feasibility rules and
// returns every finding. It never mutates its inputs and never aborts
// early. The design is usable for synthesis iff the result's OK() is
// true; warnings and info never block.
func Validate(p Pair, intent ManufacturingIntent, tb *standards.Tables, tn standards.Tuning) Findings {
	intent = intent.Resolved(p, tn)
	var out Findings
	for _, check := range checks {
		out = append(out, check(p, intent, tb, tn)...)
	}
	return out
}

// Resolved returns a copy of the intent with every zero field replaced
// by its practice default for the given pair: worm length and wheel face
// width from the proportion factors, hob steps and smoothness from the
// tuning defaults. Resolution is idempotent.
func (mi ManufacturingIntent) Resolved(p Pair, tn standards.Tuning) ManufacturingIntent {
	if mi.WormLength == 0 {
		mi.WormLength = p.Worm.Module * (tn.WormLengthBase + tn.WormLengthTeethFactor*float64(p.Wheel.ToothCount))
	}
	if mi.FaceWidth == 0 {
		mi.FaceWidth = tn.FaceWidthFactor * p.Worm.PitchDiameter
	}
	if mi.HobSteps == 0 {
		mi.HobSteps = tn.HobStepsDefault
	}
	if mi.Smoothness == 0 {
		mi.Smoothness = 3
	}
	return mi
}

func checkLeadAngle(p Pair, _ ManufacturingIntent, _ *standards.Tables, tn standards.Tuning) Findings {
	var out Findings
	lead := p.Worm.LeadAngle
	friction := math.Atan(tn.FrictionCoefficient) * 180 / math.Pi

	if lead < tn.MinLeadAngleDeg {
		out = append(out, Finding{
			Severity:    SeverityError,
			Code:        CodeLeadAngleLow,
			Message:     fmt.Sprintf("lead angle %.2f° is below the workable minimum %.2f°", lead, tn.MinLeadAngleDeg),
			Remediation: "increase starts or reduce the worm diameter quotient",
		})
		return out
	}
	if lead > tn.MaxLeadAngleDeg {
		out = append(out, Finding{
			Severity:    SeverityWarning,
			Code:        CodeLeadAngleHigh,
			Message:     fmt.Sprintf("lead angle %.2f° exceeds %.2f°; efficiency falls off and milling becomes difficult", lead, tn.MaxLeadAngleDeg),
			Remediation: "reduce starts or enlarge the worm diameter quotient",
		})
	}
	switch {
	case p.Assembly.SelfLocking:
		out = append(out, Finding{
			Severity: SeverityInfo,
			Code:     CodeSelfLocking,
			Message:  fmt.Sprintf("drive is self-locking (lead angle %.2f° below friction angle %.2f°)", lead, friction),
		})
	case lead < tn.NearSelfLockFactor*friction:
		out = append(out, Finding{
			Severity:    SeverityWarning,
			Code:        CodeNearSelfLocking,
			Message:     fmt.Sprintf("lead angle %.2f° is within %.1fx of the friction angle %.2f°; behaviour near self-locking is load-dependent", lead, tn.NearSelfLockFactor, friction),
			Remediation: "increase the lead angle or accept uncertain back-driving",
		})
	}
	return out
}

func checkModule(p Pair, _ ManufacturingIntent, tb *standards.Tables, tn standards.Tuning) Findings {
	var out Findings
	m := p.Worm.Module
	if m < tn.ModuleMin || m > tn.ModuleMax {
		out = append(out, Finding{
			Severity: SeverityError,
			Code:     CodeModuleImplausible,
			Message:  fmt.Sprintf("module %.3g mm is outside the plausible range %.3g-%.3g mm", m, tn.ModuleMin, tn.ModuleMax),
		})
		return out
	}
	if !tb.IsStandardModule(m, tn.SnapToleranceRel*m) {
		near, _ := tb.NearestModule(m)
		out = append(out, Finding{
			Severity:    SeverityInfo,
			Code:        CodeModuleNonStandard,
			Message:     fmt.Sprintf("module %.4g mm is not on the standard series", m),
			Remediation: fmt.Sprintf("snap to %.4g mm for stock tooling", near),
			Citation:    "DIN 780",
		})
	}
	return out
}

// undercutMinTeeth is the geometric minimum tooth count before flank
// undercut, ceil(2/sin^2(alpha)) for pressure angle alpha.
func undercutMinTeeth(pressureAngleDeg float64) int {
	s := math.Sin(pressureAngleDeg * math.Pi / 180)
	return int(math.Ceil(2 / (s * s)))
}

func checkToothCount(p Pair, _ ManufacturingIntent, _ *standards.Tables, tn standards.Tuning) Findings {
	var out Findings
	z := p.Wheel.ToothCount
	if min := undercutMinTeeth(p.Assembly.PressureAngle); z < min {
		out = append(out, Finding{
			Severity:    SeverityError,
			Code:        CodeToothCountUndercut,
			Message:     fmt.Sprintf("wheel tooth count %d is below the undercut minimum %d for a %.3g° pressure angle", z, min, p.Assembly.PressureAngle),
			Remediation: "increase the ratio, add profile shift, or raise the pressure angle",
		})
		return out
	}
	if z < tn.PracticeMinTeeth {
		out = append(out, Finding{
			Severity:    SeverityWarning,
			Code:        CodeToothCountLow,
			Message:     fmt.Sprintf("wheel tooth count %d is below the practice minimum %d", z, tn.PracticeMinTeeth),
			Remediation: "small wheels run rough and wear fast; prefer a higher ratio",
		})
	}
	return out
}

func checkProportion(p Pair, _ ManufacturingIntent, _ *standards.Tables, tn standards.Tuning) Findings {
	if p.Worm.Module <= 0 {
		return nil // implausible module already reported
	}
	q := p.Worm.PitchDiameter / p.Worm.Module
	if q < tn.QMin || q > tn.QMax {
		return Findings{{
			Severity:    SeverityWarning,
			Code:        CodeQFactorUnusual,
			Message:     fmt.Sprintf("worm diameter quotient q=%.2f is outside the practice range %.3g-%.3g", q, tn.QMin, tn.QMax),
			Remediation: "thin worms deflect, fat worms drop efficiency",
			Citation:    "AGMA 6022",
		}}
	}
	return nil
}

func checkContactRatio(p Pair, intent ManufacturingIntent, _ *standards.Tables, tn standards.Tuning) Findings {
	if p.Worm.Lead <= 0 {
		return nil
	}
	cr := intent.FaceWidth / p.Worm.Lead
	switch {
	case cr < tn.ContactRatioWarn:
		return Findings{{
			Severity:    SeverityWarning,
			Code:        CodeContactRatioLow,
			Message:     fmt.Sprintf("contact ratio %.2f is below 1.0: tooth engagement is discontinuous", cr),
			Remediation: "widen the wheel face or reduce the lead",
		}}
	case cr < tn.ContactRatioInfo:
		return Findings{{
			Severity: SeverityInfo,
			Code:     CodeContactRatioMargin,
			Message:  fmt.Sprintf("contact ratio %.2f is below the practice minimum %.2f", cr, tn.ContactRatioInfo),
		}}
	}
	return nil
}

// GloboidMaxFaceWidth is the widest wheel face a globoid worm can wrap,
// from the chord-sagitta relation on the throat arc: the worm tip
// envelope sits at radius rho from the wheel axis and may usefully dip
// by the throat reduction plus the tip clearance.
func GloboidMaxFaceWidth(p Pair) float64 {
	rho := p.Assembly.CentreDistance - p.Worm.TipDiameter/2
	h := p.Worm.ThroatReduction + (p.Worm.Dedendum - p.Worm.Addendum)
	if h <= 0 || 2*rho <= h {
		return 0
	}
	return 2 * math.Sqrt(h*(2*rho-h))
}

func checkGloboid(p Pair, intent ManufacturingIntent, _ *standards.Tables, tn standards.Tuning) Findings {
	if p.Worm.Type != Globoid {
		return nil
	}
	var out Findings

	if max := GloboidMaxFaceWidth(p); intent.FaceWidth > max {
		out = append(out, Finding{
			Severity:    SeverityError,
			Code:        CodeGloboidWidth,
			Message:     fmt.Sprintf("wheel face width %.3g mm exceeds the globoid envelope maximum %.3g mm for throat reduction %.3g mm", intent.FaceWidth, max, p.Worm.ThroatReduction),
			Remediation: fmt.Sprintf("reduce the face width to at most %.3g mm or deepen the throat", max),
		})
	}
	if intent.WormLength < intent.FaceWidth {
		out = append(out, Finding{
			Severity:    SeverityWarning,
			Code:        CodeWormLengthShort,
			Message:     fmt.Sprintf("worm length %.3g mm is shorter than the wheel face %.3g mm; the envelope will not cover the full face", intent.WormLength, intent.FaceWidth),
			Remediation: "lengthen the worm or narrow the wheel",
		})
	}
	if !intent.Throated {
		out = append(out, Finding{
			Severity:    SeverityWarning,
			Code:        CodeGloboidNotThroated,
			Message:     "globoid worm paired with a non-throated wheel loses most of its contact-area advantage",
			Remediation: "enable throating, or ignore when hobbing (the hob cuts the throat)",
		})
	}
	if intent.Hobbed && intent.HobSteps > tn.GloboidMaxHobSteps {
		out = append(out, Finding{
			Severity: SeverityInfo,
			Code:     CodeGloboidHobSteps,
			Message:  fmt.Sprintf("hob step count %d will be capped at %d for a globoid hob", intent.HobSteps, tn.GloboidMaxHobSteps),
		})
	}
	return out
}
