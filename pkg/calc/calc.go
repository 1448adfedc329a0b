// Package calc derives complete worm-and-wheel dimension sets from one
// of four input strategies. All strategies are pure functions of their
// inputs and the injected standards tables: direct derivation for
// module+ratio and wheel-OD inputs, bounded scans over the standard
// module series for the envelope and centre-distance constraints. No
// strategy ever silently clamps an input; out-of-domain values raise
// design.InputError and unsatisfiable constraints raise
// design.ConstraintInfeasible.
package calc

import (
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

// Options are the secondary inputs shared by every strategy. The zero
// value selects the practice defaults: one start, 20 degree pressure
// angle, default diameter quotient, right hand, cylindrical worm.
type Options struct {
	Starts           int     // threads on the worm; 0 = 1
	PressureAngleDeg float64 // normal pressure angle; 0 = 20
	Q                float64 // worm diameter quotient (pitch dia / module); 0 = tuning default
	Hand             design.Hand
	ProfileShift     float64 // wheel profile shift coefficient x
	Backlash         float64 // mm, absorbed into the centre distance
	WormType         design.WormType
	ThroatReduction  float64 // mm, globoid only
}

// Result is a derived pair plus the derivation metadata of the
// searched strategies. Residual is the remaining distance to the
// requested constraint and Candidates the number of series entries
// examined; both are zero for the closed-form strategies.
type Result struct {
	Pair       design.Pair
	Residual   float64
	Candidates int
}

// Calculator derives designs against injected standards tables and
// tuning. The zero value is not usable; construct with New.
type Calculator struct {
	tables *standards.Tables
	tuning standards.Tuning
}

// New returns a Calculator over the given tables and tuning.
func New(tables *standards.Tables, tuning standards.Tuning) *Calculator {
	return &Calculator{tables: tables, tuning: tuning}
}

// normalize fills option defaults and validates the shared inputs.
func (c *Calculator) normalize(opt Options) (Options, error) {
	if opt.Starts == 0 {
		opt.Starts = 1
	}
	if opt.Starts < 0 {
		return opt, design.Inputf("starts", opt.Starts, "must be positive")
	}
	if opt.PressureAngleDeg == 0 {
		opt.PressureAngleDeg = 20
	}
	if opt.PressureAngleDeg <= 0 || opt.PressureAngleDeg >= 45 {
		return opt, design.Inputf("pressure_angle", opt.PressureAngleDeg, "must be in (0, 45) degrees")
	}
	if opt.Q == 0 {
		opt.Q = c.tuning.QDefault
	}
	if opt.Q <= 0 {
		return opt, design.Inputf("q", opt.Q, "must be positive")
	}
	if opt.ThroatReduction < 0 {
		return opt, design.Inputf("throat_reduction", opt.ThroatReduction, "must not be negative")
	}
	if opt.WormType == design.Globoid && opt.ThroatReduction == 0 {
		return opt, design.Inputf("throat_reduction", opt.ThroatReduction, "required for a globoid worm")
	}
	return opt, nil
}

// FromModuleRatio derives the pair directly from module and ratio. The
// worm pitch diameter comes from the diameter quotient q.
func (c *Calculator) FromModuleRatio(module, ratio float64, opt Options) (Result, error) {
	opt, err := c.normalize(opt)
	if err != nil {
		return Result{}, err
	}
	if module <= 0 {
		return Result{}, design.Inputf("module", module, "must be positive")
	}
	if ratio <= 0 {
		return Result{}, design.Inputf("ratio", ratio, "must be positive")
	}
	pair, err := c.derive(module, ratio, opt)
	if err != nil {
		return Result{}, err
	}
	return Result{Pair: pair}, nil
}

// FromWheelOD fixes the wheel outer diameter and the ratio; the module
// follows from the tooth count and the worm from the quotient.
func (c *Calculator) FromWheelOD(wheelOD, ratio float64, opt Options) (Result, error) {
	opt, err := c.normalize(opt)
	if err != nil {
		return Result{}, err
	}
	if wheelOD <= 0 {
		return Result{}, design.Inputf("wheel_od", wheelOD, "must be positive")
	}
	if ratio <= 0 {
		return Result{}, design.Inputf("ratio", ratio, "must be positive")
	}
	teeth := wheelTeeth(ratio, opt.Starts)
	// OD = m*z + 2*m*(1+x)  =>  m = OD / (z + 2*(1+x))
	module := wheelOD / (float64(teeth) + 2*(1+opt.ProfileShift))
	pair, err := c.derive(module, ratio, opt)
	if err != nil {
		return Result{}, err
	}
	return Result{Pair: pair}, nil
}

// FromEnvelope fixes both outer diameters. Candidate standard modules
// are scanned; for each, the worm quotient is chosen to hit the worm OD
// exactly and the wheel OD residual decides. There is no closed form.
func (c *Calculator) FromEnvelope(wormOD, wheelOD, ratio float64, opt Options) (Result, error) {
	opt, err := c.normalize(opt)
	if err != nil {
		return Result{}, err
	}
	if wormOD <= 0 {
		return Result{}, design.Inputf("worm_od", wormOD, "must be positive")
	}
	if wheelOD <= 0 {
		return Result{}, design.Inputf("wheel_od", wheelOD, "must be positive")
	}
	if ratio <= 0 {
		return Result{}, design.Inputf("ratio", ratio, "must be positive")
	}

	return c.scan("envelope", wheelOD*c.tuning.EnvelopeTolRel, func(m float64) (design.Pair, float64, bool) {
		o := opt
		// Pin the worm OD: pitch = OD - 2*addendum, q follows.
		pitch := wormOD - 2*c.tuning.AddendumFactor*m
		o.Q = pitch / m
		if o.Q < c.tuning.QMin || o.Q > c.tuning.QMax {
			return design.Pair{}, 0, false
		}
		p, err := c.derive(m, ratio, o)
		if err != nil {
			return design.Pair{}, 0, false
		}
		return p, math.Abs(p.Wheel.TipDiameter - wheelOD), true
	})
}

// FromCentreDistance fixes the centre distance and the ratio; candidate
// standard modules are scanned for the closest match.
func (c *Calculator) FromCentreDistance(centre, ratio float64, opt Options) (Result, error) {
	opt, err := c.normalize(opt)
	if err != nil {
		return Result{}, err
	}
	if centre <= 0 {
		return Result{}, design.Inputf("centre_distance", centre, "must be positive")
	}
	if ratio <= 0 {
		return Result{}, design.Inputf("ratio", ratio, "must be positive")
	}

	return c.scan("centre_distance", centre*c.tuning.EnvelopeTolRel, func(m float64) (design.Pair, float64, bool) {
		p, err := c.derive(m, ratio, opt)
		if err != nil {
			return design.Pair{}, 0, false
		}
		return p, math.Abs(p.Assembly.CentreDistance - centre), true
	})
}

// scan runs a bounded search over the standard module series, keeping
// the feasible candidate with the smallest residual. The search space
// is the finite series, so termination is structural. A best residual
// above tol is ConstraintInfeasible carrying the nearest module.
func (c *Calculator) scan(constraint string, tol float64, try func(m float64) (design.Pair, float64, bool)) (Result, error) {
	best := Result{Residual: math.Inf(1)}
	bestModule := 0.0
	candidates := 0
	for _, m := range c.tables.Modules {
		candidates++
		p, residual, ok := try(m)
		if !ok {
			continue
		}
		if residual < best.Residual {
			best = Result{Pair: p, Residual: residual}
			bestModule = m
		}
	}
	best.Candidates = candidates

	if math.IsInf(best.Residual, 1) {
		return Result{}, design.Infeasiblef(constraint, "no standard module yields a feasible design")
	}
	if best.Residual > tol {
		return Result{}, design.InfeasibleNear(constraint, bestModule,
			"closest standard module %g leaves residual %.3g mm (tolerance %.3g mm)",
			bestModule, best.Residual, tol)
	}
	return best, nil
}

// wheelTeeth rounds the implied tooth count to the nearest integer.
// ratio = teeth / starts, so non-integer products land on the nearest
// buildable wheel; the assembly records the achieved ratio.
func wheelTeeth(ratio float64, starts int) int {
	z := int(math.Round(ratio * float64(starts)))
	if z < 1 {
		z = 1
	}
	return z
}

// derive builds the full pair from a module, ratio and normalized
// options. This is the one place the dimension formulas live; every
// strategy and the snap pass funnel through it.
func (c *Calculator) derive(module, ratio float64, opt Options) (design.Pair, error) {
	tn := c.tuning
	teeth := wheelTeeth(ratio, opt.Starts)

	addendum := tn.AddendumFactor * module
	dedendum := tn.DedendumFactor * module

	wormPitch := opt.Q * module
	lead := math.Pi * module * float64(opt.Starts)
	leadAngle := math.Atan2(float64(opt.Starts), opt.Q) * 180 / math.Pi

	worm := design.WormDesign{
		Module:          module,
		Starts:          opt.Starts,
		PitchDiameter:   wormPitch,
		TipDiameter:     wormPitch + 2*addendum,
		RootDiameter:    wormPitch - 2*dedendum,
		Lead:            lead,
		LeadAngle:       leadAngle,
		Addendum:        addendum,
		Dedendum:        dedendum,
		ThreadThickness: math.Pi*module/2 - opt.Backlash/2,
		Hand:            opt.Hand,
		ProfileShift:    0,
		Type:            opt.WormType,
		ThroatReduction: opt.ThroatReduction,
	}
	if worm.RootDiameter <= 0 {
		return design.Pair{}, design.Inputf("q", opt.Q, "worm root diameter %.3g mm is not positive; increase q", worm.RootDiameter)
	}

	x := opt.ProfileShift
	wheelPitch := module * float64(teeth)
	wheelAddendum := module * (1 + x)
	wheelDedendum := module * (tn.DedendumFactor - x)
	centre := (wormPitch+wheelPitch)/2 + x*module + opt.Backlash/2

	// Tip clearance between the mating parts; the throat dips to the
	// worm tip envelope plus this clearance.
	clearance := (tn.DedendumFactor - tn.AddendumFactor) * module

	wheel := design.WheelDesign{
		Module:         module,
		ToothCount:     teeth,
		PitchDiameter:  wheelPitch,
		TipDiameter:    wheelPitch + 2*wheelAddendum,
		RootDiameter:   wheelPitch - 2*wheelDedendum,
		ThroatDiameter: 2 * (centre - worm.TipDiameter/2 - clearance),
		HelixAngle:     90 - leadAngle,
		Addendum:       wheelAddendum,
		Dedendum:       wheelDedendum,
		ProfileShift:   x,
	}

	efficiency, selfLocking := Efficiency(leadAngle, tn.FrictionCoefficient)
	assembly := design.AssemblyDesign{
		CentreDistance:     centre,
		PressureAngle:      opt.PressureAngleDeg,
		Backlash:           opt.Backlash,
		Hand:               opt.Hand,
		Ratio:              float64(teeth) / float64(opt.Starts),
		EfficiencyEstimate: efficiency,
		SelfLocking:        selfLocking,
	}

	return design.Pair{Worm: worm, Wheel: wheel, Assembly: assembly}, nil
}

// Efficiency estimates the meshing efficiency tan(lambda)/tan(lambda+phi)
// for lead angle lambda and friction angle phi = atan(mu), and reports
// whether the drive is self-locking (lambda below phi: friction stops
// the wheel back-driving the worm).
func Efficiency(leadAngleDeg, frictionCoefficient float64) (efficiency float64, selfLocking bool) {
	lambda := leadAngleDeg * math.Pi / 180
	phi := math.Atan(frictionCoefficient)
	if lambda <= 0 {
		return 0, true
	}
	return math.Tan(lambda) / math.Tan(lambda+phi), lambda < phi
}
