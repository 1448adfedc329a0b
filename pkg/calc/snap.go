package calc

import (
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
)

// Snap rounds the pair's module to the nearest standard-series entry
// within the tuning tolerance band and recomputes every dependent
// dimension from scratch. It is a distinct post-processing pass, never
// interleaved with a strategy's search, and it is idempotent: a pair
// already on the series comes back unchanged with snapped false.
//
// A module further from the series than the tolerance band is left
// alone (snapped false); snapping is an opt-in convenience, not a
// validation gate.
func (c *Calculator) Snap(p design.Pair) (out design.Pair, snapped bool, err error) {
	m := p.Worm.Module
	near, dist := c.tables.NearestModule(m)
	if dist == 0 {
		return p, false, nil
	}
	if dist > c.tuning.SnapToleranceRel*m {
		return p, false, nil
	}

	// Recover the derivation inputs from the records, then rebuild the
	// whole pair at the snapped module. The quotient is preserved
	// exactly so the worm keeps its proportions.
	opt := Options{
		Starts:           p.Worm.Starts,
		PressureAngleDeg: p.Assembly.PressureAngle,
		Q:                p.Worm.PitchDiameter / m,
		Hand:             p.Assembly.Hand,
		ProfileShift:     p.Wheel.ProfileShift,
		Backlash:         p.Assembly.Backlash,
		WormType:         p.Worm.Type,
		ThroatReduction:  scaleThroat(p.Worm.ThroatReduction, near/m),
	}
	res, err := c.FromModuleRatio(near, p.Assembly.Ratio, opt)
	if err != nil {
		return p, false, err
	}

	// Guard against drift: snapping the result again must be a no-op.
	if _, d := c.tables.NearestModule(res.Pair.Worm.Module); d != 0 {
		return p, false, design.Infeasiblef("snap", "snapped module %g is not on the series", res.Pair.Worm.Module)
	}
	return res.Pair, true, nil
}

// scaleThroat scales the throat reduction with the module so a snapped
// globoid keeps its proportions.
func scaleThroat(throat, factor float64) float64 {
	if throat == 0 {
		return 0
	}
	return throat * factor
}

// SnapDistance returns how far the pair's module is from the standard
// series, as an absolute distance in millimetres.
func (c *Calculator) SnapDistance(p design.Pair) float64 {
	_, dist := c.tables.NearestModule(p.Worm.Module)
	return math.Abs(dist)
}
