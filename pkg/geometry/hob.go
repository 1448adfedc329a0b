package geometry

import (
	"fmt"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/features"
	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// minHobSteps is the fewest cutting positions that still leave a
// recognisable tooth form.
const minHobSteps = 6

// blankSegments is the polygon resolution of the hobbing blank rim.
const blankSegments = 64

// HobWheel cuts the wheel by kinematic simulation: a hob shaped as the
// worm with its tip enlarged by the tip clearance is subtracted from
// the blank at successive coupled rotations, one blank revolution
// against ratio revolutions of the hob. The progress hook, when
// non-nil, is called after every subtraction and may stop the run by
// returning an error. feat may be nil for a bare part.
func (e *Engine) HobWheel(p design.Pair, intent design.ManufacturingIntent, feat *features.Resolved, progress Progress) (*design.SolidModel, error) {
	intent = intent.Resolved(p, e.tuning)
	if intent.FaceWidth <= 0 {
		return nil, design.Inputf("face_width", intent.FaceWidth, "must be positive")
	}
	steps := intent.HobSteps
	if steps < minHobSteps {
		return nil, design.Inputf("hob_steps", steps, "need at least %d cutting positions", minHobSteps)
	}
	// Globoid runs keep the full hourglass in every boolean, so the
	// step count is capped to hold the evaluation tree workable.
	if p.Worm.Type == design.Globoid && steps > e.tuning.GloboidMaxHobSteps {
		steps = e.tuning.GloboidMaxHobSteps
	}

	hobWorm := p.Worm.WithTipEnlargedBy(e.tipClearance(p.Worm.Module))
	hob, err := e.wormSolid(p, hobWorm, intent.WormLength, intent.Profile)
	if err != nil {
		return nil, err
	}

	blank, err := e.blank(p, intent)
	if err != nil {
		return nil, err
	}

	// One blank revolution; the hob spins with it through the ratio.
	// Right hand advances the blank with the hob's spin, left hand
	// against it.
	sense := 1.0
	if p.Assembly.Hand == design.LeftHand {
		sense = -1
	}
	if e.tuning.HobSenseInverted {
		sense = -sense
	}

	every := e.tuning.SimplifyEvery
	if p.Worm.Type == design.Globoid {
		every = e.tuning.GloboidSimplifyEvery
	}

	for i := 1; i <= steps; i++ {
		blankDeg := 360 * float64(i) / float64(steps)

		pos := e.k.Rotate(hob, 0, 0, blankDeg*p.Assembly.Ratio*sense)
		pos = e.k.Rotate(pos, 0, 90, 0)
		pos = e.k.Translate(pos, 0, p.Assembly.CentreDistance, 0)
		pos = e.k.Rotate(pos, 0, 0, blankDeg)

		blank = e.k.Difference(blank, pos)
		if every > 0 && i%every == 0 {
			blank = e.k.Simplify(blank)
		}

		if progress != nil {
			frac := float64(i) / float64(steps)
			if err := progress(i, frac, fmt.Sprintf("hobbing step %d/%d", i, steps)); err != nil {
				return nil, err
			}
		}
	}

	blank = e.applyFeatures(blank, feat, intent.FaceWidth, p.Wheel.TipDiameter/2)
	return e.finish(blank, "wheel", intent.Smoothness)
}

// blank builds the uncut wheel blank: a plain cylinder at the tip
// diameter, or for a throated wheel a loft dipping to the throat
// diameter at the central plane so the hob meets pre-relieved stock.
func (e *Engine) blank(p design.Pair, intent design.ManufacturingIntent) (kernel.Solid, error) {
	tipR := p.Wheel.TipDiameter / 2
	throatR := p.Wheel.ThroatDiameter / 2
	if !intent.Throated || throatR >= tipR {
		return e.k.Cylinder(intent.FaceWidth, tipR), nil
	}

	rim, err := e.k.Polygon(circleOutline(tipR, blankSegments))
	if err != nil {
		return nil, design.Geomf("blank", "wheel", err, "rim section rejected")
	}
	waist, err := e.k.Polygon(circleOutline(throatR, blankSegments))
	if err != nil {
		return nil, design.Geomf("blank", "wheel", err, "waist section rejected")
	}
	solid, err := e.k.Loft([]kernel.Profile{rim, waist, rim}, intent.FaceWidth)
	if err != nil {
		return nil, design.Geomf("blank", "wheel", err, "throated blank loft failed")
	}
	return solid, nil
}
