package geometry

import (
	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/features"
	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// BuildWorm synthesises the worm solid: a helical thread sweep united
// with the core cylinder, trimmed to the requested length, with the
// resolved features cut in. For a globoid worm the thread path and the
// core follow the same hourglass law. feat may be nil for a bare part.
func (e *Engine) BuildWorm(p design.Pair, intent design.ManufacturingIntent, feat *features.Resolved) (*design.SolidModel, error) {
	intent = intent.Resolved(p, e.tuning)
	if intent.WormLength <= 0 {
		return nil, design.Inputf("worm_length", intent.WormLength, "must be positive")
	}

	solid, err := e.wormSolid(p, p.Worm, intent.WormLength, intent.Profile)
	if err != nil {
		return nil, err
	}
	solid = e.applyFeatures(solid, feat, intent.WormLength, p.Worm.TipDiameter/2)
	return e.finish(solid, "worm", intent.Smoothness)
}

// wormSolid builds the untrimmed worm body for the given worm record.
// The record is a parameter rather than taken from the pair so that
// hobbing can sweep a tip-enlarged copy along the same law; the
// hourglass law itself always wraps the wheel pitch radius of the pair.
func (e *Engine) wormSolid(p design.Pair, w design.WormDesign, length float64, variant design.ProfileVariant) (kernel.Solid, error) {
	section := wormThreadSection(w, variant, p.Assembly.PressureAngle)
	prof, err := e.k.Polygon(section)
	if err != nil {
		return nil, design.Geomf("profile", "worm", err, "thread section rejected")
	}

	law := throatLaw(w, p.Wheel.PitchDiameter/2)

	// Sweep past both trim planes so the thread is fully developed
	// where the end faces are cut.
	ext := length + 2*w.Lead
	thread := e.k.Screw(prof, ext, w.AxialPitch(), w.Lead, w.Hand == design.LeftHand, law)
	core := e.k.Spindle(ext, w.RootDiameter/2, law)
	solid := e.k.Union(thread, core)

	trim := e.k.Box(w.TipDiameter+2, w.TipDiameter+2, length)
	return e.k.Intersection(solid, trim), nil
}
