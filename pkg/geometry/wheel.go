package geometry

import (
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/features"
)

// BuildWheel synthesises the wheel solid: the transverse tooth outline
// extruded across the face with the helix twist, optionally throated by
// subtracting the worm tip envelope swept about the wheel axis, with
// the resolved features cut in. feat may be nil for a bare part.
func (e *Engine) BuildWheel(p design.Pair, intent design.ManufacturingIntent, feat *features.Resolved) (*design.SolidModel, error) {
	intent = intent.Resolved(p, e.tuning)
	if intent.FaceWidth <= 0 {
		return nil, design.Inputf("face_width", intent.FaceWidth, "must be positive")
	}

	outline := wheelOutline(p.Wheel, p.Assembly.PressureAngle, p.Worm.LeadAngle)
	prof, err := e.k.Polygon(outline)
	if err != nil {
		return nil, design.Geomf("profile", "wheel", err, "tooth outline rejected")
	}

	solid := e.k.Extrude(prof, intent.FaceWidth, e.wheelTwistDeg(p, intent.FaceWidth))

	if intent.Throated {
		// The throat is the worm tip envelope plus tip clearance, swept
		// about the wheel axis at the centre distance.
		tube := p.Assembly.CentreDistance - p.Wheel.ThroatDiameter/2
		solid = e.k.Difference(solid, e.k.Torus(p.Assembly.CentreDistance, tube))
	}

	solid = e.applyFeatures(solid, feat, intent.FaceWidth, p.Wheel.TipDiameter/2)
	return e.finish(solid, "wheel", intent.Smoothness)
}

// wheelTwistDeg is the end-to-end twist of the face extrusion that
// realises the wheel helix: the tooth trace advances with the worm
// thread, so the twist follows the lead angle at the pitch radius and
// mirrors with the hand.
func (e *Engine) wheelTwistDeg(p design.Pair, faceWidth float64) float64 {
	twist := faceWidth * math.Tan(p.Worm.LeadAngle*deg) / (p.Wheel.PitchDiameter / 2) / deg
	if p.Assembly.Hand == design.LeftHand {
		twist = -twist
	}
	return twist
}
