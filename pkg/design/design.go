// Package design holds the worm-drive data model: the dimensional
// records produced by the calculator, the manufacturing intent, the
// validation findings and the domain error types. Records are created
// once and read-only thereafter; derived temporaries (such as the
// enlarged-tip worm used to size wheel cuts) are separate immutable
// values, never mutations of the originals.
package design

import (
	"fmt"
	"math"
)

// Hand is the thread direction of the worm (and the meshing wheel).
type Hand int

const (
	RightHand Hand = iota
	LeftHand
)

func (h Hand) String() string {
	if h == LeftHand {
		return "left"
	}
	return "right"
}

// WormType distinguishes a cylindrical worm from an hourglass (globoid)
// worm whose pitch surface wraps the wheel.
type WormType int

const (
	Cylindrical WormType = iota
	Globoid
)

func (t WormType) String() string {
	if t == Globoid {
		return "globoid"
	}
	return "cylindrical"
}

// ProfileVariant selects the thread flank shape.
type ProfileVariant int

const (
	Trapezoidal ProfileVariant = iota
	CircularArc
	Involute
)

func (p ProfileVariant) String() string {
	switch p {
	case CircularArc:
		return "circular-arc"
	case Involute:
		return "involute"
	default:
		return "trapezoidal"
	}
}

// WormDesign is the complete dimensional record of the worm. All
// lengths in millimetres, angles in degrees.
type WormDesign struct {
	Module          float64  `json:"module"`
	Starts          int      `json:"starts"`
	PitchDiameter   float64  `json:"pitch_diameter"`
	TipDiameter     float64  `json:"tip_diameter"`
	RootDiameter    float64  `json:"root_diameter"`
	Lead            float64  `json:"lead"`
	LeadAngle       float64  `json:"lead_angle"`
	Addendum        float64  `json:"addendum"`
	Dedendum        float64  `json:"dedendum"`
	ThreadThickness float64  `json:"thread_thickness"` // axial, at the pitch line
	Hand            Hand     `json:"hand"`
	ProfileShift    float64  `json:"profile_shift"`
	Type            WormType `json:"worm_type"`
	ThroatReduction float64  `json:"throat_reduction,omitempty"` // globoid only: nominal minus throat radius
}

// AxialPitch is the thread-to-thread distance along the axis.
func (w WormDesign) AxialPitch() float64 { return w.Lead / float64(w.Starts) }

// WithTipEnlargedBy returns a copy with the tip diameter grown by 2*delta.
// The copy is the derived temporary used to size wheel cuts (hob tip
// clearance); the original is never mutated.
func (w WormDesign) WithTipEnlargedBy(delta float64) WormDesign {
	w.TipDiameter += 2 * delta
	w.Addendum += delta
	return w
}

// WheelDesign is the complete dimensional record of the worm wheel.
type WheelDesign struct {
	Module         float64 `json:"module"`
	ToothCount     int     `json:"tooth_count"`
	PitchDiameter  float64 `json:"pitch_diameter"`
	TipDiameter    float64 `json:"tip_diameter"`
	RootDiameter   float64 `json:"root_diameter"`
	ThroatDiameter float64 `json:"throat_diameter"` // tip diameter at the central plane
	HelixAngle     float64 `json:"helix_angle"`     // complement of the worm lead angle
	Addendum       float64 `json:"addendum"`
	Dedendum       float64 `json:"dedendum"`
	ProfileShift   float64 `json:"profile_shift"`
}

// AssemblyDesign describes the meshing pair as a whole.
type AssemblyDesign struct {
	CentreDistance     float64 `json:"centre_distance"`
	PressureAngle      float64 `json:"pressure_angle"` // normal, degrees
	Backlash           float64 `json:"backlash"`
	Hand               Hand    `json:"hand"`
	Ratio              float64 `json:"ratio"`
	EfficiencyEstimate float64 `json:"efficiency_estimate"`
	SelfLocking        bool    `json:"self_locking"`
}

// Pair bundles the three records every calculator strategy produces.
type Pair struct {
	Worm     WormDesign     `json:"worm"`
	Wheel    WheelDesign    `json:"wheel"`
	Assembly AssemblyDesign `json:"assembly"`
}

// CheckInvariants verifies the structural identities that hold for every
// well-formed pair, returning the first violation. It exists for tests
// and for defensive checks at trust boundaries; calculator output always
// satisfies it.
func (p Pair) CheckInvariants() error {
	const eps = 1e-9
	w, wh := p.Worm, p.Wheel
	if d := w.TipDiameter - (w.PitchDiameter + 2*w.Addendum); math.Abs(d) > eps {
		return fmt.Errorf("worm tip != pitch + 2*addendum (off by %g)", d)
	}
	if d := w.RootDiameter - (w.PitchDiameter - 2*w.Dedendum); math.Abs(d) > eps {
		return fmt.Errorf("worm root != pitch - 2*dedendum (off by %g)", d)
	}
	if d := w.Lead - w.AxialPitch()*float64(w.Starts); math.Abs(d) > eps {
		return fmt.Errorf("worm lead != axial pitch * starts (off by %g)", d)
	}
	if d := wh.TipDiameter - (wh.PitchDiameter + 2*wh.Addendum); math.Abs(d) > eps {
		return fmt.Errorf("wheel tip != pitch + 2*addendum (off by %g)", d)
	}
	if d := wh.RootDiameter - (wh.PitchDiameter - 2*wh.Dedendum); math.Abs(d) > eps {
		return fmt.Errorf("wheel root != pitch - 2*dedendum (off by %g)", d)
	}
	if d := wh.HelixAngle + w.LeadAngle - 90; math.Abs(d) > eps {
		return fmt.Errorf("wheel helix angle + worm lead angle != 90 (off by %g)", d)
	}
	return nil
}

// ManufacturingIntent selects how the pair is to be realised as solids.
type ManufacturingIntent struct {
	Profile    ProfileVariant `json:"profile"`
	WormLength float64        `json:"worm_length"` // 0 = derive from practice factors
	FaceWidth  float64        `json:"face_width"`  // wheel, 0 = derive
	Hobbed     bool           `json:"hobbed"`
	HobSteps   int            `json:"hob_steps"` // 0 = default
	Throated   bool           `json:"throated"`
	Smoothness int            `json:"smoothness"` // 1..5, 0 = default 3
}
