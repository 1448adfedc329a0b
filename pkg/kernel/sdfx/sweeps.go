package sdfx

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// Custom SDF3 implementations for the sweeps the gear synthesis needs.
// Each follows the same pattern as sdfx's own extrusions: evaluate the
// 2-D section in a transformed frame and close the ends with a max
// against the axial slab distance. The values away from the surface are
// lower bounds on the true distance, which is all marching cubes and
// the boolean combinators require.

// Compile-time interface checks.
var _ sdf.SDF3 = (*torusSDF)(nil)
var _ sdf.SDF3 = (*spindleSDF)(nil)
var _ sdf.SDF3 = (*extrudeSDF)(nil)
var _ sdf.SDF3 = (*revolveSDF)(nil)
var _ sdf.SDF3 = (*loftSDF)(nil)
var _ sdf.SDF3 = (*screwSDF)(nil)

// torusSDF is an exact torus with its axis along Z.
type torusSDF struct {
	major, tube float64
}

func (t *torusSDF) Evaluate(p v3.Vec) float64 {
	q := math.Hypot(p.X, p.Y) - t.major
	return math.Hypot(q, p.Z) - t.tube
}

func (t *torusSDF) BoundingBox() sdf.Box3 {
	r := t.major + t.tube
	return sdf.Box3{
		Min: v3.Vec{X: -r, Y: -r, Z: -t.tube},
		Max: v3.Vec{X: r, Y: r, Z: t.tube},
	}
}

// spindleSDF is a cylinder whose radius varies along the axis by an
// offset law: radius - offset(z) at height z. The globoid worm core is
// a spindle driven by the same law as its thread path.
type spindleSDF struct {
	h, r   float64
	offset kernel.OffsetLaw
}

func (s *spindleSDF) local(z float64) float64 {
	if s.offset == nil {
		return s.r
	}
	return s.r - s.offset(z)
}

func (s *spindleSDF) Evaluate(p v3.Vec) float64 {
	d := math.Hypot(p.X, p.Y) - s.local(p.Z)
	return math.Max(d, math.Abs(p.Z)-s.h/2)
}

func (s *spindleSDF) BoundingBox() sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{X: -s.r, Y: -s.r, Z: -s.h / 2},
		Max: v3.Vec{X: s.r, Y: s.r, Z: s.h / 2},
	}
}

// extrudeSDF extrudes a section along Z, rotating it linearly by twist
// radians end to end. Zero twist is a straight prism.
type extrudeSDF struct {
	s     sdf.SDF2
	h     float64
	twist float64 // radians over the full height
}

func (e *extrudeSDF) Evaluate(p v3.Vec) float64 {
	xy := v2.Vec{X: p.X, Y: p.Y}
	if e.twist != 0 {
		// Rotate the sample point back into the untwisted frame.
		theta := -e.twist * (p.Z / e.h)
		c, s := math.Cos(theta), math.Sin(theta)
		xy = v2.Vec{X: c*xy.X - s*xy.Y, Y: s*xy.X + c*xy.Y}
	}
	return math.Max(e.s.Evaluate(xy), math.Abs(p.Z)-e.h/2)
}

func (e *extrudeSDF) BoundingBox() sdf.Box3 {
	bb := e.s.BoundingBox()
	if e.twist == 0 {
		return sdf.Box3{
			Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -e.h / 2},
			Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: e.h / 2},
		}
	}
	// Twist sweeps the section corners through circles; bound by the
	// farthest corner radius.
	r := 0.0
	for _, c := range []v2.Vec{bb.Min, bb.Max, {X: bb.Min.X, Y: bb.Max.Y}, {X: bb.Max.X, Y: bb.Min.Y}} {
		r = math.Max(r, math.Hypot(c.X, c.Y))
	}
	return sdf.Box3{
		Min: v3.Vec{X: -r, Y: -r, Z: -e.h / 2},
		Max: v3.Vec{X: r, Y: r, Z: e.h / 2},
	}
}

// revolveSDF spins a (radial, axial) section about the Z axis.
type revolveSDF struct {
	s sdf.SDF2
}

func (r *revolveSDF) Evaluate(p v3.Vec) float64 {
	return r.s.Evaluate(v2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z})
}

func (r *revolveSDF) BoundingBox() sdf.Box3 {
	bb := r.s.BoundingBox()
	rad := bb.Max.X
	return sdf.Box3{
		Min: v3.Vec{X: -rad, Y: -rad, Z: bb.Min.Y},
		Max: v3.Vec{X: rad, Y: rad, Z: bb.Max.Y},
	}
}

// loftSDF interpolates through a section sequence evenly spaced over
// the height. Between adjacent stations the field is a linear blend of
// the two section fields, the usual SDF approximation of a ruled loft.
type loftSDF struct {
	sections []sdf.SDF2
	h        float64
}

func (l *loftSDF) Evaluate(p v3.Vec) float64 {
	xy := v2.Vec{X: p.X, Y: p.Y}
	n := len(l.sections)

	t := (p.Z/l.h + 0.5) * float64(n-1)
	t = math.Max(0, math.Min(float64(n-1), t))
	i := int(t)
	if i >= n-1 {
		i = n - 2
	}
	frac := t - float64(i)

	d := (1-frac)*l.sections[i].Evaluate(xy) + frac*l.sections[i+1].Evaluate(xy)
	return math.Max(d, math.Abs(p.Z)-l.h/2)
}

func (l *loftSDF) BoundingBox() sdf.Box3 {
	bb := l.sections[0].BoundingBox()
	for _, s := range l.sections[1:] {
		b := s.BoundingBox()
		bb.Min = v2.Vec{X: math.Min(bb.Min.X, b.Min.X), Y: math.Min(bb.Min.Y, b.Min.Y)}
		bb.Max = v2.Vec{X: math.Max(bb.Max.X, b.Max.X), Y: math.Max(bb.Max.Y, b.Max.Y)}
	}
	return sdf.Box3{
		Min: v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -l.h / 2},
		Max: v3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: l.h / 2},
	}
}

// screwSDF sweeps a thread section along a helix about Z. The section
// lives in the axial plane, X radial and Y axial within one pitch
// period; unwrapping the helix reduces evaluation to a 2-D lookup at
// the wrapped axial coordinate. A non-nil offset law shifts the thread
// path inward by offset(z), which is evaluated on the nominal section
// by sampling at an enlarged radius.
type screwSDF struct {
	s      sdf.SDF2
	h      float64
	pitch  float64
	lead   float64
	left   bool
	offset kernel.OffsetLaw
}

func (s *screwSDF) Evaluate(p v3.Vec) float64 {
	r := math.Hypot(p.X, p.Y)
	theta := math.Atan2(p.Y, p.X)

	adv := s.lead * theta / (2 * math.Pi)
	if s.left {
		adv = -adv
	}
	// Wrap the helix-relative axial coordinate to one pitch period
	// centred on the tooth.
	u := p.Z - adv
	u -= s.pitch * math.Floor(u/s.pitch+0.5)

	if s.offset != nil {
		r += s.offset(p.Z)
	}
	d := s.s.Evaluate(v2.Vec{X: r, Y: u})
	return math.Max(d, math.Abs(p.Z)-s.h/2)
}

func (s *screwSDF) BoundingBox() sdf.Box3 {
	bb := s.s.BoundingBox()
	r := bb.Max.X
	return sdf.Box3{
		Min: v3.Vec{X: -r, Y: -r, Z: -s.h / 2},
		Max: v3.Vec{X: r, Y: r, Z: s.h / 2},
	}
}
