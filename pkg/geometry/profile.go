package geometry

import (
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

const (
	deg = math.Pi / 180

	// flankSamples is the point count per curved flank. Straight flanks
	// use their two endpoints only.
	flankSamples = 9

	// rootEmbedFactor sinks the thread root this fraction of a module
	// below the root cylinder so the thread-core union always overlaps.
	rootEmbedFactor = 0.2

	// arcFlankRadiusFactor is the hollow-flank arc radius in modules for
	// the circular-arc variant.
	arcFlankRadiusFactor = 5.0
)

// inv is the involute function tan(a) - a.
func inv(a float64) float64 { return math.Tan(a) - a }

// axialPressureAngle converts the normal pressure angle to the axial
// section through the lead angle: tan(ax) = tan(an)/cos(lambda).
func axialPressureAngle(normalDeg, leadAngleDeg float64) float64 {
	return math.Atan(math.Tan(normalDeg*deg) / math.Cos(leadAngleDeg*deg))
}

// wormThreadSection builds one thread section in the axial plane: X is
// radial distance from the worm axis, Y axial within one pitch period.
// The section is symmetric about the pitch-line thickness and ordered
// counter-clockwise, root first.
func wormThreadSection(w design.WormDesign, variant design.ProfileVariant, normalPressureDeg float64) []kernel.Point2 {
	rp := w.PitchDiameter / 2
	rt := w.TipDiameter / 2
	rr := w.RootDiameter/2 - rootEmbedFactor*w.Module
	alpha := axialPressureAngle(normalPressureDeg, w.LeadAngle)

	half := flankLaw(w, variant, rp, rr, alpha)

	var pts []kernel.Point2
	lo, hi := rr, rt
	switch variant {
	case design.Trapezoidal:
		pts = append(pts,
			kernel.Point2{X: lo, Y: -half(lo)},
			kernel.Point2{X: hi, Y: -half(hi)},
			kernel.Point2{X: hi, Y: +half(hi)},
			kernel.Point2{X: lo, Y: +half(lo)},
		)
	default:
		for i := 0; i < flankSamples; i++ {
			r := lo + (hi-lo)*float64(i)/float64(flankSamples-1)
			pts = append(pts, kernel.Point2{X: r, Y: -half(r)})
		}
		for i := flankSamples - 1; i >= 0; i-- {
			r := lo + (hi-lo)*float64(i)/float64(flankSamples-1)
			pts = append(pts, kernel.Point2{X: r, Y: +half(r)})
		}
	}
	return pts
}

// flankLaw returns the half-thickness of the thread as a function of
// radius for the given flank variant. All variants agree at the pitch
// line and share the nominal flank slope there.
func flankLaw(w design.WormDesign, variant design.ProfileVariant, rp, rr, alpha float64) func(r float64) float64 {
	halfAtPitch := w.ThreadThickness / 2
	tanA := math.Tan(alpha)

	straight := func(r float64) float64 {
		return halfAtPitch - (r-rp)*tanA
	}

	switch variant {
	case design.CircularArc:
		// Hollow flank: a circular arc replaces the straight flank,
		// sagitta from the chord and the standard arc radius. The bulge
		// thins the mid-flank, which is what relieves the contact line.
		rt := w.TipDiameter / 2
		chord := (rt - rr) / math.Cos(alpha)
		sagitta := chord * chord / (8 * arcFlankRadiusFactor * w.Module)
		return func(r float64) float64 {
			t := (r - rr) / (rt - rr)
			bulge := sagitta * (1 - (2*t-1)*(2*t-1))
			return straight(r) - bulge
		}
	case design.Involute:
		// Involute of the base cylinder at the axial pressure angle;
		// below the base radius the flank continues radially.
		rb := rp * math.Cos(alpha)
		return func(r float64) float64 {
			if r <= rb {
				return halfAtPitch + rp*inv(alpha)
			}
			ar := math.Acos(rb / r)
			return halfAtPitch - rp*(inv(ar)-inv(alpha))
		}
	default:
		return straight
	}
}

// wheelOutline builds the wheel's transverse tooth outline as one
// closed counter-clockwise polygon: involute flanks from the base
// circle, tip and root arcs, profile shift widening the teeth. The
// transverse pressure angle follows from the normal angle through the
// worm lead angle.
func wheelOutline(wh design.WheelDesign, normalPressureDeg, leadAngleDeg float64) []kernel.Point2 {
	z := wh.ToothCount
	rp := wh.PitchDiameter / 2
	rt := wh.TipDiameter / 2
	rr := wh.RootDiameter / 2
	alpha := axialPressureAngle(normalPressureDeg, leadAngleDeg)
	rb := rp * math.Cos(alpha)

	// Angular half-thickness at radius r, measured from the tooth centre.
	psiPitch := math.Pi/(2*float64(z)) + 2*wh.ProfileShift*math.Tan(alpha)/float64(z)
	psi := func(r float64) float64 {
		if r <= rb {
			return psiPitch + inv(alpha)
		}
		return psiPitch + inv(alpha) - inv(math.Acos(rb/r))
	}

	pitchAngle := 2 * math.Pi / float64(z)
	rlo := math.Max(rr, rb)
	psiLo := math.Min(psi(rlo), pitchAngle/2)
	psiTip := psi(rt)

	at := func(r, a float64) kernel.Point2 {
		return kernel.Point2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}

	const (
		flankPts = 6
		arcPts   = 4
	)
	var pts []kernel.Point2
	for i := 0; i < z; i++ {
		centre := float64(i) * pitchAngle

		// Leading root arc, from the gap centre up to the flank foot.
		for k := 0; k < arcPts; k++ {
			a := centre - pitchAngle/2 + (pitchAngle/2-psiLo)*float64(k)/float64(arcPts)
			pts = append(pts, at(rr, a))
		}
		// Rising flank.
		for k := 0; k < flankPts; k++ {
			r := rlo + (rt-rlo)*float64(k)/float64(flankPts-1)
			pts = append(pts, at(r, centre-psi(r)))
		}
		// Tip arc interior.
		for k := 1; k < arcPts; k++ {
			a := centre - psiTip + 2*psiTip*float64(k)/float64(arcPts)
			pts = append(pts, at(rt, a))
		}
		// Falling flank.
		for k := 0; k < flankPts; k++ {
			r := rt - (rt-rlo)*float64(k)/float64(flankPts-1)
			pts = append(pts, at(r, centre+psi(r)))
		}
		// Trailing root arc interior; the next tooth's leading arc
		// supplies the gap-centre point.
		for k := 1; k < arcPts; k++ {
			a := centre + psiLo + (pitchAngle/2-psiLo)*float64(k)/float64(arcPts)
			pts = append(pts, at(rr, a))
		}
	}
	return pts
}

// circleOutline approximates a circle of the given radius as a
// counter-clockwise polygon, for loft sections.
func circleOutline(radius float64, segments int) []kernel.Point2 {
	pts := make([]kernel.Point2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = kernel.Point2{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return pts
}
