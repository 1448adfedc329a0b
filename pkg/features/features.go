// Package features resolves bore sizing and anti-rotation features
// (keyway, double-flat, set-screw) into exact cut geometry. Resolution
// is pure table lookup and arithmetic against the injected standards;
// the kernel is never touched here. The anti-rotation variants form a
// tagged union built through Compose, which enforces the composition
// rules (keyway and double-flat are mutually exclusive on one part).
package features

import (
	"fmt"
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

// AntiRotation is the tagged union of anti-rotation variants. The
// marker method keeps the set closed to this package's types.
type AntiRotation interface {
	antiRotation()
}

// None requests no anti-rotation feature.
type None struct{}

// Keyway requests a parallel-key slot sized from the standards table by
// the resolved bore diameter.
type Keyway struct{}

// DoubleFlat requests a DD-cut: two parallel flats on the bore. Exactly
// one of Depth and AcrossFlats may be set; both zero selects the
// default depth fraction of the bore. Depth is the distance from the
// bore axis to each flat plane.
type DoubleFlat struct {
	Depth       float64 // mm from axis; 0 = default
	AcrossFlats float64 // mm flat-to-flat; 0 = unset
}

// Custom marks a caller-applied feature: resolution records the name
// and cuts nothing.
type Custom struct {
	Name string
}

func (None) antiRotation()       {}
func (Keyway) antiRotation()     {}
func (DoubleFlat) antiRotation() {}
func (Custom) antiRotation()     {}

// SetScrew requests radial set-screw holes: a nominal metric size and a
// count, evenly distributed from the start offset.
type SetScrew struct {
	Size      string  // "M4"
	Count     int     // 1..6
	OffsetDeg float64 // angular start offset
}

// Spec is the per-part feature request handed to Resolve.
type Spec struct {
	// Bore is the requested bore diameter; 0 with AutoBore false means
	// a solid part.
	Bore     float64
	AutoBore bool
	Anti     AntiRotation
	SetScrew *SetScrew
}

// ComposeOptions are the loose per-part inputs (documents, CLI flags)
// from which the anti-rotation union is built.
type ComposeOptions struct {
	Keyway     bool
	DoubleFlat *DoubleFlat
	Custom     string
}

// Compose builds the anti-rotation variant from loose inputs, applying
// the composition rules: keyway and double-flat are mutually exclusive,
// and a custom feature excludes both.
func Compose(o ComposeOptions) (AntiRotation, error) {
	set := 0
	if o.Keyway {
		set++
	}
	if o.DoubleFlat != nil {
		set++
	}
	if o.Custom != "" {
		set++
	}
	if set > 1 {
		return nil, design.Infeasiblef("anti_rotation",
			"keyway, double-flat and custom features are mutually exclusive on one part")
	}
	switch {
	case o.Keyway:
		return Keyway{}, nil
	case o.DoubleFlat != nil:
		return *o.DoubleFlat, nil
	case o.Custom != "":
		return Custom{Name: o.Custom}, nil
	}
	return None{}, nil
}

// PartDims are the dimensions of the part being featured, taken from
// its design record.
type PartDims struct {
	PitchDiameter float64
	RootDiameter  float64
	Length        float64 // axial extent of the part (worm length or face width)
}

// ResolvedKeyway is the exact keyway cut: hub-side slot dimensions.
type ResolvedKeyway struct {
	Width    float64
	Height   float64
	HubDepth float64
}

// ResolvedFlats is the exact DD-cut: flats at Depth from the axis, with
// the chord half-width where flat meets bore.
type ResolvedFlats struct {
	Depth     float64
	HalfWidth float64
}

// ResolvedSetScrews is the exact set-screw drilling: hole diameter and
// the angular positions.
type ResolvedSetScrews struct {
	Diameter  float64
	Count     int
	AnglesDeg []float64
}

// Resolved is the exact cut geometry for one part, consumed by the
// synthesis engine in fixed order bore, anti-rotation, set-screws.
type Resolved struct {
	Bore      float64 // 0 = solid part
	Keyway    *ResolvedKeyway
	Flats     *ResolvedFlats
	SetScrews *ResolvedSetScrews
	Custom    string
	Findings  design.Findings // thin-rim and similar advisories
}

// Resolver resolves feature specs against injected standards tables
// and tuning.
type Resolver struct {
	tables *standards.Tables
	tuning standards.Tuning
}

// New returns a Resolver over the given tables and tuning.
func New(tables *standards.Tables, tuning standards.Tuning) *Resolver {
	return &Resolver{tables: tables, tuning: tuning}
}

// Resolve turns a feature spec into exact cut geometry for the part.
// For any (pitch, root) pair it returns a usable bore or a fatal error;
// it never yields a negative rim.
func (r *Resolver) Resolve(spec Spec, part PartDims) (*Resolved, error) {
	if spec.Anti == nil {
		spec.Anti = None{}
	}
	if part.RootDiameter <= 0 {
		return nil, design.Inputf("root_diameter", part.RootDiameter, "must be positive")
	}

	out := &Resolved{}

	// Feature depth eats into the rim alongside the bore; account for
	// it before sizing.
	depthFor := func(bore float64) float64 {
		switch a := spec.Anti.(type) {
		case Keyway:
			if b, ok := r.tables.KeywayFor(bore); ok {
				return b.HubDepth
			}
			return 0
		case DoubleFlat:
			// Flats cut inside the bore circle, no extra rim loss.
			_ = a
			return 0
		}
		return 0
	}

	switch {
	case spec.AutoBore:
		bore, findings, err := r.autoBore(part, depthFor)
		if err != nil {
			return nil, err
		}
		out.Bore = bore
		out.Findings = append(out.Findings, findings...)
	case spec.Bore > 0:
		if err := r.checkBore(spec.Bore, part, depthFor(spec.Bore)); err != nil {
			return nil, err
		}
		out.Bore = spec.Bore
		if rim := rim(part.RootDiameter, spec.Bore, depthFor(spec.Bore)); rim < r.tuning.ThinRimWarn {
			out.Findings = append(out.Findings, thinRimFinding(rim))
		}
	case spec.Bore < 0:
		return nil, design.Inputf("bore", spec.Bore, "must not be negative")
	}

	// Anti-rotation resolution requires a bore to cut into.
	switch a := spec.Anti.(type) {
	case None:
	case Keyway:
		if out.Bore == 0 {
			return nil, design.Inputf("keyway", nil, "requires a bore")
		}
		b, ok := r.tables.KeywayFor(out.Bore)
		if !ok {
			near := r.nearestBracketBore(out.Bore)
			return nil, design.InfeasibleNear("keyway", near,
				"no keyway bracket covers bore %.3g mm", out.Bore)
		}
		out.Keyway = &ResolvedKeyway{Width: b.Width, Height: b.Height, HubDepth: b.HubDepth}
	case DoubleFlat:
		if out.Bore == 0 {
			return nil, design.Inputf("double_flat", nil, "requires a bore")
		}
		flats, err := r.resolveFlats(a, out.Bore)
		if err != nil {
			return nil, err
		}
		out.Flats = flats
	case Custom:
		out.Custom = a.Name
	default:
		return nil, design.Inputf("anti_rotation", fmt.Sprintf("%T", a), "unknown variant")
	}

	if spec.SetScrew != nil {
		ss, err := r.resolveSetScrews(*spec.SetScrew, out.Bore)
		if err != nil {
			return nil, err
		}
		out.SetScrews = ss
	}
	return out, nil
}

// rim is the radial wall left between bore and root after a feature of
// the given depth.
func rim(root, bore, featureDepth float64) float64 {
	return root/2 - bore/2 - featureDepth
}

func thinRimFinding(rimMM float64) design.Finding {
	return design.Finding{
		Severity:    design.SeverityWarning,
		Code:        design.CodeThinRim,
		Message:     fmt.Sprintf("rim of %.2f mm between bore and root is thin", rimMM),
		Remediation: "reduce the bore, or accept reduced hub strength",
	}
}

// checkBore rejects an explicit bore that the part cannot carry.
func (r *Resolver) checkBore(bore float64, part PartDims, featureDepth float64) error {
	if bore >= part.RootDiameter {
		return design.Inputf("bore", bore, "exceeds root diameter %.3g mm", part.RootDiameter)
	}
	maxBore := part.RootDiameter - 2*(r.tuning.MinRim+featureDepth)
	if bore > maxBore {
		if maxBore <= 0 {
			return design.Infeasiblef("bore", "part root %.3g mm cannot carry any bore with a %.3g mm rim",
				part.RootDiameter, r.tuning.MinRim)
		}
		return design.InfeasibleNear("bore", maxBore,
			"bore %.3g mm leaves a rim below the %.3g mm minimum", bore, r.tuning.MinRim)
	}
	return nil
}

// autoBore sizes the bore from the pitch diameter, clamped so the rim
// clears the minimum, and rounded down to the coarse grid: 0.5 mm below
// 10 mm, 1 mm above.
func (r *Resolver) autoBore(part PartDims, depthFor func(bore float64) float64) (float64, design.Findings, error) {
	target := r.tuning.BoreFraction * part.PitchDiameter

	// Two passes: the feature depth can change with the bore bracket,
	// so clamp, look up, and clamp again with the real depth.
	bore := target
	for i := 0; i < 2; i++ {
		maxBore := part.RootDiameter - 2*(r.tuning.MinRim+depthFor(bore))
		if maxBore <= 0 {
			return 0, nil, design.Infeasiblef("bore",
				"part root %.3g mm cannot carry any bore with a %.3g mm rim",
				part.RootDiameter, r.tuning.MinRim)
		}
		bore = math.Min(target, maxBore)
	}
	bore = roundDownToGrid(bore)
	if bore <= 0 {
		return 0, nil, design.Infeasiblef("bore",
			"auto bore rounds to zero for pitch %.3g mm", part.PitchDiameter)
	}

	var findings design.Findings
	if w := rim(part.RootDiameter, bore, depthFor(bore)); w < r.tuning.ThinRimWarn {
		findings = append(findings, thinRimFinding(w))
	}
	return bore, findings, nil
}

// roundDownToGrid rounds a bore down to 0.5 mm below 10 mm, else 1 mm.
func roundDownToGrid(bore float64) float64 {
	if bore < 10 {
		return math.Floor(bore*2) / 2
	}
	return math.Floor(bore)
}

// resolveFlats computes the DD-cut geometry. Depth is the distance from
// the axis to the flat; the chord half-width where the flat meets the
// bore circle of radius R is sqrt(R^2 - d^2).
func (r *Resolver) resolveFlats(f DoubleFlat, bore float64) (*ResolvedFlats, error) {
	if f.Depth != 0 && f.AcrossFlats != 0 {
		return nil, design.Inputf("double_flat", nil, "depth and across-flats are mutually exclusive")
	}
	R := bore / 2
	d := f.Depth
	if f.AcrossFlats != 0 {
		d = f.AcrossFlats / 2
	}
	if d == 0 {
		d = r.tuning.FlatDepthFraction * bore
	}
	if d < 0 {
		return nil, design.Inputf("flat_depth", d, "must be positive")
	}
	if d >= R {
		return nil, design.Inputf("flat_depth", d, "must be below the bore radius %.3g mm", R)
	}
	return &ResolvedFlats{
		Depth:     d,
		HalfWidth: math.Sqrt(R*R - d*d),
	}, nil
}

// resolveSetScrews checks the set-screw request against the bore and
// spreads the holes evenly from the offset.
func (r *Resolver) resolveSetScrews(s SetScrew, bore float64) (*ResolvedSetScrews, error) {
	if bore == 0 {
		return nil, design.Inputf("set_screw", nil, "requires a resolved bore")
	}
	if s.Count < 1 || s.Count > 6 {
		return nil, design.Inputf("set_screw_count", s.Count, "must be between 1 and 6")
	}
	size, ok := r.tables.SetScrew(s.Size)
	if !ok {
		return nil, design.Inputf("set_screw_size", s.Size, "unknown designation")
	}
	if size.Diameter >= bore {
		return nil, design.Inputf("set_screw_size", s.Size,
			"thread diameter %.3g mm must be below the bore %.3g mm", size.Diameter, bore)
	}
	angles := make([]float64, s.Count)
	step := 360.0 / float64(s.Count)
	for i := range angles {
		angles[i] = s.OffsetDeg + float64(i)*step
	}
	return &ResolvedSetScrews{Diameter: size.Diameter, Count: s.Count, AnglesDeg: angles}, nil
}

// nearestBracketBore returns the covered bore closest to the given one,
// for infeasibility reporting.
func (r *Resolver) nearestBracketBore(bore float64) float64 {
	best, dist := 0.0, math.Inf(1)
	for _, b := range r.tables.Keyways {
		for _, edge := range []float64{b.MinBore + 0.001, b.MaxBore} {
			if d := math.Abs(bore - edge); d < dist {
				best, dist = edge, d
			}
		}
	}
	return best
}
