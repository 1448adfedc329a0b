// Package geometry constructs the part solids: straight and globoid
// worms by helical sweep, flat-root wheels by twist extrusion, and
// hobbed wheels by kinematic cutting simulation. All construction goes
// through an injected kernel.Kernel; the engine holds no state between
// calls and every SolidModel it returns is owned exclusively by the
// caller.
package geometry

import (
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

// Engine builds part solids against an injected kernel and standards.
type Engine struct {
	k      kernel.Kernel
	tables *standards.Tables
	tuning standards.Tuning
}

// New returns an Engine over the given kernel, tables and tuning.
func New(k kernel.Kernel, tables *standards.Tables, tuning standards.Tuning) *Engine {
	return &Engine{k: k, tables: tables, tuning: tuning}
}

// Progress is the hobbing progress hook: step index (1-based), fraction
// complete and a human-readable message, invoked synchronously after
// each subtraction. Returning a non-nil error stops the simulation; the
// call returns that error and no solid.
type Progress func(step int, frac float64, msg string) error

// meshCells maps the 1..5 smoothness setting onto marching resolution.
func meshCells(smoothness int) int {
	if smoothness < 1 {
		smoothness = 1
	}
	if smoothness > 5 {
		smoothness = 5
	}
	return 60 + 40*smoothness
}

// finish meshes a completed solid, measures it and wraps it as the
// caller-owned SolidModel. A mesh that is not closed and consistently
// oriented is a fatal GeometryFailure: an invalid solid handed to
// manufacturing is a correctness defect, never degraded past silently.
func (e *Engine) finish(s kernel.Solid, part string, smoothness int) (*design.SolidModel, error) {
	mesh, err := e.k.ToMesh(s, meshCells(smoothness))
	if err != nil {
		return nil, design.Geomf("mesh", part, err, "mesh extraction failed")
	}
	mesh.PartName = part
	if !mesh.Manifold() {
		return nil, design.Geomf("mesh", part, nil, "result is not a closed manifold")
	}
	vol := mesh.Volume()
	if vol <= 0 {
		return nil, design.Geomf("mesh", part, nil, "non-positive volume %g", vol)
	}
	return &design.SolidModel{
		Part:   part,
		Solid:  s,
		Mesh:   mesh,
		Volume: vol,
		Valid:  true,
	}, nil
}

// throatLaw returns the radial reduction law of a globoid pair, or nil
// for a cylindrical worm. The law is a circular arc about the wheel
// axis at the wheel pitch radius: reduction equal to the throat
// reduction at the axial centre, falling to zero where the arc meets
// the nominal radius. Thread path and core share this one closure; a
// split law would open a gap between thread roots and core.
//
// Outside the arc (negative discriminant at the square root, a
// floating-point boundary at the ends) the law falls back to the
// nominal radius, never an error.
func throatLaw(w design.WormDesign, rho float64) kernel.OffsetLaw {
	if w.Type != design.Globoid {
		return nil
	}
	throat := w.ThroatReduction
	return func(z float64) float64 {
		disc := rho*rho - z*z
		if disc <= 0 {
			return 0
		}
		r := math.Sqrt(disc) - (rho - throat)
		if r <= 0 {
			return 0
		}
		return r
	}
}

// tipClearance is the radial clearance between one part's tip and the
// mating part's root.
func (e *Engine) tipClearance(module float64) float64 {
	return (e.tuning.DedendumFactor - e.tuning.AddendumFactor) * module
}
