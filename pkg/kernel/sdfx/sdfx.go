// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx signed-distance-field CAD library. Primitives
// and booleans map onto sdfx directly; the gear-specific sweeps (screw,
// spindle, loft, twist extrude) are custom SDF3 implementations in
// sweeps.go because they carry the radial offset law sdfx's built-in
// extrusions do not.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*Kernel)(nil)
var _ kernel.Exporter3MF = (*Kernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution when
// the caller passes a non-positive cell count.
const defaultMeshCells = 200

// solid wraps an sdf.SDF3 to implement kernel.Solid.
type solid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *solid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// profile wraps an sdf.SDF2 to implement kernel.Profile.
type profile struct {
	s sdf.SDF2
}

// Bounds returns the axis-aligned bounds of the region.
func (p *profile) Bounds() (min, max kernel.Point2) {
	bb := p.s.BoundingBox()
	return kernel.Point2{X: bb.Min.X, Y: bb.Min.Y}, kernel.Point2{X: bb.Max.X, Y: bb.Max.Y}
}

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct{}

// New returns a new sdfx-backed kernel.
func New() *Kernel {
	return &Kernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*solid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &solid{s: s}
}

// unwrap2 extracts the underlying sdf.SDF2 from a kernel.Profile.
func unwrap2(p kernel.Profile) sdf.SDF2 {
	return p.(*profile).s
}

// Box creates a box centred at the origin.
func (k *Kernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a cylinder centred at the origin with its axis
// along Z.
func (k *Kernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Torus creates a torus with its axis along Z.
func (k *Kernel) Torus(major, tube float64) kernel.Solid {
	if major <= 0 || tube <= 0 || tube >= major {
		panic(fmt.Sprintf("sdfx.Torus: invalid radii major=%g tube=%g", major, tube))
	}
	return wrap(&torusSDF{major: major, tube: tube})
}

// Spindle creates a cylinder of revolution whose radius at height z is
// radius - offset(z).
func (k *Kernel) Spindle(height, radius float64, offset kernel.OffsetLaw) kernel.Solid {
	return wrap(&spindleSDF{h: height, r: radius, offset: offset})
}

// Polygon builds a profile from a closed counter-clockwise boundary.
func (k *Kernel) Polygon(pts []kernel.Point2) (kernel.Profile, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(pts))
	}
	vs := make([]v2.Vec, len(pts))
	for i, p := range pts {
		vs[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return &profile{s: s}, nil
}

// Extrude sweeps a profile along Z, twisting it by twistDeg end to end.
func (k *Kernel) Extrude(p kernel.Profile, height, twistDeg float64) kernel.Solid {
	return wrap(&extrudeSDF{
		s:     unwrap2(p),
		h:     height,
		twist: twistDeg * math.Pi / 180,
	})
}

// Revolve spins a (radial, axial) profile about the Z axis.
func (k *Kernel) Revolve(p kernel.Profile) kernel.Solid {
	return wrap(&revolveSDF{s: unwrap2(p)})
}

// Loft interpolates through a profile sequence evenly spaced over the
// given height.
func (k *Kernel) Loft(sections []kernel.Profile, height float64) (kernel.Solid, error) {
	if len(sections) < 2 {
		return nil, fmt.Errorf("loft needs at least 2 sections, got %d", len(sections))
	}
	ss := make([]sdf.SDF2, len(sections))
	for i, p := range sections {
		ss[i] = unwrap2(p)
	}
	return wrap(&loftSDF{sections: ss, h: height}), nil
}

// Screw sweeps a thread section along a helix about Z.
func (k *Kernel) Screw(p kernel.Profile, height, pitch, lead float64, leftHand bool, offset kernel.OffsetLaw) kernel.Solid {
	return wrap(&screwSDF{
		s:      unwrap2(p),
		h:      height,
		pitch:  pitch,
		lead:   lead,
		left:   leftHand,
		offset: offset,
	})
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Simplify returns the input unchanged. A signed-distance boolean tree
// is lazy: it carries no accumulated surface complexity to collapse,
// and resampling the field to a grid would blunt tooth flanks below the
// cell size. The method exists for backends with eager boundary
// representations.
func (k *Kernel) Simplify(s kernel.Solid) kernel.Solid {
	return s
}

// ToMesh converts a solid to a triangle mesh using marching cubes at
// the given resolution.
func (k *Kernel) ToMesh(s kernel.Solid, cells int) (*kernel.Mesh, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("meshing produced no triangles")
	}

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
