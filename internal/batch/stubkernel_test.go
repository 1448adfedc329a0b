package batch

import (
	"errors"
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// stubKernel is a bounding-box kernel: constructions track extents and
// ToMesh emits a closed box mesh, which is enough for the pipeline to
// produce valid models and STL files without a modeling backend.

type stubSolid struct{ min, max [3]float64 }

func (s *stubSolid) BoundingBox() (min, max [3]float64) { return s.min, s.max }

func stubCentred(x, y, z float64) *stubSolid {
	return &stubSolid{
		min: [3]float64{-x / 2, -y / 2, -z / 2},
		max: [3]float64{x / 2, y / 2, z / 2},
	}
}

type stubProfile struct{ min, max kernel.Point2 }

func (p *stubProfile) Bounds() (min, max kernel.Point2) { return p.min, p.max }

func (p *stubProfile) radial() float64 {
	return math.Max(
		math.Max(math.Abs(p.min.X), math.Abs(p.max.X)),
		math.Max(math.Abs(p.min.Y), math.Abs(p.max.Y)),
	)
}

type stubKernel struct{}

var _ kernel.Kernel = (*stubKernel)(nil)

func (*stubKernel) Box(x, y, z float64) kernel.Solid { return stubCentred(x, y, z) }

func (*stubKernel) Cylinder(h, r float64) kernel.Solid { return stubCentred(2*r, 2*r, h) }

func (*stubKernel) Torus(major, tube float64) kernel.Solid {
	return stubCentred(2*(major+tube), 2*(major+tube), 2*tube)
}

func (*stubKernel) Spindle(h, r float64, _ kernel.OffsetLaw) kernel.Solid {
	return stubCentred(2*r, 2*r, h)
}

func (*stubKernel) Polygon(pts []kernel.Point2) (kernel.Profile, error) {
	if len(pts) < 3 {
		return nil, errors.New("polygon needs at least 3 points")
	}
	p := &stubProfile{min: pts[0], max: pts[0]}
	for _, pt := range pts[1:] {
		p.min.X = math.Min(p.min.X, pt.X)
		p.min.Y = math.Min(p.min.Y, pt.Y)
		p.max.X = math.Max(p.max.X, pt.X)
		p.max.Y = math.Max(p.max.Y, pt.Y)
	}
	return p, nil
}

func (*stubKernel) Extrude(p kernel.Profile, h, _ float64) kernel.Solid {
	r := p.(*stubProfile).radial()
	return stubCentred(2*r, 2*r, h)
}

func (*stubKernel) Revolve(p kernel.Profile) kernel.Solid {
	sp := p.(*stubProfile)
	return stubCentred(2*sp.max.X, 2*sp.max.X, sp.max.Y-sp.min.Y)
}

func (*stubKernel) Loft(sections []kernel.Profile, h float64) (kernel.Solid, error) {
	if len(sections) < 2 {
		return nil, errors.New("loft needs at least 2 sections")
	}
	r := 0.0
	for _, s := range sections {
		r = math.Max(r, s.(*stubProfile).radial())
	}
	return stubCentred(2*r, 2*r, h), nil
}

func (*stubKernel) Screw(p kernel.Profile, h, _, _ float64, _ bool, _ kernel.OffsetLaw) kernel.Solid {
	r := p.(*stubProfile).max.X
	return stubCentred(2*r, 2*r, h)
}

func (*stubKernel) Union(a, b kernel.Solid) kernel.Solid {
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	out := &stubSolid{}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Min(amin[i], bmin[i])
		out.max[i] = math.Max(amax[i], bmax[i])
	}
	return out
}

func (*stubKernel) Difference(a, _ kernel.Solid) kernel.Solid {
	amin, amax := a.BoundingBox()
	return &stubSolid{min: amin, max: amax}
}

func (*stubKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	out := &stubSolid{}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Max(amin[i], bmin[i])
		out.max[i] = math.Min(amax[i], bmax[i])
		if out.max[i] < out.min[i] {
			out.max[i] = out.min[i]
		}
	}
	return out
}

func (*stubKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	min, max := s.BoundingBox()
	d := [3]float64{x, y, z}
	for i := 0; i < 3; i++ {
		min[i] += d[i]
		max[i] += d[i]
	}
	return &stubSolid{min: min, max: max}
}

func (*stubKernel) Rotate(s kernel.Solid, _, _, _ float64) kernel.Solid {
	min, max := s.BoundingBox()
	return &stubSolid{min: min, max: max}
}

func (*stubKernel) Simplify(s kernel.Solid) kernel.Solid { return s }

func (*stubKernel) ToMesh(s kernel.Solid, _ int) (*kernel.Mesh, error) {
	min, max := s.BoundingBox()
	corners := [8][3]float64{
		{min[0], min[1], min[2]},
		{max[0], min[1], min[2]},
		{max[0], max[1], min[2]},
		{min[0], max[1], min[2]},
		{min[0], min[1], max[2]},
		{max[0], min[1], max[2]},
		{max[0], max[1], max[2]},
		{min[0], max[1], max[2]},
	}
	m := &kernel.Mesh{}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, float32(c[0]), float32(c[1]), float32(c[2]))
		m.Normals = append(m.Normals, 0, 0, 1)
	}
	m.Indices = []uint32{
		0, 2, 1, 0, 3, 2,
		4, 5, 6, 4, 6, 7,
		0, 1, 5, 0, 5, 4,
		2, 3, 7, 2, 7, 6,
		0, 4, 7, 0, 7, 3,
		1, 2, 6, 1, 6, 5,
	}
	return m, nil
}
