package geometry

import (
	"errors"
	"math"

	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// The fake kernel tracks bounding boxes through every construction and
// counts operations, so engine tests can assert construction structure
// and extents without a modeling backend.

type fakeSolid struct {
	min, max [3]float64
}

func (s *fakeSolid) BoundingBox() (min, max [3]float64) { return s.min, s.max }

func centred(x, y, z float64) *fakeSolid {
	return &fakeSolid{
		min: [3]float64{-x / 2, -y / 2, -z / 2},
		max: [3]float64{x / 2, y / 2, z / 2},
	}
}

type fakeProfile struct {
	min, max kernel.Point2
}

func (p *fakeProfile) Bounds() (min, max kernel.Point2) { return p.min, p.max }

// radial is the largest distance of the profile bounds from the origin
// in the X/Y plane.
func (p *fakeProfile) radial() float64 {
	return math.Max(
		math.Max(math.Abs(p.min.X), math.Abs(p.max.X)),
		math.Max(math.Abs(p.min.Y), math.Abs(p.max.Y)),
	)
}

type fakeKernel struct {
	ops      map[string]int
	openMesh bool // emit a non-closed mesh from ToMesh
}

var _ kernel.Kernel = (*fakeKernel)(nil)

func newFakeKernel() *fakeKernel {
	return &fakeKernel{ops: make(map[string]int)}
}

func (k *fakeKernel) op(name string) { k.ops[name]++ }

func (k *fakeKernel) Box(x, y, z float64) kernel.Solid {
	k.op("box")
	return centred(x, y, z)
}

func (k *fakeKernel) Cylinder(height, radius float64) kernel.Solid {
	k.op("cylinder")
	return centred(2*radius, 2*radius, height)
}

func (k *fakeKernel) Torus(major, tube float64) kernel.Solid {
	k.op("torus")
	return centred(2*(major+tube), 2*(major+tube), 2*tube)
}

func (k *fakeKernel) Spindle(height, radius float64, offset kernel.OffsetLaw) kernel.Solid {
	k.op("spindle")
	return centred(2*radius, 2*radius, height)
}

func (k *fakeKernel) Polygon(pts []kernel.Point2) (kernel.Profile, error) {
	k.op("polygon")
	if len(pts) < 3 {
		return nil, errors.New("polygon needs at least 3 points")
	}
	p := &fakeProfile{min: pts[0], max: pts[0]}
	for _, pt := range pts[1:] {
		p.min.X = math.Min(p.min.X, pt.X)
		p.min.Y = math.Min(p.min.Y, pt.Y)
		p.max.X = math.Max(p.max.X, pt.X)
		p.max.Y = math.Max(p.max.Y, pt.Y)
	}
	return p, nil
}

func (k *fakeKernel) Extrude(p kernel.Profile, height, twistDeg float64) kernel.Solid {
	k.op("extrude")
	r := p.(*fakeProfile).radial()
	return centred(2*r, 2*r, height)
}

func (k *fakeKernel) Revolve(p kernel.Profile) kernel.Solid {
	k.op("revolve")
	fp := p.(*fakeProfile)
	return centred(2*fp.max.X, 2*fp.max.X, fp.max.Y-fp.min.Y)
}

func (k *fakeKernel) Loft(sections []kernel.Profile, height float64) (kernel.Solid, error) {
	k.op("loft")
	if len(sections) < 2 {
		return nil, errors.New("loft needs at least 2 sections")
	}
	r := 0.0
	for _, s := range sections {
		r = math.Max(r, s.(*fakeProfile).radial())
	}
	return centred(2*r, 2*r, height), nil
}

func (k *fakeKernel) Screw(p kernel.Profile, height, pitch, lead float64, leftHand bool, offset kernel.OffsetLaw) kernel.Solid {
	k.op("screw")
	r := p.(*fakeProfile).max.X
	return centred(2*r, 2*r, height)
}

func (k *fakeKernel) Union(a, b kernel.Solid) kernel.Solid {
	k.op("union")
	out := &fakeSolid{}
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	for i := 0; i < 3; i++ {
		out.min[i] = math.Min(amin[i], bmin[i])
		out.max[i] = math.Max(amax[i], bmax[i])
	}
	return out
}

func (k *fakeKernel) Difference(a, b kernel.Solid) kernel.Solid {
	k.op("difference")
	amin, amax := a.BoundingBox()
	return &fakeSolid{min: amin, max: amax}
}

func (k *fakeKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	k.op("intersection")
	out := &fakeSolid{}
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	for i := 0; i < 3; i++ {
		out.min[i] = math.Max(amin[i], bmin[i])
		out.max[i] = math.Min(amax[i], bmax[i])
		if out.max[i] < out.min[i] {
			out.max[i] = out.min[i]
		}
	}
	return out
}

func (k *fakeKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	k.op("translate")
	min, max := s.BoundingBox()
	d := [3]float64{x, y, z}
	for i := 0; i < 3; i++ {
		min[i] += d[i]
		max[i] += d[i]
	}
	return &fakeSolid{min: min, max: max}
}

func (k *fakeKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	k.op("rotate")
	min, max := s.BoundingBox()
	out := &fakeSolid{
		min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for ix := 0; ix < 2; ix++ {
		for iy := 0; iy < 2; iy++ {
			for iz := 0; iz < 2; iz++ {
				c := [3]float64{pick(min[0], max[0], ix), pick(min[1], max[1], iy), pick(min[2], max[2], iz)}
				c = rotX(c, x)
				c = rotY(c, y)
				c = rotZ(c, z)
				for i := 0; i < 3; i++ {
					out.min[i] = math.Min(out.min[i], c[i])
					out.max[i] = math.Max(out.max[i], c[i])
				}
			}
		}
	}
	return out
}

func pick(lo, hi float64, i int) float64 {
	if i == 0 {
		return lo
	}
	return hi
}

func rotX(p [3]float64, d float64) [3]float64 {
	s, c := math.Sincos(d * deg)
	return [3]float64{p[0], c*p[1] - s*p[2], s*p[1] + c*p[2]}
}

func rotY(p [3]float64, d float64) [3]float64 {
	s, c := math.Sincos(d * deg)
	return [3]float64{c*p[0] + s*p[2], p[1], -s*p[0] + c*p[2]}
}

func rotZ(p [3]float64, d float64) [3]float64 {
	s, c := math.Sincos(d * deg)
	return [3]float64{c*p[0] - s*p[1], s*p[0] + c*p[1], p[2]}
}

func (k *fakeKernel) Simplify(s kernel.Solid) kernel.Solid {
	k.op("simplify")
	return s
}

// ToMesh emits a closed box mesh spanning the solid's bounding box, so
// finish() sees a manifold with the solid's extents and a positive
// volume. With openMesh set the last triangle is dropped.
func (k *fakeKernel) ToMesh(s kernel.Solid, cells int) (*kernel.Mesh, error) {
	k.op("tomesh")
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
		0, 2, 1, 0, 3, 2, // bottom
		4, 5, 6, 4, 6, 7, // top
		0, 1, 5, 0, 5, 4, // front
		2, 3, 7, 2, 7, 6, // back
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	if k.openMesh {
		m.Indices = m.Indices[:len(m.Indices)-3]
	}
	return m, nil
}
