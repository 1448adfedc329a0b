package sdfx

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	mesh, err := k.ToMesh(box, 100)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestCylinderVolume(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10)
	mesh, err := k.ToMesh(cyl, 120)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if !mesh.Manifold() {
		t.Fatal("cylinder mesh is not manifold")
	}
	want := math.Pi * 10 * 10 * 50
	if got := mesh.Volume(); math.Abs(got-want)/want > 0.05 {
		t.Errorf("volume = %f, want ~%f", got, want)
	}
}

func TestTorus(t *testing.T) {
	k := New()
	tor := k.Torus(20, 5)
	mesh, err := k.ToMesh(tor, 100)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	// V = 2 pi^2 R r^2
	want := 2 * math.Pi * math.Pi * 20 * 25
	if got := mesh.Volume(); math.Abs(got-want)/want > 0.08 {
		t.Errorf("volume = %f, want ~%f", got, want)
	}

	defer func() {
		if recover() == nil {
			t.Error("Torus with tube >= major should panic")
		}
	}()
	k.Torus(5, 20)
}

func TestSpindleOffsetLaw(t *testing.T) {
	k := New()
	// A spindle necked down by 2mm at the centre, nominal at the ends.
	law := func(z float64) float64 {
		return 2 * math.Max(0, 1-math.Abs(z)/25)
	}
	sp := k.Spindle(50, 10, law)

	min, max := sp.BoundingBox()
	if max[0] != 10 || min[2] != -25 {
		t.Errorf("bounding box = %v %v", min, max)
	}

	plain := k.Cylinder(50, 10)
	mp, err := k.ToMesh(plain, 100)
	if err != nil {
		t.Fatal(err)
	}
	ms, err := k.ToMesh(sp, 100)
	if err != nil {
		t.Fatal(err)
	}
	if ms.Volume() >= mp.Volume() {
		t.Errorf("necked spindle volume %f should be below cylinder volume %f", ms.Volume(), mp.Volume())
	}
}

func TestPolygonPrecondition(t *testing.T) {
	k := New()
	if _, err := k.Polygon([]kernel.Point2{{X: 0, Y: 0}, {X: 1, Y: 0}}); err == nil {
		t.Error("Polygon with 2 points should fail")
	}
}

func TestExtrudeTwist(t *testing.T) {
	k := New()
	square := []kernel.Point2{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}
	p, err := k.Polygon(square)
	if err != nil {
		t.Fatal(err)
	}

	straight, err := k.ToMesh(k.Extrude(p, 20, 0), 80)
	if err != nil {
		t.Fatal(err)
	}
	want := 10.0 * 10 * 20
	if got := straight.Volume(); math.Abs(got-want)/want > 0.05 {
		t.Errorf("straight extrude volume = %f, want ~%f", got, want)
	}

	// Twist preserves the cross-section, so the volume stays put.
	twisted, err := k.ToMesh(k.Extrude(p, 20, 45), 80)
	if err != nil {
		t.Fatal(err)
	}
	if got := twisted.Volume(); math.Abs(got-want)/want > 0.08 {
		t.Errorf("twisted extrude volume = %f, want ~%f", got, want)
	}
}

func TestRevolve(t *testing.T) {
	k := New()
	// A rectangle from r=5 to r=10 revolved about Z is a tube.
	p, err := k.Polygon([]kernel.Point2{{X: 5, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: 5, Y: 10}})
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := k.ToMesh(k.Revolve(p), 100)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pi * (10*10 - 5*5) * 20
	if got := mesh.Volume(); math.Abs(got-want)/want > 0.05 {
		t.Errorf("revolve volume = %f, want ~%f", got, want)
	}
}

func TestLoft(t *testing.T) {
	k := New()
	big, err := k.Polygon([]kernel.Point2{{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10}})
	if err != nil {
		t.Fatal(err)
	}
	small, err := k.Polygon([]kernel.Point2{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := k.Loft([]kernel.Profile{big}, 20); err == nil {
		t.Error("Loft with one section should fail")
	}

	s, err := k.Loft([]kernel.Profile{big, small, big}, 20)
	if err != nil {
		t.Fatalf("Loft failed: %v", err)
	}
	mesh, err := k.ToMesh(s, 80)
	if err != nil {
		t.Fatal(err)
	}
	bigVol := 20.0 * 20 * 20
	smallVol := 10.0 * 10 * 20
	v := mesh.Volume()
	if v >= bigVol || v <= smallVol {
		t.Errorf("lofted volume %f should lie between %f and %f", v, smallVol, bigVol)
	}
}

func TestScrewSweep(t *testing.T) {
	k := New()
	// A triangular thread section from r=8 to r=10, one pitch period.
	p, err := k.Polygon([]kernel.Point2{{X: 8, Y: -1.5}, {X: 10, Y: 0}, {X: 8, Y: 1.5}})
	if err != nil {
		t.Fatal(err)
	}

	s := k.Screw(p, 20, 4, 4, false, nil)
	min, max := s.BoundingBox()
	if max[0] != 10 || min[2] != -10 {
		t.Errorf("screw bounding box = %v %v", min, max)
	}

	mesh, err := k.ToMesh(k.Union(s, k.Cylinder(20, 8.1)), 100)
	if err != nil {
		t.Fatal(err)
	}
	if !mesh.Manifold() {
		t.Error("screw + core mesh is not manifold")
	}
	core, err := k.ToMesh(k.Cylinder(20, 8.1), 100)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Volume() <= core.Volume() {
		t.Errorf("threaded volume %f should exceed core volume %f", mesh.Volume(), core.Volume())
	}
}

func TestScrewHandedness(t *testing.T) {
	k := New()
	p, err := k.Polygon([]kernel.Point2{{X: 8, Y: -1.5}, {X: 10, Y: 0}, {X: 8, Y: 1.5}})
	if err != nil {
		t.Fatal(err)
	}
	right := unwrap(k.Screw(p, 20, 4, 4, false, nil))
	left := unwrap(k.Screw(p, 20, 4, 4, true, nil))

	// Sample near the tooth crest a quarter turn around the axis: the
	// right-hand thread has advanced +lead/4 in Z there, the left-hand
	// thread the other way.
	const zAdvance = 1.0 // lead/4
	rOn := right.Evaluate(v3.Vec{Y: 9.5, Z: zAdvance})
	rOff := right.Evaluate(v3.Vec{Y: 9.5, Z: -zAdvance})
	lOn := left.Evaluate(v3.Vec{Y: 9.5, Z: -zAdvance})
	lOff := left.Evaluate(v3.Vec{Y: 9.5, Z: zAdvance})
	if !(rOn < rOff) {
		t.Errorf("right-hand thread should advance +Z: on=%f off=%f", rOn, rOff)
	}
	if !(lOn < lOff) {
		t.Errorf("left-hand thread should advance -Z: on=%f off=%f", lOn, lOff)
	}
}

func TestRotateTranslate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}

	moved := k.Translate(box, 100, 200, 300)
	min, max = moved.BoundingBox()
	if math.Abs(min[0]-50) > tol || math.Abs(max[2]-305) > tol {
		t.Errorf("translated bounds = %v %v", min, max)
	}
}

func TestSimplifyIsIdentity(t *testing.T) {
	k := New()
	s := k.Difference(k.Box(10, 10, 10), k.Cylinder(20, 2))
	if k.Simplify(s) != s {
		t.Error("sdfx Simplify should return its input")
	}
}
