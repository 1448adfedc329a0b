// Package kernel defines the abstract solid-modeling kernel interface
// the synthesis engine is written against. A backend (sdfx) provides
// primitives, profile sweeps and boolean operations behind this
// interface; numerical robustness of the representation is the
// backend's responsibility. The abstraction allows swapping backends
// without changing the rest of the system.
package kernel

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Profile is an opaque handle to a closed 2-D region, used as the
// cross-section for extrusions, revolves, lofts and screw sweeps.
type Profile interface {
	// Bounds returns the axis-aligned bounds of the region.
	Bounds() (min, max Point2)
}

// Point2 is a point on a 2-D profile. Axes depend on the construction:
// for Revolve, Spindle and Screw profiles X is radial and Y axial.
type Point2 struct {
	X, Y float64
}

// OffsetLaw gives a radial reduction as a function of axial position z.
// A nil law means zero everywhere. Sweeps that accept a law apply it to
// their nominal radius, which is how the hourglass (globoid) profile
// variation enters the kernel: the same law drives both the thread path
// and the core so the two can never disagree.
type OffsetLaw func(z float64) float64

// Kernel is the solid-modeling collaborator contract. All solids are
// centred at the origin; orientation is established afterwards with
// Translate and Rotate. Constructions are pure: no method retains a
// reference to its inputs or outputs.
type Kernel interface {
	// Primitives.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	// Torus with its axis along Z: major is the centreline radius,
	// tube the section radius.
	Torus(major, tube float64) Solid
	// Spindle is a cylinder of revolution whose radius at height z is
	// radius - offset(z). A nil offset yields a plain cylinder.
	Spindle(height, radius float64, offset OffsetLaw) Solid

	// Polygon builds a profile from a closed boundary polygon given
	// counter-clockwise. Fewer than three points is an error.
	Polygon(pts []Point2) (Profile, error)

	// Extrude sweeps a profile along Z over the given height,
	// rotating it by twistDeg end to end (0 for a straight prism).
	Extrude(p Profile, height, twistDeg float64) Solid
	// Revolve spins a profile in the (radial, axial) half-plane about
	// the Z axis. Points with X < 0 are outside the domain.
	Revolve(p Profile) Solid
	// Loft interpolates through a profile sequence evenly spaced over
	// the given height. Fewer than two sections is an error.
	Loft(sections []Profile, height float64) (Solid, error)
	// Screw sweeps a thread section along a helix of the given lead
	// about Z over the given height. The profile lives in the axial
	// plane: X radial from the axis, Y axial within one pitch period;
	// the section repeats every pitch, so a lead of n×pitch yields an
	// n-start thread. leftHand mirrors the helix. offset, when
	// non-nil, reduces the thread path radius by offset(z).
	Screw(p Profile, height, pitch, lead float64, leftHand bool, offset OffsetLaw) Solid

	// Boolean operations.
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms.
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, applied X then Y then Z

	// Simplify bounds the evaluation cost of a solid with a deep
	// boolean history. The result is geometrically equivalent within
	// the backend's tolerance. Backends may return the input
	// unchanged.
	Simplify(s Solid) Solid

	// ToMesh extracts a triangle mesh at the given resolution (cells
	// across the longest bounding-box axis).
	ToMesh(s Solid, cells int) (*Mesh, error)
}

// Exporter3MF is implemented by backends that can write the 3MF
// exchange format natively. Callers without it fall back to STL from
// the mesh.
type Exporter3MF interface {
	To3MF(s Solid, path string, cells int) error
}
