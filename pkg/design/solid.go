package design

import "github.com/pzfreo/wormgear-sub002/pkg/kernel"

// SolidModel is the synthesis output for one part: the kernel solid, its
// triangle mesh, and the measured volume and validity. The engine
// produces a fresh SolidModel per call and never retains a reference;
// the value is exclusively owned by the caller.
type SolidModel struct {
	Part   string // "worm" or "wheel"
	Solid  kernel.Solid
	Mesh   *kernel.Mesh
	Volume float64 // mm^3, measured on the mesh
	Valid  bool    // mesh is closed and consistently oriented
}
