package geometry

import (
	"github.com/pzfreo/wormgear-sub002/pkg/features"
	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// cutOverrun extends cutting tools past the faces they pierce so the
// boolean never leaves a coplanar skin.
const cutOverrun = 2.0

// applyFeatures cuts the resolved features into a part whose axis is Z,
// in the fixed order bore, anti-rotation, set-screws. length is the
// part's axial extent and outerRadius its largest radius; both size the
// cutting tools. A nil resolution returns the solid unchanged.
func (e *Engine) applyFeatures(s kernel.Solid, feat *features.Resolved, length, outerRadius float64) kernel.Solid {
	if feat == nil {
		return s
	}
	through := length + 2*cutOverrun

	if feat.Bore > 0 {
		cutter := e.k.Cylinder(through, feat.Bore/2)
		if feat.Flats != nil {
			// A DD bore keeps the material beyond the flat planes: the
			// hole is the bore circle clipped to the slab between them.
			slab := e.k.Box(feat.Bore+2, 2*feat.Flats.Depth, through)
			cutter = e.k.Intersection(cutter, slab)
		}
		s = e.k.Difference(s, cutter)
	}

	if kw := feat.Keyway; kw != nil && feat.Bore > 0 {
		// Hub-side slot: from just inside the bore wall out to the hub
		// depth, full length.
		slot := e.k.Box(kw.Width, kw.HubDepth+cutOverrun/2, through)
		slot = e.k.Translate(slot, 0, feat.Bore/2+kw.HubDepth/2-cutOverrun/4, 0)
		s = e.k.Difference(s, slot)
	}

	if ss := feat.SetScrews; ss != nil && feat.Bore > 0 {
		reach := outerRadius - feat.Bore/2 + 2*cutOverrun
		centre := (outerRadius + feat.Bore/2) / 2
		for _, angle := range ss.AnglesDeg {
			hole := e.k.Cylinder(reach, ss.Diameter/2)
			hole = e.k.Rotate(hole, 90, 0, 0)
			hole = e.k.Translate(hole, 0, centre, 0)
			hole = e.k.Rotate(hole, 0, 0, angle)
			s = e.k.Difference(s, hole)
		}
	}
	return s
}
