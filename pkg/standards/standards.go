// Package standards holds the static engineering data the rest of the
// system is parameterised over: the standard module series, keyway size
// brackets, set-screw nominal sizes, and the tunable practice thresholds.
// Tables carry no logic beyond lookup; they are constructed once and
// injected explicitly so tests can substitute shrunken or custom tables.
package standards

import "math"

// Tables bundles the immutable standards data consumed by the calculator,
// validator and feature resolver.
type Tables struct {
	// Modules is the standard module series in millimetres, ascending.
	Modules []float64
	// Keyways are parallel-key size brackets indexed by bore diameter.
	Keyways []KeywayBracket
	// SetScrews are the nominal metric set-screw sizes.
	SetScrews []SetScrewSize
}

// KeywayBracket is one row of the parallel-key table: for bores over
// MinBore up to and including MaxBore, a key of Width x Height is used,
// sunk ShaftDepth into the shaft and HubDepth into the hub.
type KeywayBracket struct {
	MinBore    float64 // exclusive, mm
	MaxBore    float64 // inclusive, mm
	Width      float64 // key width, mm
	Height     float64 // key height, mm
	ShaftDepth float64 // t1, mm
	HubDepth   float64 // t2, mm
}

// SetScrewSize is a nominal metric set-screw designation and its thread
// diameter.
type SetScrewSize struct {
	Name     string  // "M4"
	Diameter float64 // mm
}

// Default returns the built-in standards tables: the DIN 780 module
// series, DIN 6885 keyway brackets and common metric set-screw sizes.
func Default() *Tables {
	return &Tables{
		Modules: []float64{
			0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0,
			1.25, 1.5, 2.0, 2.5, 3.0, 4.0, 5.0, 6.0,
			8.0, 10.0, 12.0, 16.0, 20.0, 25.0,
		},
		Keyways: []KeywayBracket{
			{MinBore: 6, MaxBore: 8, Width: 2, Height: 2, ShaftDepth: 1.2, HubDepth: 1.0},
			{MinBore: 8, MaxBore: 10, Width: 3, Height: 3, ShaftDepth: 1.8, HubDepth: 1.4},
			{MinBore: 10, MaxBore: 12, Width: 4, Height: 4, ShaftDepth: 2.5, HubDepth: 1.8},
			{MinBore: 12, MaxBore: 17, Width: 5, Height: 5, ShaftDepth: 3.0, HubDepth: 2.3},
			{MinBore: 17, MaxBore: 22, Width: 6, Height: 6, ShaftDepth: 3.5, HubDepth: 2.8},
			{MinBore: 22, MaxBore: 30, Width: 8, Height: 7, ShaftDepth: 4.0, HubDepth: 3.3},
			{MinBore: 30, MaxBore: 38, Width: 10, Height: 8, ShaftDepth: 5.0, HubDepth: 3.3},
			{MinBore: 38, MaxBore: 44, Width: 12, Height: 8, ShaftDepth: 5.0, HubDepth: 3.3},
			{MinBore: 44, MaxBore: 50, Width: 14, Height: 9, ShaftDepth: 5.5, HubDepth: 3.8},
		},
		SetScrews: []SetScrewSize{
			{Name: "M2", Diameter: 2.0},
			{Name: "M2.5", Diameter: 2.5},
			{Name: "M3", Diameter: 3.0},
			{Name: "M4", Diameter: 4.0},
			{Name: "M5", Diameter: 5.0},
			{Name: "M6", Diameter: 6.0},
			{Name: "M8", Diameter: 8.0},
			{Name: "M10", Diameter: 10.0},
			{Name: "M12", Diameter: 12.0},
		},
	}
}

// NearestModule returns the series entry closest to m. The second return
// is the absolute distance. Panics only on an empty series, which no
// well-formed Tables value has.
func (t *Tables) NearestModule(m float64) (float64, float64) {
	best := t.Modules[0]
	dist := math.Abs(m - best)
	for _, cand := range t.Modules[1:] {
		if d := math.Abs(m - cand); d < dist {
			best, dist = cand, d
		}
	}
	return best, dist
}

// IsStandardModule reports whether m lies within tol (absolute, mm) of a
// series entry.
func (t *Tables) IsStandardModule(m, tol float64) bool {
	_, dist := t.NearestModule(m)
	return dist <= tol
}

// KeywayFor returns the bracket covering the given bore diameter.
// The second return is false when the bore falls outside the table.
func (t *Tables) KeywayFor(bore float64) (KeywayBracket, bool) {
	for _, b := range t.Keyways {
		if bore > b.MinBore && bore <= b.MaxBore {
			return b, true
		}
	}
	return KeywayBracket{}, false
}

// SetScrew returns the set-screw entry with the given designation
// ("M4", case-sensitive). The second return is false when unknown.
func (t *Tables) SetScrew(name string) (SetScrewSize, bool) {
	for _, s := range t.SetScrews {
		if s.Name == name {
			return s, true
		}
	}
	return SetScrewSize{}, false
}
