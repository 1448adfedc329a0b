package standards

import (
	"math"
	"testing"
)

func TestNearestModule(t *testing.T) {
	tb := Default()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact hit", 2.0, 2.0},
		{"rounds down", 2.1, 2.0},
		{"rounds up", 2.4, 2.5},
		{"below series", 0.05, 0.3},
		{"above series", 99, 25},
		{"between 1.0 and 1.25", 1.1, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dist := tb.NearestModule(tt.in)
			if got != tt.want {
				t.Errorf("NearestModule(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if want := math.Abs(tt.in - tt.want); math.Abs(dist-want) > 1e-12 {
				t.Errorf("distance = %v, want %v", dist, want)
			}
		})
	}
}

func TestIsStandardModule(t *testing.T) {
	tb := Default()
	if !tb.IsStandardModule(2.0, 0.01) {
		t.Error("2.0 should be standard")
	}
	if tb.IsStandardModule(2.2, 0.1) {
		t.Error("2.2 should not be standard within 0.1")
	}
	if !tb.IsStandardModule(2.05, 0.1) {
		t.Error("2.05 should be standard within 0.1")
	}
}

func TestKeywayFor(t *testing.T) {
	tb := Default()

	tests := []struct {
		name     string
		bore     float64
		ok       bool
		width    float64
		hubDepth float64
	}{
		{"mid bracket", 11, true, 4, 1.8},
		{"lower edge exclusive", 10, true, 3, 1.4}, // 10 belongs to the 8-10 bracket
		{"upper edge inclusive", 12, true, 4, 1.8},
		{"below table", 5, false, 0, 0},
		{"above table", 60, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := tb.KeywayFor(tt.bore)
			if ok != tt.ok {
				t.Fatalf("KeywayFor(%v) ok = %v, want %v", tt.bore, ok, tt.ok)
			}
			if !ok {
				return
			}
			if b.Width != tt.width {
				t.Errorf("width = %v, want %v", b.Width, tt.width)
			}
			if b.HubDepth != tt.hubDepth {
				t.Errorf("hub depth = %v, want %v", b.HubDepth, tt.hubDepth)
			}
		})
	}
}

func TestKeywayTableOrdered(t *testing.T) {
	tb := Default()
	prev := 0.0
	for i, b := range tb.Keyways {
		if b.MinBore < prev {
			t.Errorf("bracket %d out of order: MinBore %v < previous MaxBore %v", i, b.MinBore, prev)
		}
		if b.MaxBore <= b.MinBore {
			t.Errorf("bracket %d empty: (%v, %v]", i, b.MinBore, b.MaxBore)
		}
		prev = b.MaxBore
	}
}

func TestSetScrew(t *testing.T) {
	tb := Default()
	s, ok := tb.SetScrew("M4")
	if !ok || s.Diameter != 4.0 {
		t.Errorf("SetScrew(M4) = %+v, %v", s, ok)
	}
	if _, ok := tb.SetScrew("M7"); ok {
		t.Error("M7 should not exist")
	}
}

func TestDefaultTuningSane(t *testing.T) {
	tn := DefaultTuning()
	if tn.QMin >= tn.QMax {
		t.Error("q bounds inverted")
	}
	if tn.QDefault < tn.QMin || tn.QDefault > tn.QMax {
		t.Error("q default outside practice range")
	}
	if tn.DedendumFactor <= tn.AddendumFactor {
		t.Error("dedendum must exceed addendum (tip clearance)")
	}
	if tn.ContactRatioInfo < tn.ContactRatioWarn {
		t.Error("contact ratio thresholds inverted")
	}
	if tn.GloboidMaxHobSteps <= 0 || tn.SimplifyEvery <= 0 {
		t.Error("hob bounds must be positive")
	}
}
