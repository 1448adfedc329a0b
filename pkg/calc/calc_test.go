package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/standards"
)

func newCalc() *Calculator {
	return New(standards.Default(), standards.DefaultTuning())
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

// The worked reference case: module 2, ratio 30, single start, 20
// degree pressure angle, default quotient 8.
func TestFromModuleRatioReference(t *testing.T) {
	res, err := newCalc().FromModuleRatio(2.0, 30, Options{})
	if err != nil {
		t.Fatalf("FromModuleRatio: %v", err)
	}
	p := res.Pair

	approx(t, "worm pitch", p.Worm.PitchDiameter, 16.0, 1e-9)
	approx(t, "worm tip", p.Worm.TipDiameter, 20.0, 1e-9)
	approx(t, "worm lead", p.Worm.Lead, 2*math.Pi, 1e-9)
	approx(t, "lead angle", p.Worm.LeadAngle, 7.125, 0.01)
	approx(t, "wheel pitch", p.Wheel.PitchDiameter, 60.0, 1e-9)
	approx(t, "wheel tip", p.Wheel.TipDiameter, 64.0, 1e-9)
	approx(t, "centre distance", p.Assembly.CentreDistance, 38.0, 1e-9)
	approx(t, "helix angle", p.Wheel.HelixAngle, 90-7.125, 0.01)
	if p.Assembly.EfficiencyEstimate < 0.70 || p.Assembly.EfficiencyEstimate > 0.75 {
		t.Errorf("efficiency = %v, want in [0.70, 0.75]", p.Assembly.EfficiencyEstimate)
	}
	if p.Assembly.SelfLocking {
		t.Error("reference design should not be self-locking")
	}
	if p.Wheel.ToothCount != 30 {
		t.Errorf("tooth count = %d, want 30", p.Wheel.ToothCount)
	}
	if err := p.CheckInvariants(); err != nil {
		t.Errorf("invariants: %v", err)
	}
}

// Tip and root identities must hold exactly for any positive inputs.
func TestInvariantsAcrossGrid(t *testing.T) {
	c := newCalc()
	for _, m := range []float64{0.4, 1.0, 2.0, 6.0, 20.0} {
		for _, ratio := range []float64{5, 15, 30, 62.5} {
			for _, starts := range []int{1, 2, 4} {
				res, err := c.FromModuleRatio(m, ratio, Options{Starts: starts})
				if err != nil {
					t.Fatalf("m=%v ratio=%v starts=%d: %v", m, ratio, starts, err)
				}
				if err := res.Pair.CheckInvariants(); err != nil {
					t.Errorf("m=%v ratio=%v starts=%d: %v", m, ratio, starts, err)
				}
			}
		}
	}
}

func TestInputErrors(t *testing.T) {
	c := newCalc()
	tests := []struct {
		name  string
		run   func() error
		field string
	}{
		{"zero module", func() error { _, err := c.FromModuleRatio(0, 30, Options{}); return err }, "module"},
		{"negative ratio", func() error { _, err := c.FromModuleRatio(2, -1, Options{}); return err }, "ratio"},
		{"negative starts", func() error { _, err := c.FromModuleRatio(2, 30, Options{Starts: -2}); return err }, "starts"},
		{"wild pressure angle", func() error {
			_, err := c.FromModuleRatio(2, 30, Options{PressureAngleDeg: 60})
			return err
		}, "pressure_angle"},
		{"globoid without throat", func() error {
			_, err := c.FromModuleRatio(2, 30, Options{WormType: design.Globoid})
			return err
		}, "throat_reduction"},
		{"zero wheel OD", func() error { _, err := c.FromWheelOD(0, 30, Options{}); return err }, "wheel_od"},
		{"zero centre", func() error { _, err := c.FromCentreDistance(0, 30, Options{}); return err }, "centre_distance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var ie *design.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("error = %v, want InputError", err)
			}
			if ie.Field != tt.field {
				t.Errorf("field = %q, want %q", ie.Field, tt.field)
			}
		})
	}
}

func TestFromWheelOD(t *testing.T) {
	res, err := newCalc().FromWheelOD(64.0, 30, Options{})
	if err != nil {
		t.Fatalf("FromWheelOD: %v", err)
	}
	approx(t, "module", res.Pair.Worm.Module, 2.0, 1e-9)
	approx(t, "wheel OD", res.Pair.Wheel.TipDiameter, 64.0, 1e-9)
}

func TestFromCentreDistance(t *testing.T) {
	c := newCalc()

	res, err := c.FromCentreDistance(38.0, 30, Options{})
	if err != nil {
		t.Fatalf("FromCentreDistance: %v", err)
	}
	approx(t, "centre", res.Pair.Assembly.CentreDistance, 38.0, 1e-9)
	approx(t, "module", res.Pair.Worm.Module, 2.0, 1e-9)
	if res.Candidates == 0 {
		t.Error("search should report candidates examined")
	}

	// A centre distance between achievable values by more than the
	// tolerance band is infeasible, with the nearest module reported.
	_, err = c.FromCentreDistance(3.0, 30, Options{})
	var ci *design.ConstraintInfeasible
	if !errors.As(err, &ci) {
		t.Fatalf("error = %v, want ConstraintInfeasible", err)
	}
	if !ci.HasNearest {
		t.Error("infeasible centre distance should carry the nearest module")
	}
}

func TestFromEnvelope(t *testing.T) {
	c := newCalc()

	// The reference design's own envelope must reproduce it.
	res, err := c.FromEnvelope(20.0, 64.0, 30, Options{})
	if err != nil {
		t.Fatalf("FromEnvelope: %v", err)
	}
	approx(t, "module", res.Pair.Worm.Module, 2.0, 1e-9)
	approx(t, "worm OD", res.Pair.Worm.TipDiameter, 20.0, 1e-9)
	if res.Residual > 0.1 {
		t.Errorf("residual = %v, want near zero", res.Residual)
	}

	// An envelope no standard module can reach fails with the
	// constraint named.
	_, err = c.FromEnvelope(6.0, 800.0, 10, Options{})
	var ci *design.ConstraintInfeasible
	if !errors.As(err, &ci) {
		t.Fatalf("error = %v, want ConstraintInfeasible", err)
	}
}

func TestSnap(t *testing.T) {
	c := newCalc()

	t.Run("off-series module snaps", func(t *testing.T) {
		res, err := c.FromModuleRatio(1.95, 30, Options{})
		if err != nil {
			t.Fatal(err)
		}
		snapped, did, err := c.Snap(res.Pair)
		if err != nil {
			t.Fatalf("Snap: %v", err)
		}
		if !did {
			t.Fatal("1.95 should snap to 2.0")
		}
		approx(t, "module", snapped.Worm.Module, 2.0, 1e-12)
		if err := snapped.CheckInvariants(); err != nil {
			t.Errorf("snapped invariants: %v", err)
		}
		// All dependent dimensions recomputed, not patched.
		approx(t, "wheel pitch", snapped.Wheel.PitchDiameter, 60.0, 1e-9)
	})

	t.Run("idempotent", func(t *testing.T) {
		res, err := c.FromModuleRatio(1.95, 30, Options{})
		if err != nil {
			t.Fatal(err)
		}
		once, _, err := c.Snap(res.Pair)
		if err != nil {
			t.Fatal(err)
		}
		twice, did, err := c.Snap(once)
		if err != nil {
			t.Fatal(err)
		}
		if did {
			t.Error("snapping a snapped pair should be a no-op")
		}
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("snap not idempotent (-once +twice):\n%s", diff)
		}
	})

	t.Run("far module left alone", func(t *testing.T) {
		res, err := c.FromModuleRatio(1.7, 30, Options{})
		if err != nil {
			t.Fatal(err)
		}
		same, did, err := c.Snap(res.Pair)
		if err != nil {
			t.Fatal(err)
		}
		if did {
			t.Error("1.7 is outside the band of both 1.5 and 2.0, should not snap")
		}
		if diff := cmp.Diff(res.Pair, same); diff != "" {
			t.Errorf("pair changed without snapping:\n%s", diff)
		}
	})
}

func TestEfficiency(t *testing.T) {
	tests := []struct {
		name        string
		leadAngle   float64
		mu          float64
		selfLocking bool
	}{
		{"reference", 7.125, 0.05, false},
		{"shallow lead locks", 1.5, 0.05, true},
		{"boundary is friction angle", math.Atan(0.05)*180/math.Pi + 0.01, 0.05, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff, locking := Efficiency(tt.leadAngle, tt.mu)
			if locking != tt.selfLocking {
				t.Errorf("selfLocking = %v, want %v", locking, tt.selfLocking)
			}
			if eff <= 0 || eff >= 1 {
				t.Errorf("efficiency = %v, want in (0, 1)", eff)
			}
		})
	}
}

func TestMultiStartLead(t *testing.T) {
	res, err := newCalc().FromModuleRatio(2.0, 15, Options{Starts: 2})
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "lead", res.Pair.Worm.Lead, 4*math.Pi, 1e-9)
	if res.Pair.Wheel.ToothCount != 30 {
		t.Errorf("tooth count = %d, want 30 (ratio 15 x 2 starts)", res.Pair.Wheel.ToothCount)
	}
	approx(t, "ratio", res.Pair.Assembly.Ratio, 15, 1e-12)
}
