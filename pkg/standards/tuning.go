package standards

// Tuning collects the practice thresholds that are evolving convention
// rather than hard standard: the calculator, validator, feature resolver
// and synthesis engine all read from one Tuning value so a deployment can
// adjust them in a single place (the CLI exposes them under the "tuning."
// config keys). Zero values are not meaningful; start from DefaultTuning.
type Tuning struct {
	// Proportions.
	QDefault float64 `koanf:"q_default"` // worm diameter quotient (pitch dia / module)
	QMin     float64 `koanf:"q_min"`     // practice lower bound for q
	QMax     float64 `koanf:"q_max"`     // practice upper bound for q

	// Tooth geometry factors, in multiples of module.
	AddendumFactor float64 `koanf:"addendum_factor"`
	DedendumFactor float64 `koanf:"dedendum_factor"` // includes tip clearance

	// Friction and lead-angle practice bounds (degrees).
	FrictionCoefficient float64 `koanf:"friction_coefficient"`
	NearSelfLockFactor  float64 `koanf:"near_self_lock_factor"` // warn when lead angle < factor x friction angle
	MinLeadAngleDeg     float64 `koanf:"min_lead_angle_deg"`
	MaxLeadAngleDeg     float64 `koanf:"max_lead_angle_deg"`

	// Module plausibility and standard-series snapping.
	ModuleMin        float64 `koanf:"module_min"`
	ModuleMax        float64 `koanf:"module_max"`
	SnapToleranceRel float64 `koanf:"snap_tolerance_rel"` // fraction of module

	// Acceptance band for the searched strategies (envelope, centre
	// distance), as a fraction of the requested dimension.
	EnvelopeTolRel float64 `koanf:"envelope_tol_rel"`

	// Wheel tooth-count practice minimum (undercut minimum is computed
	// from the pressure angle, not tuned).
	PracticeMinTeeth int `koanf:"practice_min_teeth"`

	// Contact ratio (face width / lead) thresholds.
	ContactRatioWarn float64 `koanf:"contact_ratio_warn"`
	ContactRatioInfo float64 `koanf:"contact_ratio_info"`

	// Default part proportions in terms of other dimensions.
	WormLengthTeethFactor float64 `koanf:"worm_length_teeth_factor"` // length = module*(base + factor*teeth)
	WormLengthBase        float64 `koanf:"worm_length_base"`
	FaceWidthFactor       float64 `koanf:"face_width_factor"` // face width = factor * worm pitch dia

	// Bore and rim practice.
	BoreFraction      float64 `koanf:"bore_fraction"`       // auto bore = fraction * pitch dia
	MinRim            float64 `koanf:"min_rim"`             // absolute minimum rim, mm
	ThinRimWarn       float64 `koanf:"thin_rim_warn"`       // warn below this rim, mm
	FlatDepthFraction float64 `koanf:"flat_depth_fraction"` // default DD-cut depth = fraction * bore

	// Hobbing simulation resource bounds.
	HobStepsDefault      int  `koanf:"hob_steps_default"`
	SimplifyEvery        int  `koanf:"simplify_every"`
	GloboidSimplifyEvery int  `koanf:"globoid_simplify_every"`
	GloboidMaxHobSteps   int  `koanf:"globoid_max_hob_steps"`
	HobSenseInverted     bool `koanf:"hob_sense_inverted"` // flip hob/blank rotation sense
}

// DefaultTuning returns the built-in practice defaults.
func DefaultTuning() Tuning {
	return Tuning{
		QDefault: 8,
		QMin:     5,
		QMax:     20,

		AddendumFactor: 1.0,
		DedendumFactor: 1.2,

		FrictionCoefficient: 0.05,
		NearSelfLockFactor:  1.5,
		MinLeadAngleDeg:     0.5,
		MaxLeadAngleDeg:     45,

		ModuleMin:        0.1,
		ModuleMax:        50,
		SnapToleranceRel: 0.08,
		EnvelopeTolRel:   0.05,

		PracticeMinTeeth: 24,

		ContactRatioWarn: 1.0,
		ContactRatioInfo: 1.3,

		WormLengthTeethFactor: 0.06,
		WormLengthBase:        11,
		FaceWidthFactor:       0.75,

		BoreFraction:      0.3,
		MinRim:            1.5,
		ThinRimWarn:       2.5,
		FlatDepthFraction: 0.15,

		HobStepsDefault:      36,
		SimplifyEvery:        4,
		GloboidSimplifyEvery: 1,
		GloboidMaxHobSteps:   72,
	}
}
