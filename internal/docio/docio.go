// Package docio reads and writes the versioned JSON design documents
// the CLI and batch runner consume. Version migration and unit
// normalisation happen here, at the boundary: the core only ever sees
// current-version, millimetre records.
package docio

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pzfreo/wormgear-sub002/pkg/calc"
	"github.com/pzfreo/wormgear-sub002/pkg/design"
	"github.com/pzfreo/wormgear-sub002/pkg/features"
)

// CurrentVersion is the document version this build reads and writes.
const CurrentVersion = 2

// Strategy names accepted in the document and on the CLI.
const (
	StrategyModuleRatio    = "module_ratio"
	StrategyWheelOD        = "wheel_od"
	StrategyEnvelope       = "envelope"
	StrategyCentreDistance = "centre_distance"
)

// Document is a complete design request. All lengths are millimetres
// once loaded; documents on disk may declare "units": "in" and are
// converted on the way in.
type Document struct {
	Version int    `json:"version"`
	Units   string `json:"units,omitempty"`
	Name    string `json:"name,omitempty"`

	Strategy string  `json:"strategy"`
	Ratio    float64 `json:"ratio"`
	Module   float64 `json:"module,omitempty"`
	WheelOD  float64 `json:"wheel_od,omitempty"`
	WormOD   float64 `json:"worm_od,omitempty"`
	Centre   float64 `json:"centre_distance,omitempty"`
	Snap     bool    `json:"snap,omitempty"`

	Starts          int     `json:"starts,omitempty"`
	PressureAngle   float64 `json:"pressure_angle,omitempty"`
	Q               float64 `json:"q,omitempty"`
	Hand            string  `json:"hand,omitempty"`
	ProfileShift    float64 `json:"profile_shift,omitempty"`
	Backlash        float64 `json:"backlash,omitempty"`
	WormType        string  `json:"worm_type,omitempty"`
	ThroatReduction float64 `json:"throat_reduction,omitempty"`

	Manufacturing Manufacturing `json:"manufacturing"`
	WormFeatures  *PartFeatures `json:"worm_features,omitempty"`
	WheelFeatures *PartFeatures `json:"wheel_features,omitempty"`
}

// Manufacturing mirrors design.ManufacturingIntent in document form.
type Manufacturing struct {
	Profile    string  `json:"profile,omitempty"`
	WormLength float64 `json:"worm_length,omitempty"`
	FaceWidth  float64 `json:"face_width,omitempty"`
	Hobbed     bool    `json:"hobbed,omitempty"`
	HobSteps   int     `json:"hob_steps,omitempty"`
	Throated   bool    `json:"throated,omitempty"`
	Smoothness int     `json:"smoothness,omitempty"`
}

// PartFeatures is the per-part feature request in document form.
type PartFeatures struct {
	Bore        float64      `json:"bore,omitempty"`
	AutoBore    bool         `json:"auto_bore,omitempty"`
	Keyway      bool         `json:"keyway,omitempty"`
	FlatDepth   float64      `json:"flat_depth,omitempty"`
	AcrossFlats float64      `json:"across_flats,omitempty"`
	DoubleFlat  bool         `json:"double_flat,omitempty"`
	Custom      string       `json:"custom,omitempty"`
	SetScrew    *SetScrewDoc `json:"set_screw,omitempty"`
}

// SetScrewDoc is the set-screw request in document form.
type SetScrewDoc struct {
	Size      string  `json:"size"`
	Count     int     `json:"count"`
	OffsetDeg float64 `json:"offset_deg,omitempty"`
}

// Load reads, migrates and normalises a document. The returned document
// is always CurrentVersion with millimetre units.
func Load(path string, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design document: %w", err)
	}
	doc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("design document loaded",
		zap.String("path", path),
		zap.String("strategy", doc.Strategy),
		zap.Int("version", doc.Version))
	return doc, nil
}

// Decode parses, migrates and normalises raw document bytes.
func Decode(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, design.Inputf("document", nil, "not valid JSON: %v", err)
	}
	if err := Migrate(&doc, raw); err != nil {
		return nil, err
	}
	if err := normalizeUnits(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes the document at the current version, always millimetres.
func Save(path string, doc *Document, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	out := *doc
	out.Version = CurrentVersion
	out.Units = "mm"
	raw, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode design document: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write design document: %w", err)
	}
	log.Debug("design document saved", zap.String("path", path))
	return nil
}

// Options maps the document's shared inputs onto calculator options.
func (d *Document) Options() (calc.Options, error) {
	opt := calc.Options{
		Starts:           d.Starts,
		PressureAngleDeg: d.PressureAngle,
		Q:                d.Q,
		ProfileShift:     d.ProfileShift,
		Backlash:         d.Backlash,
		ThroatReduction:  d.ThroatReduction,
	}
	switch d.Hand {
	case "", "right":
		opt.Hand = design.RightHand
	case "left":
		opt.Hand = design.LeftHand
	default:
		return opt, design.Inputf("hand", d.Hand, `must be "right" or "left"`)
	}
	switch d.WormType {
	case "", "cylindrical":
		opt.WormType = design.Cylindrical
	case "globoid":
		opt.WormType = design.Globoid
	default:
		return opt, design.Inputf("worm_type", d.WormType, `must be "cylindrical" or "globoid"`)
	}
	return opt, nil
}

// Derive runs the document's strategy against the calculator, naming
// the offending field when a required input is missing.
func (d *Document) Derive(c *calc.Calculator) (calc.Result, error) {
	opt, err := d.Options()
	if err != nil {
		return calc.Result{}, err
	}
	if d.Ratio == 0 {
		return calc.Result{}, design.Inputf("ratio", d.Ratio, "required by every strategy")
	}

	switch d.Strategy {
	case "", StrategyModuleRatio:
		if d.Module == 0 {
			return calc.Result{}, design.Inputf("module", d.Module, "required by the module_ratio strategy")
		}
		return c.FromModuleRatio(d.Module, d.Ratio, opt)
	case StrategyWheelOD:
		if d.WheelOD == 0 {
			return calc.Result{}, design.Inputf("wheel_od", d.WheelOD, "required by the wheel_od strategy")
		}
		return c.FromWheelOD(d.WheelOD, d.Ratio, opt)
	case StrategyEnvelope:
		if d.WormOD == 0 {
			return calc.Result{}, design.Inputf("worm_od", d.WormOD, "required by the envelope strategy")
		}
		if d.WheelOD == 0 {
			return calc.Result{}, design.Inputf("wheel_od", d.WheelOD, "required by the envelope strategy")
		}
		return c.FromEnvelope(d.WormOD, d.WheelOD, d.Ratio, opt)
	case StrategyCentreDistance:
		if d.Centre == 0 {
			return calc.Result{}, design.Inputf("centre_distance", d.Centre, "required by the centre_distance strategy")
		}
		return c.FromCentreDistance(d.Centre, d.Ratio, opt)
	}
	return calc.Result{}, design.Inputf("strategy", d.Strategy, "unknown strategy")
}

// Intent maps the manufacturing block onto the core intent record.
func (d *Document) Intent() (design.ManufacturingIntent, error) {
	mi := design.ManufacturingIntent{
		WormLength: d.Manufacturing.WormLength,
		FaceWidth:  d.Manufacturing.FaceWidth,
		Hobbed:     d.Manufacturing.Hobbed,
		HobSteps:   d.Manufacturing.HobSteps,
		Throated:   d.Manufacturing.Throated,
		Smoothness: d.Manufacturing.Smoothness,
	}
	switch d.Manufacturing.Profile {
	case "", "trapezoidal":
		mi.Profile = design.Trapezoidal
	case "circular-arc":
		mi.Profile = design.CircularArc
	case "involute":
		mi.Profile = design.Involute
	default:
		return mi, design.Inputf("profile", d.Manufacturing.Profile,
			`must be "trapezoidal", "circular-arc" or "involute"`)
	}
	return mi, nil
}

// FeatureSpec builds the feature request for one part's document block.
// A nil block means a bare part.
func (pf *PartFeatures) FeatureSpec() (features.Spec, error) {
	if pf == nil {
		return features.Spec{}, nil
	}
	var flat *features.DoubleFlat
	if pf.DoubleFlat || pf.FlatDepth != 0 || pf.AcrossFlats != 0 {
		flat = &features.DoubleFlat{Depth: pf.FlatDepth, AcrossFlats: pf.AcrossFlats}
	}
	anti, err := features.Compose(features.ComposeOptions{
		Keyway:     pf.Keyway,
		DoubleFlat: flat,
		Custom:     pf.Custom,
	})
	if err != nil {
		return features.Spec{}, err
	}
	spec := features.Spec{
		Bore:     pf.Bore,
		AutoBore: pf.AutoBore,
		Anti:     anti,
	}
	if pf.SetScrew != nil {
		spec.SetScrew = &features.SetScrew{
			Size:      pf.SetScrew.Size,
			Count:     pf.SetScrew.Count,
			OffsetDeg: pf.SetScrew.OffsetDeg,
		}
	}
	return spec, nil
}
