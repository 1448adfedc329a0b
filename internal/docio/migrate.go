package docio

import (
	"encoding/json"

	"github.com/pzfreo/wormgear-sub002/pkg/design"
)

// inch is the exact millimetre value of one inch.
const inch = 25.4

// Migrate brings an older document forward to CurrentVersion in place.
// Version 1 predates the manufacturing block: worm length and face
// width lived at the top level and hobbing was implied by a "hobbed"
// top-level flag. Versions 0 (missing) and above current are rejected.
func Migrate(doc *Document, raw []byte) error {
	switch doc.Version {
	case CurrentVersion:
		return nil
	case 1:
		var v1 struct {
			WormLength float64 `json:"worm_length"`
			FaceWidth  float64 `json:"face_width"`
			Hobbed     bool    `json:"hobbed"`
			Profile    string  `json:"profile"`
		}
		if err := json.Unmarshal(raw, &v1); err != nil {
			return design.Inputf("document", nil, "not valid JSON: %v", err)
		}
		if doc.Manufacturing.WormLength == 0 {
			doc.Manufacturing.WormLength = v1.WormLength
		}
		if doc.Manufacturing.FaceWidth == 0 {
			doc.Manufacturing.FaceWidth = v1.FaceWidth
		}
		if !doc.Manufacturing.Hobbed {
			doc.Manufacturing.Hobbed = v1.Hobbed
		}
		if doc.Manufacturing.Profile == "" {
			doc.Manufacturing.Profile = v1.Profile
		}
		doc.Version = CurrentVersion
		return nil
	}
	return design.Inputf("version", doc.Version,
		"unknown document version; this build reads versions 1 and %d", CurrentVersion)
}

// normalizeUnits converts an inch-denominated document to millimetres.
// Conversion happens exactly once: the units field flips to "mm" with
// the values.
func normalizeUnits(doc *Document) error {
	switch doc.Units {
	case "", "mm":
		doc.Units = "mm"
		return nil
	case "in":
	default:
		return design.Inputf("units", doc.Units, `must be "mm" or "in"`)
	}

	for _, f := range []*float64{
		&doc.Module, &doc.WheelOD, &doc.WormOD, &doc.Centre,
		&doc.Backlash, &doc.ThroatReduction,
		&doc.Manufacturing.WormLength, &doc.Manufacturing.FaceWidth,
	} {
		*f *= inch
	}
	for _, pf := range []*PartFeatures{doc.WormFeatures, doc.WheelFeatures} {
		if pf == nil {
			continue
		}
		pf.Bore *= inch
		pf.FlatDepth *= inch
		pf.AcrossFlats *= inch
	}
	doc.Units = "mm"
	return nil
}
