package design

import "fmt"

// Severity classifies a validation finding. Only errors gate synthesis;
// warnings and info describe a still-usable design.
type Severity int

const (
	SeverityError   Severity = iota // blocks synthesis
	SeverityWarning                 // advisory, never blocks
	SeverityInfo                    // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Stable finding codes. Callers key suppression and tests on these, so
// they never change meaning once released.
const (
	CodeLeadAngleLow       = "LEAD_ANGLE_LOW"
	CodeLeadAngleHigh      = "LEAD_ANGLE_HIGH"
	CodeNearSelfLocking    = "NEAR_SELF_LOCKING"
	CodeSelfLocking        = "SELF_LOCKING"
	CodeModuleImplausible  = "MODULE_IMPLAUSIBLE"
	CodeModuleNonStandard  = "MODULE_NON_STANDARD"
	CodeToothCountUndercut = "TOOTH_COUNT_UNDERCUT"
	CodeToothCountLow      = "TOOTH_COUNT_LOW"
	CodeQFactorUnusual     = "Q_FACTOR_UNUSUAL"
	CodeContactRatioLow    = "CONTACT_RATIO_LOW"
	CodeContactRatioMargin = "CONTACT_RATIO_MARGINAL"
	CodeGloboidWidth       = "GLOBOID_WIDTH_INFEASIBLE"
	CodeGloboidNotThroated = "GLOBOID_NOT_THROATED"
	CodeGloboidHobSteps    = "GLOBOID_HOB_STEPS_CAPPED"
	CodeWormLengthShort    = "WORM_LENGTH_SHORT"
	CodeThinRim            = "THIN_RIM"
	CodeBoreExceedsRoot    = "BORE_EXCEEDS_ROOT"
	CodeFeatureConflict    = "FEATURE_CONFLICT"
)

// Finding is a single validation result. Findings are advice, not
// control flow: even error-severity findings are returned as data and
// only gate synthesis through Findings.OK.
type Finding struct {
	Severity    Severity
	Code        string // stable, suitable for suppression
	Message     string
	Remediation string // optional suggestion
	Citation    string // optional standard reference, e.g. "DIN 780"
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Code, f.Message)
}

// Findings is an ordered list of validation results.
type Findings []Finding

// OK reports whether no error-severity finding is present. Warnings and
// info never block.
func (fs Findings) OK() bool {
	for _, f := range fs {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the error-severity findings.
func (fs Findings) Errors() Findings {
	var out Findings
	for _, f := range fs {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Without returns the findings with the given codes removed. Used by
// callers that deliberately suppress a known-irrelevant finding, such as
// the non-throated globoid warning when hobbing will cut the throat
// anyway.
func (fs Findings) Without(codes ...string) Findings {
	drop := make(map[string]bool, len(codes))
	for _, c := range codes {
		drop[c] = true
	}
	var out Findings
	for _, f := range fs {
		if !drop[f.Code] {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether any finding carries the given code.
func (fs Findings) Has(code string) bool {
	for _, f := range fs {
		if f.Code == code {
			return true
		}
	}
	return false
}

// Worst returns the most severe level present, or SeverityInfo for an
// empty list.
func (fs Findings) Worst() Severity {
	worst := SeverityInfo
	for _, f := range fs {
		if f.Severity < worst {
			worst = f.Severity
		}
	}
	return worst
}
