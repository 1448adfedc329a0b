package design

import "fmt"

// InputError reports a malformed or out-of-domain input value. It is
// fatal and never retried; Field names the offending input so callers
// can point at the exact parameter.
type InputError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *InputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("input %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("input %q = %v: %s", e.Field, e.Value, e.Message)
}

// Inputf builds an InputError with a formatted message.
func Inputf(field string, value interface{}, format string, args ...interface{}) *InputError {
	return &InputError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)}
}

// ConstraintInfeasible reports a constraint that cannot be satisfied with
// any value (an envelope solve that does not converge, a bore with no
// keyway bracket). When a nearest feasible alternative is cheap to
// compute it is carried along so the caller can suggest it.
type ConstraintInfeasible struct {
	Constraint string
	Message    string
	// Nearest is the closest feasible alternative, when known.
	// Its meaning depends on the constraint (a module, a bore, a width).
	Nearest    float64
	HasNearest bool
}

func (e *ConstraintInfeasible) Error() string {
	if e.HasNearest {
		return fmt.Sprintf("constraint %q infeasible: %s (nearest feasible: %g)", e.Constraint, e.Message, e.Nearest)
	}
	return fmt.Sprintf("constraint %q infeasible: %s", e.Constraint, e.Message)
}

// Infeasiblef builds a ConstraintInfeasible without an alternative.
func Infeasiblef(constraint, format string, args ...interface{}) *ConstraintInfeasible {
	return &ConstraintInfeasible{Constraint: constraint, Message: fmt.Sprintf(format, args...)}
}

// InfeasibleNear builds a ConstraintInfeasible carrying the nearest
// feasible alternative.
func InfeasibleNear(constraint string, nearest float64, format string, args ...interface{}) *ConstraintInfeasible {
	return &ConstraintInfeasible{
		Constraint: constraint,
		Message:    fmt.Sprintf(format, args...),
		Nearest:    nearest,
		HasNearest: true,
	}
}

// GeometryFailure reports an invalid solid coming out of a boolean, sweep
// or loft. It is fatal: an invalid solid handed to manufacturing is a
// correctness defect, so the engine never degrades to an approximate
// shape. Op names the failing operation, Part the part under
// construction.
type GeometryFailure struct {
	Op      string
	Part    string
	Message string
	Err     error // underlying kernel error, when any
}

func (e *GeometryFailure) Error() string {
	msg := fmt.Sprintf("geometry failure in %s of %s: %s", e.Op, e.Part, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GeometryFailure) Unwrap() error { return e.Err }

// Geomf builds a GeometryFailure wrapping err (err may be nil).
func Geomf(op, part string, err error, format string, args ...interface{}) *GeometryFailure {
	return &GeometryFailure{Op: op, Part: part, Message: fmt.Sprintf(format, args...), Err: err}
}
