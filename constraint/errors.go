package constraint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

var (
	// ErrNoParameters indicates a constraint declared without any parameter.
	ErrNoParameters = errors.New("constraint: at least one parameter is required")

	// ErrDuplicateParameter indicates the same parameter name appearing twice
	// in a constraint declaration.
	ErrDuplicateParameter = errors.New("constraint: duplicate parameter name")

	// ErrNilCondition indicates a constraint declared without a condition.
	ErrNilCondition = errors.New("constraint: condition must not be nil")

	// ErrNilValidator indicates a custom constraint registered without a
	// validator function.
	ErrNilValidator = errors.New("constraint: validator must not be nil")

	// ErrEmptySubSelection indicates a sub-selection condition declared
	// without any allowed value.
	ErrEmptySubSelection = errors.New("constraint: sub-selection requires at least one value")

	// ErrNegativeTolerance indicates a negative equality tolerance.
	ErrNegativeTolerance = errors.New("constraint: tolerance must not be negative")

	// ErrCardinalityBounds indicates an invalid non-zero count window.
	ErrCardinalityBounds = errors.New("constraint: cardinality bounds must satisfy 0 <= min <= max")

	// ErrTooFewParameters indicates a constraint that needs several
	// parameters but was declared with fewer than two.
	ErrTooFewParameters = errors.New("constraint: at least two parameters are required")
)

// EvaluationError reports a constraint whose evaluation failed on a concrete
// row, carrying the offending row so callers can reproduce the failure.
type EvaluationError struct {
	// Constraint identifies the failing constraint.
	Constraint string

	// Row is the row under evaluation when the failure occurred.
	Row Row

	// Err is the underlying cause.
	Err error
}

// UnknownParameterError reports a constraint referencing a parameter name
// that the enclosing search space does not declare.
type UnknownParameterError struct {
	// Constraint identifies the constraint holding the dangling reference.
	Constraint string

	// Parameter is the unresolved name.
	Parameter string
}

//////
// Methods.
//////

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("constraint: evaluating %s against row %s", e.Constraint, formatRow(e.Row))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes the underlying cause.
func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("constraint: %s references unknown parameter %q", e.Constraint, e.Parameter)
}

//////
// Helper functions.
//////

// formatRow renders a row with its keys sorted so error messages stay stable.
func formatRow(r Row) string {
	if len(r) == 0 {
		return "{}"
	}

	names := make([]string, 0, len(r))

	for name := range r {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))

	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, r[name]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// describe builds the canonical identifier of a constraint from its kind and
// its referenced parameters, e.g. "exclude(Solvent, Temperature)".
func describe(kind string, parameters []string) string {
	return kind + "(" + strings.Join(parameters, ", ") + ")"
}

// checkParameters validates a declared parameter list: non-empty, no blank
// names, no duplicates.
func checkParameters(parameters []string) error {
	if len(parameters) == 0 {
		return ErrNoParameters
	}

	seen := make(map[string]struct{}, len(parameters))

	for _, name := range parameters {
		if name == "" {
			return fmt.Errorf("constraint: parameter name must not be empty")
		}

		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateParameter, name)
		}

		seen[name] = struct{}{}
	}

	return nil
}

// numeric extracts the float payload of a value, failing on string values.
func numeric(name string, v param.Value) (float64, error) {
	if v.Kind() != param.KindFloat {
		return 0, fmt.Errorf("constraint: parameter %q holds non-numeric value %q", name, v.String())
	}

	return v.Float(), nil
}
