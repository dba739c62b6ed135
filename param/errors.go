package param

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//////
// Sentinel errors for parameter construction.
//////

var (
	// ErrEmptyName indicates a parameter was declared without a name.
	ErrEmptyName = errors.New("param: parameter name must not be empty")

	// ErrDuplicateValue indicates a declared domain contains the same value twice.
	ErrDuplicateValue = errors.New("param: domain values must be unique")

	// ErrNegativeTolerance indicates a numeric-discrete tolerance below zero.
	ErrNegativeTolerance = errors.New("param: tolerance must not be negative")

	// ErrDescriptorShape indicates a substance descriptor vector whose length
	// does not match the declared descriptor names.
	ErrDescriptorShape = errors.New("param: descriptor vector length must match descriptor names")

	// ErrNonFinite indicates a NaN or infinite numeric input.
	ErrNonFinite = errors.New("param: numeric inputs must be finite")

	// ErrReversedBounds indicates a continuous interval with Lo > Hi.
	ErrReversedBounds = errors.New("param: lower bound must not exceed upper bound")
)

//////
// Evaluation-time error types.
//////

// DomainError reports a value outside a parameter's declared domain. It is
// returned by Encode for unknown values and by NumericDiscrete.Match when no
// level lies within tolerance of the measured value.
//
// Callers identify the kind via errors.As:
//
//	var de *param.DomainError
//	if errors.As(err, &de) {
//	    log.Printf("parameter %s rejected %s", de.Parameter, de.Value)
//	}
type DomainError struct {
	// Parameter is the name of the parameter whose domain was violated.
	Parameter string

	// Value is the offending value.
	Value Value
}

// Error implements the error interface.
//
// The message format is stable:
//
//	"param: value <value> outside declared domain of parameter <name>"
func (e *DomainError) Error() string {
	return fmt.Sprintf("param: value %s outside declared domain of parameter %q", e.Value, e.Parameter)
}

// AmbiguousToleranceMatchError reports a measured raw value lying within
// tolerance of two or more declared levels of a numeric-discrete parameter,
// so that no single level can be chosen.
type AmbiguousToleranceMatchError struct {
	// Parameter is the name of the numeric-discrete parameter.
	Parameter string

	// Value is the measured raw value.
	Value float64

	// Levels holds every declared level within tolerance of Value, ascending.
	Levels []float64
}

// Error implements the error interface.
func (e *AmbiguousToleranceMatchError) Error() string {
	ls := make([]string, len(e.Levels))
	for i, l := range e.Levels {
		ls[i] = strconv.FormatFloat(l, 'g', -1, 64)
	}

	return fmt.Sprintf("param: value %s of parameter %q is within tolerance of multiple levels {%s}",
		strconv.FormatFloat(e.Value, 'g', -1, 64), e.Parameter, strings.Join(ls, ", "))
}
