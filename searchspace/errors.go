package searchspace

import (
	"errors"
	"fmt"
	"time"
)

//////
// Const, vars, types.
//////

var (
	// ErrNilParameter indicates a nil entry in a parameter list.
	ErrNilParameter = errors.New("searchspace: parameter must not be nil")

	// ErrDuplicateParameter indicates two parameters sharing a name.
	ErrDuplicateParameter = errors.New("searchspace: duplicate parameter name")

	// ErrUnsupportedConstraint indicates a constraint implementing neither
	// evaluation shape.
	ErrUnsupportedConstraint = errors.New("searchspace: constraint implements neither RowPredicate nor TableFilter")

	// ErrRowNotFound indicates a configuration that does not occur in the
	// discrete subspace, e.g. because a constraint pruned it.
	ErrRowNotFound = errors.New("searchspace: row not found")
)

// EmptyError reports a candidate request against a space that has no rows
// left to offer. An empty space is a legal state; the error is raised at the
// point candidates are actually required.
type EmptyError struct {
	// Total is the number of rows in the discrete subspace.
	Total int

	// Excluded is how many rows the measured/recommended filters removed.
	Excluded int
}

// TooLargeError reports a Cartesian product that exceeded the configured
// row or time budget. The build aborts rather than silently truncating.
type TooLargeError struct {
	// Rows is the number of rows materialized when the budget tripped.
	Rows int

	// MaxRows is the configured row budget, 0 when unlimited.
	MaxRows int

	// Elapsed is the build time consumed when the budget tripped.
	Elapsed time.Duration

	// MaxDuration is the configured time budget, 0 when unlimited.
	MaxDuration time.Duration
}

//////
// Methods.
//////

// Error implements the error interface.
func (e *EmptyError) Error() string {
	if e.Total == 0 {
		return "searchspace: no candidates available: subspace is empty"
	}

	return fmt.Sprintf(
		"searchspace: no candidates available: all %d rows excluded by measured/recommended filters (%d excluded)",
		e.Total, e.Excluded,
	)
}

// Error implements the error interface.
func (e *TooLargeError) Error() string {
	if e.MaxRows > 0 && e.Rows > e.MaxRows {
		return fmt.Sprintf(
			"searchspace: product exceeds row budget: %d rows materialized, limit %d",
			e.Rows, e.MaxRows,
		)
	}

	return fmt.Sprintf(
		"searchspace: build exceeded time budget: %s elapsed, limit %s",
		e.Elapsed, e.MaxDuration,
	)
}
