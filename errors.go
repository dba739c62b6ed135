package baybe

import "errors"

//////
// Const, vars, types.
//////

var (
	// ErrNilSearchSpace indicates a campaign built without a search space.
	ErrNilSearchSpace = errors.New("baybe: search space must not be nil")

	// ErrNilObjective indicates a campaign built without an objective.
	ErrNilObjective = errors.New("baybe: objective must not be nil")

	// ErrNoMeasurements indicates an AddMeasurements call with nothing to
	// add.
	ErrNoMeasurements = errors.New("baybe: no measurements provided")
)
