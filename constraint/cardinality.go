package constraint

import (
	"fmt"

	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// Cardinality keeps rows where the number of non-zero values among the
// referenced parameters lies within a window, e.g. "use at most three
// additives at once".
type Cardinality struct {
	parameters []string
	min        int
	max        int
	name       string
}

//////
// Factory.
//////

// NewCardinality creates a cardinality constraint.
//
// Parameters:
//   - parameters: names of the counted parameters, at least one, unique.
//   - min: minimum number of non-zero values, inclusive.
//   - max: maximum number of non-zero values, inclusive.
//
// Returns:
//   - *Cardinality: the constraint.
//   - error: ErrCardinalityBounds when the window is malformed, or a
//     validation error for an invalid parameter list.
func NewCardinality(parameters []string, min, max int) (*Cardinality, error) {
	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	if min < 0 || max < min {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrCardinalityBounds, min, max)
	}

	if max > len(parameters) {
		return nil, fmt.Errorf("%w: max=%d exceeds parameter count %d", ErrCardinalityBounds, max, len(parameters))
	}

	names := make([]string, len(parameters))
	copy(names, parameters)

	return &Cardinality{
		parameters: names,
		min:        min,
		max:        max,
		name:       describe("cardinality", names),
	}, nil
}

//////
// Methods.
//////

// Name implements Constraint.
func (c *Cardinality) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *Cardinality) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// Bounds returns the inclusive non-zero count window.
func (c *Cardinality) Bounds() (min, max int) {
	return c.min, c.max
}

// Filter implements TableFilter.
func (c *Cardinality) Filter(t Table) ([]bool, error) {
	cols := make([][]param.Value, len(c.parameters))

	for j, p := range c.parameters {
		values, ok := t.Column(p)
		if !ok {
			return nil, &UnknownParameterError{Constraint: c.name, Parameter: p}
		}

		cols[j] = values
	}

	keep := make([]bool, t.Len())

	for i := range keep {
		count := 0

		for j, p := range c.parameters {
			x, err := numeric(p, cols[j][i])
			if err != nil {
				return nil, &EvaluationError{Constraint: c.name, Row: t.Row(i), Err: err}
			}

			if x != 0 {
				count++
			}
		}

		keep[i] = count >= c.min && count <= c.max
	}

	return keep, nil
}
