package constraint

import (
	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// Permutation keeps only the canonical representative of rows that are
// permutations of each other across the referenced parameters, e.g. three
// interchangeable additive slots where (A, B, C) and (C, A, B) describe the
// same experiment. Canonical means the values appear in nondecreasing order
// under param.Less.
type Permutation struct {
	parameters []string
	name       string
}

//////
// Factory.
//////

// NewPermutation creates a permutation-invariance constraint over at least
// two interchangeable parameters.
func NewPermutation(parameters ...string) (*Permutation, error) {
	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	if len(parameters) < 2 {
		return nil, ErrTooFewParameters
	}

	names := make([]string, len(parameters))
	copy(names, parameters)

	return &Permutation{
		parameters: names,
		name:       describe("permutation", names),
	}, nil
}

//////
// Methods.
//////

// Name implements Constraint.
func (c *Permutation) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *Permutation) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// IsValid implements RowPredicate.
func (c *Permutation) IsValid(r Row) (bool, error) {
	prev := r[c.parameters[0]]

	for _, p := range c.parameters[1:] {
		cur := r[p]

		if param.Less(cur, prev) {
			return false, nil
		}

		prev = cur
	}

	return true, nil
}
