package constraint

import (
	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// Sum keeps rows whose summed parameter values satisfy a threshold, e.g.
// mixture fractions adding up to one. It needs the assembled table and
// therefore runs as a post-enumeration filter.
type Sum struct {
	parameters []string
	condition  Threshold
	name       string
}

// Product keeps rows whose multiplied parameter values satisfy a threshold.
type Product struct {
	parameters []string
	condition  Threshold
	name       string
}

//////
// Factory.
//////

// NewSum creates a sum constraint over the given numeric parameters.
//
// Parameters:
//   - parameters: names of the summed parameters, at least one, unique.
//   - condition: threshold applied to the row sum.
//
// Returns:
//   - *Sum: the constraint.
//   - error: a validation error for an invalid parameter list.
//
// Usage example:
//
//	total, _ := constraint.NewThreshold(constraint.Equal, 1, 1e-6)
//	c, err := constraint.NewSum([]string{"FracA", "FracB", "FracC"}, total)
func NewSum(parameters []string, condition Threshold) (*Sum, error) {
	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	names := make([]string, len(parameters))
	copy(names, parameters)

	return &Sum{
		parameters: names,
		condition:  condition,
		name:       describe("sum", names),
	}, nil
}

// NewProduct creates a product constraint over the given numeric parameters.
func NewProduct(parameters []string, condition Threshold) (*Product, error) {
	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	names := make([]string, len(parameters))
	copy(names, parameters)

	return &Product{
		parameters: names,
		condition:  condition,
		name:       describe("product", names),
	}, nil
}

//////
// Methods.
//////

// Name implements Constraint.
func (c *Sum) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *Sum) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// Condition returns the threshold applied to the row sum.
func (c *Sum) Condition() Threshold {
	return c.condition
}

// Filter implements TableFilter.
func (c *Sum) Filter(t Table) ([]bool, error) {
	return filterAggregate(t, c.name, c.parameters, c.condition, 0, func(acc, x float64) float64 {
		return acc + x
	})
}

// Name implements Constraint.
func (c *Product) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *Product) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// Condition returns the threshold applied to the row product.
func (c *Product) Condition() Threshold {
	return c.condition
}

// Filter implements TableFilter.
func (c *Product) Filter(t Table) ([]bool, error) {
	return filterAggregate(t, c.name, c.parameters, c.condition, 1, func(acc, x float64) float64 {
		return acc * x
	})
}

//////
// Helper functions.
//////

// filterAggregate reduces the referenced columns row by row and keeps rows
// whose aggregate satisfies the condition.
func filterAggregate(
	t Table,
	name string,
	parameters []string,
	condition Threshold,
	seed float64,
	reduce func(acc, x float64) float64,
) ([]bool, error) {
	cols := make([][]float64, len(parameters))

	for j, p := range parameters {
		values, ok := t.Column(p)
		if !ok {
			return nil, &UnknownParameterError{Constraint: name, Parameter: p}
		}

		nums := make([]float64, len(values))

		for i, v := range values {
			x, err := numeric(p, v)
			if err != nil {
				return nil, &EvaluationError{Constraint: name, Row: t.Row(i), Err: err}
			}

			nums[i] = x
		}

		cols[j] = nums
	}

	keep := make([]bool, t.Len())

	for i := range keep {
		acc := seed

		for j := range cols {
			acc = reduce(acc, cols[j][i])
		}

		ok, err := condition.Check(param.Float(acc))
		if err != nil {
			return nil, &EvaluationError{Constraint: name, Row: t.Row(i), Err: err}
		}

		keep[i] = ok
	}

	return keep, nil
}
