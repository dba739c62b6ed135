package constraint

import (
	"fmt"

	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// Validator judges one combination of parameter values. The values arrive in
// the order the parameters were declared on the custom constraint.
type Validator func(values []param.Value) (bool, error)

// Custom wraps an arbitrary validator function as a row predicate, covering
// domain knowledge the built-in constraints cannot express. Custom
// constraints take part in search space construction like any other row
// predicate but are excluded from serialization.
type Custom struct {
	parameters []string
	fn         Validator
	name       string
}

//////
// Factory.
//////

// NewCustom creates a custom constraint.
//
// Parameters:
//   - parameters: names of the parameters handed to the validator, at least
//     one, unique; the validator receives values in this order.
//   - fn: the validator, must not be nil.
//
// Returns:
//   - *Custom: the constraint.
//   - error: ErrNilValidator or a validation error for the parameter list.
//
// Usage example:
//
//	c, err := constraint.NewCustom([]string{"Temperature", "Solvent"},
//		func(values []param.Value) (bool, error) {
//			return !(values[0].Float() > 150 && values[1].Str() == "water"), nil
//		})
func NewCustom(parameters []string, fn Validator) (*Custom, error) {
	if fn == nil {
		return nil, ErrNilValidator
	}

	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	names := make([]string, len(parameters))
	copy(names, parameters)

	return &Custom{
		parameters: names,
		fn:         fn,
		name:       describe("custom", names),
	}, nil
}

//////
// Methods.
//////

// Name implements Constraint.
func (c *Custom) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *Custom) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// IsValid implements RowPredicate, handing the row's values to the validator
// in declared parameter order.
func (c *Custom) IsValid(r Row) (bool, error) {
	values := make([]param.Value, len(c.parameters))

	for i, p := range c.parameters {
		v, ok := r[p]
		if !ok {
			return false, fmt.Errorf("row is missing parameter %q", p)
		}

		values[i] = v
	}

	ok, err := c.fn(values)
	if err != nil {
		return false, fmt.Errorf("validator: %w", err)
	}

	return ok, nil
}
