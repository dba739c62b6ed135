package constraint

import (
	"fmt"

	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// Dependencies models parameters that are only meaningful while a causing
// parameter activates them, e.g. a stirring speed that only matters when
// stirring is switched on. While the cause is inactive, every dependent
// parameter is pinned to a single placeholder value so that the subspace
// does not fan out over combinations that describe the same experiment.
//
// The placeholder is the first value of each dependent parameter's declared
// domain and is resolved via Bind when the search space is built; the
// unbound constraint cannot evaluate rows.
type Dependencies struct {
	cause     string
	condition Condition
	affected  []string
	inactive  map[string]param.Value
	name      string
}

//////
// Factory.
//////

// NewDependencies creates a dependency constraint.
//
// Parameters:
//   - cause: name of the activating parameter.
//   - condition: evaluated on the cause's value; a match activates the
//     dependent parameters.
//   - affected: names of the dependent parameters, at least one, all
//     distinct from each other and from the cause.
//
// Returns:
//   - *Dependencies: the unbound constraint; call Bind before evaluating.
//   - error: a validation error describing the offending argument.
//
// Usage example:
//
//	on, _ := constraint.NewSubSelection(param.String("yes"))
//	c, err := constraint.NewDependencies("Stirring", on, []string{"Speed"})
func NewDependencies(cause string, condition Condition, affected []string) (*Dependencies, error) {
	if condition == nil {
		return nil, ErrNilCondition
	}

	if len(affected) == 0 {
		return nil, ErrNoParameters
	}

	all := append([]string{cause}, affected...)

	if err := checkParameters(all); err != nil {
		return nil, err
	}

	names := make([]string, len(affected))
	copy(names, affected)

	return &Dependencies{
		cause:     cause,
		condition: condition,
		affected:  names,
		name:      describe("dependencies", all),
	}, nil
}

//////
// Methods.
//////

// Name implements Constraint.
func (c *Dependencies) Name() string {
	return c.name
}

// Parameters implements Constraint. The cause is listed first, followed by
// the dependent parameters in declared order.
func (c *Dependencies) Parameters() []string {
	out := make([]string, 0, len(c.affected)+1)
	out = append(out, c.cause)
	out = append(out, c.affected...)

	return out
}

// Cause returns the name of the activating parameter.
func (c *Dependencies) Cause() string {
	return c.cause
}

// Condition returns the activation condition.
func (c *Dependencies) Condition() Condition {
	return c.condition
}

// Affected returns the dependent parameter names in declared order.
func (c *Dependencies) Affected() []string {
	out := make([]string, len(c.affected))
	copy(out, c.affected)

	return out
}

// Bind implements Binder, resolving the inactive placeholder of every
// dependent parameter to the first value of its declared domain. The
// receiver is left untouched.
func (c *Dependencies) Bind(parameters []param.Discrete) (Constraint, error) {
	byName := make(map[string]param.Discrete, len(parameters))

	for _, p := range parameters {
		byName[p.Name()] = p
	}

	inactive := make(map[string]param.Value, len(c.affected))

	for _, name := range c.affected {
		p, ok := byName[name]
		if !ok {
			return nil, &UnknownParameterError{Constraint: c.name, Parameter: name}
		}

		values := p.Values()
		if len(values) == 0 {
			return nil, fmt.Errorf("constraint: %s: dependent parameter %q has an empty domain", c.name, name)
		}

		inactive[name] = values[0]
	}

	bound := *c
	bound.inactive = inactive

	return &bound, nil
}

// IsValid implements RowPredicate. While the cause activates the dependent
// parameters, any of their values is acceptable; otherwise each dependent
// parameter must sit at its placeholder.
func (c *Dependencies) IsValid(r Row) (bool, error) {
	if c.inactive == nil {
		return false, fmt.Errorf("constraint: %s evaluated before Bind", c.name)
	}

	active, err := c.condition.Check(r[c.cause])
	if err != nil {
		return false, fmt.Errorf("parameter %q: %w", c.cause, err)
	}

	if active {
		return true, nil
	}

	for _, name := range c.affected {
		if r[name] != c.inactive[name] {
			return false, nil
		}
	}

	return true, nil
}
