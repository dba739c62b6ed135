package constraint

import (
	"fmt"
)

//////
// Const, vars, types.
//////

// Combiner joins the per-parameter conditions of an exclusion.
type Combiner uint8

const (
	// And excludes a row only when every condition matches.
	And Combiner = iota

	// Or excludes a row when any condition matches.
	Or
)

// combinerTokens maps combiners to their textual form, in Combiner order.
var combinerTokens = []string{"AND", "OR"}

// On pairs a parameter name with the condition evaluated on its value.
type On struct {
	// Parameter is the name of the constrained parameter.
	Parameter string

	// Condition is evaluated against the parameter's value.
	Condition Condition
}

// Exclude drops rows whose values match the combined conditions. It is the
// workhorse for carving forbidden regions out of a discrete subspace, e.g.
// "no temperatures above 150 when the solvent is water".
type Exclude struct {
	conditions []On
	combine    Combiner
	parameters []string
	name       string
}

//////
// Factory.
//////

// NewExclude creates an exclusion over one condition per parameter.
//
// Parameters:
//   - conditions: parameter/condition pairs, at least one, parameter names
//     unique and non-empty, conditions non-nil.
//   - combine: how the individual conditions are joined.
//
// Returns:
//   - *Exclude: the constraint.
//   - error: a validation error describing the first offending entry.
//
// Usage example:
//
//	hot, _ := constraint.NewThreshold(constraint.Greater, 150, 0)
//	aqueous, _ := constraint.NewSubSelection(param.String("water"))
//	c, err := constraint.NewExclude([]constraint.On{
//		{Parameter: "Temperature", Condition: hot},
//		{Parameter: "Solvent", Condition: aqueous},
//	}, constraint.And)
func NewExclude(conditions []On, combine Combiner) (*Exclude, error) {
	if int(combine) >= len(combinerTokens) {
		return nil, fmt.Errorf("constraint: invalid combiner %d", combine)
	}

	parameters := make([]string, len(conditions))

	for i, c := range conditions {
		if c.Condition == nil {
			return nil, ErrNilCondition
		}

		parameters[i] = c.Parameter
	}

	if err := checkParameters(parameters); err != nil {
		return nil, err
	}

	conds := make([]On, len(conditions))
	copy(conds, conditions)

	return &Exclude{
		conditions: conds,
		combine:    combine,
		parameters: parameters,
		name:       describe("exclude", parameters),
	}, nil
}

//////
// Exported functionalities.
//////

// ParseCombiner resolves the textual form of a combiner, e.g. "AND".
func ParseCombiner(token string) (Combiner, error) {
	for i, t := range combinerTokens {
		if t == token {
			return Combiner(i), nil
		}
	}

	return 0, fmt.Errorf("constraint: unknown combiner %q", token)
}

//////
// Methods.
//////

// String returns the textual form of the combiner.
func (c Combiner) String() string {
	if int(c) < len(combinerTokens) {
		return combinerTokens[c]
	}

	return fmt.Sprintf("Combiner(%d)", uint8(c))
}

// Name implements Constraint.
func (c *Exclude) Name() string {
	return c.name
}

// Parameters implements Constraint.
func (c *Exclude) Parameters() []string {
	out := make([]string, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// Combiner returns how the conditions are joined.
func (c *Exclude) Combiner() Combiner {
	return c.combine
}

// Conditions returns the parameter/condition pairs in declared order.
func (c *Exclude) Conditions() []On {
	out := make([]On, len(c.conditions))
	copy(out, c.conditions)

	return out
}

// IsValid implements RowPredicate. A row is valid unless the combined
// conditions match it.
func (c *Exclude) IsValid(r Row) (bool, error) {
	for _, on := range c.conditions {
		hit, err := on.Condition.Check(r[on.Parameter])
		if err != nil {
			return false, fmt.Errorf("parameter %q: %w", on.Parameter, err)
		}

		switch c.combine {
		case And:
			if !hit {
				return true, nil
			}
		case Or:
			if hit {
				return false, nil
			}
		}
	}

	// And: every condition matched, so the row is excluded. Or: none did.
	return c.combine == Or, nil
}
