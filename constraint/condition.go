package constraint

import (
	"fmt"
	"math"
	"strings"

	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// Operator is a comparison operator used by threshold conditions.
type Operator uint8

const (
	// Less keeps values strictly below the bound.
	Less Operator = iota

	// LessEqual keeps values at or below the bound.
	LessEqual

	// Greater keeps values strictly above the bound.
	Greater

	// GreaterEqual keeps values at or above the bound.
	GreaterEqual

	// Equal keeps values within the tolerance around the bound.
	Equal

	// NotEqual keeps values outside the tolerance around the bound.
	NotEqual
)

// operatorTokens maps operators to their textual form, in Operator order.
var operatorTokens = []string{"<", "<=", ">", ">=", "=", "!="}

// Condition decides whether a single parameter value triggers a constraint.
type Condition interface {
	// Check reports whether the value meets the condition.
	Check(v param.Value) (bool, error)

	// Parameters-free description used when rendering constraint names.
	fmt.Stringer
}

// Threshold compares a numeric value against a fixed bound. Equality and
// inequality use an absolute tolerance so that values from floating-point
// arithmetic still match their intended level.
type Threshold struct {
	op    Operator
	bound float64
	tol   float64
}

// SubSelection checks membership of a value in a fixed set.
type SubSelection struct {
	members map[param.Value]struct{}
	order   []param.Value
}

//////
// Factory.
//////

// NewThreshold creates a threshold condition. The tolerance only applies to
// the Equal and NotEqual operators and must not be negative.
//
// Parameters:
//   - op: comparison operator.
//   - bound: the numeric bound compared against.
//   - tolerance: absolute tolerance for (in)equality checks.
//
// Returns:
//   - Threshold: the condition.
//   - error: ErrNegativeTolerance or an invalid-operator error.
func NewThreshold(op Operator, bound, tolerance float64) (Threshold, error) {
	if int(op) >= len(operatorTokens) {
		return Threshold{}, fmt.Errorf("constraint: invalid operator %d", op)
	}

	if tolerance < 0 {
		return Threshold{}, ErrNegativeTolerance
	}

	if math.IsNaN(bound) || math.IsInf(bound, 0) {
		return Threshold{}, fmt.Errorf("constraint: threshold bound must be finite, got %g", bound)
	}

	return Threshold{op: op, bound: bound, tol: tolerance}, nil
}

// NewSubSelection creates a membership condition over the given values.
//
// Parameters:
//   - values: the allowed values, at least one.
//
// Returns:
//   - SubSelection: the condition.
//   - error: ErrEmptySubSelection when no value is given.
func NewSubSelection(values ...param.Value) (SubSelection, error) {
	if len(values) == 0 {
		return SubSelection{}, ErrEmptySubSelection
	}

	members := make(map[param.Value]struct{}, len(values))
	order := make([]param.Value, 0, len(values))

	for _, v := range values {
		if _, ok := members[v]; ok {
			continue
		}

		members[v] = struct{}{}
		order = append(order, v)
	}

	return SubSelection{members: members, order: order}, nil
}

//////
// Exported functionalities.
//////

// ParseOperator resolves the textual form of an operator, e.g. ">=".
func ParseOperator(token string) (Operator, error) {
	for i, t := range operatorTokens {
		if t == token {
			return Operator(i), nil
		}
	}

	return 0, fmt.Errorf("constraint: unknown operator %q", token)
}

//////
// Methods.
//////

// String returns the textual form of the operator.
func (o Operator) String() string {
	if int(o) < len(operatorTokens) {
		return operatorTokens[o]
	}

	return fmt.Sprintf("Operator(%d)", uint8(o))
}

// Check implements Condition. Non-numeric values fail with an error since a
// threshold on labels indicates a configuration mistake.
func (c Threshold) Check(v param.Value) (bool, error) {
	if v.Kind() != param.KindFloat {
		return false, fmt.Errorf("constraint: threshold requires a numeric value, got %q", v.String())
	}

	x := v.Float()

	switch c.op {
	case Less:
		return x < c.bound, nil
	case LessEqual:
		return x <= c.bound, nil
	case Greater:
		return x > c.bound, nil
	case GreaterEqual:
		return x >= c.bound, nil
	case Equal:
		return math.Abs(x-c.bound) <= c.tol, nil
	case NotEqual:
		return math.Abs(x-c.bound) > c.tol, nil
	default:
		return false, fmt.Errorf("constraint: invalid operator %d", c.op)
	}
}

// Operator returns the comparison operator.
func (c Threshold) Operator() Operator {
	return c.op
}

// Bound returns the numeric bound.
func (c Threshold) Bound() float64 {
	return c.bound
}

// Tolerance returns the absolute tolerance applied to (in)equality checks.
func (c Threshold) Tolerance() float64 {
	return c.tol
}

// String implements fmt.Stringer.
func (c Threshold) String() string {
	return fmt.Sprintf("%s %g", c.op, c.bound)
}

// Check implements Condition. Membership never fails.
func (c SubSelection) Check(v param.Value) (bool, error) {
	_, ok := c.members[v]

	return ok, nil
}

// Values returns the allowed values in declared order.
func (c SubSelection) Values() []param.Value {
	out := make([]param.Value, len(c.order))
	copy(out, c.order)

	return out
}

// String implements fmt.Stringer.
func (c SubSelection) String() string {
	parts := make([]string, len(c.order))

	for i, v := range c.order {
		parts[i] = v.String()
	}

	return "in {" + strings.Join(parts, ", ") + "}"
}
