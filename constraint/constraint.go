package constraint

import (
	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// Row is a single candidate configuration in experimental representation,
// keyed by parameter name. During search space construction rows may be
// partial; a row predicate is only consulted once every parameter it
// references has been assigned.
type Row map[string]param.Value

// Table is the read-only view a table filter evaluates against. Columns hold
// experimental values in row order.
type Table interface {
	// Len returns the number of rows.
	Len() int

	// Column returns the values of the named column in row order, or false
	// when the table does not hold the column.
	Column(name string) ([]param.Value, bool)

	// Row materializes the i-th row.
	Row(i int) Row
}

// Constraint restricts which parameter combinations are considered valid.
// Implementations are immutable after construction and safe for concurrent
// use.
type Constraint interface {
	// Name identifies the constraint in error messages, e.g.
	// "exclude(Solvent, Temperature)".
	Name() string

	// Parameters returns the referenced parameter names in declared order.
	Parameters() []string
}

// RowPredicate is a constraint that can judge a single row in isolation.
// Predicates are applied during enumeration as soon as all referenced
// parameters are assigned, pruning invalid branches before they fan out.
type RowPredicate interface {
	Constraint

	// IsValid reports whether the row satisfies the constraint. The row is
	// guaranteed to hold a value for every referenced parameter.
	IsValid(r Row) (bool, error)
}

// TableFilter is a constraint that needs the fully assembled table, e.g.
// because it reasons over aggregates. Filter returns a keep mask aligned
// with the table's rows.
type TableFilter interface {
	Constraint

	// Filter returns keep[i] == true for every row i that satisfies the
	// constraint. The returned slice has length t.Len().
	Filter(t Table) ([]bool, error)
}

// Binder is implemented by constraints that resolve parameter metadata when
// the enclosing search space is built. Bind returns the resolved constraint
// and leaves the receiver untouched.
type Binder interface {
	Constraint

	// Bind resolves the constraint against the declared discrete parameters.
	Bind(parameters []param.Discrete) (Constraint, error)
}

// lifted adapts a row predicate to the table-filter shape.
type lifted struct {
	p RowPredicate
}

//////
// Exported functionalities.
//////

// Lift adapts a row predicate into a table filter, evaluating the predicate
// once per row. Evaluation failures are wrapped into an EvaluationError
// carrying the offending row.
func Lift(p RowPredicate) TableFilter {
	return lifted{p: p}
}

//////
// Methods.
//////

// Name implements Constraint.
func (l lifted) Name() string {
	return l.p.Name()
}

// Parameters implements Constraint.
func (l lifted) Parameters() []string {
	return l.p.Parameters()
}

// Filter implements TableFilter.
func (l lifted) Filter(t Table) ([]bool, error) {
	keep := make([]bool, t.Len())

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)

		ok, err := l.p.IsValid(row)
		if err != nil {
			return nil, &EvaluationError{Constraint: l.p.Name(), Row: row, Err: err}
		}

		keep[i] = ok
	}

	return keep, nil
}
