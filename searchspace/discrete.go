package searchspace

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// DefaultMaxRows is the row budget applied when BuildOptions leaves MaxRows
// at zero. Products beyond this size indicate a configuration that should
// be constrained further rather than enumerated.
const DefaultMaxRows = 1_000_000

// budgetCheckInterval controls how often the enumeration consults the wall
// clock, as a power-of-two visit mask.
const budgetCheckInterval = 1024

// BuildOptions tunes discrete subspace construction.
type BuildOptions struct {
	// AllowDuplicates keeps rows that are equal as full value tuples. By
	// default duplicates are removed.
	AllowDuplicates bool

	// MaxRows aborts the build with a *TooLargeError once more than this
	// many rows have been materialized. Zero applies DefaultMaxRows; a
	// negative value disables the budget.
	MaxRows int

	// MaxDuration aborts the build with a *TooLargeError once construction
	// has run longer than this. Zero disables the budget.
	MaxDuration time.Duration
}

// SubspaceDiscrete is the enumerable, constraint-filtered set of valid
// discrete configurations, held in paired experimental and computational
// representations with identical row order. It is immutable once built and
// safe for concurrent reads.
type SubspaceDiscrete struct {
	parameters []param.Discrete
	exp        *Table
	comp       *CompTable
	ids        []RowID
	byID       map[RowID]int
}

// enumeration is the depth-first walk over parameter assignment order.
// Row predicates fire at the shallowest depth where every parameter they
// reference has been assigned, pruning invalid branches before they fan
// out across the remaining domains.
type enumeration struct {
	parameters []param.Discrete
	domains    [][]param.Value
	predsAt    [][]constraint.RowPredicate
	partial    constraint.Row
	tuple      []param.Value
	rows       [][]param.Value
	maxRows    int
	start      time.Time
	deadline   time.Time
	visits     uint64
}

//////
// Factory.
//////

// DefaultBuildOptions returns the build options used when callers have no
// special requirements: duplicates removed, DefaultMaxRows row budget, no
// time budget.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{MaxRows: DefaultMaxRows}
}

// BuildDiscrete enumerates the Cartesian product of the parameters' domains,
// prunes it against the constraints, and freezes the surviving rows into a
// discrete subspace.
//
// Constraints are applied in two phases. Row predicates run during
// enumeration, each at the shallowest assignment depth where all of its
// parameters are bound. Table filters run once against the fully enumerated
// provisional table. Rows are then deduplicated by their full value tuple,
// unless opts.AllowDuplicates is set, and the surviving generation order is
// frozen: identical inputs always produce identical row order.
//
// Parameters:
//   - parameters: discrete parameters in declaration order; their encodings
//     define the computational columns.
//   - constraints: constraints over the declared parameter names.
//   - opts: duplicate policy and row/time budgets, see BuildOptions.
//
// Returns:
//   - *SubspaceDiscrete: the built subspace. An empty domain or a fully
//     pruned product yields an empty subspace, not an error.
//   - error: aggregated configuration errors (nil or duplicate parameters,
//     dangling constraint references), a *TooLargeError when a budget trips,
//     or a *constraint.EvaluationError when a constraint fails on a row.
//
// Usage example:
//
//	solvent, _ := param.NewCategorical("Solvent", []string{"water", "C3"}, param.OneHot)
//	temperature, _ := param.NewNumericDiscrete("Temperature", []float64{100, 150, 200}, 0)
//	sub, err := searchspace.BuildDiscrete(
//		[]param.Discrete{solvent, temperature},
//		[]constraint.Constraint{hotAqueous},
//		searchspace.DefaultBuildOptions(),
//	)
func BuildDiscrete(
	parameters []param.Discrete,
	constraints []constraint.Constraint,
	opts BuildOptions,
) (*SubspaceDiscrete, error) {
	if err := validateParameters(parameters); err != nil {
		return nil, err
	}

	bound, err := resolveConstraints(parameters, constraints)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(parameters))

	for i, p := range parameters {
		columns[i] = p.Name()
	}

	if len(parameters) == 0 {
		return newSubspace(parameters, columns, nil)
	}

	predicates, filters := splitConstraints(bound)

	maxRows := opts.MaxRows
	if maxRows == 0 {
		maxRows = DefaultMaxRows
	}

	walk := &enumeration{
		parameters: parameters,
		domains:    domainsOf(parameters),
		predsAt:    predicateDepths(columns, predicates),
		partial:    make(constraint.Row, len(parameters)),
		tuple:      make([]param.Value, len(parameters)),
		maxRows:    maxRows,
		start:      time.Now(),
	}

	if opts.MaxDuration > 0 {
		walk.deadline = walk.start.Add(opts.MaxDuration)
	}

	if err := walk.run(); err != nil {
		return nil, err
	}

	rows := walk.rows

	rows, err = applyFilters(columns, rows, filters)
	if err != nil {
		return nil, err
	}

	if !opts.AllowDuplicates {
		rows = dedupRows(rows)
	}

	return newSubspace(parameters, columns, rows)
}

// newSubspace freezes enumerated rows into the paired representations.
func newSubspace(parameters []param.Discrete, columns []string, rows [][]param.Value) (*SubspaceDiscrete, error) {
	comp, err := encodeRows(parameters, rows)
	if err != nil {
		return nil, err
	}

	ids := make([]RowID, len(rows))
	byID := make(map[RowID]int, len(rows))

	for i, row := range rows {
		ids[i] = rowID(columns, row)

		if _, ok := byID[ids[i]]; !ok {
			byID[ids[i]] = i
		}
	}

	return &SubspaceDiscrete{
		parameters: parameters,
		exp:        newTable(columns, rows),
		comp:       comp,
		ids:        ids,
		byID:       byID,
	}, nil
}

//////
// Methods.
//////

// Parameters returns the discrete parameters in declaration order.
func (d *SubspaceDiscrete) Parameters() []param.Discrete {
	out := make([]param.Discrete, len(d.parameters))
	copy(out, d.parameters)

	return out
}

// Len returns the number of valid configurations.
func (d *SubspaceDiscrete) Len() int {
	return d.exp.Len()
}

// Experimental returns the experimental representation.
func (d *SubspaceDiscrete) Experimental() *Table {
	return d.exp
}

// Computational returns the computational representation, row-aligned with
// the experimental one.
func (d *SubspaceDiscrete) Computational() *CompTable {
	return d.comp
}

// IDs returns the stable row identifiers in row order.
func (d *SubspaceDiscrete) IDs() []RowID {
	out := make([]RowID, len(d.ids))
	copy(out, d.ids)

	return out
}

// IndexOf resolves a row identifier to its row index.
func (d *SubspaceDiscrete) IndexOf(id RowID) (int, bool) {
	i, ok := d.byID[id]

	return i, ok
}

// Locate normalizes a raw configuration onto the subspace's discrete levels
// and resolves its row identifier. Numeric-discrete parameters match raw
// values to their nearest level within tolerance; all other parameters
// require exact domain membership.
//
// Returns:
//   - RowID: the identifier of the matching row.
//   - error: a *param.DomainError or *param.AmbiguousToleranceMatchError
//     when a value cannot be normalized, or ErrRowNotFound when the
//     normalized configuration is not part of the subspace.
func (d *SubspaceDiscrete) Locate(values map[string]param.Value) (RowID, error) {
	tuple := make([]param.Value, len(d.parameters))

	for i, p := range d.parameters {
		raw, ok := values[p.Name()]
		if !ok {
			return 0, fmt.Errorf("searchspace: configuration is missing parameter %q", p.Name())
		}

		normalized, err := normalizeValue(p, raw)
		if err != nil {
			return 0, err
		}

		tuple[i] = normalized
	}

	id := rowID(d.exp.columns, tuple)

	if _, ok := d.byID[id]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrRowNotFound, dedupKey(tuple))
	}

	return id, nil
}

// run executes the depth-first enumeration.
func (e *enumeration) run() error {
	return e.walk(0)
}

// walk assigns the parameter at the given depth and recurses. Completed
// rows are appended to e.rows.
func (e *enumeration) walk(depth int) error {
	if depth == len(e.parameters) {
		row := make([]param.Value, len(e.tuple))
		copy(row, e.tuple)

		e.rows = append(e.rows, row)

		if e.maxRows > 0 && len(e.rows) > e.maxRows {
			return &TooLargeError{
				Rows:    len(e.rows),
				MaxRows: e.maxRows,
				Elapsed: time.Since(e.start),
			}
		}

		return nil
	}

	name := e.parameters[depth].Name()

	for _, v := range e.domains[depth] {
		if err := e.checkClock(); err != nil {
			return err
		}

		e.partial[name] = v
		e.tuple[depth] = v

		valid := true

		for _, p := range e.predsAt[depth] {
			ok, err := p.IsValid(e.partial)
			if err != nil {
				return &constraint.EvaluationError{
					Constraint: p.Name(),
					Row:        snapshotRow(e.partial),
					Err:        err,
				}
			}

			if !ok {
				valid = false

				break
			}
		}

		if valid {
			if err := e.walk(depth + 1); err != nil {
				return err
			}
		}
	}

	delete(e.partial, name)

	return nil
}

// checkClock enforces the time budget every budgetCheckInterval visits.
func (e *enumeration) checkClock() error {
	e.visits++

	if e.deadline.IsZero() || e.visits%budgetCheckInterval != 0 {
		return nil
	}

	if now := time.Now(); now.After(e.deadline) {
		return &TooLargeError{
			Rows:        len(e.rows),
			MaxRows:     e.maxRows,
			Elapsed:     now.Sub(e.start),
			MaxDuration: e.deadline.Sub(e.start),
		}
	}

	return nil
}

//////
// Helper functions.
//////

// validateParameters rejects nil entries and duplicate names, aggregating
// every violation instead of stopping at the first.
func validateParameters(parameters []param.Discrete) error {
	var err error

	seen := make(map[string]struct{}, len(parameters))

	for i, p := range parameters {
		if p == nil {
			err = multierr.Append(err, fmt.Errorf("%w: index %d", ErrNilParameter, i))

			continue
		}

		if _, ok := seen[p.Name()]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicateParameter, p.Name()))

			continue
		}

		seen[p.Name()] = struct{}{}
	}

	return err
}

// resolveConstraints verifies that every constraint only references declared
// parameters and gives Binder constraints their chance to resolve parameter
// metadata. All configuration errors are aggregated.
func resolveConstraints(
	parameters []param.Discrete,
	constraints []constraint.Constraint,
) ([]constraint.Constraint, error) {
	declared := make(map[string]struct{}, len(parameters))

	for _, p := range parameters {
		declared[p.Name()] = struct{}{}
	}

	var err error

	resolved := make([]constraint.Constraint, 0, len(constraints))

	for i, c := range constraints {
		if c == nil {
			err = multierr.Append(err, fmt.Errorf("searchspace: constraint at index %d is nil", i))

			continue
		}

		dangling := false

		for _, name := range c.Parameters() {
			if _, ok := declared[name]; !ok {
				err = multierr.Append(err, &constraint.UnknownParameterError{
					Constraint: c.Name(),
					Parameter:  name,
				})

				dangling = true
			}
		}

		if dangling {
			continue
		}

		if binder, ok := c.(constraint.Binder); ok {
			bound, bindErr := binder.Bind(parameters)
			if bindErr != nil {
				err = multierr.Append(err, bindErr)

				continue
			}

			c = bound
		}

		switch c.(type) {
		case constraint.RowPredicate, constraint.TableFilter:
		default:
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrUnsupportedConstraint, c.Name()))

			continue
		}

		resolved = append(resolved, c)
	}

	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// splitConstraints partitions constraints into the two evaluation phases.
// Constraints supporting both shapes run as early row predicates.
func splitConstraints(constraints []constraint.Constraint) ([]constraint.RowPredicate, []constraint.TableFilter) {
	var (
		predicates []constraint.RowPredicate
		filters    []constraint.TableFilter
	)

	for _, c := range constraints {
		switch cc := c.(type) {
		case constraint.RowPredicate:
			predicates = append(predicates, cc)
		case constraint.TableFilter:
			filters = append(filters, cc)
		}
	}

	return predicates, filters
}

// domainsOf snapshots every parameter's declared values.
func domainsOf(parameters []param.Discrete) [][]param.Value {
	domains := make([][]param.Value, len(parameters))

	for i, p := range parameters {
		domains[i] = p.Values()
	}

	return domains
}

// predicateDepths assigns each predicate to the shallowest depth at which
// all of its parameters are bound, i.e. the highest index any of them has
// in declaration order.
func predicateDepths(columns []string, predicates []constraint.RowPredicate) [][]constraint.RowPredicate {
	position := make(map[string]int, len(columns))

	for i, name := range columns {
		position[name] = i
	}

	byDepth := make([][]constraint.RowPredicate, len(columns))

	for _, p := range predicates {
		depth := 0

		for _, name := range p.Parameters() {
			if position[name] > depth {
				depth = position[name]
			}
		}

		byDepth[depth] = append(byDepth[depth], p)
	}

	return byDepth
}

// applyFilters runs every table filter over the provisional rows and keeps
// the rows all filters accept, preserving order.
func applyFilters(columns []string, rows [][]param.Value, filters []constraint.TableFilter) ([][]param.Value, error) {
	if len(filters) == 0 || len(rows) == 0 {
		return rows, nil
	}

	table := newTable(columns, rows)
	keep := make([]bool, len(rows))

	for i := range keep {
		keep[i] = true
	}

	for _, f := range filters {
		mask, err := f.Filter(table)
		if err != nil {
			return nil, err
		}

		if len(mask) != len(rows) {
			return nil, fmt.Errorf("searchspace: filter %s returned %d mask entries for %d rows",
				f.Name(), len(mask), len(rows))
		}

		for i := range keep {
			keep[i] = keep[i] && mask[i]
		}
	}

	kept := rows[:0:0]

	for i, row := range rows {
		if keep[i] {
			kept = append(kept, row)
		}
	}

	return kept, nil
}

// dedupRows removes rows equal as full value tuples, keeping the first
// occurrence in generation order.
func dedupRows(rows [][]param.Value) [][]param.Value {
	seen := make(map[string]struct{}, len(rows))
	kept := rows[:0:0]

	for _, row := range rows {
		key := dedupKey(row)

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		kept = append(kept, row)
	}

	return kept
}

// encodeRows builds the computational representation by concatenating each
// parameter's encoded columns in declaration order.
func encodeRows(parameters []param.Discrete, rows [][]param.Value) (*CompTable, error) {
	var (
		columns []string
		origins []string
	)

	for _, p := range parameters {
		for _, col := range p.Columns() {
			columns = append(columns, col)
			origins = append(origins, p.Name())
		}
	}

	encoded := make([][]float64, len(rows))

	for i, row := range rows {
		vec := make([]float64, 0, len(columns))

		for j, p := range parameters {
			part, err := p.Encode(row[j])
			if err != nil {
				return nil, fmt.Errorf("searchspace: encoding row %d: %w", i, err)
			}

			vec = append(vec, part...)
		}

		encoded[i] = vec
	}

	return newCompTable(columns, origins, encoded), nil
}

// normalizeValue maps a raw value onto the parameter's discrete level,
// using tolerance matching for numeric-discrete parameters.
func normalizeValue(p param.Discrete, raw param.Value) (param.Value, error) {
	nd, ok := p.(*param.NumericDiscrete)
	if ok && raw.Kind() == param.KindFloat {
		level, err := nd.Match(raw.Float())
		if err != nil {
			return param.Value{}, err
		}

		return param.Float(level), nil
	}

	if !p.InDomain(raw) {
		return param.Value{}, &param.DomainError{Parameter: p.Name(), Value: raw}
	}

	return raw, nil
}

// snapshotRow copies a partial row so error values do not alias the
// enumeration's reusable buffer.
func snapshotRow(row constraint.Row) constraint.Row {
	out := make(constraint.Row, len(row))

	for name, v := range row {
		out[name] = v
	}

	return out
}
