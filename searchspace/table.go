package searchspace

import (
	"hash/fnv"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// RowID is a stable identifier of one experimental row, derived from the
// row's content rather than its position, so it survives rebuilds as long
// as the configuration itself is unchanged.
type RowID uint64

// Table is the experimental representation of a discrete subspace: one row
// per valid configuration, one column per parameter, cells holding raw
// domain values. Tables are immutable once built.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]param.Value
}

// CompTable is the computational representation: the numerically encoded
// counterpart of a Table, row-aligned with it. Columns carry the encoded
// feature names; Origins maps each feature column back to the parameter it
// was derived from. CompTables are immutable once built.
type CompTable struct {
	columns []string
	origins []string
	rows    [][]float64
}

//////
// Factory.
//////

// newTable assembles an experimental table. The rows slice is adopted, not
// copied; callers hand over ownership.
func newTable(columns []string, rows [][]param.Value) *Table {
	index := make(map[string]int, len(columns))

	for i, name := range columns {
		index[name] = i
	}

	return &Table{columns: columns, index: index, rows: rows}
}

// newCompTable assembles a computational table, adopting its inputs.
func newCompTable(columns, origins []string, rows [][]float64) *CompTable {
	return &CompTable{columns: columns, origins: origins, rows: rows}
}

//////
// Methods.
//////

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the parameter names in declaration order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)

	return out
}

// Column returns the values of the named column in row order. It implements
// the table view consumed by constraint filters.
func (t *Table) Column(name string) ([]param.Value, bool) {
	j, ok := t.index[name]
	if !ok {
		return nil, false
	}

	out := make([]param.Value, len(t.rows))

	for i, row := range t.rows {
		out[i] = row[j]
	}

	return out, true
}

// Row materializes the i-th row as a name-to-value mapping.
func (t *Table) Row(i int) constraint.Row {
	row := make(constraint.Row, len(t.columns))

	for j, name := range t.columns {
		row[name] = t.rows[i][j]
	}

	return row
}

// Values returns the i-th row as a value tuple in column order.
func (t *Table) Values(i int) []param.Value {
	out := make([]param.Value, len(t.rows[i]))
	copy(out, t.rows[i])

	return out
}

// At returns the cell of row i in the named column.
func (t *Table) At(i int, name string) (param.Value, bool) {
	j, ok := t.index[name]
	if !ok {
		return param.Value{}, false
	}

	return t.rows[i][j], true
}

// Len returns the number of rows.
func (t *CompTable) Len() int {
	return len(t.rows)
}

// Width returns the number of feature columns.
func (t *CompTable) Width() int {
	return len(t.columns)
}

// Columns returns the feature column names.
func (t *CompTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)

	return out
}

// Origins returns, per feature column, the name of the parameter the column
// was derived from.
func (t *CompTable) Origins() []string {
	out := make([]string, len(t.origins))
	copy(out, t.origins)

	return out
}

// Row returns the i-th encoded row.
func (t *CompTable) Row(i int) []float64 {
	out := make([]float64, len(t.rows[i]))
	copy(out, t.rows[i])

	return out
}

// Matrix returns all encoded rows as a dense matrix.
func (t *CompTable) Matrix() [][]float64 {
	out := make([][]float64, len(t.rows))

	for i, row := range t.rows {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}

	return out
}

//////
// Helper functions.
//////

// rowID hashes a name/value tuple with FNV-64a over the values' canonical
// encodings. Canonical encodings keep the label "1" and the number 1
// distinct, so distinct configurations never collide by formatting.
func rowID(columns []string, values []param.Value) RowID {
	h := fnv.New64a()

	for i, name := range columns {
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(values[i].Canonical()))
		_, _ = h.Write([]byte{0x1e})
	}

	return RowID(h.Sum64())
}

// dedupKey renders a value tuple into the exact string used for duplicate
// detection. Unlike rowID it is collision-free.
func dedupKey(values []param.Value) string {
	size := 0

	for _, v := range values {
		size += len(v.Canonical()) + 1
	}

	key := make([]byte, 0, size)

	for _, v := range values {
		key = append(key, v.Canonical()...)
		key = append(key, 0x1e)
	}

	return string(key)
}
