package param

import (
	"fmt"
	"math"
)

//////
// Const, vars, types.
//////

// SubstanceEntry pairs a substance label with its numeric descriptor vector.
// Descriptor vectors come from the caller (computed offline by whatever
// cheminformatics pipeline produced them); this package only consumes them.
type SubstanceEntry struct {
	// Label is the experimental representation of the substance.
	Label string

	// Descriptor holds one value per declared descriptor name.
	Descriptor []float64
}

// Substance is a parameter whose domain is an ordered set of labeled
// substances, each encoded as a multi-dimensional descriptor vector. The
// experimental representation stores only the label; the computational
// representation stores the (possibly decorrelated) descriptor columns.
//
// Usage example:
//
//	solvent, err := param.NewSubstance(
//	    "Solvent",
//	    []string{"polarity", "molar_mass", "logp"},
//	    []param.SubstanceEntry{
//	        {Label: "water", Descriptor: []float64{1.00, 18.02, -1.38}},
//	        {Label: "C3", Descriptor: []float64{0.01, 44.10, 1.81}},
//	    },
//	    0.95,
//	)
type Substance struct {
	name        string
	values      []Value
	descriptors []string
	columns     []string
	codes       map[Value][]float64
}

//////
// Factory.
//////

// NewSubstance constructs a substance parameter.
//
// Parameters:
//   - name: unique identifier within the owning search space
//   - descriptors: names of the descriptor dimensions, in vector order
//   - entries: ordered domain; every Descriptor must have len(descriptors)
//   - decorrelate: when in (0, 1), descriptor columns whose absolute Pearson
//     correlation with an earlier kept column exceeds the threshold are
//     dropped, as are constant columns; 0 or less disables decorrelation.
//     The first column always survives.
//
// Returns an error for an empty name, duplicate labels, descriptor shape
// mismatches, or non-finite descriptor values.
func NewSubstance(name string, descriptors []string, entries []SubstanceEntry, decorrelate float64) (*Substance, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if len(descriptors) == 0 && len(entries) > 0 {
		return nil, fmt.Errorf("parameter %q: %w", name, ErrDescriptorShape)
	}

	seenDesc := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		if _, dup := seenDesc[d]; dup {
			return nil, fmt.Errorf("parameter %q, descriptor %q: %w", name, d, ErrDuplicateValue)
		}

		seenDesc[d] = struct{}{}
	}

	values := make([]Value, len(entries))
	vectors := make([][]float64, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		if _, dup := seen[e.Label]; dup {
			return nil, fmt.Errorf("parameter %q, label %q: %w", name, e.Label, ErrDuplicateValue)
		}

		seen[e.Label] = struct{}{}

		if len(e.Descriptor) != len(descriptors) {
			return nil, fmt.Errorf("parameter %q, label %q: %w", name, e.Label, ErrDescriptorShape)
		}

		if err := checkFinite(name, e.Descriptor...); err != nil {
			return nil, err
		}

		values[i] = String(e.Label)
		vectors[i] = copyFloats(e.Descriptor)
	}

	kept := keepColumns(vectors, len(descriptors), decorrelate)

	names := make([]string, len(kept))
	columns := make([]string, len(kept))

	for i, c := range kept {
		names[i] = descriptors[c]
		columns[i] = columnName(name, descriptors[c])
	}

	codes := make(map[Value][]float64, len(entries))
	for i, v := range values {
		vec := make([]float64, len(kept))
		for j, c := range kept {
			vec[j] = vectors[i][c]
		}

		codes[v] = vec
	}

	return &Substance{
		name:        name,
		values:      values,
		descriptors: names,
		columns:     columns,
		codes:       codes,
	}, nil
}

//////
// Methods.
//////

// Name returns the parameter identifier.
func (p *Substance) Name() string { return p.name }

// Descriptors returns the names of the kept descriptor dimensions.
func (p *Substance) Descriptors() []string {
	ds := make([]string, len(p.descriptors))
	copy(ds, p.descriptors)

	return ds
}

// Values returns the ordered domain as Values.
func (p *Substance) Values() []Value {
	vs := make([]Value, len(p.values))
	copy(vs, p.values)

	return vs
}

// Columns returns the encoded feature column names, one per kept descriptor.
func (p *Substance) Columns() []string {
	cs := make([]string, len(p.columns))
	copy(cs, p.columns)

	return cs
}

// InDomain reports whether v is a declared label.
func (p *Substance) InDomain(v Value) bool {
	_, ok := p.codes[v]

	return ok
}

// Encode maps a label to its descriptor vector.
func (p *Substance) Encode(v Value) ([]float64, error) {
	vec, ok := p.codes[v]
	if !ok {
		return nil, &DomainError{Parameter: p.name, Value: v}
	}

	return copyFloats(vec), nil
}

//////
// Decorrelation helpers.
//////

// keepColumns selects the descriptor columns surviving decorrelation. With
// the threshold disabled (or fewer than two entries) all columns survive.
func keepColumns(vectors [][]float64, ncols int, threshold float64) []int {
	all := make([]int, ncols)
	for i := range all {
		all[i] = i
	}

	if threshold <= 0 || threshold >= 1 || len(vectors) < 2 {
		return all
	}

	var kept []int

	for j := 0; j < ncols; j++ {
		if j > 0 && constantColumn(vectors, j) {
			continue
		}

		redundant := false

		for _, k := range kept {
			if math.Abs(pearson(vectors, k, j)) > threshold {
				redundant = true

				break
			}
		}

		if !redundant {
			kept = append(kept, j)
		}
	}

	return kept
}

// constantColumn reports whether column j takes a single value across all
// entries. Constant columns carry no information and break correlation.
func constantColumn(vectors [][]float64, j int) bool {
	for i := 1; i < len(vectors); i++ {
		if vectors[i][j] != vectors[0][j] {
			return false
		}
	}

	return true
}

// pearson computes the Pearson correlation between columns a and b. Columns
// with zero variance yield 0, which never trips the redundancy threshold.
func pearson(vectors [][]float64, a, b int) float64 {
	n := float64(len(vectors))

	var meanA, meanB float64

	for _, v := range vectors {
		meanA += v[a]
		meanB += v[b]
	}

	meanA /= n
	meanB /= n

	var cov, varA, varB float64

	for _, v := range vectors {
		da := v[a] - meanA
		db := v[b] - meanB

		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0
	}

	return cov / math.Sqrt(varA*varB)
}
