package param

import (
	"fmt"
)

//////
// Const, vars, types.
//////

// Encoding selects how categorical labels map to numeric feature columns.
type Encoding uint8

const (
	// OneHot encodes each label as its own indicator column (1 for the
	// matching label, 0 elsewhere). This is the default since it imposes no
	// artificial ordering on the labels.
	OneHot Encoding = iota

	// Integer encodes a label as its index within the declared label order,
	// as a single column. Use it when the labels carry a natural order
	// ("slow" < "normal" < "fast").
	Integer
)

// String implements fmt.Stringer using the document tags ("OHE", "INT").
func (e Encoding) String() string {
	switch e {
	case OneHot:
		return "OHE"
	case Integer:
		return "INT"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// ParseEncoding converts a document tag into an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "OHE":
		return OneHot, nil
	case "INT":
		return Integer, nil
	default:
		return 0, fmt.Errorf("param: unknown categorical encoding %q", s)
	}
}

// Categorical is a parameter whose domain is an ordered set of unique string
// labels. The encoding into numeric columns is fixed at construction.
//
// Usage example:
//
//	speed, err := param.NewCategorical(
//	    "Speed",
//	    []string{"very slow", "slow", "normal", "fast", "very fast"},
//	    param.Integer,
//	)
//
// Invariants:
//   - labels are unique; duplicates fail construction
//   - the declared label order is frozen and drives both the Cartesian
//     product order and the Integer codes
//   - encoding the same label always yields the same vector (cached once)
type Categorical struct {
	name     string
	values   []Value
	encoding Encoding
	columns  []string
	codes    map[Value][]float64
}

//////
// Factory.
//////

// NewCategorical constructs a categorical parameter from its ordered labels.
//
// Parameters:
//   - name: unique identifier within the owning search space
//   - labels: ordered domain; an empty domain is legal and yields an empty
//     search space downstream instead of an error
//   - encoding: OneHot or Integer
//
// Returns an error for an empty name or duplicate labels.
func NewCategorical(name string, labels []string, encoding Encoding) (*Categorical, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if encoding != OneHot && encoding != Integer {
		return nil, fmt.Errorf("param: unknown categorical encoding %q", encoding)
	}

	values := make([]Value, len(labels))
	seen := make(map[string]struct{}, len(labels))

	for i, l := range labels {
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("parameter %q, label %q: %w", name, l, ErrDuplicateValue)
		}

		seen[l] = struct{}{}
		values[i] = String(l)
	}

	// Precompute the full encoding table. Per-row encoding later is a single
	// map lookup.
	var columns []string

	codes := make(map[Value][]float64, len(values))

	switch encoding {
	case Integer:
		columns = []string{name}
		for i, v := range values {
			codes[v] = []float64{float64(i)}
		}
	case OneHot:
		columns = make([]string, len(values))
		for i, v := range values {
			columns[i] = columnName(name, v.Str())
		}

		for i, v := range values {
			vec := make([]float64, len(values))
			vec[i] = 1

			codes[v] = vec
		}
	}

	return &Categorical{
		name:     name,
		values:   values,
		encoding: encoding,
		columns:  columns,
		codes:    codes,
	}, nil
}

//////
// Methods.
//////

// Name returns the parameter identifier.
func (p *Categorical) Name() string { return p.name }

// Encoding returns the configured label encoding.
func (p *Categorical) Encoding() Encoding { return p.encoding }

// Labels returns the declared labels in order.
func (p *Categorical) Labels() []string {
	ls := make([]string, len(p.values))
	for i, v := range p.values {
		ls[i] = v.Str()
	}

	return ls
}

// Values returns the ordered domain as Values.
func (p *Categorical) Values() []Value {
	vs := make([]Value, len(p.values))
	copy(vs, p.values)

	return vs
}

// Columns returns the encoded feature column names.
func (p *Categorical) Columns() []string {
	cs := make([]string, len(p.columns))
	copy(cs, p.columns)

	return cs
}

// InDomain reports whether v is a declared label.
func (p *Categorical) InDomain(v Value) bool {
	_, ok := p.codes[v]

	return ok
}

// Encode maps a label to its numeric feature vector.
func (p *Categorical) Encode(v Value) ([]float64, error) {
	vec, ok := p.codes[v]
	if !ok {
		return nil, &DomainError{Parameter: p.name, Value: v}
	}

	return copyFloats(vec), nil
}
