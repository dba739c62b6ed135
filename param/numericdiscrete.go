package param

import (
	"fmt"
	"math"
	"sort"
)

// NumericDiscrete is a parameter whose domain is a finite, ordered set of
// numeric levels with a matching tolerance. The tolerance has two roles:
//
//   - at construction, declared values within tolerance of an already kept
//     level are treated as near-duplicates and collapse into that level (the
//     collapsing rule is the contract, see NewNumericDiscrete)
//   - when measured raw values are matched back into the space, a raw value
//     resolves to the unique level within tolerance (see Match)
//
// The encoding is the level value itself, one column named after the
// parameter.
//
// Usage example:
//
//	concentration, err := param.NewNumericDiscrete(
//	    "Concentration",
//	    []float64{1, 2, 5, 10},
//	    0.4,
//	)
//
//	level, err := concentration.Match(1.3) // level == 1
type NumericDiscrete struct {
	name      string
	levels    []float64
	tolerance float64
	values    []Value
	codes     map[Value][]float64
}

//////
// Factory.
//////

// NewNumericDiscrete constructs a numeric-discrete parameter.
//
// Parameters:
//   - name: unique identifier within the owning search space
//   - values: the declared levels, in any order; an empty domain is legal
//   - tolerance: non-negative matching distance; 0 means exact matching only
//
// The declared values are sorted ascending and bucketed: walking the sorted
// sequence, a value within tolerance of the previously kept level is dropped
// as a near-duplicate of that level. The surviving levels are therefore
// pairwise more than tolerance apart, and the domain order is ascending
// regardless of declaration order.
//
// Returns an error for an empty name, a negative tolerance, or non-finite
// values.
func NewNumericDiscrete(name string, values []float64, tolerance float64) (*NumericDiscrete, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if tolerance < 0 || math.IsNaN(tolerance) {
		return nil, fmt.Errorf("parameter %q: %w", name, ErrNegativeTolerance)
	}

	if err := checkFinite(name, values...); err != nil {
		return nil, err
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	// Tolerance bucketing of near-duplicate declared values.
	levels := make([]float64, 0, len(sorted))
	for _, v := range sorted {
		if len(levels) > 0 && v-levels[len(levels)-1] <= tolerance {
			continue
		}

		levels = append(levels, v)
	}

	vals := Numbers(levels...)

	codes := make(map[Value][]float64, len(levels))
	for i, v := range vals {
		codes[v] = []float64{levels[i]}
	}

	return &NumericDiscrete{
		name:      name,
		levels:    levels,
		tolerance: tolerance,
		values:    vals,
		codes:     codes,
	}, nil
}

//////
// Methods.
//////

// Name returns the parameter identifier.
func (p *NumericDiscrete) Name() string { return p.name }

// Tolerance returns the configured matching distance.
func (p *NumericDiscrete) Tolerance() float64 { return p.tolerance }

// Levels returns the surviving levels, ascending.
func (p *NumericDiscrete) Levels() []float64 {
	return copyFloats(p.levels)
}

// Values returns the ordered domain as Values.
func (p *NumericDiscrete) Values() []Value {
	vs := make([]Value, len(p.values))
	copy(vs, p.values)

	return vs
}

// Columns returns the single encoded column, named after the parameter.
func (p *NumericDiscrete) Columns() []string {
	return []string{p.name}
}

// InDomain reports whether v is exactly one of the levels.
func (p *NumericDiscrete) InDomain(v Value) bool {
	_, ok := p.codes[v]

	return ok
}

// Encode maps a level to its single-column vector. Encode requires an exact
// level; use Match first to resolve a raw measured value.
func (p *NumericDiscrete) Encode(v Value) ([]float64, error) {
	vec, ok := p.codes[v]
	if !ok {
		return nil, &DomainError{Parameter: p.name, Value: v}
	}

	return copyFloats(vec), nil
}

// Match resolves a measured raw value to the declared level within tolerance.
//
// Returns:
//   - the unique level within tolerance, if exactly one exists
//   - *DomainError if no level lies within tolerance
//   - *AmbiguousToleranceMatchError if two or more levels lie within
//     tolerance (possible when adjacent levels are less than twice the
//     tolerance apart)
func (p *NumericDiscrete) Match(raw float64) (float64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, &DomainError{Parameter: p.name, Value: Float(raw)}
	}

	// Levels are sorted, so only the insertion neighbors can be in range.
	i := sort.SearchFloat64s(p.levels, raw)

	var hits []float64

	if i > 0 && raw-p.levels[i-1] <= p.tolerance {
		hits = append(hits, p.levels[i-1])
	}

	if i < len(p.levels) && p.levels[i]-raw <= p.tolerance {
		hits = append(hits, p.levels[i])
	}

	switch len(hits) {
	case 1:
		return hits[0], nil
	case 0:
		return 0, &DomainError{Parameter: p.name, Value: Float(raw)}
	default:
		return 0, &AmbiguousToleranceMatchError{Parameter: p.name, Value: raw, Levels: hits}
	}
}
