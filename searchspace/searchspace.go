package searchspace

import (
	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// CandidateOptions controls which rows a candidate request may return.
type CandidateOptions struct {
	// AllowRepeatedRecommendations includes rows that earlier batches
	// already recommended.
	AllowRepeatedRecommendations bool

	// AllowRecommendingAlreadyMeasured includes rows that already carry a
	// measurement.
	AllowRecommendingAlreadyMeasured bool
}

// CandidateSet is a filtered, row-aligned view of the discrete subspace
// offered to a recommender.
type CandidateSet struct {
	// IDs are the stable identifiers of the candidate rows.
	IDs []RowID

	// Experimental holds the raw values of the candidate rows.
	Experimental *Table

	// Computational holds the encoded values of the candidate rows.
	Computational *CompTable
}

// SearchSpace composes a discrete and a continuous subspace into one
// addressable entity and tracks which discrete rows have been measured or
// recommended. The subspaces are immutable; the tracking sets are the only
// mutable state. A SearchSpace is an independently owned value and must not
// be mutated concurrently.
type SearchSpace struct {
	discrete    *SubspaceDiscrete
	continuous  *SubspaceContinuous
	measured    map[RowID]struct{}
	recommended map[RowID]struct{}
}

//////
// Factory.
//////

// New composes a search space from its subspaces. Either subspace may be
// nil, leaving that side empty.
func New(discrete *SubspaceDiscrete, continuous *SubspaceContinuous) *SearchSpace {
	if discrete == nil {
		discrete, _ = BuildDiscrete(nil, nil, DefaultBuildOptions())
	}

	if continuous == nil {
		continuous, _ = NewContinuous()
	}

	return &SearchSpace{
		discrete:    discrete,
		continuous:  continuous,
		measured:    make(map[RowID]struct{}),
		recommended: make(map[RowID]struct{}),
	}
}

// FromParameters builds the discrete subspace from the given parameters and
// constraints and composes it with the continuous parameters in one call.
func FromParameters(
	discrete []param.Discrete,
	continuous []*param.Continuous,
	constraints []constraint.Constraint,
	opts BuildOptions,
) (*SearchSpace, error) {
	sub, err := BuildDiscrete(discrete, constraints, opts)
	if err != nil {
		return nil, err
	}

	cont, err := NewContinuous(continuous...)
	if err != nil {
		return nil, err
	}

	space := New(sub, cont)

	return space, nil
}

//////
// Methods.
//////

// Discrete returns the discrete subspace.
func (s *SearchSpace) Discrete() *SubspaceDiscrete {
	return s.discrete
}

// Continuous returns the continuous subspace.
func (s *SearchSpace) Continuous() *SubspaceContinuous {
	return s.continuous
}

// MarkMeasured records rows as measured. Marking is idempotent; the return
// value is the number of rows that were not measured before.
func (s *SearchSpace) MarkMeasured(ids ...RowID) int {
	return markSet(s.measured, ids)
}

// MarkRecommended records rows as recommended. Marking is idempotent; the
// return value is the number of rows that were not recommended before.
func (s *SearchSpace) MarkRecommended(ids ...RowID) int {
	return markSet(s.recommended, ids)
}

// MeasuredCount returns the number of distinct measured rows.
func (s *SearchSpace) MeasuredCount() int {
	return len(s.measured)
}

// RecommendedCount returns the number of distinct recommended rows.
func (s *SearchSpace) RecommendedCount() int {
	return len(s.recommended)
}

// IsMeasured reports whether the row has been marked measured.
func (s *SearchSpace) IsMeasured(id RowID) bool {
	_, ok := s.measured[id]

	return ok
}

// IsRecommended reports whether the row has been marked recommended.
func (s *SearchSpace) IsRecommended(id RowID) bool {
	_, ok := s.recommended[id]

	return ok
}

// Candidates returns the discrete rows still available for recommendation
// under the given options, preserving subspace row order.
//
// Returns:
//   - *CandidateSet: row-aligned identifiers plus both representations.
//   - error: *EmptyError when no candidate survives the filters.
func (s *SearchSpace) Candidates(opts CandidateOptions) (*CandidateSet, error) {
	total := s.discrete.Len()
	indices := make([]int, 0, total)

	for i, id := range s.discrete.ids {
		if !opts.AllowRepeatedRecommendations && s.IsRecommended(id) {
			continue
		}

		if !opts.AllowRecommendingAlreadyMeasured && s.IsMeasured(id) {
			continue
		}

		indices = append(indices, i)
	}

	if len(indices) == 0 {
		return nil, &EmptyError{Total: total, Excluded: total}
	}

	return s.discrete.subset(indices), nil
}

// subset assembles a candidate set from the given row indices.
func (d *SubspaceDiscrete) subset(indices []int) *CandidateSet {
	ids := make([]RowID, len(indices))
	expRows := make([][]param.Value, len(indices))
	compRows := make([][]float64, len(indices))

	for k, i := range indices {
		ids[k] = d.ids[i]
		expRows[k] = d.exp.rows[i]
		compRows[k] = d.comp.rows[i]
	}

	return &CandidateSet{
		IDs:           ids,
		Experimental:  newTable(d.exp.columns, expRows),
		Computational: newCompTable(d.comp.columns, d.comp.origins, compRows),
	}
}

//////
// Helper functions.
//////

// markSet inserts ids into a tracking set, returning how many were new.
func markSet(set map[RowID]struct{}, ids []RowID) int {
	added := 0

	for _, id := range ids {
		if _, ok := set[id]; ok {
			continue
		}

		set[id] = struct{}{}

		added++
	}

	return added
}
