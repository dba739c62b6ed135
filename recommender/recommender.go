package recommender

import (
	"math"

	"github.com/AdrianSosic/BayBE-dev/searchspace"
)

//////
// Const, vars, types.
//////

// Recommender selects the next batch of experiments from a candidate set.
//
// Implementations receive the candidates still available under the campaign's
// selection options, the measurement history, and the requested batch size.
// They return candidate row identifiers in recommendation order. When fewer
// candidates remain than requested, the batch is truncated to what is
// available rather than failing.
type Recommender interface {
	// Name identifies the recommender in errors and configuration.
	Name() string

	// Recommend picks up to batchQuantity candidate rows.
	Recommend(
		candidates *searchspace.CandidateSet,
		history *History,
		batchQuantity int,
	) ([]searchspace.RowID, error)
}

// History accumulates measured experiments in computational representation:
// one encoded input vector and one scalarized objective score per experiment,
// with higher scores meaning better outcomes. All methods tolerate a nil
// receiver, which behaves like an empty history.
type History struct {
	x [][]float64
	y []float64
}

//////
// Factory.
//////

// NewHistory returns an empty measurement history.
func NewHistory() *History {
	return &History{}
}

//////
// Methods.
//////

// Append records one measured experiment. The input vector is copied.
func (h *History) Append(x []float64, y float64) {
	point := make([]float64, len(x))
	copy(point, x)

	h.x = append(h.x, point)
	h.y = append(h.y, y)
}

// Len returns the number of recorded experiments.
func (h *History) Len() int {
	if h == nil {
		return 0
	}

	return len(h.y)
}

// X returns the encoded input vectors in recording order.
func (h *History) X() [][]float64 {
	if h == nil {
		return nil
	}

	out := make([][]float64, len(h.x))

	for i, point := range h.x {
		out[i] = make([]float64, len(point))
		copy(out[i], point)
	}

	return out
}

// Y returns the objective scores in recording order.
func (h *History) Y() []float64 {
	if h == nil {
		return nil
	}

	out := make([]float64, len(h.y))
	copy(out, h.y)

	return out
}

// Clone returns an independent copy of the history.
func (h *History) Clone() *History {
	out := NewHistory()

	if h == nil {
		return out
	}

	for i, x := range h.x {
		out.Append(x, h.y[i])
	}

	return out
}

// Best returns the highest recorded score, or negative infinity when the
// history is empty.
func (h *History) Best() float64 {
	best := math.Inf(-1)

	if h == nil {
		return best
	}

	for _, y := range h.y {
		if y > best {
			best = y
		}
	}

	return best
}

//////
// Helper functions.
//////

// checkRequest validates the shared recommender inputs and returns the
// effective batch size.
func checkRequest(candidates *searchspace.CandidateSet, batchQuantity int) (int, error) {
	if batchQuantity <= 0 {
		return 0, ErrInvalidBatchQuantity
	}

	if candidates == nil || len(candidates.IDs) == 0 {
		return 0, ErrNoCandidates
	}

	if n := len(candidates.IDs); batchQuantity > n {
		return n, nil
	}

	return batchQuantity, nil
}
