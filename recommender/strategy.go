package recommender

import (
	"github.com/AdrianSosic/BayBE-dev/searchspace"
)

//////
// Const, vars, types.
//////

// Strategy routes recommendation requests through a two-phase scheme: while
// the measurement history is empty an initial recommender picks the batch,
// afterwards the main recommender takes over. It also owns the candidate
// selection options applied before any recommender sees the rows.
type Strategy struct {
	initial Recommender
	main    Recommender
	opts    searchspace.CandidateOptions
}

//////
// Factory.
//////

// NewStrategy creates a strategy.
//
// Parameters:
//   - initial: recommender for the cold-start phase. Nil means the main
//     recommender handles the first batch too.
//   - main: recommender used once measurements exist. Required.
//   - opts: candidate selection options forwarded to the search space.
func NewStrategy(
	initial, main Recommender,
	opts searchspace.CandidateOptions,
) (*Strategy, error) {
	if main == nil {
		return nil, ErrNilRecommender
	}

	return &Strategy{initial: initial, main: main, opts: opts}, nil
}

// DefaultStrategy pairs farthest point sampling for the first batch with a
// sequential greedy Bayesian recommender using UCB for all later ones. Both
// phases are deterministic.
func DefaultStrategy() *Strategy {
	bayesian, _ := NewBayesian(DefaultBayesianOptions())

	strategy, _ := NewStrategy(
		NewFarthestPoint(),
		bayesian,
		searchspace.CandidateOptions{},
	)

	return strategy
}

//////
// Methods.
//////

// Initial returns the cold-start recommender, which may be nil.
func (s *Strategy) Initial() Recommender {
	return s.initial
}

// Main returns the recommender used once measurements exist.
func (s *Strategy) Main() Recommender {
	return s.main
}

// Options returns the candidate selection options.
func (s *Strategy) Options() searchspace.CandidateOptions {
	return s.opts
}

// Active returns the recommender that serves a request given the history's
// phase: the initial recommender while no measurements exist, the main one
// afterwards.
func (s *Strategy) Active(history *History) Recommender {
	if history.Len() == 0 && s.initial != nil {
		return s.initial
	}

	return s.main
}

// Recommend fetches the candidates from the search space, routes them to the
// phase-appropriate recommender, and returns the chosen row identifiers.
//
// Returns:
//   - []searchspace.RowID: the recommended rows in recommendation order.
//   - error: *searchspace.EmptyError when the selection options exclude
//     every row, or any recommender failure.
func (s *Strategy) Recommend(
	space *searchspace.SearchSpace,
	history *History,
	batchQuantity int,
) ([]searchspace.RowID, error) {
	candidates, err := space.Candidates(s.opts)
	if err != nil {
		return nil, err
	}

	return s.Active(history).Recommend(candidates, history, batchQuantity)
}
