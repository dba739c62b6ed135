package recommender

import "errors"

//////
// Const, vars, types.
//////

var (
	// ErrInvalidBatchQuantity indicates a non-positive batch quantity.
	ErrInvalidBatchQuantity = errors.New("recommender: batch quantity must be positive")

	// ErrNoCandidates indicates an empty candidate set.
	ErrNoCandidates = errors.New("recommender: no candidates to recommend from")

	// ErrNilRecommender indicates a strategy built without a main
	// recommender.
	ErrNilRecommender = errors.New("recommender: main recommender must not be nil")
)
