package recommender

import (
	"math/rand"

	"github.com/AdrianSosic/BayBE-dev/searchspace"
)

//////
// Const, vars, types.
//////

// Random recommends a uniform sample of the candidates without replacement.
// It ignores the measurement history, which makes it both a baseline for
// benchmarking and a source of initial experiments before any model can be
// fit.
type Random struct {
	seed int64
	rng  *rand.Rand
}

//////
// Factory.
//////

// NewRandom creates a random recommender. Runs with the same seed over the
// same candidates produce the same batches.
func NewRandom(seed int64) *Random {
	return &Random{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

//////
// Methods.
//////

// Name identifies the recommender in errors and configuration.
func (r *Random) Name() string {
	return "Random"
}

// Seed returns the seed the recommender was created with.
func (r *Random) Seed() int64 {
	return r.seed
}

// Recommend draws up to batchQuantity distinct candidates uniformly at
// random.
func (r *Random) Recommend(
	candidates *searchspace.CandidateSet,
	_ *History,
	batchQuantity int,
) ([]searchspace.RowID, error) {
	k, err := checkRequest(candidates, batchQuantity)
	if err != nil {
		return nil, err
	}

	perm := r.rng.Perm(len(candidates.IDs))

	ids := make([]searchspace.RowID, k)

	for i := 0; i < k; i++ {
		ids[i] = candidates.IDs[perm[i]]
	}

	return ids, nil
}
