package recommender

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/AdrianSosic/BayBE-dev/acquisition"
	"github.com/AdrianSosic/BayBE-dev/kernel"
	"github.com/AdrianSosic/BayBE-dev/searchspace"
	"github.com/AdrianSosic/BayBE-dev/surrogate"
)

//////
// Const, vars, types.
//////

// BayesianOptions declares a Bayesian recommender. All fields are plain data
// so a recommender can be written to and rebuilt from a configuration
// document.
type BayesianOptions struct {
	// Kernel is the covariance kernel of the Gaussian process. Nil selects
	// the default RBF kernel.
	Kernel kernel.Kernel

	// Acquisition names the acquisition function: "UCB", "EI", "PI" or
	// "TS". Empty selects "UCB".
	Acquisition string

	// Beta is the exploration weight for UCB.
	Beta float64

	// Xi is the improvement margin for EI and PI.
	Xi float64

	// Seed drives Thompson sampling. Unused by the other acquisition
	// functions.
	Seed int64
}

// Bayesian recommends experiments by fitting a Gaussian process to the
// measurement history and greedily picking the candidates with the highest
// acquisition score.
//
// Batches are assembled sequentially: after each pick the model is updated
// with the pick's own predicted mean, so later picks see the earlier ones as
// if they had been measured. This spreads a batch across the space instead
// of stacking it on one optimum.
//
// Important notes:
//   - The acquisition incumbent (best score so far) is refreshed from the
//     history on every call; callers never have to maintain it.
//   - With an empty history every candidate scores identically under the
//     prior. Pair Bayesian with an initial recommender via Strategy instead
//     of calling it cold.
type Bayesian struct {
	opts    BayesianOptions
	cov     kernel.CovFunc
	acquire acquisition.Func
	rng     *rand.Rand
}

//////
// Factory.
//////

// DefaultBayesianOptions returns the options used when callers have no
// special requirements: an RBF kernel and UCB with Beta 2 and Xi 0.01.
func DefaultBayesianOptions() BayesianOptions {
	return BayesianOptions{Acquisition: "UCB", Beta: 2.0, Xi: 0.01}
}

// NewBayesian creates a Bayesian recommender from its declared options,
// compiling the kernel and resolving the acquisition function up front.
//
// Returns:
//   - *Bayesian: the recommender.
//   - error: a kernel compilation failure or an unknown acquisition name.
func NewBayesian(opts BayesianOptions) (*Bayesian, error) {
	if opts.Kernel == nil {
		opts.Kernel = kernel.DefaultRBF()
	}

	if opts.Acquisition == "" {
		opts.Acquisition = "UCB"
	}

	cov, err := kernel.Compile(opts.Kernel)
	if err != nil {
		return nil, fmt.Errorf("recommender: %w", err)
	}

	acquire, err := acquisition.Parse(opts.Acquisition)
	if err != nil {
		return nil, fmt.Errorf("recommender: %w", err)
	}

	return &Bayesian{
		opts:    opts,
		cov:     cov,
		acquire: acquire,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

//////
// Methods.
//////

// Name identifies the recommender in errors and configuration.
func (r *Bayesian) Name() string {
	return "SequentialGreedy"
}

// Options returns the declared options, including the resolved defaults.
func (r *Bayesian) Options() BayesianOptions {
	return r.opts
}

// Recommend selects up to batchQuantity candidates by greedy acquisition
// maximization.
func (r *Bayesian) Recommend(
	candidates *searchspace.CandidateSet,
	history *History,
	batchQuantity int,
) ([]searchspace.RowID, error) {
	k, err := checkRequest(candidates, batchQuantity)
	if err != nil {
		return nil, err
	}

	model := surrogate.NewGaussianProcess(r.cov)
	model.Fit(history.X(), history.Y())

	params := acquisition.Params{
		Beta:        r.opts.Beta,
		Xi:          r.opts.Xi,
		BestSoFar:   history.Best(),
		RandomState: r.rng,
	}

	points := candidates.Computational.Matrix()
	picked := make([]bool, len(points))
	selected := make([]int, 0, k)

	for len(selected) < k {
		best := -1
		bestScore := math.Inf(-1)

		for i, point := range points {
			if picked[i] {
				continue
			}

			mean, variance := model.Predict(point)

			if score := r.acquire(mean, variance, params); score > bestScore {
				best = i
				bestScore = score
			}
		}

		picked[best] = true
		selected = append(selected, best)

		// Fantasy update: pretend the pick was measured at its predicted
		// mean so the next pick avoids the same neighborhood.
		if len(selected) < k {
			mean, _ := model.Predict(points[best])
			model.Update(points[best], mean)
		}
	}

	ids := make([]searchspace.RowID, k)

	for i, idx := range selected {
		ids[i] = candidates.IDs[idx]
	}

	return ids, nil
}
