package acquisition

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

//////
// Const, vars, types.
//////

// ErrNilRandomState indicates Thompson sampling invoked without a random
// source.
var ErrNilRandomState = errors.New("acquisition: Thompson sampling requires a RandomState")

// Params holds the knobs the acquisition functions use to balance exploring
// uncertain regions against exploiting known good ones.
type Params struct {
	// Beta controls the exploration-exploitation trade-off in UCB.
	// - Higher values (e.g., 3.0 or 5.0) encourage more exploration
	// - Lower values (e.g., 0.1 or 0.5) focus on known good areas
	// Typical values range from 0.1 to 5.0, with 2.0 being a good default.
	Beta float64

	// Xi is the minimum improvement PI and EI ask for over the best
	// observed score. Higher values encourage more exploration. Typical
	// values range from 0.01 to 0.1.
	Xi float64

	// BestSoFar is the best (highest) objective score observed so far.
	// Recommenders refresh it from the measurement history before scoring;
	// start with math.Inf(-1) when nothing has been measured.
	BestSoFar float64

	// RandomState drives Thompson sampling. Must be non-nil when the TS
	// function is used; unused otherwise.
	RandomState *rand.Rand
}

// Func scores one candidate from the surrogate's posterior. Higher values
// indicate more promising candidates.
type Func func(mean, variance float64, params Params) float64

//////
// Factory.
//////

// DefaultParams returns acquisition parameters suitable for scores on a
// normalized scale: Beta 2, Xi 0.01, and an empty observation history.
func DefaultParams() Params {
	return Params{
		Beta:      2.0,
		Xi:        0.01,
		BestSoFar: math.Inf(-1),
	}
}

//////
// Exported functionalities.
//////

// UCB implements the Upper Confidence Bound acquisition function.
//
// How it works:
// - Adds a multiple of the predicted standard deviation to the mean
// - Candidates that are either promising or uncertain score high
// - Beta controls the weight of the uncertainty bonus
//
// When to use:
// - General purpose, works well in most cases
// - When you want direct control over the exploration-exploitation
//   trade-off.
func UCB(mean, variance float64, params Params) float64 {
	return mean + params.Beta*math.Sqrt(variance)
}

// ProbabilityOfImprovement (PI) scores a candidate by the probability that
// it beats the best observed score by at least Xi.
//
// How it works:
// - Assumes the posterior at the candidate is normal
// - Converts the improvement margin into a standard normal quantile
//
// When to use:
// - When being "probably better" matters more than "how much better"
// - When conservative, small-step progress is acceptable.
func ProbabilityOfImprovement(mean, variance float64, params Params) float64 {
	improvement := mean - params.BestSoFar - params.Xi
	sigma := math.Sqrt(variance)

	if sigma == 0 {
		if improvement > 0 {
			return 1
		}

		return 0
	}

	return normalCDF(improvement / sigma)
}

// ExpectedImprovement (EI) scores a candidate by the expected magnitude of
// its improvement over the best observed score.
//
// How it works:
// - Combines the probability of improvement with its expected size
// - Often explores better than PI because large uncertain gains count
//
// When to use:
// - The most commonly used acquisition function
// - When the magnitude of improvement matters.
func ExpectedImprovement(mean, variance float64, params Params) float64 {
	improvement := mean - params.BestSoFar - params.Xi
	sigma := math.Sqrt(variance)

	if sigma == 0 {
		return math.Max(improvement, 0)
	}

	z := improvement / sigma

	return improvement*normalCDF(z) + sigma*normalPDF(z)
}

// ThompsonSampling scores a candidate by drawing one sample from its
// posterior.
//
// How it works:
// - Samples mean + sigma * N(0, 1) per candidate
// - Randomness alone balances exploration and exploitation
//
// Warning:
// - Requires Params.RandomState and panics with ErrNilRandomState when it
//   is missing. Seed the source explicitly to make runs reproducible.
func ThompsonSampling(mean, variance float64, params Params) float64 {
	if params.RandomState == nil {
		panic(ErrNilRandomState)
	}

	return mean + math.Sqrt(variance)*params.RandomState.NormFloat64()
}

// Parse resolves an acquisition function from its configuration token.
func Parse(token string) (Func, error) {
	switch token {
	case "UCB":
		return UCB, nil
	case "PI":
		return ProbabilityOfImprovement, nil
	case "EI":
		return ExpectedImprovement, nil
	case "TS":
		return ThompsonSampling, nil
	default:
		return nil, fmt.Errorf("acquisition: unknown acquisition function %q", token)
	}
}
