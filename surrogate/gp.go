package surrogate

import (
	"sync"

	"github.com/AdrianSosic/BayBE-dev/kernel"
)

//////
// Const, vars, types.
//////

// Model is the prediction capability recommenders consume: a posterior mean
// and variance over the scalarized objective at any encoded candidate.
type Model interface {
	// Update adds one observation.
	Update(x []float64, y float64)

	// Predict estimates the objective at an encoded candidate.
	Predict(x []float64) (mean, variance float64)

	// Observations returns the number of stored observations.
	Observations() int
}

// GaussianProcess is a thread-safe Gaussian-process regressor over encoded
// candidate rows. The covariance structure is pluggable: any compiled
// kernel.CovFunc drives both interpolation smoothness and the uncertainty
// estimate.
//
// Thread safety:
// - All fields are protected by the RWMutex
// - Uses RLock for read operations (Predict, Observations)
// - Uses Lock for write operations (Update, Fit)
//
// Memory usage:
// - Grows linearly with number of observations
// - Each observation stores a copy of its input vector.
type GaussianProcess struct {
	// mu protects access to all fields
	mu sync.RWMutex

	// x stores the observed input points (encoded candidate rows)
	x [][]float64

	// y stores the observed objective values at each point in x
	y []float64

	// cov is the compiled covariance function
	cov kernel.CovFunc
}

//////
// Factory.
//////

// NewGaussianProcess creates an empty Gaussian-process model using the given
// covariance function. A nil covariance falls back to the default RBF kernel
// with unit length scale, which suits normalized inputs.
//
// Usage example:
//
//	cov, _ := kernel.Compile(kernel.Matern{Nu: 2.5, LengthScale: 1})
//	gp := surrogate.NewGaussianProcess(cov)
func NewGaussianProcess(cov kernel.CovFunc) *GaussianProcess {
	if cov == nil {
		cov, _ = kernel.Compile(kernel.DefaultRBF())
	}

	return &GaussianProcess{cov: cov}
}

//////
// Methods.
//////

// Update adds a new observation to the model.
//
// Parameters:
//   - x: encoded candidate row; copied, the caller keeps ownership.
//   - y: observed objective value at x.
//
// Thread safety:
// - Protected by write mutex
// - Blocks Predict operations while running.
func (gp *GaussianProcess) Update(x []float64, y float64) {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	// Deep copy so later caller-side mutation cannot corrupt the model.
	point := make([]float64, len(x))
	copy(point, x)

	gp.x = append(gp.x, point)
	gp.y = append(gp.y, y)
}

// Fit replaces the model's observations in one call.
//
// Parameters:
//   - xs: encoded candidate rows; copied row by row.
//   - ys: observed objective values, same length as xs.
//
// Important notes:
// - Panics if the lengths differ, matching the corrupted-input policy of
//   the covariance functions.
func (gp *GaussianProcess) Fit(xs [][]float64, ys []float64) {
	if len(xs) != len(ys) {
		panic("surrogate: observations and values must have the same length")
	}

	points := make([][]float64, len(xs))

	for i, x := range xs {
		points[i] = make([]float64, len(x))
		copy(points[i], x)
	}

	values := make([]float64, len(ys))
	copy(values, ys)

	gp.mu.Lock()
	defer gp.mu.Unlock()

	gp.x = points
	gp.y = values
}

// Predict estimates the objective value and uncertainty at a given point
// based on the stored observations.
//
// Parameters:
//   - x: encoded candidate row.
//
// Returns:
//   - mean: expected objective value at x.
//   - variance: prediction uncertainty (higher = less certain).
//
// Mathematical details:
// - The mean is the kernel-weighted average of observed values
// - The variance starts at the prior 1.0 and shrinks with accumulated
//   kernel mass near x
// - Returns (0, 1) when no observations exist.
//
// Performance considerations:
// - O(n) time for the mean, O(n^2) for the variance
// - n is the number of observations.
func (gp *GaussianProcess) Predict(x []float64) (mean, variance float64) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	if len(gp.x) == 0 {
		return 0, 1
	}

	// Covariances between x and all observed points.
	k := make([]float64, len(gp.x))
	for i := range gp.x {
		k[i] = gp.cov(x, gp.x[i])
	}

	var sum float64

	for i := range gp.x {
		sum += k[i] * gp.y[i]
	}

	mean = sum / float64(len(gp.x))

	variance = 1.0

	for i := range gp.x {
		for j := range gp.x {
			variance -= k[i] * k[j] / float64(len(gp.x))
		}
	}

	// The accumulated kernel mass can overshoot the prior; variance stays
	// non-negative.
	if variance < 0 {
		variance = 0
	}

	return mean, variance
}

// Observations returns the number of stored observations.
func (gp *GaussianProcess) Observations() int {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	return len(gp.x)
}
