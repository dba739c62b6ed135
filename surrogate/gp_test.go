package surrogate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianSosic/BayBE-dev/kernel"
)

func TestPredictWithoutObservations(t *testing.T) {
	gp := NewGaussianProcess(nil)

	mean, variance := gp.Predict([]float64{1, 2})
	assert.Zero(t, mean)
	assert.Equal(t, 1.0, variance)
	assert.Zero(t, gp.Observations())
}

func TestPredictInterpolatesObservations(t *testing.T) {
	gp := NewGaussianProcess(nil)
	gp.Update([]float64{0}, 10)

	// At the observed point the kernel weight is 1.
	mean, variance := gp.Predict([]float64{0})
	assert.InDelta(t, 10, mean, 1e-12)
	assert.GreaterOrEqual(t, variance, 0.0)

	// Far away the prediction decays and uncertainty grows back.
	farMean, farVariance := gp.Predict([]float64{100})
	assert.InDelta(t, 0, farMean, 1e-9)
	assert.Greater(t, farVariance, variance)
	assert.InDelta(t, 1, farVariance, 1e-9)
}

func TestPredictUsesConfiguredKernel(t *testing.T) {
	narrow, err := kernel.Compile(kernel.RBF{LengthScale: 0.1})
	require.NoError(t, err)

	wide, err := kernel.Compile(kernel.RBF{LengthScale: 10})
	require.NoError(t, err)

	gpNarrow := NewGaussianProcess(narrow)
	gpWide := NewGaussianProcess(wide)

	gpNarrow.Update([]float64{0}, 10)
	gpWide.Update([]float64{0}, 10)

	nearNarrow, _ := gpNarrow.Predict([]float64{1})
	nearWide, _ := gpWide.Predict([]float64{1})

	// The wide kernel carries the observation much further.
	assert.Greater(t, nearWide, nearNarrow)
}

func TestFitReplacesObservations(t *testing.T) {
	gp := NewGaussianProcess(nil)
	gp.Update([]float64{0}, 1)

	gp.Fit([][]float64{{1}, {2}, {3}}, []float64{10, 20, 30})
	assert.Equal(t, 3, gp.Observations())

	assert.Panics(t, func() {
		gp.Fit([][]float64{{1}}, []float64{1, 2})
	})
}

func TestUpdateCopiesInput(t *testing.T) {
	gp := NewGaussianProcess(nil)

	x := []float64{1, 2}
	gp.Update(x, 5)

	before, _ := gp.Predict([]float64{1, 2})

	// Mutating the caller's slice must not move the observation.
	x[0] = 100

	after, _ := gp.Predict([]float64{1, 2})
	assert.Equal(t, before, after)
}

func TestConcurrentAccess(t *testing.T) {
	gp := NewGaussianProcess(nil)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()

			gp.Update([]float64{float64(i)}, float64(i))
		}(i)

		go func(i int) {
			defer wg.Done()

			gp.Predict([]float64{float64(i)})
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 8, gp.Observations())
}
