package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRBF(t *testing.T) {
	cov, err := Compile(RBF{LengthScale: 1})
	require.NoError(t, err)

	assert.InDelta(t, 1, cov([]float64{1, 2}, []float64{1, 2}), 1e-12)

	// Unit distance with unit length scale: exp(-1/2).
	assert.InDelta(t, math.Exp(-0.5), cov([]float64{0}, []float64{1}), 1e-12)

	// Wider length scales decay slower.
	wide, err := Compile(RBF{LengthScale: 10})
	require.NoError(t, err)
	assert.Greater(t, wide([]float64{0}, []float64{1}), cov([]float64{0}, []float64{1}))
}

func TestCompileMatern(t *testing.T) {
	for _, nu := range []float64{0.5, 1.5, 2.5} {
		cov, err := Compile(Matern{Nu: nu, LengthScale: 1})
		require.NoError(t, err)

		// Unit covariance at zero distance, monotone decay with distance.
		assert.InDelta(t, 1, cov([]float64{3}, []float64{3}), 1e-12, "nu %g", nu)

		near := cov([]float64{0}, []float64{0.5})
		far := cov([]float64{0}, []float64{2})

		assert.Greater(t, near, far, "nu %g", nu)
		assert.Greater(t, far, 0.0, "nu %g", nu)
	}

	// nu = 0.5 is the exponential kernel.
	cov, err := Compile(Matern{Nu: 0.5, LengthScale: 2})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.5), cov([]float64{0}, []float64{1}), 1e-12)

	_, err = Compile(Matern{Nu: 2, LengthScale: 1})
	assert.ErrorIs(t, err, ErrNu)
}

func TestCompileComposites(t *testing.T) {
	rbf := RBF{LengthScale: 1}

	scaled, err := Compile(Scale{Base: rbf, OutputScale: 2})
	require.NoError(t, err)

	base, err := Compile(rbf)
	require.NoError(t, err)

	a, b := []float64{0, 0}, []float64{1, 1}
	assert.InDelta(t, 2*base(a, b), scaled(a, b), 1e-12)

	sum, err := Compile(Sum{Terms: []Kernel{rbf, Matern{Nu: 1.5, LengthScale: 1}}})
	require.NoError(t, err)

	matern, err := Compile(Matern{Nu: 1.5, LengthScale: 1})
	require.NoError(t, err)
	assert.InDelta(t, base(a, b)+matern(a, b), sum(a, b), 1e-12)

	product, err := Compile(Product{Factors: []Kernel{rbf, rbf}})
	require.NoError(t, err)
	assert.InDelta(t, base(a, b)*base(a, b), product(a, b), 1e-12)

	// Nested composites compile recursively.
	nested, err := Compile(Scale{
		Base:        Sum{Terms: []Kernel{rbf, Product{Factors: []Kernel{rbf, matern25()}}}},
		OutputScale: 0.5,
	})
	require.NoError(t, err)
	assert.Greater(t, nested(a, a), nested(a, b))
}

func matern25() Kernel {
	return Matern{Nu: 2.5, LengthScale: 1}
}

func TestCompileValidation(t *testing.T) {
	_, err := Compile(nil)
	assert.ErrorIs(t, err, ErrNilKernel)

	_, err = Compile(RBF{})
	assert.ErrorIs(t, err, ErrLengthScale)

	_, err = Compile(RBF{LengthScale: math.Inf(1)})
	assert.ErrorIs(t, err, ErrLengthScale)

	_, err = Compile(Scale{Base: RBF{LengthScale: 1}, OutputScale: 0})
	assert.ErrorIs(t, err, ErrOutputScale)

	// Child errors surface through composites.
	_, err = Compile(Scale{Base: RBF{}, OutputScale: 1})
	assert.ErrorIs(t, err, ErrLengthScale)

	_, err = Compile(Sum{})
	assert.ErrorIs(t, err, ErrNoTerms)

	_, err = Compile(Sum{Terms: []Kernel{nil}})
	assert.ErrorIs(t, err, ErrNilKernel)
}

func TestCovFuncPanicsOnLengthMismatch(t *testing.T) {
	cov, err := Compile(DefaultRBF())
	require.NoError(t, err)

	assert.Panics(t, func() {
		cov([]float64{1, 2}, []float64{1})
	})
}
