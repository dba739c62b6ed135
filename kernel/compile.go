package kernel

import (
	"errors"
	"fmt"
	"math"
)

//////
// Const, vars, types.
//////

var (
	// ErrNilKernel indicates a nil kernel description.
	ErrNilKernel = errors.New("kernel: kernel must not be nil")

	// ErrLengthScale indicates a non-positive or non-finite length scale.
	ErrLengthScale = errors.New("kernel: length scale must be positive and finite")

	// ErrNu indicates a Matern smoothness outside {0.5, 1.5, 2.5}.
	ErrNu = errors.New("kernel: nu must be 0.5, 1.5, or 2.5")

	// ErrOutputScale indicates a non-positive or non-finite output scale.
	ErrOutputScale = errors.New("kernel: output scale must be positive and finite")

	// ErrNoTerms indicates a composite kernel without children.
	ErrNoTerms = errors.New("kernel: composite kernels need at least one child")
)

//////
// Exported functionalities.
//////

// Compile translates a kernel description into its covariance function.
// Every variant is handled explicitly; descriptions outside the closed set
// are rejected rather than guessed at.
//
// Parameters:
//   - k: the kernel description.
//
// Returns:
//   - CovFunc: the compiled covariance function.
//   - error: a validation error naming the offending variant.
//
// Usage example:
//
//	cov, err := kernel.Compile(kernel.Scale{
//		Base:        kernel.Matern{Nu: 2.5, LengthScale: 1.5},
//		OutputScale: 2,
//	})
func Compile(k Kernel) (CovFunc, error) {
	switch kk := k.(type) {
	case nil:
		return nil, ErrNilKernel
	case RBF:
		return compileRBF(kk)
	case Matern:
		return compileMatern(kk)
	case Scale:
		return compileScale(kk)
	case Sum:
		return compileComposite(kk.Terms, 0, func(acc, c float64) float64 { return acc + c })
	case Product:
		return compileComposite(kk.Factors, 1, func(acc, c float64) float64 { return acc * c })
	default:
		return nil, fmt.Errorf("kernel: unsupported kernel variant %T", k)
	}
}

//////
// Helper functions.
//////

func compileRBF(k RBF) (CovFunc, error) {
	if !(k.LengthScale > 0) || math.IsInf(k.LengthScale, 0) {
		return nil, fmt.Errorf("%w: %g", ErrLengthScale, k.LengthScale)
	}

	denom := 2 * k.LengthScale * k.LengthScale

	return func(a, b []float64) float64 {
		return math.Exp(-squaredDistance(a, b) / denom)
	}, nil
}

func compileMatern(k Matern) (CovFunc, error) {
	if !(k.LengthScale > 0) || math.IsInf(k.LengthScale, 0) {
		return nil, fmt.Errorf("%w: %g", ErrLengthScale, k.LengthScale)
	}

	scale := k.LengthScale

	switch k.Nu {
	case 0.5:
		return func(a, b []float64) float64 {
			d := math.Sqrt(squaredDistance(a, b)) / scale

			return math.Exp(-d)
		}, nil
	case 1.5:
		return func(a, b []float64) float64 {
			d := math.Sqrt(3*squaredDistance(a, b)) / scale

			return (1 + d) * math.Exp(-d)
		}, nil
	case 2.5:
		return func(a, b []float64) float64 {
			d2 := 5 * squaredDistance(a, b) / (scale * scale)
			d := math.Sqrt(d2)

			return (1 + d + d2/3) * math.Exp(-d)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %g", ErrNu, k.Nu)
	}
}

func compileScale(k Scale) (CovFunc, error) {
	if !(k.OutputScale > 0) || math.IsInf(k.OutputScale, 0) {
		return nil, fmt.Errorf("%w: %g", ErrOutputScale, k.OutputScale)
	}

	base, err := Compile(k.Base)
	if err != nil {
		return nil, err
	}

	factor := k.OutputScale

	return func(a, b []float64) float64 {
		return factor * base(a, b)
	}, nil
}

func compileComposite(children []Kernel, seed float64, merge func(acc, c float64) float64) (CovFunc, error) {
	if len(children) == 0 {
		return nil, ErrNoTerms
	}

	compiled := make([]CovFunc, len(children))

	for i, child := range children {
		cov, err := Compile(child)
		if err != nil {
			return nil, err
		}

		compiled[i] = cov
	}

	return func(a, b []float64) float64 {
		acc := seed

		for _, cov := range compiled {
			acc = merge(acc, cov(a, b))
		}

		return acc
	}, nil
}

// squaredDistance returns the squared Euclidean distance between two equally
// long vectors.
func squaredDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("kernel: input vectors must have the same length")
	}

	var sum float64

	for i := range a {
		diff := a[i] - b[i]

		sum += diff * diff
	}

	return sum
}
