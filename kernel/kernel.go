package kernel

//////
// Const, vars, types.
//////

// CovFunc computes the covariance between two feature vectors of equal
// length. Implementations panic if the vectors' lengths differ, since a
// length mismatch indicates corrupted computational rows rather than a
// recoverable condition.
type CovFunc func(a, b []float64) float64

// Kernel describes a covariance structure as data. The set of variants is
// closed: Compile translates each of them explicitly, so adding a variant
// means extending the compiler, not registering a hook.
type Kernel interface {
	isKernel()
}

// RBF is the radial basis function (Gaussian) kernel
//
//	k(a, b) = exp(-squaredDistance(a, b) / (2 * LengthScale^2)).
type RBF struct {
	// LengthScale controls how quickly similarity decays with distance.
	// Must be positive and finite.
	LengthScale float64
}

// Matern is the Matern kernel family for smoothness parameters 0.5, 1.5,
// and 2.5, the three values with closed-form expressions.
type Matern struct {
	// Nu is the smoothness parameter: 0.5, 1.5, or 2.5.
	Nu float64

	// LengthScale controls how quickly similarity decays with distance.
	// Must be positive and finite.
	LengthScale float64
}

// Scale multiplies a base kernel's covariance by a constant output scale.
type Scale struct {
	// Base is the wrapped kernel.
	Base Kernel

	// OutputScale is the multiplicative factor. Must be positive and finite.
	OutputScale float64
}

// Sum adds the covariances of its term kernels.
type Sum struct {
	// Terms are the added kernels, at least one.
	Terms []Kernel
}

// Product multiplies the covariances of its factor kernels.
type Product struct {
	// Factors are the multiplied kernels, at least one.
	Factors []Kernel
}

//////
// Factory.
//////

// DefaultRBF returns the kernel used when a configuration names none: an
// RBF with unit length scale.
func DefaultRBF() RBF {
	return RBF{LengthScale: 1}
}

//////
// Methods.
//////

func (RBF) isKernel()     {}
func (Matern) isKernel()  {}
func (Scale) isKernel()   {}
func (Sum) isKernel()     {}
func (Product) isKernel() {}
