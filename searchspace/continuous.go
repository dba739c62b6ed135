package searchspace

import (
	"fmt"
	"math/rand"

	"go.uber.org/multierr"

	"github.com/AdrianSosic/BayBE-dev/param"
)

//////
// Const, vars, types.
//////

// SubspaceContinuous bundles the continuous parameters of a search space.
// It cannot be enumerated; consumers draw samples or clamp points against
// its bounds. Immutable once built.
type SubspaceContinuous struct {
	parameters []*param.Continuous
	columns    []string
}

//////
// Factory.
//////

// NewContinuous assembles a continuous subspace from the given parameters.
// Names must be unique; an empty parameter list yields an empty subspace.
func NewContinuous(parameters ...*param.Continuous) (*SubspaceContinuous, error) {
	var err error

	seen := make(map[string]struct{}, len(parameters))
	columns := make([]string, 0, len(parameters))

	for i, p := range parameters {
		if p == nil {
			err = multierr.Append(err, fmt.Errorf("%w: index %d", ErrNilParameter, i))

			continue
		}

		if _, ok := seen[p.Name()]; ok {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrDuplicateParameter, p.Name()))

			continue
		}

		seen[p.Name()] = struct{}{}

		columns = append(columns, p.Column())
	}

	if err != nil {
		return nil, err
	}

	kept := make([]*param.Continuous, len(parameters))
	copy(kept, parameters)

	return &SubspaceContinuous{parameters: kept, columns: columns}, nil
}

//////
// Methods.
//////

// Parameters returns the continuous parameters in declaration order.
func (c *SubspaceContinuous) Parameters() []*param.Continuous {
	out := make([]*param.Continuous, len(c.parameters))
	copy(out, c.parameters)

	return out
}

// Len returns the number of continuous parameters.
func (c *SubspaceContinuous) Len() int {
	return len(c.parameters)
}

// Columns returns the computational column names in declaration order.
func (c *SubspaceContinuous) Columns() []string {
	out := make([]string, len(c.columns))
	copy(out, c.columns)

	return out
}

// Bounds returns the per-parameter lower and upper bounds in declaration
// order.
func (c *SubspaceContinuous) Bounds() (lo, hi []float64) {
	lo = make([]float64, len(c.parameters))
	hi = make([]float64, len(c.parameters))

	for i, p := range c.parameters {
		lo[i], hi[i] = p.Bounds()
	}

	return lo, hi
}

// Contains reports whether the point lies within every parameter's range.
// The point must have one coordinate per parameter.
func (c *SubspaceContinuous) Contains(point []float64) bool {
	if len(point) != len(c.parameters) {
		return false
	}

	for i, p := range c.parameters {
		if !p.InRange(point[i]) {
			return false
		}
	}

	return true
}

// Sample draws n points uniformly from the subspace using the given source
// of randomness. The same seed always yields the same points.
func (c *SubspaceContinuous) Sample(n int, rng *rand.Rand) [][]float64 {
	points := make([][]float64, n)

	for i := range points {
		point := make([]float64, len(c.parameters))

		for j, p := range c.parameters {
			point[j] = p.Sample(rng)
		}

		points[i] = point
	}

	return points
}
