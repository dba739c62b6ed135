package param

import (
	"fmt"
	"math/rand"
)

// Continuous is a parameter ranging over a closed numeric interval. Its
// encoding is the identity: the raw value is the feature value, one column
// named after the parameter.
//
// Usage example:
//
//	flow, err := param.NewContinuous("FlowRate", 0.5, 3.0)
type Continuous struct {
	name   string
	lo, hi float64
}

// NewContinuous constructs a continuous parameter over [lo, hi]. A degenerate
// interval (lo == hi) is legal and pins the parameter to a single value.
// Returns an error for an empty name, non-finite bounds, or lo > hi.
func NewContinuous(name string, lo, hi float64) (*Continuous, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := checkFinite(name, lo, hi); err != nil {
		return nil, err
	}

	if lo > hi {
		return nil, fmt.Errorf("parameter %q: %w", name, ErrReversedBounds)
	}

	return &Continuous{name: name, lo: lo, hi: hi}, nil
}

// Name returns the parameter identifier.
func (p *Continuous) Name() string { return p.name }

// Bounds returns the interval limits.
func (p *Continuous) Bounds() (lo, hi float64) { return p.lo, p.hi }

// Column returns the single encoded column, named after the parameter.
func (p *Continuous) Column() string { return p.name }

// InRange reports whether v lies within the interval.
func (p *Continuous) InRange(v float64) bool {
	return v >= p.lo && v <= p.hi
}

// Sample draws a uniform value from the interval using the supplied
// generator.
func (p *Continuous) Sample(rng *rand.Rand) float64 {
	if p.lo == p.hi {
		return p.lo
	}

	return p.lo + rng.Float64()*(p.hi-p.lo)
}
