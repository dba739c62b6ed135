package param

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericDiscreteSortsAndBuckets(t *testing.T) {
	// Declaration order does not matter; levels come out ascending.
	p, err := NewNumericDiscrete("Pressure", []float64{10, 1, 5, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 5, 10}, p.Levels())

	// Near-duplicates within tolerance collapse into the earlier level.
	p, err = NewNumericDiscrete("Pressure", []float64{1, 1.2, 2, 5}, 0.3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 5}, p.Levels())

	// Exact duplicates collapse even with zero tolerance.
	p, err = NewNumericDiscrete("Pressure", []float64{1, 1, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, p.Levels())
}

func TestNewNumericDiscreteValidation(t *testing.T) {
	_, err := NewNumericDiscrete("", []float64{1}, 0)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewNumericDiscrete("x", []float64{1}, -0.1)
	assert.ErrorIs(t, err, ErrNegativeTolerance)
}

func TestNumericDiscreteMatch(t *testing.T) {
	p, err := NewNumericDiscrete("Concentration", []float64{1, 2, 5, 10}, 0.4)
	require.NoError(t, err)

	// 1.3 is within 0.4 of level 1 only.
	level, err := p.Match(1.3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, level)

	// An exact level always matches itself.
	level, err = p.Match(5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, level)

	// 3.5 is equidistant from 2 and 5 but beyond tolerance of both.
	_, err = p.Match(3.5)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Concentration", de.Parameter)
}

func TestNumericDiscreteMatchAmbiguous(t *testing.T) {
	// Levels 1 and 1.5 are more than 0.4 apart (so both survive bucketing)
	// but a value between them can be within tolerance of both.
	p, err := NewNumericDiscrete("Temp", []float64{1, 1.5}, 0.4)
	require.NoError(t, err)

	_, err = p.Match(1.25)

	var ae *AmbiguousToleranceMatchError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, []float64{1, 1.5}, ae.Levels)
}

func TestNumericDiscreteEncodeRequiresExactLevel(t *testing.T) {
	p, err := NewNumericDiscrete("Concentration", []float64{1, 2, 5, 10}, 0.4)
	require.NoError(t, err)

	vec, err := p.Encode(Float(5))
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, vec)

	// Encode does not tolerance-match; raw values go through Match first.
	_, err = p.Encode(Float(5.1))
	assert.Error(t, err)

	// String values are never in a numeric domain.
	assert.False(t, p.InDomain(String("5")))
}
