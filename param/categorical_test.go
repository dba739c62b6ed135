package param

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategoricalValidation(t *testing.T) {
	_, err := NewCategorical("", []string{"a"}, OneHot)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewCategorical("Speed", []string{"slow", "fast", "slow"}, OneHot)
	assert.ErrorIs(t, err, ErrDuplicateValue)

	// Empty domains are legal; they yield an empty subspace downstream.
	p, err := NewCategorical("Speed", nil, OneHot)
	require.NoError(t, err)
	assert.Empty(t, p.Values())
}

func TestCategoricalIntegerEncoding(t *testing.T) {
	p, err := NewCategorical("Speed", []string{"slow", "normal", "fast"}, Integer)
	require.NoError(t, err)

	// Single column named after the parameter.
	assert.Equal(t, []string{"Speed"}, p.Columns())

	// Codes follow declaration order.
	for i, label := range []string{"slow", "normal", "fast"} {
		vec, err := p.Encode(String(label))
		require.NoError(t, err)
		assert.Equal(t, []float64{float64(i)}, vec)
	}
}

func TestCategoricalOneHotEncoding(t *testing.T) {
	p, err := NewCategorical("Solvent", []string{"water", "C3"}, OneHot)
	require.NoError(t, err)

	assert.Equal(t, []string{"Solvent_water", "Solvent_C3"}, p.Columns())

	vec, err := p.Encode(String("C3"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, vec)
}

func TestCategoricalEncodeOutsideDomain(t *testing.T) {
	p, err := NewCategorical("Solvent", []string{"water", "C3"}, OneHot)
	require.NoError(t, err)

	_, err = p.Encode(String("acetone"))

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Solvent", de.Parameter)

	// Numeric values are never in a categorical domain.
	assert.False(t, p.InDomain(Float(1)))
}

func TestCategoricalEncodeIsDeterministic(t *testing.T) {
	p, err := NewCategorical("Solvent", []string{"water", "C3"}, OneHot)
	require.NoError(t, err)

	a, err := p.Encode(String("water"))
	require.NoError(t, err)

	b, err := p.Encode(String("water"))
	require.NoError(t, err)

	assert.Equal(t, a, b)

	// Returned vectors are copies; mutating one must not leak into the cache.
	a[0] = 99

	c, err := p.Encode(String("water"))
	require.NoError(t, err)
	assert.Equal(t, b, c)
}

func TestParseEncoding(t *testing.T) {
	e, err := ParseEncoding("OHE")
	require.NoError(t, err)
	assert.Equal(t, OneHot, e)

	e, err = ParseEncoding("INT")
	require.NoError(t, err)
	assert.Equal(t, Integer, e)

	_, err = ParseEncoding("HASH")
	assert.Error(t, err)
}
