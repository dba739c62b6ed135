package searchspace

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/param"
)

func smallSpace(t *testing.T) *SearchSpace {
	t.Helper()

	solvent, err := param.NewCategorical("Solvent", []string{"water", "C3"}, param.OneHot)
	require.NoError(t, err)

	temperature, err := param.NewNumericDiscrete("Temperature", []float64{100, 150, 200}, 5)
	require.NoError(t, err)

	hot, err := constraint.NewThreshold(constraint.Greater, 150, 0)
	require.NoError(t, err)

	aqueous, err := constraint.NewSubSelection(param.String("water"))
	require.NoError(t, err)

	noHotWater, err := constraint.NewExclude([]constraint.On{
		{Parameter: "Temperature", Condition: hot},
		{Parameter: "Solvent", Condition: aqueous},
	}, constraint.And)
	require.NoError(t, err)

	space, err := FromParameters(
		[]param.Discrete{solvent, temperature},
		nil,
		[]constraint.Constraint{noHotWater},
		DefaultBuildOptions(),
	)
	require.NoError(t, err)

	// 2x3 product minus the pruned (water, 200) row.
	require.Equal(t, 5, space.Discrete().Len())

	return space
}

func TestCandidatesExcludeMarkedRows(t *testing.T) {
	space := smallSpace(t)
	ids := space.Discrete().IDs()

	all, err := space.Candidates(CandidateOptions{})
	require.NoError(t, err)
	assert.Equal(t, ids, all.IDs)
	assert.Equal(t, len(ids), all.Computational.Len())

	space.MarkMeasured(ids[0])
	space.MarkRecommended(ids[1])

	got, err := space.Candidates(CandidateOptions{})
	require.NoError(t, err)
	assert.Equal(t, ids[2:], got.IDs)

	// Flags re-admit the corresponding rows.
	got, err = space.Candidates(CandidateOptions{AllowRecommendingAlreadyMeasured: true})
	require.NoError(t, err)
	assert.Equal(t, []RowID{ids[0], ids[2], ids[3], ids[4]}, got.IDs)

	got, err = space.Candidates(CandidateOptions{AllowRepeatedRecommendations: true})
	require.NoError(t, err)
	assert.Equal(t, []RowID{ids[1], ids[2], ids[3], ids[4]}, got.IDs)

	got, err = space.Candidates(CandidateOptions{
		AllowRepeatedRecommendations:     true,
		AllowRecommendingAlreadyMeasured: true,
	})
	require.NoError(t, err)
	assert.Equal(t, ids, got.IDs)
}

func TestCandidatesEmptySubspace(t *testing.T) {
	space := New(nil, nil)

	_, err := space.Candidates(CandidateOptions{})

	var empty *EmptyError

	require.ErrorAs(t, err, &empty)
	assert.Zero(t, empty.Total)
}

func TestCandidatesAllRowsExcluded(t *testing.T) {
	space := smallSpace(t)
	space.MarkMeasured(space.Discrete().IDs()...)

	_, err := space.Candidates(CandidateOptions{})

	var empty *EmptyError

	require.ErrorAs(t, err, &empty)
	assert.Equal(t, 5, empty.Total)
	assert.Equal(t, 5, empty.Excluded)

	// The same rows remain reachable when measured rows are allowed.
	got, err := space.Candidates(CandidateOptions{AllowRecommendingAlreadyMeasured: true})
	require.NoError(t, err)
	assert.Len(t, got.IDs, 5)
}

func TestMarkingIsIdempotent(t *testing.T) {
	space := smallSpace(t)
	ids := space.Discrete().IDs()

	assert.Equal(t, 1, space.MarkMeasured(ids[0]))
	assert.Equal(t, 0, space.MarkMeasured(ids[0]))
	assert.Equal(t, 1, space.MeasuredCount())

	assert.Equal(t, 2, space.MarkRecommended(ids[0], ids[1]))
	assert.Equal(t, 0, space.MarkRecommended(ids[0], ids[1]))
	assert.Equal(t, 2, space.RecommendedCount())

	assert.True(t, space.IsMeasured(ids[0]))
	assert.False(t, space.IsMeasured(ids[1]))
}

func TestLocateMatchesWithinTolerance(t *testing.T) {
	space := smallSpace(t)
	discrete := space.Discrete()

	// 148 is within tolerance 5 of level 150.
	id, err := discrete.Locate(map[string]param.Value{
		"Solvent":     param.String("water"),
		"Temperature": param.Float(148),
	})
	require.NoError(t, err)

	i, ok := discrete.IndexOf(id)
	require.True(t, ok)

	temperature, _ := discrete.Experimental().At(i, "Temperature")
	assert.Equal(t, float64(150), temperature.Float())
}

func TestLocateRejectsOutOfDomainValues(t *testing.T) {
	discrete := smallSpace(t).Discrete()

	_, err := discrete.Locate(map[string]param.Value{
		"Solvent":     param.String("water"),
		"Temperature": param.Float(300),
	})

	var domainErr *param.DomainError

	assert.ErrorAs(t, err, &domainErr)

	_, err = discrete.Locate(map[string]param.Value{
		"Solvent":     param.String("oil"),
		"Temperature": param.Float(100),
	})
	assert.ErrorAs(t, err, &domainErr)

	_, err = discrete.Locate(map[string]param.Value{
		"Solvent": param.String("water"),
	})
	assert.Error(t, err)
}

func TestLocatePrunedRowIsNotFound(t *testing.T) {
	discrete := smallSpace(t).Discrete()

	// (water, 200) is in both domains but excluded by the constraint.
	_, err := discrete.Locate(map[string]param.Value{
		"Solvent":     param.String("water"),
		"Temperature": param.Float(200),
	})
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestRowIDsSurviveRebuilds(t *testing.T) {
	first := smallSpace(t).Discrete()
	second := smallSpace(t).Discrete()

	assert.Equal(t, first.IDs(), second.IDs())

	for _, id := range first.IDs() {
		i, ok := first.IndexOf(id)
		require.True(t, ok)

		j, ok := second.IndexOf(id)
		require.True(t, ok)

		assert.Equal(t, first.Experimental().Values(i), second.Experimental().Values(j))
	}
}

func TestRowIDsDistinguishContent(t *testing.T) {
	discrete := smallSpace(t).Discrete()
	seen := make(map[RowID]struct{})

	for _, id := range discrete.IDs() {
		_, dup := seen[id]
		assert.False(t, dup)

		seen[id] = struct{}{}
	}
}

func TestContinuousSubspaceSampling(t *testing.T) {
	temperature, err := param.NewContinuous("Temperature", 100, 200)
	require.NoError(t, err)

	pressure, err := param.NewContinuous("Pressure", 1, 5)
	require.NoError(t, err)

	cont, err := NewContinuous(temperature, pressure)
	require.NoError(t, err)

	assert.Equal(t, []string{"Temperature", "Pressure"}, cont.Columns())

	lo, hi := cont.Bounds()
	assert.Equal(t, []float64{100, 1}, lo)
	assert.Equal(t, []float64{200, 5}, hi)

	points := cont.Sample(16, rand.New(rand.NewSource(7)))
	require.Len(t, points, 16)

	for _, point := range points {
		assert.True(t, cont.Contains(point), "point %v", point)
	}

	assert.False(t, cont.Contains([]float64{99, 3}))
	assert.False(t, cont.Contains([]float64{150}))

	// Identical seeds reproduce identical draws.
	again := cont.Sample(16, rand.New(rand.NewSource(7)))
	assert.Equal(t, points, again)
}

func TestNewContinuousValidation(t *testing.T) {
	temperature, err := param.NewContinuous("Temperature", 100, 200)
	require.NoError(t, err)

	duplicate, err := param.NewContinuous("Temperature", 0, 1)
	require.NoError(t, err)

	_, err = NewContinuous(temperature, nil, duplicate)
	assert.ErrorIs(t, err, ErrNilParameter)
	assert.ErrorIs(t, err, ErrDuplicateParameter)
}
