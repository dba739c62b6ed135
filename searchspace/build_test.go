package searchspace

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/param"
)

// stubParam is a deliberately sloppy parameter used to probe the builder's
// defenses against inconsistent inputs.
type stubParam struct {
	name   string
	values []param.Value
}

func (s stubParam) Name() string {
	return s.name
}

func (s stubParam) Values() []param.Value {
	return s.values
}

func (s stubParam) Columns() []string {
	return []string{s.name}
}

func (s stubParam) Encode(v param.Value) ([]float64, error) {
	return []float64{v.Float()}, nil
}

func (s stubParam) InDomain(v param.Value) bool {
	for _, w := range s.values {
		if w == v {
			return true
		}
	}

	return false
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)

	for i := range out {
		out[i] = lo + float64(i)*step
	}

	out[n-1] = hi

	return out
}

// forbidden mirrors the process-chemistry rules used across the build tests:
// hot aqueous runs cap the concentration, cold C3 runs cap it harder.
func forbidden(solvent string, temperature, concentration float64) bool {
	switch {
	case solvent == "water" && temperature > 120 && concentration > 5:
		return true
	case solvent == "water" && temperature > 180 && concentration > 3:
		return true
	case solvent == "C3" && temperature < 150 && concentration > 3:
		return true
	default:
		return false
	}
}

func scenarioParameters(t *testing.T) []param.Discrete {
	t.Helper()

	solvent, err := param.NewCategorical("Solvent", []string{"water", "C3"}, param.OneHot)
	require.NoError(t, err)

	temperature, err := param.NewNumericDiscrete("Temperature", linspace(100, 200, 10), 0)
	require.NoError(t, err)

	concentration, err := param.NewNumericDiscrete("Concentration", []float64{1, 2, 5, 10}, 0)
	require.NoError(t, err)

	return []param.Discrete{solvent, temperature, concentration}
}

func scenarioConstraint(t *testing.T) constraint.Constraint {
	t.Helper()

	c, err := constraint.NewCustom(
		[]string{"Solvent", "Temperature", "Concentration"},
		func(values []param.Value) (bool, error) {
			return !forbidden(values[0].Str(), values[1].Float(), values[2].Float()), nil
		},
	)
	require.NoError(t, err)

	return c
}

func TestBuildFiltersForbiddenCombinations(t *testing.T) {
	parameters := scenarioParameters(t)

	sub, err := BuildDiscrete(parameters, []constraint.Constraint{scenarioConstraint(t)}, DefaultBuildOptions())
	require.NoError(t, err)

	// Soundness: no surviving row violates the rules.
	exp := sub.Experimental()

	for i := 0; i < exp.Len(); i++ {
		solvent, _ := exp.At(i, "Solvent")
		temperature, _ := exp.At(i, "Temperature")
		concentration, _ := exp.At(i, "Concentration")

		assert.False(t, forbidden(solvent.Str(), temperature.Float(), concentration.Float()),
			"row %d: %s %g %g", i, solvent.Str(), temperature.Float(), concentration.Float())
	}

	// Completeness: exactly the valid share of the raw product survives.
	valid := 0

	for _, solvent := range []string{"water", "C3"} {
		for _, temperature := range linspace(100, 200, 10) {
			for _, concentration := range []float64{1, 2, 5, 10} {
				if !forbidden(solvent, temperature, concentration) {
					valid++
				}
			}
		}
	}

	assert.Equal(t, valid, sub.Len())
	assert.Less(t, sub.Len(), 2*10*4)
}

func TestBuildIsDeterministic(t *testing.T) {
	parameters := scenarioParameters(t)
	constraints := []constraint.Constraint{scenarioConstraint(t)}

	first, err := BuildDiscrete(parameters, constraints, DefaultBuildOptions())
	require.NoError(t, err)

	second, err := BuildDiscrete(parameters, constraints, DefaultBuildOptions())
	require.NoError(t, err)

	require.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.IDs(), second.IDs())
	assert.Equal(t, first.Computational().Matrix(), second.Computational().Matrix())

	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, first.Experimental().Values(i), second.Experimental().Values(i))
	}
}

func TestBuildRepresentationParity(t *testing.T) {
	parameters := scenarioParameters(t)

	sub, err := BuildDiscrete(parameters, []constraint.Constraint{scenarioConstraint(t)}, DefaultBuildOptions())
	require.NoError(t, err)

	exp := sub.Experimental()
	comp := sub.Computational()

	require.Equal(t, exp.Len(), comp.Len())

	// Re-encoding each experimental row reproduces its computational row.
	for i := 0; i < exp.Len(); i++ {
		var want []float64

		for _, p := range parameters {
			v, ok := exp.At(i, p.Name())
			require.True(t, ok)

			part, err := p.Encode(v)
			require.NoError(t, err)

			want = append(want, part...)
		}

		assert.Equal(t, want, comp.Row(i), "row %d", i)
	}

	// Column origins map back to declared parameters.
	assert.Equal(t, []string{
		"Solvent", "Solvent", "Temperature", "Concentration",
	}, comp.Origins())
	assert.Equal(t, []string{
		"Solvent_water", "Solvent_C3", "Temperature", "Concentration",
	}, comp.Columns())
}

func TestBuildEmptyDomainYieldsEmptySubspace(t *testing.T) {
	empty, err := param.NewCategorical("Solvent", nil, param.OneHot)
	require.NoError(t, err)

	concentration, err := param.NewNumericDiscrete("Concentration", []float64{1, 2}, 0)
	require.NoError(t, err)

	sub, err := BuildDiscrete([]param.Discrete{empty, concentration}, nil, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Zero(t, sub.Len())
}

func TestBuildAllRowsPrunedIsNotAnError(t *testing.T) {
	parameters := scenarioParameters(t)

	rejectAll, err := constraint.NewCustom([]string{"Solvent"}, func([]param.Value) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)

	sub, err := BuildDiscrete(parameters, []constraint.Constraint{rejectAll}, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Zero(t, sub.Len())
}

func TestBuildPrunesAtShallowestDepth(t *testing.T) {
	a, err := param.NewNumericDiscrete("A", linspace(0, 9, 10), 0)
	require.NoError(t, err)

	b, err := param.NewNumericDiscrete("B", linspace(0, 9, 10), 0)
	require.NoError(t, err)

	c, err := param.NewNumericDiscrete("C", linspace(0, 9, 10), 0)
	require.NoError(t, err)

	calls := 0

	half, err := constraint.NewCustom([]string{"A"}, func(values []param.Value) (bool, error) {
		calls++

		return values[0].Float() < 5, nil
	})
	require.NoError(t, err)

	sub, err := BuildDiscrete([]param.Discrete{a, b, c}, []constraint.Constraint{half}, DefaultBuildOptions())
	require.NoError(t, err)

	// A predicate on the first parameter runs once per domain value, not
	// once per product row.
	assert.Equal(t, 10, calls)
	assert.Equal(t, 5*10*10, sub.Len())
}

func TestBuildAppliesTableFilters(t *testing.T) {
	a, err := param.NewNumericDiscrete("FracA", []float64{0, 0.25, 0.5, 0.75, 1}, 0)
	require.NoError(t, err)

	b, err := param.NewNumericDiscrete("FracB", []float64{0, 0.25, 0.5, 0.75, 1}, 0)
	require.NoError(t, err)

	total, err := constraint.NewThreshold(constraint.Equal, 1, 1e-9)
	require.NoError(t, err)

	sum, err := constraint.NewSum([]string{"FracA", "FracB"}, total)
	require.NoError(t, err)

	sub, err := BuildDiscrete([]param.Discrete{a, b}, []constraint.Constraint{sum}, DefaultBuildOptions())
	require.NoError(t, err)

	// (0,1) (0.25,0.75) (0.5,0.5) (0.75,0.25) (1,0).
	assert.Equal(t, 5, sub.Len())

	exp := sub.Experimental()

	for i := 0; i < exp.Len(); i++ {
		fa, _ := exp.At(i, "FracA")
		fb, _ := exp.At(i, "FracB")

		assert.InDelta(t, 1, fa.Float()+fb.Float(), 1e-9)
	}
}

func TestBuildDeduplicatesInconsistentDomains(t *testing.T) {
	sloppy := stubParam{name: "X", values: param.Numbers(1, 1, 2)}

	sub, err := BuildDiscrete([]param.Discrete{sloppy}, nil, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())

	opts := DefaultBuildOptions()
	opts.AllowDuplicates = true

	sub, err = BuildDiscrete([]param.Discrete{sloppy}, nil, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Len())
}

func TestBuildRowBudget(t *testing.T) {
	parameters := scenarioParameters(t)

	opts := DefaultBuildOptions()
	opts.MaxRows = 10

	_, err := BuildDiscrete(parameters, nil, opts)

	var tooLarge *TooLargeError

	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, 11, tooLarge.Rows)
	assert.Equal(t, 10, tooLarge.MaxRows)
	assert.Contains(t, tooLarge.Error(), "row budget")
}

func TestBuildTimeBudget(t *testing.T) {
	a, err := param.NewNumericDiscrete("A", linspace(0, 31, 32), 0)
	require.NoError(t, err)

	b, err := param.NewNumericDiscrete("B", linspace(0, 31, 32), 0)
	require.NoError(t, err)

	c, err := param.NewNumericDiscrete("C", linspace(0, 31, 32), 0)
	require.NoError(t, err)

	opts := BuildOptions{MaxRows: -1, MaxDuration: time.Nanosecond}

	_, err = BuildDiscrete([]param.Discrete{a, b, c}, nil, opts)

	var tooLarge *TooLargeError

	require.ErrorAs(t, err, &tooLarge)
	assert.Contains(t, tooLarge.Error(), "time budget")
}

func TestBuildValidationAggregatesErrors(t *testing.T) {
	concentration, err := param.NewNumericDiscrete("Concentration", []float64{1, 2}, 0)
	require.NoError(t, err)

	duplicate, err := param.NewNumericDiscrete("Concentration", []float64{3}, 0)
	require.NoError(t, err)

	_, err = BuildDiscrete([]param.Discrete{concentration, nil, duplicate}, nil, DefaultBuildOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilParameter)
	assert.ErrorIs(t, err, ErrDuplicateParameter)
}

func TestBuildRejectsDanglingConstraintReferences(t *testing.T) {
	concentration, err := param.NewNumericDiscrete("Concentration", []float64{1, 2}, 0)
	require.NoError(t, err)

	ghost, err := constraint.NewCustom([]string{"Ghost"}, func([]param.Value) (bool, error) {
		return true, nil
	})
	require.NoError(t, err)

	_, err = BuildDiscrete([]param.Discrete{concentration}, []constraint.Constraint{ghost}, DefaultBuildOptions())

	var unknown *constraint.UnknownParameterError

	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Ghost", unknown.Parameter)
}

func TestBuildSurfacesValidatorFailures(t *testing.T) {
	parameters := scenarioParameters(t)
	boom := errors.New("boom")

	failing, err := constraint.NewCustom([]string{"Temperature"}, func([]param.Value) (bool, error) {
		return false, boom
	})
	require.NoError(t, err)

	_, err = BuildDiscrete(parameters, []constraint.Constraint{failing}, DefaultBuildOptions())

	var evalErr *constraint.EvaluationError

	require.ErrorAs(t, err, &evalErr)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, evalErr.Constraint, "Temperature")
	assert.Contains(t, evalErr.Row, "Temperature")
}

func TestBuildBindsDependencies(t *testing.T) {
	stirring, err := param.NewCategorical("Stirring", []string{"off", "on"}, param.Integer)
	require.NoError(t, err)

	speed, err := param.NewNumericDiscrete("Speed", []float64{100, 200, 300}, 0)
	require.NoError(t, err)

	on, err := constraint.NewSubSelection(param.String("on"))
	require.NoError(t, err)

	dep, err := constraint.NewDependencies("Stirring", on, []string{"Speed"})
	require.NoError(t, err)

	sub, err := BuildDiscrete([]param.Discrete{stirring, speed}, []constraint.Constraint{dep}, DefaultBuildOptions())
	require.NoError(t, err)

	// Three active rows plus the single collapsed inactive row.
	require.Equal(t, 4, sub.Len())

	exp := sub.Experimental()
	off := 0

	for i := 0; i < exp.Len(); i++ {
		mode, _ := exp.At(i, "Stirring")

		if mode.Str() == "off" {
			off++

			pinned, _ := exp.At(i, "Speed")
			assert.Equal(t, float64(100), pinned.Float())
		}
	}

	assert.Equal(t, 1, off)
}

func TestBuildPermutationKeepsCanonicalRows(t *testing.T) {
	a, err := param.NewCategorical("Slot1", []string{"A", "B", "C"}, param.Integer)
	require.NoError(t, err)

	b, err := param.NewCategorical("Slot2", []string{"A", "B", "C"}, param.Integer)
	require.NoError(t, err)

	perm, err := constraint.NewPermutation("Slot1", "Slot2")
	require.NoError(t, err)

	sub, err := BuildDiscrete([]param.Discrete{a, b}, []constraint.Constraint{perm}, DefaultBuildOptions())
	require.NoError(t, err)

	// Multiset choose 2 out of 3 labels: 6 canonical pairs out of 9.
	assert.Equal(t, 6, sub.Len())
}
