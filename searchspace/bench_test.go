package searchspace

import (
	"testing"

	"github.com/AdrianSosic/BayBE-dev/constraint"
	"github.com/AdrianSosic/BayBE-dev/param"
)

// benchParameters builds a four-parameter mixture space of 8000 raw
// combinations, large enough that enumeration dominates setup cost.
func benchParameters(b *testing.B) []param.Discrete {
	b.Helper()

	solvent, err := param.NewCategorical(
		"Solvent", []string{"water", "THF", "DMF", "C3"}, param.OneHot,
	)
	if err != nil {
		b.Fatal(err)
	}

	base, err := param.NewCategorical(
		"Base", []string{"water", "THF", "DMF", "C3"}, param.Integer,
	)
	if err != nil {
		b.Fatal(err)
	}

	temperature, err := param.NewNumericDiscrete("Temperature", linspace(100, 200, 25), 0.5)
	if err != nil {
		b.Fatal(err)
	}

	concentration, err := param.NewNumericDiscrete("Concentration", linspace(0.5, 10, 20), 0.1)
	if err != nil {
		b.Fatal(err)
	}

	return []param.Discrete{solvent, base, temperature, concentration}
}

// BenchmarkBuildDiscrete measures the subspace builder on the bare product,
// with predicates pruning during enumeration, and with a table filter
// running as a post pass.
func BenchmarkBuildDiscrete(b *testing.B) {
	parameters := benchParameters(b)

	opts := DefaultBuildOptions()
	opts.MaxRows = -1

	hot, err := constraint.NewThreshold(constraint.Greater, 150, 0)
	if err != nil {
		b.Fatal(err)
	}

	aqueous, err := constraint.NewSubSelection(param.String("water"))
	if err != nil {
		b.Fatal(err)
	}

	noHotWater, err := constraint.NewExclude([]constraint.On{
		{Parameter: "Temperature", Condition: hot},
		{Parameter: "Solvent", Condition: aqueous},
	}, constraint.And)
	if err != nil {
		b.Fatal(err)
	}

	distinct, err := constraint.NewNoLabelDuplicates("Solvent", "Base")
	if err != nil {
		b.Fatal(err)
	}

	budget, err := constraint.NewThreshold(constraint.LessEqual, 205, 0)
	if err != nil {
		b.Fatal(err)
	}

	capped, err := constraint.NewSum([]string{"Temperature", "Concentration"}, budget)
	if err != nil {
		b.Fatal(err)
	}

	cases := []struct {
		name        string
		constraints []constraint.Constraint
	}{
		{"Product", nil},
		{"Predicates", []constraint.Constraint{noHotWater, distinct}},
		{"Filter", []constraint.Constraint{capped}},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := BuildDiscrete(parameters, tc.constraints, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
