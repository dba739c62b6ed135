package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/AdrianSosic/BayBE-dev/searchspace"
	"github.com/AdrianSosic/BayBE-dev/serial"
)

const fullYAML = `
parameters:
  - type: Categorical
    name: Solvent
    labels: [water, C3]
    encoding: OHE
  - type: NumericDiscrete
    name: Temperature
    values: [100, 150, 200]
    tolerance: 5
constraints:
  - type: Exclude
    combine: AND
    conditions:
      - parameter: Temperature
        condition:
          operator: ">"
          bound: 150
      - parameter: Solvent
        condition:
          in: [water]
objective:
  type: SINGLE
  targets:
    - type: Numerical
      name: Yield
      mode: MAX
      bounds: {low: 0, high: 100}
      transform: LINEAR
strategy:
  initial:
    type: FPS
  main:
    type: SequentialGreedy
    kernel:
      type: Matern
      nu: 2.5
      length_scale: 1
    acquisition: UCB
    beta: 2
build:
  max_rows: 1000
`

const minimalJSON = `{
  "parameters": [
    {"type": "NumericDiscrete", "name": "x", "values": [0, 1, 2]}
  ],
  "objective": {
    "type": "SINGLE",
    "targets": [{"type": "Numerical", "name": "y", "mode": "MIN"}]
  }
}`

func TestBuildFromYAML(t *testing.T) {
	campaign, err := Build([]byte(fullYAML))
	require.NoError(t, err)

	// 2x3 product minus the excluded (water, 200) row.
	assert.Equal(t, 5, campaign.SearchSpace().Discrete().Len())
	assert.True(t, campaign.Objective().Single())
	assert.Equal(t, "FPS", campaign.Strategy().Initial().Name())
	assert.Equal(t, "SequentialGreedy", campaign.Strategy().Main().Name())
}

func TestBuildFromJSON(t *testing.T) {
	campaign, err := Build([]byte(minimalJSON))
	require.NoError(t, err)

	assert.Equal(t, 3, campaign.SearchSpace().Discrete().Len())

	// Without a strategy section the default pairing applies.
	assert.Equal(t, "FPS", campaign.Strategy().Initial().Name())
	assert.Equal(t, "SequentialGreedy", campaign.Strategy().Main().Name())
}

func TestValidateAcceptsBothRenderings(t *testing.T) {
	assert.NoError(t, Validate([]byte(fullYAML)))
	assert.NoError(t, Validate([]byte(minimalJSON)))
}

func TestValidateAggregatesShapeErrors(t *testing.T) {
	doc := `
parameters:
  - type: Categorical
    labels: [water]
`

	err := Validate([]byte(doc))
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Objective")
}

func TestValidateAggregatesDomainErrors(t *testing.T) {
	doc := `
parameters:
  - type: NumericDiscrete
    name: x
    values: [0, 1]
constraints:
  - type: Cardinality
    parameters: [x, ghost]
    max: 1
objective:
  type: SINGLE
  targets:
    - type: Ordinal
      name: y
      mode: MAX
strategy:
  main:
    type: SequentialGreedy
    kernel:
      type: Periodic
`

	err := Validate([]byte(doc))
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)
	assert.Contains(t, err.Error(), `unknown parameter "ghost"`)
	assert.Contains(t, err.Error(), "Ordinal")
	assert.Contains(t, err.Error(), "Periodic")
}

func TestValidateRejectsUnknownTag(t *testing.T) {
	doc := `
parameters:
  - type: Gaussian
    name: x
objective:
  type: SINGLE
  targets:
    - {type: Numerical, name: y, mode: MAX}
`

	err := Validate([]byte(doc))

	var unknown *serial.UnknownTagError

	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "parameter", unknown.Kind)
	assert.Equal(t, "Gaussian", unknown.Tag)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	err := Validate([]byte("parameterz: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameterz")

	err = Validate([]byte(`{"parameterz": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameterz")
}

func TestBuildReportsSpaceErrors(t *testing.T) {
	doc := `
parameters:
  - type: NumericDiscrete
    name: x
    values: [0, 1, 2]
objective:
  type: SINGLE
  targets:
    - {type: Numerical, name: y, mode: MAX}
build:
  max_rows: 2
`

	// The document itself is fine; only enumeration trips the budget.
	require.NoError(t, Validate([]byte(doc)))

	_, err := Build([]byte(doc))

	var tooLarge *searchspace.TooLargeError

	assert.ErrorAs(t, err, &tooLarge)
}
