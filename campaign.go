package baybe

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/AdrianSosic/BayBE-dev/param"
	"github.com/AdrianSosic/BayBE-dev/recommender"
	"github.com/AdrianSosic/BayBE-dev/searchspace"
	"github.com/AdrianSosic/BayBE-dev/target"
	"github.com/AdrianSosic/BayBE-dev/telemetry"
)

//////
// Const, vars, types.
//////

// Measurement couples one experimental configuration with its measured
// outcomes: parameter values keyed by parameter name and raw target values
// keyed by target name.
type Measurement struct {
	Values  map[string]param.Value
	Targets map[string]float64
}

// Recommendation is one suggested experiment: the stable row identifier and
// the configuration's raw parameter values keyed by parameter name.
type Recommendation struct {
	ID     searchspace.RowID
	Values map[string]param.Value
}

// Campaign is the stateful conversation between an experimenter and the
// optimizer. It owns the search space, the objective, and the recommendation
// strategy, and it accumulates measurements across the ask-tell cycle:
// Recommend proposes experiments, AddMeasurements feeds back their outcomes,
// and each cycle sharpens the next proposal.
//
// Thread safety:
//   - A Campaign is an independently owned value. Recommend and
//     AddMeasurements mutate its state and must not be called concurrently.
type Campaign struct {
	id           uuid.UUID
	space        *searchspace.SearchSpace
	objective    *target.Objective
	strategy     *recommender.Strategy
	history      *recommender.History
	measurements []Measurement
	batches      int
}

// staged is one validated measurement ready to be applied.
type staged struct {
	id    searchspace.RowID
	x     []float64
	score float64
}

//////
// Factory.
//////

// NewCampaign creates a campaign.
//
// Parameters:
//   - space: the search space to optimize over. Required.
//   - objective: the objective reducing measured targets to one score.
//     Required.
//   - strategy: the recommendation strategy. Nil selects
//     recommender.DefaultStrategy.
//
// Usage example:
//
//	campaign, err := baybe.NewCampaign(space, objective, nil)
//	if err != nil {
//	    return err
//	}
//
//	recs, err := campaign.Recommend(3)
func NewCampaign(
	space *searchspace.SearchSpace,
	objective *target.Objective,
	strategy *recommender.Strategy,
) (*Campaign, error) {
	if space == nil {
		return nil, ErrNilSearchSpace
	}

	if objective == nil {
		return nil, ErrNilObjective
	}

	if strategy == nil {
		strategy = recommender.DefaultStrategy()
	}

	telemetry.RecordCampaignCreated(context.Background())

	return &Campaign{
		id:        uuid.New(),
		space:     space,
		objective: objective,
		strategy:  strategy,
		history:   recommender.NewHistory(),
	}, nil
}

//////
// Methods.
//////

// ID returns the campaign's unique identifier.
func (c *Campaign) ID() uuid.UUID {
	return c.id
}

// SearchSpace returns the campaign's search space.
func (c *Campaign) SearchSpace() *searchspace.SearchSpace {
	return c.space
}

// Objective returns the campaign's objective.
func (c *Campaign) Objective() *target.Objective {
	return c.objective
}

// Strategy returns the campaign's recommendation strategy.
func (c *Campaign) Strategy() *recommender.Strategy {
	return c.strategy
}

// Batches returns how many recommendation batches the campaign has served.
func (c *Campaign) Batches() int {
	return c.batches
}

// Measurements returns the measurements fed to the campaign so far, in
// arrival order.
func (c *Campaign) Measurements() []Measurement {
	out := make([]Measurement, len(c.measurements))

	for i := range c.measurements {
		out[i] = copyMeasurement(c.measurements[i])
	}

	return out
}

// History returns a copy of the measurement history in computational
// representation: encoded inputs paired with scalarized objective scores.
func (c *Campaign) History() *recommender.History {
	return c.history.Clone()
}

// Candidates returns the rows still available for recommendation under the
// strategy's selection options, in both representations.
func (c *Campaign) Candidates() (*searchspace.CandidateSet, error) {
	return c.space.Candidates(c.strategy.Options())
}

// Best returns the measurement with the highest objective score and that
// score. The boolean is false while no measurements exist.
func (c *Campaign) Best() (Measurement, float64, bool) {
	if c.history.Len() == 0 {
		return Measurement{}, 0, false
	}

	best := 0
	scores := c.history.Y()

	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}

	return copyMeasurement(c.measurements[best]), scores[best], true
}

// Recommend proposes the next batch of experiments and records them as
// recommended, so later batches move on to fresh configurations unless the
// strategy's options allow repeats.
//
// Parameters:
//   - batchQuantity: how many experiments to propose. When fewer candidates
//     remain, the batch holds what is available.
//
// Returns:
//   - []Recommendation: proposed configurations in recommendation order.
//   - error: *searchspace.EmptyError when no candidates remain, or a
//     recommender failure.
func (c *Campaign) Recommend(batchQuantity int) ([]Recommendation, error) {
	active := c.strategy.Active(c.history)

	ids, err := c.strategy.Recommend(c.space, c.history, batchQuantity)
	if err != nil {
		return nil, err
	}

	discrete := c.space.Discrete()
	recs := make([]Recommendation, len(ids))

	for i, id := range ids {
		idx, ok := discrete.IndexOf(id)
		if !ok {
			return nil, fmt.Errorf("baybe: recommended row %d not in search space", id)
		}

		recs[i] = Recommendation{
			ID:     id,
			Values: discrete.Experimental().Row(idx),
		}
	}

	c.space.MarkRecommended(ids...)

	c.batches++

	telemetry.RecordRecommendation(context.Background(), active.Name(), len(recs))

	return recs, nil
}

// AddMeasurements feeds measured outcomes back into the campaign. Each
// measurement's values are located in the search space (numeric values are
// matched against the parameter tolerances), its targets are scalarized
// through the objective, and the resulting observation extends the model
// history.
//
// All measurements are validated before any is applied: on error the
// campaign is unchanged.
//
// Returns:
//   - error: ErrNoMeasurements for an empty call, otherwise the aggregated
//     per-measurement failures (row not found, off-domain values, missing
//     or untransformable target values), each prefixed with its index.
func (c *Campaign) AddMeasurements(measurements ...Measurement) error {
	if len(measurements) == 0 {
		return ErrNoMeasurements
	}

	discrete := c.space.Discrete()

	prepared := make([]staged, 0, len(measurements))

	var errs error

	for i, m := range measurements {
		id, err := discrete.Locate(m.Values)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("measurement %d: %w", i, err))

			continue
		}

		score, err := c.objective.Scalarize(m.Targets)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("measurement %d: %w", i, err))

			continue
		}

		idx, _ := discrete.IndexOf(id)

		prepared = append(prepared, staged{
			id:    id,
			x:     discrete.Computational().Row(idx),
			score: score,
		})
	}

	if errs != nil {
		return errs
	}

	for i, s := range prepared {
		c.history.Append(s.x, s.score)
		c.space.MarkMeasured(s.id)
		c.measurements = append(c.measurements, copyMeasurement(measurements[i]))
	}

	telemetry.RecordMeasurements(context.Background(), len(prepared))

	return nil
}

//////
// Helper functions.
//////

// copyMeasurement deep-copies a measurement so later caller mutations cannot
// reach campaign state.
func copyMeasurement(m Measurement) Measurement {
	values := make(map[string]param.Value, len(m.Values))

	for k, v := range m.Values {
		values[k] = v
	}

	targets := make(map[string]float64, len(m.Targets))

	for k, v := range m.Targets {
		targets[k] = v
	}

	return Measurement{Values: values, Targets: targets}
}
