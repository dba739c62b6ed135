package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	baybe "github.com/AdrianSosic/BayBE-dev"
	"github.com/AdrianSosic/BayBE-dev/param"
	"github.com/AdrianSosic/BayBE-dev/recommender"
	"github.com/AdrianSosic/BayBE-dev/searchspace"
	"github.com/AdrianSosic/BayBE-dev/target"
)

//////
// Const, vars, types.
//////

// ErrNilCampaign indicates a scenario run without a campaign.
var ErrNilCampaign = errors.New("simulation: campaign is required")

// Lookup resolves one recommended configuration to its measured target
// values, keyed by target name. It stands in for the real experiment during
// a simulated campaign, typically backed by a lookup table or an analytical
// test function.
type Lookup func(values map[string]param.Value) (map[string]float64, error)

// ProgressUpdate represents the state of the scenario after one completed
// batch.
type ProgressUpdate struct {
	// Batch is the completed batch number, starting at one.
	Batch int

	// TotalBatches is the configured batch count.
	TotalBatches int

	// Measured is how many measurements the batch contributed.
	Measured int

	// Failures is how many lookups failed within the batch.
	Failures int

	// BestScore is the highest objective score seen so far.
	BestScore float64

	// BestValues holds the configuration behind BestScore.
	BestValues map[string]param.Value
}

// ScenarioConfig controls a closed-loop scenario run.
type ScenarioConfig struct {
	// Batches is the number of recommend-measure cycles to run.
	Batches int

	// BatchQuantity is the number of experiments requested per cycle.
	BatchQuantity int

	// PenalizeFailures substitutes each target's worst plausible value
	// when the lookup fails, so a flaky experiment steers the optimizer
	// away instead of aborting the run. When false the first failure
	// stops the scenario.
	PenalizeFailures bool

	// Seed drives the fake-measurement source used when no lookup is
	// given.
	Seed int64

	// ProgressChan is used to send progress updates while the scenario
	// runs. Sends never block; updates are dropped when the channel is
	// full.
	ProgressChan chan<- ProgressUpdate
}

// Result is the bookkeeping record of one scenario run.
type Result struct {
	// ID identifies this run.
	ID uuid.UUID

	// CampaignID identifies the campaign that was driven.
	CampaignID uuid.UUID

	// History holds the campaign's measurement history in computational
	// representation after the run.
	History *recommender.History

	// BestPerBatch traces the best objective score after each batch.
	BestPerBatch []float64
}

//////
// Factory.
//////

// DefaultScenarioConfig returns a default configuration.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Batches:          5,
		BatchQuantity:    3,
		PenalizeFailures: true,
		Seed:             time.Now().UnixNano(),
		ProgressChan:     nil, // Default to no progress updates.
	}
}

//////
// Exported functionalities.
//////

// RunScenario drives a campaign through repeated recommend-measure cycles
// against a lookup standing in for the real experiment. Each cycle requests
// a batch of recommendations, resolves every configuration through the
// lookup, and feeds the outcomes back into the campaign.
//
// Parameters:
//   - campaign: the campaign to drive. Required.
//   - lookup: resolves configurations to target values. Nil selects random
//     plausible values drawn from config.Seed.
//   - config: ScenarioConfig controlling the run. Start from
//     DefaultScenarioConfig() and adjust as needed.
//
// Returns:
//   - *Result: the run's bookkeeping record, including the best score after
//     each batch.
//   - error: ErrNilCampaign, a configuration problem, a lookup failure with
//     PenalizeFailures disabled, or a campaign failure.
//
// Usage example:
//
//	lookup := func(values map[string]param.Value) (map[string]float64, error) {
//	    return map[string]float64{"Yield": measure(values)}, nil
//	}
//
//	config := simulation.DefaultScenarioConfig()
//	config.Batches = 10
//
//	result, err := simulation.RunScenario(campaign, lookup, config)
//
// Important notes:
//   - A scenario that exhausts the search space before reaching the
//     configured batch count stops early and returns the batches it
//     completed.
//   - The lookup must return a value for every target of the campaign's
//     objective; missing targets fail measurement validation.
func RunScenario(
	campaign *baybe.Campaign,
	lookup Lookup,
	config ScenarioConfig,
) (*Result, error) {
	if campaign == nil {
		return nil, ErrNilCampaign
	}

	if config.Batches < 1 {
		return nil, fmt.Errorf("simulation: batches must be at least one, got %d", config.Batches)
	}

	if config.BatchQuantity < 1 {
		return nil, fmt.Errorf(
			"simulation: batch quantity must be at least one, got %d", config.BatchQuantity,
		)
	}

	if lookup == nil {
		rng := rand.New(rand.NewSource(config.Seed))
		targets := campaign.Objective().Targets()

		lookup = func(map[string]param.Value) (map[string]float64, error) {
			return fakeTargets(targets, rng), nil
		}
	}

	// Helper function to send progress updates.
	sendProgress := func(batch, measured, failures int) {
		if config.ProgressChan != nil {
			update := ProgressUpdate{
				Batch:        batch,
				TotalBatches: config.Batches,
				Measured:     measured,
				Failures:     failures,
			}

			if best, score, ok := campaign.Best(); ok {
				update.BestScore = score
				update.BestValues = best.Values
			}

			select {
			case config.ProgressChan <- update:
			default:
				// Skip update if channel is full.
			}
		}
	}

	result := &Result{
		ID:         uuid.New(),
		CampaignID: campaign.ID(),
	}

	for batch := 1; batch <= config.Batches; batch++ {
		recs, err := campaign.Recommend(config.BatchQuantity)
		if err != nil {
			var empty *searchspace.EmptyError

			if errors.As(err, &empty) {
				break
			}

			return nil, fmt.Errorf("simulation: batch %d: %w", batch, err)
		}

		measurements := make([]baybe.Measurement, len(recs))
		failures := 0

		for i, rec := range recs {
			values, err := lookup(rec.Values)
			if err != nil {
				if !config.PenalizeFailures {
					return nil, fmt.Errorf(
						"simulation: batch %d: lookup: %w", batch, err,
					)
				}

				values = penaltyTargets(campaign.Objective().Targets())
				failures++
			}

			measurements[i] = baybe.Measurement{
				Values:  rec.Values,
				Targets: values,
			}
		}

		if err := campaign.AddMeasurements(measurements...); err != nil {
			return nil, fmt.Errorf("simulation: batch %d: %w", batch, err)
		}

		if _, score, ok := campaign.Best(); ok {
			result.BestPerBatch = append(result.BestPerBatch, score)
		}

		sendProgress(batch, len(measurements), failures)
	}

	result.History = campaign.History()

	return result, nil
}

// AddFakeMeasurements feeds random plausible outcomes for a batch of
// recommendations back into the campaign: bounded numeric targets draw
// uniformly within their bounds, unbounded ones draw from a standard normal,
// and binary targets flip a fair coin between their two choices.
//
// Parameters:
//   - campaign: the campaign to feed. Required.
//   - batch: the recommendations to fabricate outcomes for.
//   - rng: the random source; required for reproducible draws.
//
// Returns:
//   - error: ErrNilCampaign, a missing random source, or a measurement
//     failure.
func AddFakeMeasurements(
	campaign *baybe.Campaign,
	batch []baybe.Recommendation,
	rng *rand.Rand,
) error {
	if campaign == nil {
		return ErrNilCampaign
	}

	if rng == nil {
		return errors.New("simulation: random source is required")
	}

	if len(batch) == 0 {
		return nil
	}

	targets := campaign.Objective().Targets()
	measurements := make([]baybe.Measurement, len(batch))

	for i, rec := range batch {
		measurements[i] = baybe.Measurement{
			Values:  rec.Values,
			Targets: fakeTargets(targets, rng),
		}
	}

	return campaign.AddMeasurements(measurements...)
}

//////
// Helper functions.
//////

// fakeTargets fabricates one plausible outcome per target.
func fakeTargets(targets []target.Target, rng *rand.Rand) map[string]float64 {
	values := make(map[string]float64, len(targets))

	for _, t := range targets {
		values[t.Name()] = fakeValue(t, rng)
	}

	return values
}

// fakeValue draws one plausible raw value for a target.
func fakeValue(t target.Target, rng *rand.Rand) float64 {
	switch v := t.(type) {
	case *target.Numerical:
		if v.Bounded() {
			lo, hi := v.Bounds()

			return lo + rng.Float64()*(hi-lo)
		}

		return rng.NormFloat64()
	case *target.Binary:
		positive, negative := v.Choices()

		if rng.Float64() < 0.5 {
			return positive
		}

		return negative
	default:
		return rng.Float64()
	}
}

// penaltyTargets builds the worst plausible outcome per target, applied in
// place of a failed lookup.
func penaltyTargets(targets []target.Target) map[string]float64 {
	values := make(map[string]float64, len(targets))

	for _, t := range targets {
		values[t.Name()] = penaltyValue(t)
	}

	return values
}

// penaltyValue picks the raw value whose transformed score is worst for the
// target.
func penaltyValue(t target.Target) float64 {
	switch v := t.(type) {
	case *target.Numerical:
		if v.Bounded() {
			lo, hi := v.Bounds()

			if v.Mode() == target.Min {
				return hi
			}

			return lo
		}

		if v.Mode() == target.Min {
			return math.MaxFloat64 / 2
		}

		return -math.MaxFloat64 / 2
	case *target.Binary:
		_, negative := v.Choices()

		return negative
	default:
		return 0
	}
}
