// Package baybe drives experimental design with Bayesian optimization: it
// proposes which experiments to run next, learns from their measured
// outcomes, and converges on the best configuration in as few experiments as
// possible.
//
// Why use it:
// - Real experiments are expensive; random and grid search waste them
// - Chemistry-style parameter spaces are discrete, mixed-type, and
//   constrained, which rules out naive continuous optimizers
// - The ask-tell cycle fits lab workflows where measurements arrive in
//   batches, possibly days apart
//
// The flow:
//
//  1. Declare parameters (categorical, discrete numeric, substance,
//     continuous) and the constraints between them (package param, package
//     constraint).
//
//  2. Build the search space: the constraint-filtered enumeration of valid
//     configurations, held in paired experimental and computational
//     representations (package searchspace).
//
//  3. Declare targets and combine them into an objective whose scalar score
//     is always higher-is-better (package target).
//
//  4. Create a Campaign and loop: Recommend proposes a batch,
//     AddMeasurements feeds back the outcomes, and the surrogate model
//     (package surrogate, scored through package acquisition by the
//     recommenders in package recommender) sharpens with every cycle.
//
// Usage example:
//
//	solvent, _ := param.NewCategorical("Solvent", []string{"water", "C3"}, param.OneHot)
//	temperature, _ := param.NewNumericDiscrete("Temperature", []float64{100, 150, 200}, 0.5)
//
//	space, err := searchspace.FromParameters(
//	    []param.Discrete{solvent, temperature},
//	    nil,
//	    []constraint.Constraint{noHotWater},
//	    searchspace.DefaultBuildOptions(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	yield, _ := target.NewNumericalBounded("Yield", target.Max, 0, 100, target.Linear)
//	objective, _ := target.NewSingle(yield)
//
//	campaign, err := baybe.NewCampaign(space, objective, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i := 0; i < 10; i++ {
//	    recs, err := campaign.Recommend(3)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Run the proposed experiments and report the outcomes.
//	    for _, rec := range recs {
//	        outcome := runExperiment(rec.Values)
//
//	        err := campaign.AddMeasurements(baybe.Measurement{
//	            Values:  rec.Values,
//	            Targets: map[string]float64{"Yield": outcome},
//	        })
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	    }
//	}
//
//	best, score, _ := campaign.Best()
//
// Configuration files: package config declares the campaign assembly as
// validated data (JSON or YAML via package serial), so search spaces and
// strategies can be versioned next to the lab notebook instead of in code.
//
// Simulation: package simulation replays campaigns against lookup tables or
// synthetic functions, which is how recommenders and strategies are compared
// before spending real experiments.
package baybe
