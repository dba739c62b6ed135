// Package simulation drives campaigns through closed-loop scenarios without
// real experiments. RunScenario repeatedly asks a campaign for
// recommendations, resolves each configuration through a caller-supplied
// Lookup, and feeds the outcomes back, tracing the best objective score
// across batches. Failed lookups are either substituted with worst-case
// penalty values or abort the run, depending on the configuration.
//
// AddFakeMeasurements fabricates plausible random outcomes for a batch of
// recommendations, which keeps examples and tests runnable without a lookup
// table.
package simulation
