// Package recommender selects which experiments to run next. Three
// recommenders are provided: Random (uniform sampling, seedable), FPS
// (deterministic farthest point sampling for space-filling initial batches),
// and SequentialGreedy (Gaussian process surrogate plus acquisition
// maximization, assembling batches with fantasy updates).
//
// A Strategy ties them together: it applies the campaign's candidate
// selection options, uses the initial recommender while no measurements
// exist, and hands over to the main recommender afterwards.
package recommender
