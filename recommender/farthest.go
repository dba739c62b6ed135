package recommender

import (
	"math"

	"github.com/AdrianSosic/BayBE-dev/searchspace"
)

//////
// Const, vars, types.
//////

// FarthestPoint recommends a space-filling batch via farthest point sampling
// on the computational representation: it seeds with the candidate farthest
// from the centroid, then repeatedly adds the candidate whose minimum
// distance to the batch so far is largest. It ignores the measurement
// history and is deterministic, which makes it a good choice for the initial
// batch of a campaign.
type FarthestPoint struct{}

//////
// Factory.
//////

// NewFarthestPoint creates a farthest point sampling recommender.
func NewFarthestPoint() *FarthestPoint {
	return &FarthestPoint{}
}

//////
// Methods.
//////

// Name identifies the recommender in errors and configuration.
func (r *FarthestPoint) Name() string {
	return "FPS"
}

// Recommend selects up to batchQuantity mutually distant candidates.
func (r *FarthestPoint) Recommend(
	candidates *searchspace.CandidateSet,
	_ *History,
	batchQuantity int,
) ([]searchspace.RowID, error) {
	k, err := checkRequest(candidates, batchQuantity)
	if err != nil {
		return nil, err
	}

	points := candidates.Computational.Matrix()
	n := len(points)

	first := farthestFromCentroid(points)

	selected := make([]int, 0, k)
	selected = append(selected, first)

	picked := make([]bool, n)
	picked[first] = true

	// minDist[i] tracks the squared distance from candidate i to its
	// nearest selected point. Squared distances preserve the argmax.
	minDist := make([]float64, n)

	for i := range points {
		minDist[i] = sqDist(points[i], points[first])
	}

	for len(selected) < k {
		next := -1
		farthest := math.Inf(-1)

		for i := range points {
			if picked[i] {
				continue
			}

			if minDist[i] > farthest {
				next = i
				farthest = minDist[i]
			}
		}

		selected = append(selected, next)

		picked[next] = true

		for i := range points {
			if d := sqDist(points[i], points[next]); d < minDist[i] {
				minDist[i] = d
			}
		}
	}

	ids := make([]searchspace.RowID, k)

	for i, idx := range selected {
		ids[i] = candidates.IDs[idx]
	}

	return ids, nil
}

//////
// Helper functions.
//////

// farthestFromCentroid returns the index of the point with the largest
// squared distance to the centroid, lowest index winning ties.
func farthestFromCentroid(points [][]float64) int {
	centroid := make([]float64, len(points[0]))

	for _, p := range points {
		for j, v := range p {
			centroid[j] += v
		}
	}

	for j := range centroid {
		centroid[j] /= float64(len(points))
	}

	best := 0
	bestDist := math.Inf(-1)

	for i, p := range points {
		if d := sqDist(p, centroid); d > bestDist {
			best = i
			bestDist = d
		}
	}

	return best
}

// sqDist computes the squared Euclidean distance between two vectors.
func sqDist(a, b []float64) float64 {
	sum := 0.0

	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return sum
}
