package recommender

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianSosic/BayBE-dev/kernel"
	"github.com/AdrianSosic/BayBE-dev/param"
	"github.com/AdrianSosic/BayBE-dev/searchspace"
)

// lineSpace builds a search space holding a single numeric parameter with
// domain {0, 1, 2, 3, 4}; its encoded rows are the same five points on a
// line.
func lineSpace(t *testing.T) *searchspace.SearchSpace {
	t.Helper()

	x, err := param.NewNumericDiscrete("x", []float64{0, 1, 2, 3, 4}, 0)
	require.NoError(t, err)

	space, err := searchspace.FromParameters(
		[]param.Discrete{x},
		nil,
		nil,
		searchspace.DefaultBuildOptions(),
	)
	require.NoError(t, err)

	return space
}

func lineCandidates(t *testing.T) *searchspace.CandidateSet {
	t.Helper()

	candidates, err := lineSpace(t).Candidates(searchspace.CandidateOptions{})
	require.NoError(t, err)

	return candidates
}

func TestHistory(t *testing.T) {
	h := NewHistory()

	assert.Equal(t, 0, h.Len())
	assert.True(t, math.IsInf(h.Best(), -1))
	assert.Empty(t, h.X())
	assert.Empty(t, h.Y())

	h.Append([]float64{1, 0}, 0.4)
	h.Append([]float64{0, 1}, 0.9)
	h.Append([]float64{1, 1}, 0.1)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 0.9, h.Best())
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}, {1, 1}}, h.X())
	assert.Equal(t, []float64{0.4, 0.9, 0.1}, h.Y())
}

func TestHistoryCopiesInputs(t *testing.T) {
	h := NewHistory()
	point := []float64{1, 2}

	h.Append(point, 0.5)

	point[0] = 99

	assert.Equal(t, [][]float64{{1, 2}}, h.X())
}

func TestHistoryNilReceiver(t *testing.T) {
	var h *History

	assert.Equal(t, 0, h.Len())
	assert.True(t, math.IsInf(h.Best(), -1))
	assert.Nil(t, h.X())
	assert.Nil(t, h.Y())
}

func TestRandomIsSeeded(t *testing.T) {
	candidates := lineCandidates(t)

	first, err := NewRandom(7).Recommend(candidates, nil, 3)
	require.NoError(t, err)

	second, err := NewRandom(7).Recommend(candidates, nil, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)

	// No candidate appears twice within a batch.
	seen := make(map[searchspace.RowID]struct{})

	for _, id := range first {
		_, dup := seen[id]

		assert.False(t, dup)

		seen[id] = struct{}{}
		assert.Contains(t, candidates.IDs, id)
	}
}

func TestRecommendValidatesRequest(t *testing.T) {
	candidates := lineCandidates(t)
	r := NewRandom(1)

	_, err := r.Recommend(candidates, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidBatchQuantity)

	_, err = r.Recommend(nil, nil, 1)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRecommendTruncatesOversizedBatch(t *testing.T) {
	candidates := lineCandidates(t)

	ids, err := NewFarthestPoint().Recommend(candidates, nil, 10)
	require.NoError(t, err)

	assert.Len(t, ids, len(candidates.IDs))
}

func TestFarthestPointSpreadsBatch(t *testing.T) {
	candidates := lineCandidates(t)

	ids, err := NewFarthestPoint().Recommend(candidates, nil, 3)
	require.NoError(t, err)

	// On the line 0..4 the walk is pinned: the point x=0 ties x=4 for the
	// largest centroid distance and wins by index, x=4 is then farthest
	// from x=0, and x=2 maximizes the distance to both ends.
	expected := []searchspace.RowID{
		candidates.IDs[0],
		candidates.IDs[4],
		candidates.IDs[2],
	}

	assert.Equal(t, expected, ids)
}

func TestFarthestPointIsDeterministic(t *testing.T) {
	candidates := lineCandidates(t)

	first, err := NewFarthestPoint().Recommend(candidates, nil, 4)
	require.NoError(t, err)

	second, err := NewFarthestPoint().Recommend(candidates, nil, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBayesianExploitsKnownOptimum(t *testing.T) {
	candidates := lineCandidates(t)

	history := NewHistory()
	history.Append([]float64{0}, 0.0)
	history.Append([]float64{2}, 1.0)
	history.Append([]float64{4}, 0.0)

	// Beta zero turns UCB into pure exploitation of the posterior mean,
	// which peaks at the measured optimum x=2.
	r, err := NewBayesian(BayesianOptions{Acquisition: "UCB", Beta: 0})
	require.NoError(t, err)

	ids, err := r.Recommend(candidates, history, 1)
	require.NoError(t, err)

	assert.Equal(t, []searchspace.RowID{candidates.IDs[2]}, ids)
}

func TestBayesianBatchHasNoRepeats(t *testing.T) {
	candidates := lineCandidates(t)

	history := NewHistory()
	history.Append([]float64{1}, 0.5)

	r, err := NewBayesian(DefaultBayesianOptions())
	require.NoError(t, err)

	ids, err := r.Recommend(candidates, history, 4)
	require.NoError(t, err)
	require.Len(t, ids, 4)

	seen := make(map[searchspace.RowID]struct{})

	for _, id := range ids {
		_, dup := seen[id]

		assert.False(t, dup)

		seen[id] = struct{}{}
	}
}

func TestBayesianValidatesOptions(t *testing.T) {
	_, err := NewBayesian(BayesianOptions{Acquisition: "GREEDY"})
	assert.ErrorContains(t, err, "unknown acquisition function")

	_, err = NewBayesian(BayesianOptions{Kernel: kernel.Matern{Nu: 2.0, LengthScale: 1}})
	assert.ErrorIs(t, err, kernel.ErrNu)
}

func TestBayesianResolvesDefaultOptions(t *testing.T) {
	r, err := NewBayesian(BayesianOptions{})
	require.NoError(t, err)

	opts := r.Options()

	assert.Equal(t, kernel.DefaultRBF(), opts.Kernel)
	assert.Equal(t, "UCB", opts.Acquisition)
}

// stubRecommender records how often it was asked and answers with the first
// candidate.
type stubRecommender struct {
	name  string
	calls *int
}

func (s stubRecommender) Name() string {
	return s.name
}

func (s stubRecommender) Recommend(
	candidates *searchspace.CandidateSet,
	_ *History,
	_ int,
) ([]searchspace.RowID, error) {
	*s.calls++

	return candidates.IDs[:1], nil
}

func TestStrategyRoutesByHistoryPhase(t *testing.T) {
	space := lineSpace(t)

	initialCalls, mainCalls := 0, 0

	strategy, err := NewStrategy(
		stubRecommender{name: "initial", calls: &initialCalls},
		stubRecommender{name: "main", calls: &mainCalls},
		searchspace.CandidateOptions{},
	)
	require.NoError(t, err)

	_, err = strategy.Recommend(space, NewHistory(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, initialCalls)
	assert.Equal(t, 0, mainCalls)

	history := NewHistory()
	history.Append([]float64{0}, 0.1)

	_, err = strategy.Recommend(space, history, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, initialCalls)
	assert.Equal(t, 1, mainCalls)
}

func TestStrategyWithoutInitialUsesMain(t *testing.T) {
	space := lineSpace(t)

	mainCalls := 0

	strategy, err := NewStrategy(
		nil,
		stubRecommender{name: "main", calls: &mainCalls},
		searchspace.CandidateOptions{},
	)
	require.NoError(t, err)

	_, err = strategy.Recommend(space, NewHistory(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, mainCalls)
}

func TestStrategyPropagatesEmptyCandidates(t *testing.T) {
	space := lineSpace(t)
	space.MarkMeasured(space.Discrete().IDs()...)

	strategy := DefaultStrategy()

	_, err := strategy.Recommend(space, NewHistory(), 1)

	var emptyErr *searchspace.EmptyError

	require.ErrorAs(t, err, &emptyErr)
}

func TestStrategyRequiresMainRecommender(t *testing.T) {
	_, err := NewStrategy(NewFarthestPoint(), nil, searchspace.CandidateOptions{})

	assert.ErrorIs(t, err, ErrNilRecommender)
}

func TestDefaultStrategy(t *testing.T) {
	strategy := DefaultStrategy()

	require.NotNil(t, strategy)
	assert.Equal(t, "FPS", strategy.Initial().Name())
	assert.Equal(t, "SequentialGreedy", strategy.Main().Name())
	assert.False(t, strategy.Options().AllowRepeatedRecommendations)
	assert.False(t, strategy.Options().AllowRecommendingAlreadyMeasured)
}
