package elite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/solution"
)

func testInstance(t *testing.T) *instance.Instance {
	t.Helper()
	points := []instance.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {0, 1}, {0, 2}}
	demand := []int64{0, 1, 1, 1, 1, 1}
	inst, err := instance.New(points, demand, instance.Options{Capacity: 3})
	require.NoError(t, err)
	return inst
}

// buildSolution routes customers in the given order into a single route.
func buildSolution(t *testing.T, inst *instance.Instance, order []int) *solution.Solution {
	t.Helper()
	s := solution.New(inst)
	r := s.NewRoute()
	anchor := r.DepotIdx
	for _, c := range order {
		_, err := s.AddAfter(r, c, anchor)
		require.NoError(t, err)
		anchor = c
	}
	return s
}

func TestEliteSet_FirstInsertAlwaysAccepted(t *testing.T) {
	inst := testInstance(t)
	es, err := New(DefaultConfig())
	require.NoError(t, err)

	sol := buildSolution(t, inst, []int{1, 2, 3, 4, 5})
	ok := es.TryInsert(sol, 42.0, Initial, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, es.Size())
}

func TestEliteSet_RejectsExactDuplicate(t *testing.T) {
	inst := testInstance(t)
	es, err := New(DefaultConfig())
	require.NoError(t, err)

	sol1 := buildSolution(t, inst, []int{1, 2, 3, 4, 5})
	assert.True(t, es.TryInsert(sol1, 42.0, Initial, 0))

	sol2 := buildSolution(t, inst, []int{1, 2, 3, 4, 5})
	assert.False(t, es.TryInsert(sol2, 40.0, AILS, 1))
	assert.Equal(t, 1, es.Size())
}

func TestEliteSet_RowSumMatchesMatrixAfterInsert(t *testing.T) {
	inst := testInstance(t)
	cfg := DefaultConfig()
	cfg.MinDiversity = 0
	es, err := New(cfg)
	require.NoError(t, err)

	orders := [][]int{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{1, 3, 2, 4, 5},
		{2, 1, 4, 3, 5},
	}
	for i, order := range orders {
		sol := buildSolution(t, inst, order)
		es.TryInsert(sol, float64(10-i), AILS, int64(i))
	}

	es.mu.RLock()
	defer es.mu.RUnlock()
	n := len(es.entries)
	require.Greater(t, n, 1)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			if i != j {
				sum += es.dist[i][j]
			}
		}
		expectedAvg := sum / float64(n-1)
		assert.InDelta(t, expectedAvg, es.entries[i].AvgDist, 1e-9)
	}
}

func TestEliteSet_SizeNeverExceedsMax(t *testing.T) {
	inst := testInstance(t)
	cfg := DefaultConfig()
	cfg.MaxSize = 2
	cfg.MinDiversity = 0
	es, err := New(cfg)
	require.NoError(t, err)

	orders := [][]int{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{1, 3, 2, 4, 5},
		{2, 1, 4, 3, 5},
		{3, 1, 2, 5, 4},
	}
	for i, order := range orders {
		sol := buildSolution(t, inst, order)
		es.TryInsert(sol, float64(10-i), AILS, int64(i))
		assert.LessOrEqual(t, es.Size(), 2)
	}
}

func TestEliteSet_RejectsInvalidBeta(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Beta = 1.5
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidBeta)
}

func TestPatternFrequencyMap_ObservesWindows(t *testing.T) {
	inst := testInstance(t)
	sol := buildSolution(t, inst, []int{1, 2, 3, 4, 5})

	pm := newPatternFrequencyMap()
	pm.observe(sol, 3)

	assert.Greater(t, pm.UniqueCount(), 0)
	assert.Greater(t, pm.totalExtracted, int64(0))
}

func TestCanonicalWindow_MirrorsCollapse(t *testing.T) {
	fwd := canonicalWindow([]int{0, 1, 2})
	rev := canonicalWindow([]int{2, 1, 0})
	assert.Equal(t, fwd, rev)
}

func TestIsMature_FalseOnFreshSet(t *testing.T) {
	inst := testInstance(t)
	es, err := New(DefaultConfig())
	require.NoError(t, err)

	sol := buildSolution(t, inst, []int{1, 2, 3, 4, 5})
	es.TryInsert(sol, 10, Initial, 0)

	assert.False(t, IsMature(es, inst.N))
}
