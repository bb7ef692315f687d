package relink

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/elite"
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

func TestGuideNeighbors_MatchesOrder(t *testing.T) {
	inst := testInstance(t)
	sol := buildSolution(t, inst, []int{1, 2, 3, 4, 5})

	prev, next := guideNeighbors(sol, 3)
	assert.Equal(t, 2, prev)
	assert.Equal(t, 4, next)

	prev, next = guideNeighbors(sol, 1)
	assert.Equal(t, 0, prev)
	assert.Equal(t, 2, next)
}

func TestMatchesGuide_TrueForIdenticalSolutions(t *testing.T) {
	inst := testInstance(t)
	a := buildSolution(t, inst, []int{1, 2, 3, 4, 5})
	b := buildSolution(t, inst, []int{1, 2, 3, 4, 5})

	for id := 1; id <= 5; id++ {
		assert.True(t, matchesGuide(a, b, id))
	}
}

func TestRelinkPair_ConvergesTowardGuideOrder(t *testing.T) {
	inst := testInstance(t)
	a := buildSolution(t, inst, []int{1, 2, 3, 4, 5})
	b := buildSolution(t, inst, []int{5, 4, 3, 2, 1})

	rng := rand.New(rand.NewSource(42))
	ea := &elite.EliteSolution{Sol: a, F: a.Cost}
	eb := &elite.EliteSolution{Sol: b, F: b.Cost}

	best, bestF := relinkPair(rng, pair{a: ea, b: eb}, 50)
	require.NotNil(t, best)
	assert.InDelta(t, bestF, best.Cost, 1e-6)
	require.NoError(t, best.Validate())
}

type fakeNotifier struct {
	notified bool
}

func (f *fakeNotifier) NotifyPRBetterSolution(sol *solution.Solution, fValue float64) {
	f.notified = true
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	inst := testInstance(t)
	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.MinEliteSizeForPR = 2
	cfg.WaitSleep = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = Run(ctx, es, &fakeNotifier{}, cfg, 1, nil)
	assert.NoError(t, err)
	_ = inst
}

func TestRouletteSelect_ExcludesGivenEntry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := &elite.EliteSolution{Score: 1}
	b := &elite.EliteSolution{Score: 2}
	entries := []*elite.EliteSolution{a, b}

	for i := 0; i < 20; i++ {
		picked := rouletteSelect(rng, entries, a)
		assert.Same(t, b, picked)
	}
}
