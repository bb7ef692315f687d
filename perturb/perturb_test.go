package perturb

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/solution"
)

func buildTestInstance(t *testing.T) *instance.Instance {
	t.Helper()
	points := []instance.Point{
		{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0},
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
	}
	demand := make([]int64, len(points))
	for i := range demand {
		demand[i] = 1
	}
	demand[0] = 0
	inst, err := instance.New(points, demand, instance.Options{Capacity: 4})
	require.NoError(t, err)
	return inst
}

func buildTestSolution(t *testing.T, inst *instance.Instance) *solution.Solution {
	t.Helper()
	s := solution.New(inst)

	r1 := s.NewRoute()
	anchor := r1.DepotIdx
	for _, c := range []int{1, 2, 3, 4} {
		_, err := s.AddAfter(r1, c, anchor)
		require.NoError(t, err)
		anchor = c
	}

	r2 := s.NewRoute()
	anchor = r2.DepotIdx
	for _, c := range []int{5, 6, 7, 8} {
		_, err := s.AddAfter(r2, c, anchor)
		require.NoError(t, err)
		anchor = c
	}
	return s
}

func TestSequential_RemovesWithinSingleRoute(t *testing.T) {
	inst := buildTestInstance(t)
	s := buildTestSolution(t, inst)
	rng := rand.New(rand.NewSource(1))

	removed, err := Sequential(rng, s, 2)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	for _, c := range removed {
		assert.False(t, s.Node(c).InRoute)
	}
}

func TestConcentric_RemovesPresentNeighbors(t *testing.T) {
	inst := buildTestInstance(t)
	s := buildTestSolution(t, inst)
	rng := rand.New(rand.NewSource(2))

	removed, err := Concentric(rng, s, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(removed), 3)
	for _, c := range removed {
		assert.False(t, s.Node(c).InRoute)
	}
}

func TestRandom_RemovesExactlyOmega(t *testing.T) {
	inst := buildTestInstance(t)
	s := buildTestSolution(t, inst)
	rng := rand.New(rand.NewSource(3))

	removed, err := Random(rng, s, 4)
	require.NoError(t, err)
	assert.Len(t, removed, 4)
}

func TestRandom_EmptySolutionErrors(t *testing.T) {
	inst := buildTestInstance(t)
	s := solution.New(inst)
	rng := rand.New(rand.NewSource(4))

	_, err := Random(rng, s, 2)
	assert.ErrorIs(t, err, ErrEmptySolution)
}

func TestRouteRemoval_FallsBackToRandomWithOneRoute(t *testing.T) {
	inst := buildTestInstance(t)
	s := solution.New(inst)
	r := s.NewRoute()
	anchor := r.DepotIdx
	for _, c := range []int{1, 2, 3} {
		_, err := s.AddAfter(r, c, anchor)
		require.NoError(t, err)
		anchor = c
	}
	rng := rand.New(rand.NewSource(5))

	removed, err := RouteRemoval(rng, s, 2)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
}

func TestSISR_RemovesAndRecreateRestoresAllCustomers(t *testing.T) {
	inst := buildTestInstance(t)
	s := buildTestSolution(t, inst)
	rng := rand.New(rand.NewSource(6))
	cfg := DefaultSISRConfig()

	removed, err := SISR(rng, s, 3, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, removed)

	order := pickRecreateOrder(rng)
	err = SISRRecreate(rng, s, removed, order, cfg)
	require.NoError(t, err)

	for _, c := range removed {
		assert.True(t, s.Node(c).InRoute)
	}
	require.NoError(t, s.Validate())
}

func TestWindowStartContaining_AlwaysContainsPos(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 10
		pos := rng.Intn(n)
		size := 1 + rng.Intn(n)
		start := windowStartContaining(rng, pos, size, n)
		assert.GreaterOrEqual(t, pos, start)
		assert.Less(t, pos, start+minInt(size, n))
		assert.GreaterOrEqual(t, start, 0)
		assert.LessOrEqual(t, start+minInt(size, n), n)
	}
}

func TestPickRecreateOrder_StaysWithinEnum(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	seen := map[RecreateOrder]bool{}
	for i := 0; i < 200; i++ {
		seen[pickRecreateOrder(rng)] = true
	}
	assert.True(t, seen[OrderRandom] || seen[OrderDemand] || seen[OrderFar] || seen[OrderClose])
}
