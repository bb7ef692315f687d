package solution

import (
	"testing"

	"github.com/routewise/ails-cvrp/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleInstance(t *testing.T, demand []int64, capacity int64) *instance.Instance {
	t.Helper()
	points := []instance.Point{
		{0, 0},
		{10, 0},
		{0, 10},
		{-10, 0},
	}
	inst, err := instance.New(points, demand, instance.Options{Capacity: capacity, Rounded: true})
	require.NoError(t, err)
	return inst
}

// Scenario 1 (spec.md §8): minimal 3-customer instance, single route.
func TestScenario_MinimalTriangleSingleRoute(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	s := New(inst)
	r := s.NewRoute()

	anchor := r.DepotIdx
	for _, c := range []int{1, 2, 3} {
		delta, err := s.AddAfter(r, c, anchor)
		require.NoError(t, err)
		_ = delta
		anchor = c
	}

	require.NoError(t, s.Validate())
	assert.Equal(t, 1, s.NumRoutes())
	assert.InDelta(t, 48.0, s.Cost, CostEpsilon)
}

// TestAddAfter_DepotAdjacentEdgeCost exercises a depot-incident edge against
// a known distance value. The first customer added to an empty route closes
// depot->customer->depot, so delta must equal exactly twice the depot-customer
// distance: both edges share the same endpoints.
func TestAddAfter_DepotAdjacentEdgeCost(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	s := New(inst)
	r := s.NewRoute()

	delta, err := s.AddAfter(r, 1, r.DepotIdx)
	require.NoError(t, err)

	want := 2 * inst.Dist(0, 1)
	assert.InDelta(t, want, delta, CostEpsilon)
	assert.InDelta(t, want, r.Cost, CostEpsilon)
	assert.InDelta(t, want, s.Cost, CostEpsilon)
}

// TestIDOf_MapsDepotArenaSlotsToZero verifies the single translation point
// all Dist calls must pass through: arena indices beyond Inst.N are depot
// sentinels and must map to node id 0; customer ids pass through unchanged.
func TestIDOf_MapsDepotArenaSlotsToZero(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	s := New(inst)
	r := s.NewRoute()

	assert.Greater(t, r.DepotIdx, inst.N)
	assert.Equal(t, 0, s.IDOf(r.DepotIdx))
	assert.Equal(t, 1, s.IDOf(1))
	assert.Equal(t, inst.N, s.IDOf(inst.N))
}

// Scenario 2 (spec.md §8): capacity forces a split into two routes.
func TestScenario_CapacityForcesSplit(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 4, 4, 4}, 10)
	s := New(inst)

	r1 := s.NewRoute()
	_, err := s.AddAfter(r1, 1, r1.DepotIdx)
	require.NoError(t, err)
	_, err = s.AddAfter(r1, 2, 1)
	require.NoError(t, err)

	r2 := s.NewRoute()
	_, err = s.AddAfter(r2, 3, r2.DepotIdx)
	require.NoError(t, err)

	require.NoError(t, s.Validate())
	assert.Equal(t, 2, s.NumRoutes())
	for _, r := range s.Routes {
		assert.LessOrEqual(t, r.TotalDemand, inst.Capacity)
	}
}

func TestAddAfter_ThenRemove_IsExactArithmeticIdentity(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	s := New(inst)
	r := s.NewRoute()

	_, err := s.AddAfter(r, 1, r.DepotIdx)
	require.NoError(t, err)

	costBefore := s.Cost
	demandBefore := r.TotalDemand

	delta, err := s.AddAfter(r, 2, 1)
	require.NoError(t, err)
	assert.NotZero(t, delta)

	undone, err := s.Remove(2)
	require.NoError(t, err)
	assert.InDelta(t, -delta, undone, 1e-9)
	assert.InDelta(t, costBefore, s.Cost, 1e-9)
	assert.Equal(t, demandBefore, r.TotalDemand)
}

func TestAddAfter_RejectsDoubleInsertion(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	s := New(inst)
	r := s.NewRoute()
	_, err := s.AddAfter(r, 1, r.DepotIdx)
	require.NoError(t, err)

	_, err = s.AddAfter(r, 1, r.DepotIdx)
	assert.ErrorIs(t, err, ErrNodeAlreadyInRoute)
}

func TestRemove_RejectsDetachedNode(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	s := New(inst)
	s.NewRoute()

	_, err := s.Remove(1)
	assert.ErrorIs(t, err, ErrNodeDetached)
}

func TestCloneIdempotence(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	a := New(inst)
	r := a.NewRoute()
	_, err := a.AddAfter(r, 1, r.DepotIdx)
	require.NoError(t, err)
	_, err = a.AddAfter(r, 2, 1)
	require.NoError(t, err)
	_, err = a.AddAfter(r, 3, 2)
	require.NoError(t, err)

	a.Clone(a)
	assert.Equal(t, 1, a.NumRoutes())
	require.NoError(t, a.Validate())
}

func TestClone_IndependentMutableState(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	a := New(inst)
	r := a.NewRoute()
	_, err := a.AddAfter(r, 1, r.DepotIdx)
	require.NoError(t, err)

	b := New(inst)
	b.Clone(a)

	_, err = b.AddAfter(b.Routes[0], 2, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.Cost, b.Cost)
	assert.Equal(t, 2, a.Routes[0].NumElements) // a untouched: depot + customer 1
}

func TestRemoveEmptyRoutes_Compacts(t *testing.T) {
	inst := triangleInstance(t, []int64{0, 1, 1, 1}, 10)
	s := New(inst)
	r1 := s.NewRoute()
	r2 := s.NewRoute()
	_, err := s.AddAfter(r2, 1, r2.DepotIdx)
	require.NoError(t, err)
	_, err = s.AddAfter(r2, 2, 1)
	require.NoError(t, err)
	_, err = s.AddAfter(r2, 3, 2)
	require.NoError(t, err)
	_ = r1

	s.RemoveEmptyRoutes()
	require.Len(t, s.Routes, 1)
	assert.Equal(t, 0, s.Routes[0].selfIdx)
	require.NoError(t, s.Validate())
}
