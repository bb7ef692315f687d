package ails

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/elite"
)

func TestTryFleetMinimization_NeverIncreasesRouteCount(t *testing.T) {
	inst := gridInstance(t, 24, 6)
	cfg := DefaultConfig()
	cfg.FleetMinMaxIter = 5

	initial, err := Construct(inst, cfg)
	require.NoError(t, err)
	before := initial.NumRoutes()

	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	s := NewSearcher(0, true, inst, cfg, es, initial, 5, time.Now(), time.Hour, testLogger())
	s.tryFleetMinimization()

	best, _ := s.Best()
	require.NoError(t, best.Validate())
	require.LessOrEqual(t, best.NumRoutes(), before)
}

func TestLeastLoadedRoute_PicksFewestCustomers(t *testing.T) {
	inst := gridInstance(t, 6, 10)
	cfg := DefaultConfig()
	sol, err := Construct(inst, cfg)
	require.NoError(t, err)

	r := leastLoadedRoute(sol)
	require.NotNil(t, r)
	for _, other := range sol.Routes {
		if other == nil || other.Removed || other == r {
			continue
		}
		require.LessOrEqual(t, r.NumElements, other.NumElements)
	}
}

func TestEvictRoute_EmptiesRouteAndReturnsCustomers(t *testing.T) {
	inst := gridInstance(t, 6, 10)
	cfg := DefaultConfig()
	sol, err := Construct(inst, cfg)
	require.NoError(t, err)

	r := sol.Routes[0]
	want := r.NumElements - 1

	ids := evictRoute(sol, r)
	require.Len(t, ids, want)
	require.True(t, r.IsEmpty())
}
