package repair

import (
	"testing"

	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/solution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridInstance(t *testing.T, n int, capacity int64) *instance.Instance {
	t.Helper()
	points := make([]instance.Point, n+1)
	demand := make([]int64, n+1)
	for i := 0; i <= n; i++ {
		points[i] = instance.Point{X: float64(i), Y: 0}
		if i > 0 {
			demand[i] = 1
		}
	}
	inst, err := instance.New(points, demand, instance.Options{Capacity: capacity})
	require.NoError(t, err)
	return inst
}

func TestGreedyInsert_AllCustomersPlaced(t *testing.T) {
	inst := gridInstance(t, 8, 3)
	s := solution.New(inst)

	pending := make([]int, inst.N)
	for i := range pending {
		pending[i] = i + 1
	}
	require.NoError(t, GreedyInsert(s, pending, GreedyCost, 3, 0))
	require.NoError(t, s.Validate())
}

func TestRegretKInsert_AllCustomersPlaced(t *testing.T) {
	inst := gridInstance(t, 12, 4)
	s := solution.New(inst)

	pending := make([]int, inst.N)
	for i := range pending {
		pending[i] = i + 1
	}
	err := RegretKInsert(s, pending, RegretKOptions{K: 3, MaxRoutes: 0})
	require.NoError(t, err)
	require.NoError(t, s.Validate())
}

func TestCache_TopMStructurallyValidAfterInsertion(t *testing.T) {
	inst := gridInstance(t, 10, 5)
	s := solution.New(inst)
	r0 := s.NewRoute()
	_, err := s.AddAfter(r0, 1, r0.DepotIdx)
	require.NoError(t, err)

	pending := []int{2, 3, 4, 5, 6, 7, 8, 9, 10}
	cache := NewCache(s, pending, 3)
	c, pos, ok := cache.Pop()
	require.True(t, ok)

	route := routeByID(s, pos.RouteID)
	if route == nil {
		route = s.NewRoute()
	}
	_, err = s.AddAfter(route, c, pos.PrevID)
	require.NoError(t, err)
	cache.Commit(c, pos)

	for id, e := range cache.entries {
		if !e.active {
			continue
		}
		for _, p := range e.topM {
			assert.True(t, validPosition(s, p), "stale position for customer %d", id)
		}
	}
}
