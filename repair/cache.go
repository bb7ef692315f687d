package repair

import (
	"container/heap"
	"sort"

	"github.com/routewise/ails-cvrp/solution"
)

// bufferM is added to K when sizing each customer's cached top-M position
// list, so a handful of invalidations can be absorbed before a customer's
// regret must be recomputed from scratch.
const bufferM = 3

// regretEntry is the cached state for one pending customer: whether it is
// still awaiting insertion, the version stamp under which its cache was last
// computed, its regret value, and the routes its top-M positions touch.
type regretEntry struct {
	customerID    int
	active        bool
	version       int
	regretValue   float64
	topM          []Position
	watchedRoutes map[int]bool
}

// Cache is the incremental regret-k cache described in spec.md §4.3: a
// reverse-KNN index, a route-watchers index, and a lazy max-heap keyed by
// (regretValue, customerID) with version-tagged entries so stale heap nodes
// are detected and recomputed on pop rather than by eager invalidation.
type Cache struct {
	sol *solution.Solution
	k   int
	m   int

	entries map[int]*regretEntry

	// reverseKNN[j] lists every customer that has j in its KNN list,
	// including the depot (j == 0); built once per destroy-repair cycle.
	reverseKNN map[int][]int

	// routeWatchers[routeID] is the set of customers whose topM currently
	// includes a position in that route.
	routeWatchers map[int]map[int]bool

	h regretHeap
}

// NewCache builds a fresh cache for the given pending customer set and
// regret width k (top-M = k + bufferM). The reverse-KNN index is built once
// here and reused for the cache's lifetime.
func NewCache(sol *solution.Solution, pending []int, k int) *Cache {
	c := &Cache{
		sol:           sol,
		k:             k,
		m:             k + bufferM,
		entries:       make(map[int]*regretEntry, len(pending)),
		reverseKNN:    make(map[int][]int),
		routeWatchers: make(map[int]map[int]bool),
	}

	for _, p := range pending {
		for _, nb := range sol.Inst.KNN(p) {
			c.reverseKNN[nb] = append(c.reverseKNN[nb], p)
		}
		e := &regretEntry{customerID: p, active: true}
		c.entries[p] = e
	}

	for _, p := range pending {
		c.recompute(p)
	}

	return c
}

// recompute rebuilds customer p's top-M candidate positions and regret
// value from the live solution state, bumps its version, updates the
// route-watchers index, and pushes the refreshed entry onto the heap.
func (c *Cache) recompute(p int) {
	e, ok := c.entries[p]
	if !ok || !e.active {
		return
	}

	c.unwatch(p)

	positions := candidatePositions(c.sol, p, c.m)
	sort.Slice(positions, func(i, j int) bool { return positions[i].Delta < positions[j].Delta })
	if len(positions) > c.m {
		positions = positions[:c.m]
	}

	e.topM = positions
	e.regretValue = regretOf(positions, c.k)
	e.version++

	watched := make(map[int]bool)
	for _, pos := range positions {
		watched[pos.RouteID] = true
	}
	e.watchedRoutes = watched
	for rid := range watched {
		if c.routeWatchers[rid] == nil {
			c.routeWatchers[rid] = make(map[int]bool)
		}
		c.routeWatchers[rid][p] = true
	}

	heap.Push(&c.h, heapItem{customerID: p, regret: e.regretValue, version: e.version})
}

// unwatch removes p from every route-watchers set it currently belongs to.
func (c *Cache) unwatch(p int) {
	e, ok := c.entries[p]
	if !ok {
		return
	}
	for rid := range e.watchedRoutes {
		if set := c.routeWatchers[rid]; set != nil {
			delete(set, p)
		}
	}
}

// regretOf computes regret = sum_{j=2..k}(delta_j - delta_1) over at most k
// sorted positions; if fewer than k positions exist, the shortfall is
// treated as zero additional regret contribution (no further alternative to
// be worse than).
func regretOf(positions []Position, k int) float64 {
	if len(positions) == 0 {
		return 0
	}
	best := positions[0].Delta
	var regret float64
	for j := 1; j < k && j < len(positions); j++ {
		regret += positions[j].Delta - best
	}
	return regret
}

// Pop returns the customer with maximum regret and its best cached
// position, recomputing and re-pushing any stale heap entries it encounters
// along the way. Returns ok == false once every pending customer has been
// inserted.
func (c *Cache) Pop() (customerID int, best Position, ok bool) {
	recomputedThisCall := make(map[int]bool)

	for c.h.Len() > 0 {
		top := heap.Pop(&c.h).(heapItem)
		e, exists := c.entries[top.customerID]
		if !exists || !e.active {
			continue
		}
		if e.version != top.version {
			continue // stale snapshot; the live entry was already re-pushed
		}
		if len(e.topM) == 0 || !validPosition(c.sol, e.topM[0]) {
			// Recompute at most once per customer per Pop call: if the
			// solution genuinely offers no position yet (e.g. no route
			// exists at all), recomputing again would find the same empty
			// result and spin forever.
			if recomputedThisCall[top.customerID] {
				continue
			}
			recomputedThisCall[top.customerID] = true
			c.recompute(top.customerID)
			continue
		}
		return top.customerID, e.topM[0], true
	}
	return 0, Position{}, false
}

// Commit marks customerID inserted at pos, bumps its watchers out of the
// index, and invalidates every customer whose cache could be affected by
// this insertion: those reachable from the three new-edge endpoints via
// reverse-KNN, every watcher of the route that received the insertion, and
// the inserted customer's own KNN list (spec.md §4.3 steps 1-2).
func (c *Cache) Commit(customerID int, pos Position) {
	e := c.entries[customerID]
	e.active = false
	c.unwatch(customerID)

	affected := make(map[int]bool)
	for _, j := range c.reverseKNN[pos.PrevID] {
		affected[j] = true
	}
	for _, j := range c.reverseKNN[pos.NextID] {
		affected[j] = true
	}
	for _, j := range c.reverseKNN[customerID] {
		affected[j] = true
	}
	for j := range c.routeWatchers[pos.RouteID] {
		affected[j] = true
	}
	for _, j := range c.sol.Inst.KNN(customerID) {
		affected[j] = true
	}

	active := 0
	for _, e := range c.entries {
		if e.active {
			active++
		}
	}
	touched := 0
	for j := range affected {
		if ent, ok := c.entries[j]; ok && ent.active {
			touched++
		}
	}

	if active > 0 && touched*2 > active {
		// Invalidation touched > 50% of active customers: rebuild from
		// scratch rather than recompute piecemeal (spec.md §4.3 step 4).
		c.h = c.h[:0]
		heap.Init(&c.h)
		for j, ent := range c.entries {
			if ent.active {
				c.recompute(j)
			}
		}
		return
	}

	for j := range affected {
		if ent, ok := c.entries[j]; ok && ent.active {
			c.recompute(j)
		}
	}
}

// validPosition structurally validates a cached Position against the live
// route: prev.next must still equal next, and both must still belong to the
// route named. Traversal uses no loop, so no cycle guard is needed here.
func validPosition(sol *solution.Solution, pos Position) bool {
	route := routeByID(sol, pos.RouteID)
	if route == nil {
		return false
	}
	prev := sol.Node(pos.PrevID)
	return prev.InRoute && prev.Next == pos.NextID && sol.Routes[prev.RouteIdx] == route
}

// candidatePositions gathers insertion candidates for customer p restricted
// to routes reachable via p's KNN list (falling back to every route if KNN
// yields nothing), mirroring the greedy heuristic's restrict-then-fallback
// policy.
func candidatePositions(sol *solution.Solution, p int, limit int) []Position {
	seenRoutes := make(map[int]bool)
	var out []Position

	for _, nb := range sol.Inst.KNN(p) {
		if nb == 0 {
			continue
		}
		node := sol.Node(nb)
		if !node.InRoute || seenRoutes[node.RouteIdx] {
			continue
		}
		seenRoutes[node.RouteIdx] = true
		route := sol.Routes[node.RouteIdx]
		if route.TotalDemand+sol.Node(p).Demand > sol.Inst.Capacity {
			continue
		}
		anchor, delta, ok := cheapestInRoute(sol, route, p)
		if ok {
			out = append(out, Position{RouteID: route.ID, PrevID: anchor, NextID: sol.Node(anchor).Next, Delta: delta, CustomerID: p})
		}
	}

	if len(out) == 0 {
		for _, route := range sol.Routes {
			if route.Removed || route.TotalDemand+sol.Node(p).Demand > sol.Inst.Capacity {
				continue
			}
			anchor, delta, ok := cheapestInRoute(sol, route, p)
			if ok {
				out = append(out, Position{RouteID: route.ID, PrevID: anchor, NextID: sol.Node(anchor).Next, Delta: delta, CustomerID: p})
			}
		}
	}

	return out
}

// heapItem is one lazy max-heap node.
type heapItem struct {
	customerID int
	regret     float64
	version    int
}

// regretHeap is a max-heap on regret, tie-broken by ascending customerID
// for determinism.
type regretHeap []heapItem

func (h regretHeap) Len() int { return len(h) }
func (h regretHeap) Less(i, j int) bool {
	if h[i].regret != h[j].regret {
		return h[i].regret > h[j].regret
	}
	return h[i].customerID < h[j].customerID
}
func (h regretHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *regretHeap) Push(x any)        { *h = append(*h, x.(heapItem)) }
func (h *regretHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
