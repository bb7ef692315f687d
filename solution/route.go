package solution

// NewRoute opens a fresh empty route (depot-only) and returns it. The depot
// sentinel occupies a recycled or freshly appended arena slot.
func (s *Solution) NewRoute() *Route {
	depotIdx := s.allocDepotSlot()
	route := &Route{
		ID:          s.nextRouteID,
		DepotIdx:    depotIdx,
		NumElements: 1,
		selfIdx:     len(s.Routes),
	}
	s.nextRouteID++

	depot := s.node(depotIdx)
	*depot = Node{ID: 0, InRoute: true, RouteIdx: route.selfIdx, Prev: depotIdx, Next: depotIdx}

	s.Routes = append(s.Routes, route)

	return route
}

// allocDepotSlot returns an arena index for a new route's depot sentinel,
// recycling a freed slot when available.
func (s *Solution) allocDepotSlot() int {
	if n := len(s.freeDepotSlots); n > 0 {
		idx := s.freeDepotSlots[n-1]
		s.freeDepotSlots = s.freeDepotSlots[:n-1]
		return idx
	}
	s.nodes = append(s.nodes, Node{})
	return len(s.nodes) - 1
}

// AddAfter inserts customer node id right after anchor (an arena index,
// either a customer id or anchor.DepotIdx) in route, returning the exact
// cost delta. newNode must not currently be in any route; anchor must
// belong to route.
//
// The very first customer added to an empty route connects depot->new->depot
// (both edges), matching spec.md §4.1. Complexity: O(1).
func (s *Solution) AddAfter(route *Route, customerID int, anchorIdx int) (float64, error) {
	newNode := s.node(customerID)
	if newNode.InRoute {
		return 0, ErrNodeAlreadyInRoute
	}
	anchor := s.node(anchorIdx)
	if !anchor.InRoute || anchor.RouteIdx != route.selfIdx {
		return 0, ErrAnchorDetached
	}

	nextIdx := anchor.Next
	next := s.node(nextIdx)

	inst := s.Inst
	anchorID, nextID := s.IDOf(anchorIdx), s.IDOf(nextIdx)
	delta := inst.Dist(anchorID, customerID) + inst.Dist(customerID, nextID) - inst.Dist(anchorID, nextID)

	anchor.Next = customerID
	newNode.Prev = anchorIdx
	newNode.Next = nextIdx
	next.Prev = customerID

	newNode.InRoute = true
	newNode.RouteIdx = route.selfIdx

	route.NumElements++
	route.TotalDemand += newNode.Demand
	route.Cost += delta
	route.Modified = true
	s.Cost += delta

	return delta, nil
}

// Remove detaches the customer node with the given id from its route,
// returning the exact cost delta (always <= 0).
func (s *Solution) Remove(customerID int) (float64, error) {
	node := s.node(customerID)
	if !node.InRoute {
		return 0, ErrNodeDetached
	}
	route := s.Routes[node.RouteIdx]

	prevIdx, nextIdx := node.Prev, node.Next
	prev, next := s.node(prevIdx), s.node(nextIdx)

	inst := s.Inst
	prevID, nextID := s.IDOf(prevIdx), s.IDOf(nextIdx)
	delta := inst.Dist(prevID, nextID) - inst.Dist(prevID, customerID) - inst.Dist(customerID, nextID)

	prev.Next = nextIdx
	next.Prev = prevIdx

	route.NumElements--
	route.TotalDemand -= node.Demand
	route.Cost += delta
	route.Modified = true
	s.Cost += delta

	*node = Node{ID: customerID, Demand: node.Demand, RouteIdx: -1}

	return delta, nil
}

// IsEmpty reports whether route holds only its depot sentinel.
func (r *Route) IsEmpty() bool { return r.NumElements <= 1 }

// Customers returns route's customer ids in route order, depot excluded.
// cap bounds traversal (route size + 2) to guard against a corrupted
// circular list.
func (s *Solution) Customers(route *Route) ([]int, error) {
	out := make([]int, 0, route.NumElements)
	cap := route.NumElements + 2
	cur := s.node(route.DepotIdx).Next
	for i := 0; cur != route.DepotIdx; i++ {
		if i >= cap {
			return nil, ErrCycleGuardTripped
		}
		out = append(out, cur)
		cur = s.node(cur).Next
	}
	return out, nil
}

// RemoveEmptyRoutes compacts away every route with Removed == true or that
// holds only its depot sentinel, reassigning dense route indices (route IDs
// are kept), and recycling their depot arena slots.
func (s *Solution) RemoveEmptyRoutes() {
	kept := s.Routes[:0]
	for _, r := range s.Routes {
		if r.Removed || r.IsEmpty() {
			s.freeDepotSlots = append(s.freeDepotSlots, r.DepotIdx)
			continue
		}
		kept = append(kept, r)
	}
	s.Routes = kept

	for idx, r := range s.Routes {
		r.selfIdx = idx
		cur := r.DepotIdx
		s.node(cur).RouteIdx = idx
		for next := s.node(cur).Next; next != r.DepotIdx; next = s.node(next).Next {
			s.node(next).RouteIdx = idx
		}
	}
}
