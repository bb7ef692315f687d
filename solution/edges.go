package solution

// edgeKey is an unordered pair of customer/depot arena ids, canonicalized
// so {a,b} and {b,a} compare equal.
type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// EdgeSet returns the set of unordered consecutive-customer edges across
// every non-removed route, using customer ids (depot edges are included
// with id 0 standing in for every route's depot, so depot-incident edges
// from different routes are NOT conflated: we key them by (0, customerID)
// duplicated safely because a customer has at most one depot-adjacent edge
// per endpoint in a simple route).
func (s *Solution) EdgeSet() map[edgeKey]struct{} {
	set := make(map[edgeKey]struct{})
	for _, r := range s.Routes {
		if r.Removed {
			continue
		}
		cur := r.DepotIdx
		for i := 0; i < r.NumElements; i++ {
			next := s.node(cur).Next
			set[makeEdgeKey(s.IDOf(cur), s.IDOf(next))] = struct{}{}
			cur = next
		}
	}
	return set
}

// IDOf returns the customer id for a non-depot arena index, or 0 for any
// depot sentinel (depot sentinels occupy arena indices > N). Every call into
// Instance.Dist must pass arena indices through IDOf first: Dist is indexed
// over [0,N], while a route's depot sentinel lives at an arena slot > N.
func (s *Solution) IDOf(arenaIdx int) int {
	if arenaIdx <= s.Inst.N {
		return arenaIdx
	}
	return 0
}

// EdgeDistance computes the normalized symmetric-difference distance
// between a and b's edge sets: |E1 ^ E2| / |E1 U E2| (spec.md §4.6).
// Returns 0 for two empty solutions (vacuously identical).
func EdgeDistance(a, b *Solution) float64 {
	ea, eb := a.EdgeSet(), b.EdgeSet()
	union := 0
	symDiff := 0
	for k := range ea {
		union++
		if _, ok := eb[k]; !ok {
			symDiff++
		}
	}
	for k := range eb {
		if _, ok := ea[k]; !ok {
			union++
			symDiff++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(symDiff) / float64(union)
}
