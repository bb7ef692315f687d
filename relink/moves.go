package relink

import (
	"github.com/routewise/ails-cvrp/solution"
)

// guideNeighbors returns the guide's two edge-neighbors of customer id,
// ignoring order (depot represented as 0).
func guideNeighbors(guide *solution.Solution, id int) (prev, next int) {
	n := guide.Node(id)
	route := guide.Routes[n.RouteIdx]
	ids, err := guide.Customers(route)
	if err != nil {
		return 0, 0
	}
	pos := -1
	for i, c := range ids {
		if c == id {
			pos = i
			break
		}
	}
	if pos == -1 {
		return 0, 0
	}
	if pos == 0 {
		prev = 0
	} else {
		prev = ids[pos-1]
	}
	if pos == len(ids)-1 {
		next = 0
	} else {
		next = ids[pos+1]
	}
	return prev, next
}

// currentNeighbors mirrors guideNeighbors for the current solution.
func currentNeighbors(cur *solution.Solution, id int) (prev, next int) {
	return guideNeighbors(cur, id)
}

// matchesGuide reports whether id's current edge-neighbor set equals its
// guide edge-neighbor set.
func matchesGuide(cur, guide *solution.Solution, id int) bool {
	cp, cn := currentNeighbors(cur, id)
	gp, gn := guideNeighbors(guide, id)
	return (cp == gp && cn == gn) || (cp == gn && cn == gp)
}

// relocateTowardGuide tries to move customer id in cur so that it sits
// immediately after guide's predecessor neighbor of id, the standard
// "shift" path-relinking move (spec.md §4.7 step 2). Returns whether a
// structural change was made.
func relocateTowardGuide(cur *solution.Solution, guide *solution.Solution, id int) (bool, error) {
	gp, _ := guideNeighbors(guide, id)

	curAnchor, _ := currentNeighbors(cur, id)
	if curAnchor == gp {
		return false, nil // already there
	}

	var targetRoute *solution.Route
	var anchorIdx int
	if gp == 0 || !cur.Node(gp).InRoute {
		// Guide places id right after a depot, or its guide-predecessor is
		// unavailable in cur; fall back to id's own current route's depot
		// as the closest available anchor.
		targetRoute = cur.Routes[cur.Node(id).RouteIdx]
		anchorIdx = targetRoute.DepotIdx
	} else {
		targetRoute = cur.Routes[cur.Node(gp).RouteIdx]
		anchorIdx = gp
	}

	if _, err := cur.Remove(id); err != nil {
		return false, err
	}
	if _, err := cur.AddAfter(targetRoute, id, anchorIdx); err != nil {
		return false, err
	}
	return true, nil
}

// swapTowardGuide swaps two customers' positions; relinkPair falls back to
// it when relocateTowardGuide fails or reports no change. No capacity
// check is made (spec.md §4.7's "standard shift/swap/cross moves").
func swapTowardGuide(cur *solution.Solution, a, b int) error {
	routeA := cur.Routes[cur.Node(a).RouteIdx]
	routeB := cur.Routes[cur.Node(b).RouteIdx]

	anchorA, _ := currentNeighbors(cur, a)
	anchorB, _ := currentNeighbors(cur, b)

	if _, err := cur.Remove(a); err != nil {
		return err
	}
	if _, err := cur.Remove(b); err != nil {
		return err
	}

	anchorAIdx := resolveAnchor(cur, routeB, anchorB)
	if _, err := cur.AddAfter(routeB, a, anchorAIdx); err != nil {
		return err
	}
	anchorBIdx := resolveAnchor(cur, routeA, anchorA)
	if _, err := cur.AddAfter(routeA, b, anchorBIdx); err != nil {
		return err
	}
	return nil
}

func resolveAnchor(sol *solution.Solution, route *solution.Route, neighborID int) int {
	if neighborID == 0 || !sol.Node(neighborID).InRoute {
		return route.DepotIdx
	}
	return neighborID
}
