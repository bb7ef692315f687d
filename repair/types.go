package repair

import "errors"

// Sentinel errors for the repair package.
var (
	// ErrNoFeasiblePosition indicates no route (existing or new) could
	// accept a customer at all, even ignoring capacity (spec.md §4.11's
	// "insert at cheapest position regardless of capacity" fallback should
	// be exhausted before this is ever returned).
	ErrNoFeasiblePosition = errors.New("repair: no insertion position available")

	// ErrEmptySolution indicates insertion was attempted with zero routes
	// and the fleet ceiling forbids opening one.
	ErrEmptySolution = errors.New("repair: no route available and fleet ceiling reached")
)

// GreedyVariant selects how many KNN neighbors greedy insertion examines per
// pending customer (spec.md §4.3).
type GreedyVariant int

const (
	// GreedyDistance examines only the single nearest inserted neighbor.
	GreedyDistance GreedyVariant = iota

	// GreedyCost examines up to Phi nearest inserted neighbors.
	GreedyCost
)

// Order selects the ordering heuristic used by SISR's recreate phase
// (spec.md §4.2, "Recreate ordering").
type Order int

const (
	OrderRandom Order = iota
	OrderDemand
	OrderFar
	OrderClose
)

// Position identifies a candidate insertion slot as (routeID, prevID,
// nextID, Δ). It is stable under further mutation of the route and is
// revalidated against the live route before use (spec.md §4.3).
type Position struct {
	RouteID    int
	PrevID     int
	NextID     int
	Delta      float64
	CustomerID int
}
