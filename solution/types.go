package solution

import (
	"errors"

	"github.com/routewise/ails-cvrp/instance"
)

// Sentinel errors for route/solution invariants.
var (
	// ErrNodeAlreadyInRoute indicates addAfter was called on a node that is
	// already present in some route.
	ErrNodeAlreadyInRoute = errors.New("solution: node already belongs to a route")

	// ErrAnchorDetached indicates addAfter's anchor node does not belong to
	// any route.
	ErrAnchorDetached = errors.New("solution: anchor node is detached")

	// ErrNodeDetached indicates remove was called on a node not currently in
	// any route.
	ErrNodeDetached = errors.New("solution: node is not in any route")

	// ErrMissingCustomers indicates a structural check found customers absent
	// from every route.
	ErrMissingCustomers = errors.New("solution: customers missing from solution")

	// ErrCostMismatch indicates the cached cost diverged from the literal sum
	// of route costs beyond tolerance.
	ErrCostMismatch = errors.New("solution: cached cost diverges from route sum")

	// ErrCycleGuardTripped indicates a route traversal exceeded its iteration
	// cap, which would otherwise indicate a corrupted circular list.
	ErrCycleGuardTripped = errors.New("solution: route traversal cycle guard tripped")
)

// CostEpsilon is the tolerance used when comparing floating point costs for
// equality (see spec.md §8, "Sigma fRoute == f within epsilon").
const CostEpsilon = 1e-6

// Node is one slot in a route's circular doubly-linked list: either a
// customer (ID in [1, N]) or a route's private depot sentinel (ID == 0).
//
// Prev and Next are indices into the owning Solution's node arena, not
// pointers, so cloning a Solution is a flat copy of the arena plus route
// bookkeeping.
type Node struct {
	// ID is the customer id, or 0 for a depot sentinel.
	ID int

	// Demand is the customer's demand (0 for the depot).
	Demand int64

	// InRoute reports whether this node currently sits in some route.
	// Always true for depot sentinels once their route exists.
	InRoute bool

	// RouteIdx is the index into Solution.Routes of the owning route, or -1
	// if InRoute is false.
	RouteIdx int

	// Prev and Next are arena indices of this node's neighbors within its
	// route's circular list.
	Prev, Next int

	// AbsenceCounter is a per-customer counter of unassigned rounds; no
	// package in this module sets or reads it (ails' fleet minimization
	// does not track absences).
	AbsenceCounter int

	// Modified is a per-node dirty flag; no package in this module sets or
	// reads it (local search gates on Route.Modified instead).
	Modified bool
}

// Route is a circular doubly-linked list of nodes, anchored at a private
// depot sentinel (DepotIdx). Customer nodes are referenced indirectly via
// the arena; Route itself stores only cached aggregates.
type Route struct {
	// ID is a stable route identifier (nameRoute), unique within a Solution
	// for the route's lifetime; RemoveEmptyRoutes keeps it unchanged and
	// IDs are never reused.
	ID int

	// DepotIdx is the arena index of this route's depot sentinel node.
	DepotIdx int

	// NumElements counts the depot plus every customer in the route.
	NumElements int

	// TotalDemand is the sum of customer demands currently in the route.
	TotalDemand int64

	// Cost (fRoute) is the cached sum of consecutive edge distances,
	// including both depot edges.
	Cost float64

	// Removed marks a route that has been emptied and is pending compaction
	// by Solution.RemoveEmptyRoutes; removed routes are skipped by all
	// traversal helpers.
	Removed bool

	// Modified is a dirty flag: local search only revisits routes where
	// Modified is true, then clears it.
	Modified bool

	// selfIdx caches this route's slot in the owning Solution.Routes,
	// keeping AddAfter/Remove O(1) without a linear search; kept in sync by
	// NewRoute and RemoveEmptyRoutes.
	selfIdx int
}

// Feasible reports whether the route's total demand respects capacity.
func (r *Route) Feasible(inst *instance.Instance) bool {
	return r.TotalDemand <= inst.Capacity
}

// Solution is an ordered collection of routes plus cached total cost,
// servicing every customer of its Instance exactly once (outside of
// transient fleet-minimization windows, see package ails).
type Solution struct {
	Inst *instance.Instance

	// nodes is the shared arena: indices [1, N] are customer nodes (ID ==
	// index); indices > N are route depot sentinels.
	nodes []Node

	// freeDepotSlots recycles arena indices vacated by removed routes.
	freeDepotSlots []int

	// Routes holds every route, including ones pending removal (Removed ==
	// true) until the next RemoveEmptyRoutes compaction.
	Routes []*Route

	// Cost (f) is the cached sum of every route's Cost.
	Cost float64

	// nextRouteID issues unique route ids across the Solution's lifetime.
	nextRouteID int

	// Absent optionally lists customer ids not currently assigned to any
	// route; Clone copies it, but no package in this module populates it.
	Absent []int
}

// New allocates an empty Solution over inst with no routes.
func New(inst *instance.Instance) *Solution {
	nodes := make([]Node, inst.N+1)
	for id := 1; id <= inst.N; id++ {
		nodes[id] = Node{ID: id, Demand: inst.Demand[id], RouteIdx: -1}
	}

	return &Solution{
		Inst:  inst,
		nodes: nodes,
	}
}

// node returns a pointer into the shared arena for the given arena index.
func (s *Solution) node(idx int) *Node { return &s.nodes[idx] }

// Node exposes a read-only snapshot of the customer node with the given id
// (1..N). It is a value copy; callers must use the mutating methods on
// Solution/Route to change state.
func (s *Solution) Node(id int) Node { return s.nodes[id] }

// NumCustomers returns the instance's customer count (constant across the
// Solution's lifetime).
func (s *Solution) NumCustomers() int { return s.Inst.N }

// NumRoutes returns the count of non-removed routes.
func (s *Solution) NumRoutes() int {
	n := 0
	for _, r := range s.Routes {
		if !r.Removed {
			n++
		}
	}
	return n
}
