// Package localsearch implements the standard CVRP neighborhoods applied
// after every perturbation: intra-route 2-opt and or-opt (chain lengths
// 1..3), and inter-route SHIFT, SWAP, and CROSS-exchange, plus a feasibility
// repair pass that restores capacity before local search runs.
//
// Local search is dirty-flag gated: only routes with Route.Modified == true
// are revisited, and first-improvement is used throughout, matching
// spec.md §4.4. The intra-route passes reuse an array-based 2-opt idiom
// adapted to operate on one route's customer sequence at a time, rebuilding
// the route through solution.Solution's O(1) Remove/AddAfter primitives
// rather than mutating prev/next pointers directly.
package localsearch
