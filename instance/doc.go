// Package instance defines the immutable problem description consumed by every
// other package in ails-cvrp: customer ids, demands, vehicle capacity, the
// pairwise distance matrix, and a per-customer k-nearest-neighbor index.
//
// An Instance is built once (New or NewFromMatrix) and never mutated again.
// All downstream components (solution, localsearch, perturb, repair, elite,
// ails, multistart) hold a *Instance and treat it as read-only, so it is safe
// to share across goroutines without locking.
//
// Customer ids are dense integers 1..N; the depot is always id 0.
package instance
