// Package perturb implements the destroy-phase operators of the
// destroy-repair perturbation cycle: Sequential, Concentric, SISR, Route
// Removal, Random, and pattern-based removal/injection (spec.md §4.2).
//
// Every operator removes a target number of customers from a
// solution.Solution, shuffles the removed buffer (spec.md's "post-removal
// shuffle of the buffer before repair"), and returns the buffer for the
// repair package's insertion heuristics to reinsert. None of the operators
// mutate Solution.Cost beyond what solution.Remove already maintains
// incrementally.
//
// Random-walk traversal here follows a seed-and-expand shape, adapted from
// graph-wide traversal to a single customer's KNN neighborhood.
package perturb
