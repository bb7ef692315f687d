// Package ails implements the main anytime iterated local search loop:
// adaptive operator selection over the perturbation library, the
// construct -> feasibility -> local search -> accept cycle, the global
// heartbeat, and early-phase fleet minimization (spec.md §4.8-4.9).
//
// Searcher is built to run standalone (single-threaded use from
// cmd/ailscvrp) or as one of several goroutines registered with the
// multi-start coordinator's *errgroup.Group (package multistart); it
// implements relink.MainNotifier so the path-relinking goroutine can push
// a superior solution back into it under lock.
package ails
