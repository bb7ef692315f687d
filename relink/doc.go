// Package relink implements path relinking between pairs of elite
// solutions, run as a separate cooperating goroutine that recombines elite
// pairs and can notify the main AILS searcher of a superior solution
// (spec.md §4.7).
//
// The coordinator loop follows the same context-cancelable goroutine shape
// as loadReposParallel's errgroup usage: the caller owns a context.Context
// and an *errgroup.Group, and Run is meant to be registered with g.Go(...)
// alongside the main searcher and worker searchers built in package
// multistart.
package relink
