// Package repair implements the recreate half of destroy-repair: greedy
// cheapest-insertion (Distance and Cost variants) and Regret-k insertion
// backed by an incremental regret cache, per spec.md §4.3.
//
// The incremental cache (see cache.go) avoids recomputing every customer's
// regret after each insertion by tracking, per customer, the distinct
// routes its top-M candidate positions touch, and invalidating only the
// customers whose cached positions could have changed: those reachable via
// the reverse-KNN index from the three endpoints of the last insertion, plus
// every customer currently watching the route that received the insertion.
package repair
