// Package solution implements the CVRP route/solution data model: circular
// doubly-linked routes with O(1) node removal and O(1) insertion-after-node,
// plus incremental cost and demand maintenance.
//
// Every customer node lives in a single shared arena (Solution.nodes),
// addressed by stable integer index equal to its customer id; prev/next
// links are arena indices rather than pointers, keeping hot-path traversal
// allocation-free in the same adjacency-by-index style as a CSR-backed
// adjacency list. Each Route owns a private depot sentinel node, also held
// in the arena, so that a customer's position is always expressed as
// "between two arena indices" regardless of which route it belongs to.
//
// A Solution is constructed once per searcher goroutine (see package ails)
// and mutated in place across iterations; Clone deep-copies the topology by
// index so two Solutions never share mutable node state.
package solution
