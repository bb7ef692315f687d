// Package vrpio reads TSPLIB-style CVRP instance files and writes solution
// files in spec.md §6's output grammar:
//
//	Route 1 : 4 7 2
//	Route 2 : 5 1 6 3
//	Cost 123.45
//
// written to <solutionDir>/<instanceName>.sol.
package vrpio
