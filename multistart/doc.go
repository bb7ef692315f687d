// Package multistart coordinates one protected main searcher, N worker
// searchers, and the path-relinking goroutine into a single anytime run
// (spec.md §4.10). Lifecycle management follows
// vanderheijden86-beadwork/pkg/workspace/loader.go's errgroup.WithContext
// shape: every goroutine shares one cancelable context and the first
// non-nil error tears the whole group down.
package multistart
