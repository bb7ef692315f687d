// Package elite maintains the size-bounded set of diverse, high-quality
// solutions used to seed restarts and drive path relinking (spec.md §4.6).
//
// EliteSet follows a single-RWMutex locking idiom: write methods take the
// exclusive lock and recompute every cached derived value before release,
// read methods take the shared lock and never block each other.
package elite
