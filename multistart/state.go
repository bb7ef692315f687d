package multistart

import "sync/atomic"

// State is a worker's lifecycle stage (spec.md §4.10:
// CREATED -> ACTIVE -> (STAGNANT -> ACTIVE)* -> TERMINATED).
type State int32

const (
	StateCreated State = iota
	StateActive
	StateStagnant
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateActive:
		return "ACTIVE"
	case StateStagnant:
		return "STAGNANT"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// atomicState wraps atomic.Int32 to store a State without locking, read by
// the monitor goroutine.
type atomicState struct {
	v atomic.Int32
}

func (a *atomicState) Load() State   { return State(a.v.Load()) }
func (a *atomicState) Store(s State) { a.v.Store(int32(s)) }
