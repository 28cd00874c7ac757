package timerservice

import (
	"sync/atomic"
)

// lifecycleState is the state of a Service's init/quit machine.
//
//	Awake (0) → Running (1)         [init succeeds]
//	Running (1) → Terminating (2)   [Quit called]
//	Terminating (2) → Terminated (3) [worker joined, resources freed]
type lifecycleState uint32

const (
	stateAwake lifecycleState = iota
	stateRunning
	stateTerminating
	stateTerminated
)

func (s lifecycleState) String() string {
	switch s {
	case stateAwake:
		return "Awake"
	case stateRunning:
		return "Running"
	case stateTerminating:
		return "Terminating"
	case stateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// fastState is a lock-free state machine: pure atomic CAS, no mutex.
type fastState struct {
	v atomic.Uint32
}

func newFastState() *fastState {
	s := &fastState{}
	s.v.Store(uint32(stateAwake))
	return s
}

// Load returns the current state.
func (s *fastState) Load() lifecycleState {
	return lifecycleState(s.v.Load())
}

// Store unconditionally sets the state. Used only for the one irreversible
// transition (Terminating -> Terminated) where no concurrent competing
// writer can exist.
func (s *fastState) Store(state lifecycleState) {
	s.v.Store(uint32(state))
}

// TryTransition attempts an atomic from->to transition, returning whether it
// succeeded.
func (s *fastState) TryTransition(from, to lifecycleState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}

// IsTerminal reports whether the state machine has reached Terminated.
func (s *fastState) IsTerminal() bool {
	return s.Load() == stateTerminated
}
