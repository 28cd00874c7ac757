package timerservice

import (
	"runtime"
	"sync/atomic"
)

// spinLock is a CAS-spin mutual exclusion primitive for the pending/
// freelist list heads: registry lookups may contend and take longer, so
// those use a regular mutex, but the spinlock here guards O(1) list-head
// manipulations with very short expected hold times.
type spinLock struct {
	held atomic.Bool
}

// Lock spins until the lock is acquired, yielding to the scheduler
// periodically to avoid starving other goroutines on a GOMAXPROCS=1 build
// or under heavy contention.
func (l *spinLock) Lock() {
	spins := 0
	for !l.held.CompareAndSwap(false, true) {
		spins++
		if spins > 64 {
			runtime.Gosched()
			spins = 0
		}
	}
}

// Unlock releases the lock.
func (l *spinLock) Unlock() {
	l.held.Store(false)
}
