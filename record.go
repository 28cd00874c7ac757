package timerservice

import "sync/atomic"

// msCallback is a ms-resolution timer callback. The returned value is the
// next interval in milliseconds; 0 unregisters the timer.
type msCallback func(userdata any, id uint32, intervalMS uint32) uint32

// nsCallback is a ns-resolution timer callback. The returned value is the
// next interval in nanoseconds; 0 unregisters the timer.
type nsCallback func(userdata any, id uint32, intervalNS uint64) uint64

// timerRecord is a scheduling unit: one callback, its deadline, and its
// state. Owned by the scheduler once published; reachable from exactly one
// of {pending, timers heap, freelist} at any time.
type timerRecord struct {
	cbMS     msCallback
	cbNS     nsCallback
	userdata any

	id        uint32
	interval  uint64 // current interval, nanoseconds
	scheduled uint64 // absolute monotonic deadline, nanoseconds
	seq       uint64 // monotonic insertion sequence, FIFO tiebreak
	canceled  atomic.Bool

	heapIndex int // maintained by container/heap; -1 when not in the heap
	next      *timerRecord
}

// reset clears a record's state for reuse from the freelist, preserving the
// struct allocation (the recycling contract promises).
func (r *timerRecord) reset() {
	r.cbMS = nil
	r.cbNS = nil
	r.userdata = nil
	r.id = 0
	r.interval = 0
	r.scheduled = 0
	r.seq = 0
	r.canceled.Store(false)
	r.heapIndex = -1
	r.next = nil
}
