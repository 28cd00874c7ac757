package timerservice

// pendingIntake is the producer-facing, lock-free-handoff intake: a single
// spinlock guards both the pending list (records published since the
// worker's last drain) and the freelist (records available for reuse by
// create). Producers publish to pending; the worker drains pending and
// splices its own locally-accumulated freelist batch back in - this is the
// one point where the worker becomes a producer to the freelist, so both
// lists share the same lock rather than having two independently-contended
// ones.
type pendingIntake struct {
	lock     spinLock
	pending  *timerRecord
	freelist *timerRecord
}

// publish prepends rec onto the pending list. Safe to call from any
// goroutine.
func (p *pendingIntake) publish(rec *timerRecord) {
	p.lock.Lock()
	rec.next = p.pending
	p.pending = rec
	p.lock.Unlock()
}

// take detaches the entire pending list and splices localFreelist (records
// the worker recycled during its previous iteration) onto the shared
// freelist, in one critical section. Called only from the worker goroutine.
func (p *pendingIntake) take(localFreelist *timerRecord) (drained *timerRecord) {
	p.lock.Lock()
	drained = p.pending
	p.pending = nil
	if localFreelist != nil {
		tail := localFreelist
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = p.freelist
		p.freelist = localFreelist
	}
	p.lock.Unlock()
	return drained
}

// allocate pops one record from the shared freelist, or returns nil if it
// is empty (caller then allocates a fresh record). Safe to call from any
// goroutine.
func (p *pendingIntake) allocate() *timerRecord {
	p.lock.Lock()
	rec := p.freelist
	if rec != nil {
		p.freelist = rec.next
	}
	p.lock.Unlock()
	return rec
}
