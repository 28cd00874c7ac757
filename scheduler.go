package timerservice

import (
	"container/heap"
	"time"
)

// noDeadline encodes an empty timers heap: "wait forever".
const noDeadline = ^uint64(0)

// runWorker is the single background worker's main loop, grounded on the
// teacher's Run/runTimers shape in loop.go, generalized from an
// epoll-driven I/O loop to a pure timer loop blocking on wakeSignal instead
// of a poller. It owns timers (the sorted deadline heap) exclusively; no
// other goroutine ever touches it.
func (s *Service) runWorker() {
	defer close(s.workerDone)

	var timers timerHeap
	var localFreelist *timerRecord
	var localFreelistLen int
	batch := s.freelistBatch
	if batch < 1 {
		batch = 1
	}

	for {
		// 1. Intake: detach pending, splicing the locally-accumulated
		// freelist batch onto the shared freelist once it reaches the
		// configured batch size, to amortize spinlock acquisitions for
		// churny periodic timers.
		var flush *timerRecord
		if localFreelistLen >= batch {
			flush = localFreelist
			localFreelist = nil
			localFreelistLen = 0
		}
		drained := s.intake.take(flush)

		// 2. Merge: insert each drained record into the heap.
		for drained != nil {
			next := drained.next
			drained.next = nil
			heap.Push(&timers, drained)
			drained = next
		}

		// 3. Exit check.
		if !s.running.Load() {
			s.drainAll(&timers, &localFreelist)
			return
		}

		// 4. Fire: pop and invoke everything due as of this snapshot.
		tick := s.clock.NowNS()
		var delay uint64 = noDeadline
		for timers.Len() > 0 {
			head := timers[0]
			if head.scheduled > tick {
				delay = head.scheduled - tick
				break
			}
			heap.Pop(&timers)

			if head.canceled.Load() {
				head.interval = 0
				head.next = localFreelist
				localFreelist = head
				localFreelistLen++
				continue
			}

			next := s.fire(head, tick)
			if next > 0 {
				head.scheduled = tick + next
				head.interval = next
				heap.Push(&timers, head)
			} else {
				head.canceled.Store(true)
				head.next = localFreelist
				localFreelist = head
				localFreelistLen++
			}
		}

		// 5. Wait: timeout is the time remaining until the earliest
		// deadline, minus time already spent firing.
		if delay != noDeadline {
			elapsed := s.clock.NowNS() - tick
			if elapsed >= delay {
				delay = 0
			} else {
				delay -= elapsed
			}
		}
		s.waitForWork(delay)
	}
}

// fire invokes rec's callback, recovering from and logging any panic so a
// misbehaving callback never takes the worker down, and returns the next
// interval (0 means stop).
func (s *Service) fire(rec *timerRecord, tick uint64) (next uint64) {
	defer func() {
		if r := recover(); r != nil {
			if s.log != nil {
				s.log.Error().Interface("panic", r).Uint32("id", rec.id).Msg("timer callback panicked")
			}
			next = 0
		}
	}()

	switch {
	case rec.cbMS != nil:
		intervalMS := uint32(rec.interval / 1_000_000)
		result := rec.cbMS(rec.userdata, rec.id, intervalMS)
		return uint64(result) * 1_000_000
	case rec.cbNS != nil:
		return rec.cbNS(rec.userdata, rec.id, rec.interval)
	default:
		return 0
	}
}

// waitForWork blocks until a wake signal arrives or delayNS elapses,
// whichever first; delayNS == noDeadline waits indefinitely.
func (s *Service) waitForWork(delayNS uint64) {
	if delayNS == noDeadline {
		s.wake.wait(-1)
		return
	}
	s.wake.wait(time.Duration(delayNS))
}

// drainAll frees every record still in timers or localFreelist at
// shutdown.
// No final callback is invoked - shutdown is silent.
func (s *Service) drainAll(timers *timerHeap, localFreelist **timerRecord) {
	for timers.Len() > 0 {
		heap.Pop(timers)
	}
	*localFreelist = nil
}
