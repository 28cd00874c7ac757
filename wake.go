package timerservice

import (
	"sync/atomic"
	"time"
)

// wakeSignal is the counting-semaphore substitute: a capacity-1 dedup
// channel paired with a pending flag, directly modeled on the worker's own prior
// fastWakeupCh/wakeUpSignalPending pair. Unlike golang.org/x/sync/semaphore
// (rejected - see DESIGN.md), posting past capacity never panics: extra
// posts collapse into the single pending flag, matching the
// "monotone upper bound only, extra posts are harmless" contract.
type wakeSignal struct {
	ch      chan struct{}
	pending atomic.Uint32
}

func newWakeSignal() *wakeSignal {
	return &wakeSignal{ch: make(chan struct{}, 1)}
}

// post signals the worker, coalescing with any already-pending signal.
// Non-blocking; safe from any goroutine.
func (w *wakeSignal) post() {
	if w.pending.CompareAndSwap(0, 1) {
		select {
		case w.ch <- struct{}{}:
		default:
		}
	}
}

// wait blocks until post is called or timeout elapses, returning whether a
// signal was observed. timeout == 0 returns immediately (a non-blocking
// poll); a negative timeout blocks indefinitely.
func (w *wakeSignal) wait(timeout time.Duration) bool {
	defer w.pending.Store(0)

	if timeout == 0 {
		select {
		case <-w.ch:
			return true
		default:
			return false
		}
	}

	if timeout < 0 {
		<-w.ch
		return true
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-w.ch:
		return true
	case <-t.C:
		return false
	}
}
