// Package timerservice implements a process-wide timer facility: many
// producer goroutines schedule one-shot or periodic callbacks at
// nanosecond-resolution deadlines, and a single background worker dispatches
// them in time order.
//
// # Architecture
//
// A [Service] owns a monotonic [Clock], a timer registry, and a worker
// goroutine that holds a sorted-by-deadline heap. Producers never touch the
// heap directly: creating a timer publishes onto a lock-free intake list
// guarded by a spinlock, and wakes the worker via a dedup signal channel;
// removing a timer only drops its registry entry and sets its canceled flag,
// which the worker checks when the record reaches the head of the heap. The
// worker drains intake, merges it into the heap, fires due timers,
// reschedules periodic ones, and recycles stopped ones onto a freelist for
// reuse by future creates.
//
// # Precision
//
// [Service.DelayPrecise] implements a multi-step adaptive sleep that trades
// CPU for accuracy as the deadline approaches: coarse oversleep-corrected
// sleeps while far from the deadline, millisecond sleeps as it nears, a
// cooperative yield loop, and finally a tight busy-spin. Overshoot is
// tracked with a streaming quantile estimator and exposed via
// [Service.DelayStats].
//
// # Thread Safety
//
// [Service.AddTimerMS], [Service.AddTimerNS], and [Service.RemoveTimer] are
// safe to call concurrently from any goroutine. Callbacks run on the
// worker goroutine only; a callback that panics is recovered and logged,
// and a callback that blocks stalls all other timers until it returns.
//
// # Usage
//
//	svc, err := timerservice.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Quit()
//
//	id := svc.AddTimerMS(100, func(_ any, id uint32, interval uint32) uint32 {
//	    fmt.Println("fired")
//	    return 0 // one-shot
//	}, nil)
//	_ = id
//
// # Error Types
//
// [New] reports failure with an error wrapping [ErrInitFailed], so
// [errors.Is] matching works. [Service.AddTimerMS] and [Service.AddTimerNS]
// report failure only as a 0 id, and [Service.RemoveTimer] only as false;
// they return no error value, so [ErrInvalidParameter], [ErrAllocation] and
// [ErrNotFound] are defined in errors.go but not returned by them. A fatal
// precondition (performance-counter frequency overflow) panics at
// construction time rather than propagating as an error, since no correct
// clock can be built without it.
package timerservice
