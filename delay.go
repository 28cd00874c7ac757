package timerservice

import (
	"runtime"
	"time"
)

// shortSleep is the 1ms unit used by the precise-delay algorithm's middle
// steps.
const shortSleep = 1_000_000 // 1ms in nanoseconds

// sysDelay is the platform sleep collaborator: best-effort blocking sleep
// for at least ns nanoseconds, possibly overshooting arbitrarily. ns == 0
// yields the processor.
func sysDelay(ns int64) {
	if ns <= 0 {
		runtime.Gosched()
		return
	}
	time.Sleep(time.Duration(ns))
}

// DelayPrecise sleeps for at least ns nanoseconds, trading CPU for
// accuracy as the deadline approaches: a coarse, oversleep-corrected loop
// while far from the deadline, a millisecond loop as it nears, a
// cooperative-yield loop, and finally a tight busy-spin. Overshoot is
// recorded in the Service's delay statistics.
func (s *Service) DelayPrecise(ns uint64) {
	start := s.clock.NowNS()
	current := start
	deadline := start + ns

	if ns > 2*shortSleep {
		current = s.delayCoarseUndershoot(ns, current, deadline)
		current = s.delayMillisecondUndershoot(current, deadline)
		current = s.delayMillisecondOvershoot(current, deadline)
	}
	current = s.delayYieldSpin(current, deadline)
	current = s.delayBusySpin(current, deadline)

	overshoot := float64(current) - float64(deadline)
	if overshoot < 0 {
		overshoot = 0
	}
	s.overshoot.observe(overshoot)
}

// delayCoarseUndershoot is step 1: sleep in large, deliberately-undershot
// chunks, tracking the running max overshoot observed within this loop so
// each chunk compensates for recently observed oversleep.
func (s *Service) delayCoarseUndershoot(ns uint64, current, deadline uint64) uint64 {
	targetSleep := ns / 10
	var maxOvershoot uint64

	for targetSleep >= 10*shortSleep && current+targetSleep+10*shortSleep < deadline {
		var currentSleep int64
		if targetSleep > maxOvershoot {
			currentSleep = int64(targetSleep - maxOvershoot)
		}
		before := current
		sysDelay(currentSleep)
		current = s.clock.NowNS()
		if current >= deadline {
			return current
		}

		slept := current - before
		var observedOvershoot uint64
		if slept > uint64(currentSleep) {
			observedOvershoot = slept - uint64(currentSleep)
		}
		if observedOvershoot > maxOvershoot {
			maxOvershoot = observedOvershoot
		}
		if maxOvershoot > targetSleep {
			maxOvershoot = 0
		}

		for targetSleep > shortSleep && current+targetSleep+10*shortSleep >= deadline {
			targetSleep /= 2
		}
	}
	return current
}

// delayMillisecondUndershoot is step 2: the only loop that carries its
// sleep budget (maxSleep) across iterations, sleeping shortSleep chunks
// while the remaining time exceeds one observed sleep's worth.
func (s *Service) delayMillisecondUndershoot(current, deadline uint64) uint64 {
	var maxOvershoot uint64
	maxSleep := uint64(shortSleep)

	for current+maxSleep < deadline {
		before := current
		sysDelay(shortSleep)
		current = s.clock.NowNS()

		slept := current - before
		if slept > shortSleep {
			maxOvershoot = slept - shortSleep
		} else {
			maxOvershoot = 0
		}
		if maxOvershoot > shortSleep {
			maxOvershoot = shortSleep
		}
		maxSleep = shortSleep + maxOvershoot
	}
	return current
}

// delayMillisecondOvershoot is step 3: plain 1ms sleeps, accepting
// whatever overshoot occurs, while more than 2ms remain.
func (s *Service) delayMillisecondOvershoot(current, deadline uint64) uint64 {
	for current+2*shortSleep < deadline {
		sysDelay(shortSleep)
		current = s.clock.NowNS()
	}
	return current
}

// delayYieldSpin is step 4: cooperative yields, cheaper than a sleep call
// on some platforms, while more than 1ms remains.
func (s *Service) delayYieldSpin(current, deadline uint64) uint64 {
	for current+shortSleep < deadline {
		sysDelay(0)
		current = s.clock.NowNS()
	}
	return current
}

// delayBusySpin is step 5: a tight busy loop for the final sub-millisecond
// stretch.
func (s *Service) delayBusySpin(current, deadline uint64) uint64 {
	for current < deadline {
		current = s.clock.NowNS()
	}
	return current
}
