package timerservice

import (
	"time"
)

// perfCounter is the external monotonic performance counter collaborator:
// a tick count and the fixed frequency (ticks/second) it advances at. On
// Go, runtime-backed wall time already carries a monotonic reading, so the
// default implementation synthesizes a counter from time.Now with a fixed
// frequency of one nanosecond per tick - this keeps the rational rescaling
// in NowNS/NowMS a real, exercised code path rather than a pass-through,
// rather than assuming ticks are already nanoseconds.
type perfCounter interface {
	now() uint64  // current tick count
	freq() uint64 // ticks per second, fixed for the process lifetime
}

type systemPerfCounter struct{ origin time.Time }

func newSystemPerfCounter() systemPerfCounter {
	return systemPerfCounter{origin: time.Now()}
}

func (c systemPerfCounter) now() uint64 {
	return uint64(time.Since(c.origin).Nanoseconds())
}

func (c systemPerfCounter) freq() uint64 {
	return 1_000_000_000
}

// Clock is a monotonic clock built by rescaling a platform performance
// counter into nanoseconds and milliseconds: num/den are reduced by
// gcd(unitPerSecond, freq) so the multiply in NowNS/NowMS cannot overflow
// 64 bits for any realistic process uptime.
//
// Clock is safe for concurrent use.
type Clock struct {
	counter      perfCounter
	tickStart    uint64
	numNS, denNS uint64
	numMS, denMS uint64
}

// maxPerfFreq is the largest performance-counter frequency the clock's
// rational scaling supports (2^32 - 1 ticks/second); anything above it is
// rejected by newClock.
const maxPerfFreq = 1<<32 - 1

// newClock constructs a Clock from the given counter. It panics, wrapping
// ErrFatalPrecondition, if the counter's frequency exceeds maxPerfFreq -
// a debug-time assertion promoted to an always-on panic, since a clock that
// can't represent its own frequency can't be trusted to schedule anything.
func newClock(counter perfCounter) *Clock {
	freq := counter.freq()
	if freq > maxPerfFreq {
		panic(WrapError("perf_freq exceeds 2^32-1", ErrFatalPrecondition))
	}

	numNS, denNS := reduceRational(1_000_000_000, freq)
	numMS, denMS := reduceRational(1_000, freq)

	start := counter.now()
	if start == 0 {
		start = 1 // zero origin doubles as "uninitialized"; bump by one tick
	}

	return &Clock{
		counter:   counter,
		tickStart: start,
		numNS:     numNS,
		denNS:     denNS,
		numMS:     numMS,
		denMS:     denMS,
	}
}

// newDefaultClock builds a Clock over the real system counter.
func newDefaultClock() *Clock {
	return newClock(newSystemPerfCounter())
}

// reduceRational returns (unitPerSecond/g, freq/g) where g = gcd(unitPerSecond, freq).
func reduceRational(unitPerSecond, freq uint64) (num, den uint64) {
	g := gcd(unitPerSecond, freq)
	return unitPerSecond / g, freq / g
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// NowNS returns nanoseconds elapsed since the clock was constructed.
func (c *Clock) NowNS() uint64 {
	return scale(c.elapsedTicks(), c.numNS, c.denNS)
}

// NowMS returns milliseconds elapsed since the clock was constructed.
func (c *Clock) NowMS() uint64 {
	return scale(c.elapsedTicks(), c.numMS, c.denMS)
}

// elapsedTicks returns counter ticks since tickStart, or 0 while the counter
// is still below tickStart (a zero origin is bumped to 1 at construction).
func (c *Clock) elapsedTicks() uint64 {
	now := c.counter.now()
	if now < c.tickStart {
		return 0
	}
	return now - c.tickStart
}

// scale computes ticks*num/den without overflowing: by
// construction num/den are already reduced, and num is bounded (<= 1e9),
// so ticks*num fits in 64 bits for any realistic uptime. The product
// monotonicity check guards against the one case construction can't rule
// out: a pathological counter implementation.
func scale(ticks, num, den uint64) uint64 {
	product := ticks * num
	if num != 0 && product/num != ticks {
		// overflow; clamp rather than wrap, preserving monotonicity
		return ^uint64(0) / den
	}
	return product / den
}
