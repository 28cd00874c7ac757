package timerservice

import "testing"

type fakeCounter struct {
	ticks uint64
	hz    uint64
}

func (f *fakeCounter) now() uint64  { return f.ticks }
func (f *fakeCounter) freq() uint64 { return f.hz }

func TestClockNowNSZeroAtStart(t *testing.T) {
	c := newClock(&fakeCounter{ticks: 0, hz: 1_000_000_000})
	if got := c.NowNS(); got != 0 {
		t.Fatalf("NowNS() = %d, want 0", got)
	}
}

func TestClockNowNSAdvancesWithFrequency(t *testing.T) {
	counter := &fakeCounter{ticks: 1, hz: 1000} // 1 tick = 1ms
	c := newClock(counter)

	counter.ticks += 5 // 5ms elapsed
	if got, want := c.NowNS(), uint64(5_000_000); got != want {
		t.Fatalf("NowNS() = %d, want %d", got, want)
	}
}

func TestClockNowMSMatchesNowNS(t *testing.T) {
	counter := &fakeCounter{ticks: 1, hz: 1000}
	c := newClock(counter)
	counter.ticks += 37
	if got, want := c.NowMS(), uint64(37); got != want {
		t.Fatalf("NowMS() = %d, want %d", got, want)
	}
}

func TestClockMonotonicNonDecreasing(t *testing.T) {
	counter := &fakeCounter{ticks: 1, hz: 44100}
	c := newClock(counter)

	var last uint64
	for i := 0; i < 1000; i++ {
		counter.ticks += 3
		now := c.NowNS()
		if now < last {
			t.Fatalf("NowNS() went backwards: %d then %d", last, now)
		}
		last = now
	}
}

func TestClockFatalFrequencyPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for frequency exceeding 2^32-1")
		}
	}()
	newClock(&fakeCounter{ticks: 1, hz: maxPerfFreq + 1})
}

func TestGCDReduction(t *testing.T) {
	cases := []struct{ a, b, want uint64 }{
		{1_000_000_000, 1_000_000_000, 1_000_000_000},
		{1_000_000_000, 1000, 1000},
		{1_000_000_000, 3, 1},
	}
	for _, c := range cases {
		if got := gcd(c.a, c.b); got != c.want {
			t.Fatalf("gcd(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
