package timerservice

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Service is a process-wide timer facility: producers call AddTimerMS/
// AddTimerNS/RemoveTimer from any goroutine; a single background worker
// dispatches callbacks in deadline order. See the package doc for an
// overview.
type Service struct {
	clock     *Clock
	registry  *registry
	intake    pendingIntake
	wake      *wakeSignal
	overshoot *overshootStats
	res       *resolutionController
	log       *zerolog.Logger

	freelistBatch int
	seq           atomic.Uint64
	nextID        atomic.Uint32

	state      *fastState
	running    atomic.Bool
	workerDone chan struct{}
	quitOnce   sync.Once
}

// New brings up a Service: its clock, registry, resolution controller, and
// background worker. A fresh Service is always returned already running -
// there's no standalone init/start split worth exposing in Go; a
// constructor that already does the work is the idiomatic shape.
func New(opts ...Option) (*Service, error) {
	cfg := resolveOptions(opts)

	clock := cfg.clock
	if clock == nil {
		clock = newDefaultClock()
	}

	s := &Service{
		clock:         clock,
		registry:      newRegistry(),
		wake:          newWakeSignal(),
		overshoot:     newOvershootStats(),
		log:           cfg.logger,
		freelistBatch: cfg.freelistBatch,
		state:         newFastState(),
		workerDone:    make(chan struct{}),
	}
	s.res = newResolutionController(cfg.hints, s.log)

	if !s.state.TryTransition(stateAwake, stateRunning) {
		return nil, WrapError("unexpected initial state", ErrInitFailed)
	}
	s.running.Store(true)

	if s.log != nil {
		s.log.Debug().Msg("timer service starting")
	}
	go s.runWorker()

	return s, nil
}

// nextObjectID returns a fresh non-zero id.
func (s *Service) nextObjectID() uint32 {
	for {
		id := s.nextID.Add(1)
		if id != 0 {
			return id
		}
	}
}

// allocate returns a record from the freelist if one is available, else a
// fresh one. A freelisted record's self-stop path leaves its old registry
// entry in place (only explicit RemoveTimer removes an entry eagerly), so
// a record can still be registry-visible under its prior id when it's
// pulled off the freelist here. Removing that stale entry before reset
// discards the old id is what keeps reuse from ever aliasing two ids onto
// one record: without it, a caller that later calls RemoveTimer(oldID)
// would find the stale entry and cancel whatever timer has since been
// assigned this same record under a new id.
func (s *Service) allocate() *timerRecord {
	rec := s.intake.allocate()
	if rec == nil {
		return &timerRecord{heapIndex: -1}
	}
	if oldID := rec.id; oldID != 0 {
		s.registry.remove(oldID)
	}
	rec.reset()
	return rec
}

// createTimer is the shared implementation behind AddTimerMS/AddTimerNS,
// allocate-or-reuse a record, assign a fresh id, register it,
// then publish it to the worker and wake it.
func (s *Service) createTimer(intervalNS uint64, cbMS msCallback, cbNS nsCallback, userdata any) uint32 {
	if (cbMS == nil) == (cbNS == nil) {
		// exactly one of cbMS/cbNS must be set
		if s.log != nil {
			s.log.Debug().Msg("create timer: invalid parameter")
		}
		return 0
	}

	rec := s.allocate()
	id := s.nextObjectID()
	rec.id = id
	rec.cbMS = cbMS
	rec.cbNS = cbNS
	rec.userdata = userdata
	rec.interval = intervalNS
	rec.scheduled = s.clock.NowNS() + intervalNS
	rec.seq = s.seq.Add(1)
	rec.canceled.Store(false)

	s.registry.insert(id, rec)
	s.intake.publish(rec)
	s.wake.post()

	return id
}

// AddTimerMS schedules a millisecond-resolution timer, returning its id (0
// on failure: invalid parameters).
func (s *Service) AddTimerMS(intervalMS uint32, cb msCallback, userdata any) uint32 {
	return s.createTimer(uint64(intervalMS)*1_000_000, cb, nil, userdata)
}

// AddTimerNS schedules a nanosecond-resolution timer, returning its id (0
// on failure).
func (s *Service) AddTimerNS(intervalNS uint64, cb nsCallback, userdata any) uint32 {
	return s.createTimer(intervalNS, nil, cb, userdata)
}

// RemoveTimer cancels id, returning false if id is unknown or was already
// canceled. A zero id returns false without touching any state.
func (s *Service) RemoveTimer(id uint32) bool {
	if id == 0 {
		return false
	}
	rec, ok := s.registry.remove(id)
	if !ok {
		return false
	}
	return rec.canceled.CompareAndSwap(false, true)
}

// Delay blocks for approximately ms milliseconds, forwarded directly to the
// platform sleep primitive (no precision pacing).
func (s *Service) Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// DelayNS blocks for approximately ns nanoseconds, forwarded directly to
// the platform sleep primitive.
func (s *Service) DelayNS(ns uint64) {
	time.Sleep(time.Duration(ns))
}

// TicksNS returns nanoseconds elapsed since the Service was constructed,
// monotonically non-decreasing.
func (s *Service) TicksNS() uint64 {
	return s.clock.NowNS()
}

// TicksMS returns milliseconds elapsed since the Service was constructed.
func (s *Service) TicksMS() uint64 {
	return s.clock.NowMS()
}

// DelayStats returns a snapshot of DelayPrecise overshoot tracking.
func (s *Service) DelayStats() DelayStats {
	return s.overshoot.snapshot()
}

// Quit stops the worker and frees all outstanding timer records. Safe to
// call more than once; only the first call has effect. Pending periodic
// timers do not get one "final fire" - shutdown is silent.
func (s *Service) Quit() {
	s.quitOnce.Do(func() {
		if !s.state.TryTransition(stateRunning, stateTerminating) {
			// never successfully started; nothing to tear down
			return
		}
		if s.log != nil {
			s.log.Debug().Msg("timer service stopping")
		}

		s.running.Store(false)
		s.wake.post()
		<-s.workerDone

		s.res.close()
		s.state.Store(stateTerminated)
	})
}
