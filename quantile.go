package timerservice

import (
	"math"
	"sort"
	"sync"
)

// quantileMarker tracks one target quantile using the P² estimator (Jain &
// Chlamtac, 1985): five marker heights bracketing the quantile, nudged
// toward their ideal positions by one observation at a time, in O(1) time
// and space regardless of how many observations have been seen.
type quantileMarker struct {
	target float64
	height [5]float64 // current height estimate at each marker
	pos    [5]int     // integer marker position (observation rank)
	desPos [5]float64 // desired (real-valued) marker position
	posInc [5]float64 // desired-position increment applied per observation
}

func newQuantileMarker(target float64) *quantileMarker {
	if target < 0 {
		target = 0
	}
	if target > 1 {
		target = 1
	}
	return &quantileMarker{
		target: target,
		posInc: [5]float64{0, target / 2, target, (1 + target) / 2, 1},
	}
}

// seed primes the five markers from an already-sorted batch of exactly five
// observations, establishing their initial heights and positions.
func (m *quantileMarker) seed(sorted [5]float64) {
	m.height = sorted
	for i := range m.pos {
		m.pos[i] = i
	}
	m.desPos = [5]float64{0, 2 * m.target, 4 * m.target, 2 + 2*m.target, 4}
}

// advance folds one new observation into the five markers. Requires seed to
// have been called first.
func (m *quantileMarker) advance(sample float64) {
	var cell int
	switch {
	case sample < m.height[0]:
		m.height[0] = sample
		cell = 0
	case sample >= m.height[4]:
		m.height[4] = sample
		cell = 3
	default:
		for cell = 0; cell < 4; cell++ {
			if m.height[cell] <= sample && sample < m.height[cell+1] {
				break
			}
		}
	}

	for i := cell + 1; i < 5; i++ {
		m.pos[i]++
	}
	for i := range m.desPos {
		m.desPos[i] += m.posInc[i]
	}

	for i := 1; i < 4; i++ {
		gap := m.desPos[i] - float64(m.pos[i])
		rightRoom := m.pos[i+1] - m.pos[i]
		leftRoom := m.pos[i-1] - m.pos[i]
		if (gap >= 1 && rightRoom > 1) || (gap <= -1 && leftRoom < -1) {
			step := 1
			if gap < 0 {
				step = -1
			}

			candidate := m.parabolicEstimate(i, step)
			if m.height[i-1] < candidate && candidate < m.height[i+1] {
				m.height[i] = candidate
			} else {
				m.height[i] = m.linearEstimate(i, step)
			}
			m.pos[i] += step
		}
	}
}

func (m *quantileMarker) parabolicEstimate(i, step int) float64 {
	d := float64(step)
	left, mid, right := float64(m.pos[i-1]), float64(m.pos[i]), float64(m.pos[i+1])

	scale := d / (right - left)
	upper := (mid - left + d) * (m.height[i+1] - m.height[i]) / (right - mid)
	lower := (right - mid - d) * (m.height[i] - m.height[i-1]) / (mid - left)
	return m.height[i] + scale*(upper+lower)
}

func (m *quantileMarker) linearEstimate(i, step int) float64 {
	if step == 1 {
		return m.height[i] + (m.height[i+1]-m.height[i])/float64(m.pos[i+1]-m.pos[i])
	}
	return m.height[i] - (m.height[i]-m.height[i-1])/float64(m.pos[i]-m.pos[i-1])
}

// estimate returns the marker's current quantile estimate.
func (m *quantileMarker) estimate() float64 {
	return m.height[2]
}

// DelayStats is a read-only snapshot of DelayPrecise overshoot tracking,
// returned by Service.DelayStats.
type DelayStats struct {
	// P50 and P99 are estimates of the 50th/99th percentile overshoot, in
	// nanoseconds (observed sleep minus requested sleep).
	P50, P99 float64
	// Count is the number of DelayPrecise calls observed.
	Count int
	// Max is the largest overshoot observed, in nanoseconds.
	Max float64
}

// overshootStats tracks DelayPrecise overshoot (the amount by which an
// actual sleep exceeded its requested duration) as two quantile markers,
// p50 and p99, sharing one seeding buffer: the first five observations are
// collected once and used to prime both markers, rather than each marker
// buffering and sorting its own copy of those samples.
type overshootStats struct {
	mu      sync.Mutex
	p50     *quantileMarker
	p99     *quantileMarker
	seedBuf []float64
	seeded  bool
	n       int
	max     float64
}

func newOvershootStats() *overshootStats {
	return &overshootStats{
		p50:     newQuantileMarker(0.50),
		p99:     newQuantileMarker(0.99),
		seedBuf: make([]float64, 0, 5),
	}
}

func (s *overshootStats) observe(overshootNS float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	if overshootNS > s.max {
		s.max = overshootNS
	}

	if !s.seeded {
		s.seedBuf = append(s.seedBuf, overshootNS)
		if len(s.seedBuf) < 5 {
			return
		}
		sorted := append([]float64(nil), s.seedBuf...)
		sort.Float64s(sorted)
		var batch [5]float64
		copy(batch[:], sorted)
		s.p50.seed(batch)
		s.p99.seed(batch)
		s.seeded = true
		return
	}

	s.p50.advance(overshootNS)
	s.p99.advance(overshootNS)
}

func (s *overshootStats) snapshot() DelayStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		if len(s.seedBuf) == 0 {
			return DelayStats{}
		}
		sorted := append([]float64(nil), s.seedBuf...)
		sort.Float64s(sorted)
		return DelayStats{
			P50:   rankPercentile(sorted, 0.50),
			P99:   rankPercentile(sorted, 0.99),
			Count: s.n,
			Max:   s.max,
		}
	}

	return DelayStats{
		P50:   s.p50.estimate(),
		P99:   s.p99.estimate(),
		Count: s.n,
		Max:   s.max,
	}
}

// rankPercentile returns the p-th percentile of an already-sorted slice by
// nearest-rank, used only while fewer than five samples have been observed
// and the quantile markers aren't primed yet.
func rankPercentile(sorted []float64, p float64) float64 {
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
