package timerservice

import (
	"sort"
	"testing"
)

func TestQuantileMarkerConvergesOnUniform(t *testing.T) {
	m := newQuantileMarker(0.5)
	var seedVals [5]float64
	for i := range seedVals {
		seedVals[i] = float64(i + 1)
	}
	m.seed(seedVals)
	for i := 6; i <= 1000; i++ {
		m.advance(float64(i))
	}
	median := m.estimate()
	if median < 450 || median > 550 {
		t.Fatalf("median estimate %v out of expected range [450,550]", median)
	}
}

func TestQuantileMarkerSeedOnly(t *testing.T) {
	m := newQuantileMarker(0.5)
	m.seed([5]float64{10, 20, 30, 40, 50})
	if got := m.estimate(); got != 30 {
		t.Fatalf("estimate() after seed = %v, want 30 (middle marker)", got)
	}
}

func TestOvershootStatsSnapshotBeforeSeeded(t *testing.T) {
	s := newOvershootStats()
	s.observe(100)
	s.observe(300)
	snap := s.snapshot()
	if snap.Count != 2 {
		t.Fatalf("Count = %d, want 2", snap.Count)
	}
	if snap.Max != 300 {
		t.Fatalf("Max = %v, want 300", snap.Max)
	}
	if snap.P50 != 100 && snap.P50 != 300 {
		t.Fatalf("P50 = %v, want one of the observed values", snap.P50)
	}
}

func TestOvershootStatsSnapshot(t *testing.T) {
	s := newOvershootStats()
	for _, v := range []float64{100, 200, 300, 400, 500, 10000} {
		s.observe(v)
	}
	snap := s.snapshot()
	if snap.Count != 6 {
		t.Fatalf("Count = %d, want 6", snap.Count)
	}
	if snap.Max != 10000 {
		t.Fatalf("Max = %v, want 10000", snap.Max)
	}
	if snap.P99 < snap.P50 {
		t.Fatalf("P99 (%v) should not be less than P50 (%v)", snap.P99, snap.P50)
	}
}

func TestOvershootStatsManySamples(t *testing.T) {
	s := newOvershootStats()
	values := make([]float64, 0, 2000)
	for i := 1; i <= 2000; i++ {
		values = append(values, float64(i))
	}
	for _, v := range values {
		s.observe(v)
	}
	sort.Float64s(values)
	snap := s.snapshot()
	if snap.P50 < 900 || snap.P50 > 1100 {
		t.Fatalf("P50 estimate %v out of expected range [900,1100]", snap.P50)
	}
	if snap.P99 < 1900 || snap.P99 > 2000 {
		t.Fatalf("P99 estimate %v out of expected range [1900,2000]", snap.P99)
	}
}
