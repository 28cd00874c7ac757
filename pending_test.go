package timerservice

import "testing"

func TestPendingIntakePublishAndTake(t *testing.T) {
	var p pendingIntake
	a := &timerRecord{id: 1}
	b := &timerRecord{id: 2}
	p.publish(a)
	p.publish(b)

	drained := p.take(nil)
	var ids []uint32
	for r := drained; r != nil; r = r.next {
		ids = append(ids, r.id)
	}
	// publish prepends, so last-published comes first
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("drained ids = %v, want [2 1]", ids)
	}

	if got := p.take(nil); got != nil {
		t.Fatalf("second take() = %v, want nil (pending already drained)", got)
	}
}

func TestPendingIntakeFreelistRoundtrip(t *testing.T) {
	var p pendingIntake
	rec := &timerRecord{id: 5}
	p.take(rec) // splice rec onto the shared freelist

	got := p.allocate()
	if got != rec {
		t.Fatalf("allocate() = %v, want %v", got, rec)
	}
	if got := p.allocate(); got != nil {
		t.Fatalf("allocate() on empty freelist = %v, want nil", got)
	}
}
