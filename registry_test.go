package timerservice

import "testing"

func TestRegistryInsertAndRemove(t *testing.T) {
	r := newRegistry()
	rec := &timerRecord{id: 7}
	r.insert(7, rec)

	if got, ok := r.remove(7); !ok || got != rec {
		t.Fatalf("remove(7) = (%v, %v), want (%v, true)", got, ok, rec)
	}

	if _, ok := r.remove(7); ok {
		t.Fatal("second remove(7) should report not found")
	}
}

func TestRegistryRemoveUnknown(t *testing.T) {
	r := newRegistry()
	if _, ok := r.remove(99); ok {
		t.Fatal("remove of unknown id should report not found")
	}
}

func TestRegistryLen(t *testing.T) {
	r := newRegistry()
	r.insert(1, &timerRecord{id: 1})
	r.insert(2, &timerRecord{id: 2})
	if got := r.len(); got != 2 {
		t.Fatalf("len() = %d, want 2", got)
	}
	r.remove(1)
	if got := r.len(); got != 1 {
		t.Fatalf("len() after remove = %d, want 1", got)
	}
}
