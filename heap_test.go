package timerservice

import (
	"container/heap"
	"testing"
)

func TestTimerHeapOrdersByDeadlineThenSeq(t *testing.T) {
	var h timerHeap
	heap.Init(&h)

	heap.Push(&h, &timerRecord{id: 1, scheduled: 30, seq: 1})
	heap.Push(&h, &timerRecord{id: 2, scheduled: 10, seq: 2})
	heap.Push(&h, &timerRecord{id: 3, scheduled: 10, seq: 1}) // same deadline as id 2, earlier seq
	heap.Push(&h, &timerRecord{id: 4, scheduled: 20, seq: 3})

	var order []uint32
	for h.Len() > 0 {
		rec := heap.Pop(&h).(*timerRecord)
		order = append(order, rec.id)
	}

	want := []uint32{3, 2, 4, 1}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
