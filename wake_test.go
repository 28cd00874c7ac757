package timerservice

import (
	"testing"
	"time"
)

func TestWakeSignalPostThenWait(t *testing.T) {
	w := newWakeSignal()
	w.post()
	if !w.wait(10 * time.Millisecond) {
		t.Fatal("wait() should observe the pending post")
	}
}

func TestWakeSignalWaitTimesOut(t *testing.T) {
	w := newWakeSignal()
	if w.wait(5 * time.Millisecond) {
		t.Fatal("wait() with no post should time out")
	}
}

func TestWakeSignalCoalescesRedundantPosts(t *testing.T) {
	w := newWakeSignal()
	w.post()
	w.post()
	w.post()

	if !w.wait(0) {
		t.Fatal("first wait() should see the coalesced post")
	}
	if w.wait(5 * time.Millisecond) {
		t.Fatal("second wait() should time out; extra posts must not queue")
	}
}
