package timerservice

import (
	"sync"
	"testing"
)

func TestSpinLockMutualExclusion(t *testing.T) {
	var lock spinLock
	var counter int
	var wg sync.WaitGroup

	const goroutines = 16
	const increments = 1000

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				lock.Lock()
				counter++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	if want := goroutines * increments; counter != want {
		t.Fatalf("counter = %d, want %d", counter, want)
	}
}
