package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_ResumesFromStart(t *testing.T) {
	clock := NewClockAt(41)
	assert.Equal(t, int64(41), clock.Current())
	assert.Equal(t, int64(42), clock.Next())
	assert.Equal(t, int64(43), clock.Next())
	assert.Equal(t, int64(43), clock.Current())
}

func TestClock_ConcurrentNextIsUnique(t *testing.T) {
	clock := NewClockAt(0)
	const workers, calls = 20, 50

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range calls {
				v := clock.Next()
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*calls)
	assert.Equal(t, int64(workers*calls), clock.Current())
}
