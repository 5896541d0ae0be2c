package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_ReturnsInOrder(t *testing.T) {
	gen := NewFixedIDGenerator("trace-1", "trace-2")

	assert.Equal(t, "trace-1", gen.Generate())
	assert.Equal(t, "trace-2", gen.Generate())
	assert.Equal(t, "test-id-3", gen.Generate())
	assert.Equal(t, 3, gen.Count())
}

func TestFixedIDGenerator_Empty(t *testing.T) {
	gen := NewFixedIDGenerator()

	assert.Equal(t, "test-id-1", gen.Generate())
	assert.Equal(t, "test-id-2", gen.Generate())
}

func TestFixedIDGenerator_Concurrent(t *testing.T) {
	gen := NewFixedIDGenerator()

	var wg sync.WaitGroup
	seen := make(chan string, 100)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- gen.Generate()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]bool)
	for id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 100)
	assert.Equal(t, 100, gen.Count())
}
