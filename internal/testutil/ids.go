package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined IDs in order.
//
// It stands in for the CLI's UUIDv7 trace ID generator so that JSON
// responses are byte-identical across runs. When the IDs run out it keeps
// counting with a "test-id-N" fallback instead of failing.
//
// Thread-safety: FixedIDGenerator is safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
//
//	gen := NewFixedIDGenerator("trace-1", "trace-2")
//	gen.Generate() // "trace-1"
//	gen.Generate() // "trace-2"
//	gen.Generate() // "test-id-3"
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next ID.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("test-id-%d", g.idx)
}

// Count returns how many IDs have been handed out.
func (g *FixedIDGenerator) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.idx
}
