package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates predictable run ids.
//
// The store normally assigns UUIDv7 ids, which embed the current time.
// Tests substitute this generator so stored runs and golden output are
// byte-identical across executions.
//
// Thread-safety: Safe for concurrent use.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator producing prefix-0001, prefix-0002, ...
//
// If prefix is empty, "run" is used.
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialIDs{prefix: prefix}
}

// NewID returns the next id.
func (g *SequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
