package scribe

import (
	"sync"
	"sync/atomic"
)

// reentrantMutex is an exclusive lock that may be re-acquired by the
// goroutine already holding it. Dispatch holds it across the stream
// write and the full sink traversal, so a sink callback that logs
// (for example a file sink reporting its own write error) re-enters
// the dispatch path on the same goroutine and must not deadlock.
type reentrantMutex struct {
	mu    sync.Mutex
	owner atomic.Uint64
	depth int
}

func (m *reentrantMutex) Lock() {
	id := goroutineID()
	// Only the owning goroutine can observe its own id here, so a
	// stale read from any other goroutine never matches.
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *reentrantMutex) Unlock() {
	m.depth--
	if m.depth > 0 {
		return
	}
	m.owner.Store(0)
	m.mu.Unlock()
}
