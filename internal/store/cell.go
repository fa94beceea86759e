package store

import "sync"

// cell is the unit of sharing: one record value plus a version token that
// advances on every successful mutation. The mutex is held only for the
// token check and the swap, never across user code.
type cell[V any] struct {
	mu      sync.Mutex
	value   V
	version uint64
}

func newCell[V any](value V) *cell[V] {
	return &cell[V]{value: value}
}

// load returns the current value and its token.
func (c *cell[V]) load() (V, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.version
}

// compareAndSet installs v and advances the token iff the held token still
// equals expected. On a token mismatch the cell is left untouched.
func (c *cell[V]) compareAndSet(expected uint64, v V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != expected {
		return false
	}
	c.value = v
	c.version++
	return true
}
