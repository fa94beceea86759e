// Package store implements an in-memory transactional store: a keyed
// collection of record cells supporting atomic single- and multi-key
// read-modify-write updates with optimistic conflict detection.
//
// Update functions must be pure: they are re-invoked against a fresh
// snapshot whenever a concurrent writer wins the commit race, so they must
// not perform I/O or keep external state. Conflicts are never surfaced to
// callers; the only errors a transform can return are NotFoundError and
// whatever the update function itself returned.
package store

import (
	"sort"
	"sync"
)

// Update pairs a record id with a pure function producing the replacement
// value, or a business error that aborts the whole batch.
type Update[V any] struct {
	ID    string
	Apply func(V) (V, error)
}

// Store maps string ids to record cells. Records are never deleted.
type Store[V any] struct {
	mu    sync.RWMutex
	cells map[string]*cell[V]
}

// New creates an empty store.
func New[V any]() *Store[V] {
	return &Store[V]{cells: make(map[string]*cell[V])}
}

// Create inserts a new record at version zero. At most one of several
// concurrent Create calls for the same id succeeds.
func (s *Store[V]) Create(id string, value V) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cells[id]; ok {
		var zero V
		return zero, DuplicateIDError{ID: id}
	}
	s.cells[id] = newCell(value)
	return value, nil
}

// Query returns a snapshot of the current value. It never blocks on writers
// beyond the bounded cell access and never retries.
func (s *Store[V]) Query(id string) (V, error) {
	c, ok := s.lookup(id)
	if !ok {
		var zero V
		return zero, NotFoundError{ID: id}
	}
	v, _ := c.load()
	return v, nil
}

// Exists reports whether a record with the given id is present.
func (s *Store[V]) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cells[id]
	return ok
}

// TransformOne atomically applies f to the record's current value. If f
// fails, its error is returned and the record is left untouched. A token
// mismatch at commit means a concurrent writer won; the whole
// read-evaluate-commit cycle is retried with f re-invoked on the fresh
// value, never the stale one.
func (s *Store[V]) TransformOne(id string, f func(V) (V, error)) (V, error) {
	c, ok := s.lookup(id)
	if !ok {
		var zero V
		return zero, NotFoundError{ID: id}
	}
	for {
		current, token := c.load()
		next, err := f(current)
		if err != nil {
			var zero V
			return zero, err
		}
		if c.compareAndSet(token, next) {
			return next, nil
		}
	}
}

// TransformBatch applies every update atomically: either all of them commit
// in full consistency with each other, or none does. Ids are resolved up
// front so a batch never partially completes because one id is absent.
// Update functions are evaluated in the supplied order against a common
// snapshot; the first business error aborts the batch with no mutation.
// Commit is two-phase: all cells are locked in canonical (sorted id) order,
// every token is validated against the snapshot, and only then are the new
// values installed. Any token mismatch releases the locks, installs
// nothing, and retries the batch from the snapshot step.
func (s *Store[V]) TransformBatch(updates []Update[V]) ([]V, error) {
	entries, entryOf, err := s.resolve(updates)
	if err != nil {
		return nil, err
	}

	// Canonical lock order, independent of the supplied order, so two
	// batches touching the same records in opposite orders cannot deadlock.
	locking := make([]*batchEntry[V], len(entries))
	copy(locking, entries)
	sort.Slice(locking, func(i, j int) bool { return locking[i].id < locking[j].id })

	for {
		for _, e := range entries {
			e.value, e.token = e.cell.load()
		}

		results := make([]V, len(updates))
		failed := false
		var updateErr error
		for i, u := range updates {
			e := entries[entryOf[i]]
			next, applyErr := u.Apply(e.value)
			if applyErr != nil {
				failed = true
				updateErr = applyErr
				break
			}
			// Chain through the working value so a second update on the
			// same id sees the first one's result.
			e.value = next
			results[i] = next
		}
		if failed {
			return nil, updateErr
		}

		if commit(locking) {
			return results, nil
		}
	}
}

type batchEntry[V any] struct {
	id    string
	cell  *cell[V]
	token uint64
	value V
}

// resolve maps each update to a distinct cell entry, failing the whole
// batch if any id is absent.
func (s *Store[V]) resolve(updates []Update[V]) ([]*batchEntry[V], []int, error) {
	entries := make([]*batchEntry[V], 0, len(updates))
	index := make(map[string]int, len(updates))
	entryOf := make([]int, len(updates))
	for i, u := range updates {
		at, seen := index[u.ID]
		if !seen {
			c, ok := s.lookup(u.ID)
			if !ok {
				return nil, nil, NotFoundError{ID: u.ID}
			}
			at = len(entries)
			entries = append(entries, &batchEntry[V]{id: u.ID, cell: c})
			index[u.ID] = at
		}
		entryOf[i] = at
	}
	return entries, entryOf, nil
}

// commit validates every cell's token under lock and installs the new
// values only if all of them still match the snapshot. No value is written
// before the whole batch is validated, so no observer ever sees a
// half-applied batch.
func commit[V any](locking []*batchEntry[V]) bool {
	for _, e := range locking {
		e.cell.mu.Lock()
	}
	defer func() {
		for i := len(locking) - 1; i >= 0; i-- {
			locking[i].cell.mu.Unlock()
		}
	}()

	for _, e := range locking {
		if e.cell.version != e.token {
			return false
		}
	}
	for _, e := range locking {
		e.cell.value = e.value
		e.cell.version++
	}
	return true
}

func (s *Store[V]) lookup(id string) (*cell[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cells[id]
	return c, ok
}
