package workspace

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound is returned for unknown handles
	ErrNotFound = errors.New("not found")
	// ErrLimitReached is returned when a store is full
	ErrLimitReached = errors.New("limit reached")
)

// LimitError reports a store that is already full
type LimitError struct {
	Kind  string
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("maximum of %d active %ss reached", e.Limit, e.Kind)
}

// Is matches ErrLimitReached
func (e *LimitError) Is(target error) bool {
	return target == ErrLimitReached
}

// Gauge receives the live object count after every change
type Gauge interface {
	SetActiveObjects(kind string, count int)
}

// Store holds open objects of one kind (presentation, document, workbook)
// keyed by handle, in creation order, up to a fixed limit.
type Store[T any] struct {
	kind  string
	limit int
	gauge Gauge

	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewStore creates a store; limit < 1 means unlimited
func NewStore[T any](kind string, limit int, gauge Gauge) *Store[T] {
	return &Store[T]{
		kind:  kind,
		limit: limit,
		gauge: gauge,
		items: make(map[string]T),
	}
}

// Kind returns the object kind, e.g. "presentation"
func (s *Store[T]) Kind() string {
	return s.kind
}

// Add registers v under handle
func (s *Store[T]) Add(handle string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[handle]; exists {
		return fmt.Errorf("%s %s already exists", s.kind, handle)
	}
	if s.limit > 0 && len(s.items) >= s.limit {
		return &LimitError{Kind: s.kind, Limit: s.limit}
	}

	s.items[handle] = v
	s.order = append(s.order, handle)
	s.report()
	return nil
}

// Get returns the object for handle
func (s *Store[T]) Get(handle string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[handle]
	return v, ok
}

// Update runs fn on the object under the store's write lock.
// Mutations of objects in one store are therefore serialized.
func (s *Store[T]) Update(handle string, fn func(T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[handle]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, s.kind, handle)
	}
	return fn(v)
}

// View runs fn on the object under the read lock
func (s *Store[T]) View(handle string, fn func(T) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[handle]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, s.kind, handle)
	}
	return fn(v)
}

// Delete removes handle and reports whether it existed
func (s *Store[T]) Delete(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[handle]; !ok {
		return false
	}
	delete(s.items, handle)
	for i, h := range s.order {
		if h == handle {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.report()
	return true
}

// List returns objects in creation order
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.items[h])
	}
	return out
}

// Len returns the number of open objects
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) report() {
	if s.gauge != nil {
		s.gauge.SetActiveObjects(s.kind, len(s.items))
	}
}
