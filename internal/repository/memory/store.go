package memory

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/flexprice/salestax/internal/errors"
)

// FilterFunc selects items during List
type FilterFunc[T any] func(ctx context.Context, item T) bool

// SortFunc orders items during List
type SortFunc[T any] func(i, j T) bool

// Store is a generic concurrency safe in-memory store keyed by id
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	kind  string
}

// NewStore creates a new Store. kind names the entity in error messages.
func NewStore[T any](kind string) *Store[T] {
	return &Store[T]{
		items: make(map[string]T),
		kind:  kind,
	}
}

// Create adds a new item to the store
func (s *Store[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("%s %s already exists", s.kind, id).
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = item
	return nil
}

// Get retrieves an item by id
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, exists := s.items[id]; exists {
		return item, nil
	}

	var zero T
	return zero, ierr.NewErrorf("%s %s not found", s.kind, id).
		WithHintf("The %s was not found", s.kind).
		WithReportableDetails(map[string]any{"id": id}).
		Mark(ierr.ErrNotFound)
}

// List returns the items accepted by filterFn, ordered by sortFn
func (s *Store[T]) List(ctx context.Context, filterFn FilterFunc[T], sortFn SortFunc[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item) {
			result = append(result, item)
		}
	}

	if sortFn != nil {
		sort.Slice(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}
	return result
}

// Upsert creates or replaces an item
func (s *Store[T]) Upsert(ctx context.Context, id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = item
}

// Delete removes an item from the store
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ierr.NewErrorf("%s %s not found", s.kind, id).
			Mark(ierr.ErrNotFound)
	}

	delete(s.items, id)
	return nil
}

// Clear removes all items
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}
