package csync

import (
	"iter"
	"slices"
	"sync"
)

// Slice is a thread-safe wrapper around a plain slice.
type Slice[T any] struct {
	inner []T
	mu    sync.RWMutex
}

// NewSlice creates a new empty thread-safe slice.
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

// NewSliceFrom creates a new thread-safe slice seeded with a copy of s.
func NewSliceFrom[T any](s []T) *Slice[T] {
	return &Slice[T]{inner: slices.Clone(s)}
}

// Append adds items to the end of the slice.
func (s *Slice[T]) Append(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = append(s.inner, items...)
}

// Get returns the element at index.
func (s *Slice[T]) Get(index int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.inner) {
		var zero T
		return zero, false
	}
	return s.inner[index], true
}

// Len returns the current length.
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inner)
}

// SetSlice replaces the contents with a copy of items.
func (s *Slice[T]) SetSlice(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = slices.Clone(items)
}

// Slice returns a copy of the underlying slice.
func (s *Slice[T]) Slice() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.inner)
}

// Seq yields the elements of a snapshot of the slice.
func (s *Slice[T]) Seq() iter.Seq[T] {
	items := s.Slice()
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// Seq2 yields index-value pairs from a snapshot of the slice.
func (s *Slice[T]) Seq2() iter.Seq2[int, T] {
	items := s.Slice()
	return func(yield func(int, T) bool) {
		for i, v := range items {
			if !yield(i, v) {
				return
			}
		}
	}
}
