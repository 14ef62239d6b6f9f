package state

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription identifies a registered listener so it can be removed later.
type Subscription = uuid.UUID

type listener[T any] struct {
	id uuid.UUID
	fn func(T)
}

// Listeners keeps callbacks in registration order. The zero value is ready to use.
type Listeners[T any] struct {
	mu        sync.Mutex
	listeners []listener[T]
}

// Add registers fn.
func (s *Listeners[T]) Add(fn func(T)) Subscription {
	id := uuid.New()
	s.mu.Lock()
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})
	s.mu.Unlock()
	return id
}

// Remove drops the listener with the given id and reports whether it existed.
func (s *Listeners[T]) Remove(id Subscription) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Notify calls every listener with v. Callers must not hold their own lock.
// Concurrent Notify calls are not ordered against each other; owners that
// need delivery in write order serialize their writes around Notify.
func (s *Listeners[T]) Notify(v T) {
	s.mu.Lock()
	ls := make([]listener[T], len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()

	for _, l := range ls {
		l.fn(v)
	}
}
