// Package fanout is the subscriber set behind every Subscribe method.
//
// Notification order is unspecified. A panicking subscriber is recovered and
// logged; the remaining subscribers are still called.
package fanout

import "github.com/san-kum/springsim/internal/diag"

type Set[T any] struct {
	component string
	next      uint64
	subs      map[uint64]func(T)
}

// New returns an empty set whose panics are logged against component.
func New[T any](component string) *Set[T] {
	return &Set[T]{component: component, subs: make(map[uint64]func(T))}
}

// Add registers fn and returns its unsubscribe function, which is
// idempotent.
func (s *Set[T]) Add(fn func(T)) func() {
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Notify calls every subscriber with v. Subscribers added or removed from
// inside a callback take effect on the next Notify.
func (s *Set[T]) Notify(v T) {
	if len(s.subs) == 0 {
		return
	}
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		diag.Call(s.component, func() { fn(v) })
	}
}

// Send calls a single subscriber with the same isolation as Notify.
func (s *Set[T]) Send(fn func(T), v T) {
	diag.Call(s.component, func() { fn(v) })
}

func (s *Set[T]) Len() int {
	return len(s.subs)
}

func (s *Set[T]) Clear() {
	clear(s.subs)
}
