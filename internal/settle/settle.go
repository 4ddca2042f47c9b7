// Package settle provides the one-shot completion signal returned by every
// animating operation.
//
// A [Signal] resolves exactly once. Later Resolve calls are ignored, which
// lets several owners race to resolve (natural rest, stop, jump, destroy)
// without coordination. Waiters may block on [Signal.Done] or [Signal.Wait]
// from any goroutine; [Signal.OnResolve] callbacks run synchronously on the
// goroutine that resolves.
package settle

import (
	"context"
	"sync"

	"github.com/san-kum/springsim/internal/diag"
)

// Result describes how an animation ended.
type Result struct {
	// Value is the position when the signal resolved.
	Value float64

	// Finished is true when the animation reached rest on its own.
	Finished bool

	// Cancelled is true when it was superseded, stopped or destroyed.
	Cancelled bool
}

type Signal struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	result    Result
	callbacks []func(Result)
}

func New() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Resolved returns a signal that has already resolved with r.
func Resolved(r Result) *Signal {
	s := New()
	s.Resolve(r)
	return s
}

// Resolve settles the signal with r. It returns false if the signal had
// already resolved, in which case r is discarded.
func (s *Signal) Resolve(r Result) bool {
	s.mu.Lock()
	if s.resolved {
		s.mu.Unlock()
		return false
	}
	s.resolved = true
	s.result = r
	callbacks := s.callbacks
	s.callbacks = nil
	close(s.done)
	s.mu.Unlock()

	for _, cb := range callbacks {
		diag.Call("settle", func() { cb(r) })
	}
	return true
}

// Finish resolves as a natural completion at value.
func (s *Signal) Finish(value float64) bool {
	return s.Resolve(Result{Value: value, Finished: true})
}

// Cancel resolves as an interrupted animation at value.
func (s *Signal) Cancel(value float64) bool {
	return s.Resolve(Result{Value: value, Cancelled: true})
}

func (s *Signal) Done() <-chan struct{} {
	return s.done
}

func (s *Signal) IsResolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

// Result returns the outcome and whether the signal has resolved.
func (s *Signal) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.resolved
}

// Wait blocks until the signal resolves or ctx ends. Never call it from the
// frame goroutine: the frame loop is what resolves signals.
func (s *Signal) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.done:
		r, _ := s.Result()
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// OnResolve registers fn to run once the signal resolves. If it already has,
// fn runs immediately.
func (s *Signal) OnResolve(fn func(Result)) {
	s.mu.Lock()
	if !s.resolved {
		s.callbacks = append(s.callbacks, fn)
		s.mu.Unlock()
		return
	}
	r := s.result
	s.mu.Unlock()
	diag.Call("settle", func() { fn(r) })
}
