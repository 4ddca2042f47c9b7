package frame

import (
	"sync"
	"time"
)

// Realtime is a Source backed by a timer firing at a nominal interval.
// Frames are best effort: a slow frame delays the next one rather than
// piling up.
type Realtime struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	stopped  bool
}

func NewRealtime(interval time.Duration) *Realtime {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Realtime{interval: interval}
}

func (r *Realtime) Interval() time.Duration {
	return r.interval
}

// Request must be called with the lock held, which is always the case when
// it comes from a scheduler running inside a frame or inside Do.
func (r *Realtime) Request(fn func(time.Time)) {
	if r.stopped {
		return
	}
	r.timer = time.AfterFunc(r.interval, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.stopped {
			return
		}
		fn(time.Now())
	})
}

// Do runs fn with the frame lock held, serialized with frame delivery.
func (r *Realtime) Do(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// Stop cancels the outstanding frame and refuses further requests.
func (r *Realtime) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
	}
}

// NewRealtimeScheduler returns a scheduler wired to a Realtime source.
func NewRealtimeScheduler(interval time.Duration) (*Scheduler, *Realtime) {
	rt := NewRealtime(interval)
	return New(rt), rt
}

var (
	defaultOnce  sync.Once
	defaultSched *Scheduler
	defaultRT    *Realtime
)

// Default returns the process-wide scheduler, created on first use with a
// Realtime source at DefaultInterval. Constructors that take a nil
// scheduler fall back to it.
func Default() *Scheduler {
	defaultOnce.Do(func() {
		defaultSched, defaultRT = NewRealtimeScheduler(DefaultInterval)
	})
	return defaultSched
}

// Do runs fn serialized with the default scheduler's frames.
func Do(fn func()) {
	Default()
	defaultRT.Do(fn)
}
