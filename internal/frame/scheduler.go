package frame

import (
	"fmt"
	"time"

	"github.com/san-kum/springsim/internal/diag"
	"go.uber.org/zap"
)

// DefaultInterval is the nominal frame duration (60 Hz).
const DefaultInterval = time.Second / 60

type Animatable interface {
	Update(now time.Time)
}

// Source delivers frames. Request asks for fn to be called once, on the
// next frame; the scheduler never has more than one request outstanding.
type Source interface {
	Request(fn func(now time.Time))
}

type Scheduler struct {
	src       Source
	members   []Animatable
	index     map[Animatable]int
	snapshot  []Animatable
	timers    []*Timer
	deferred  []func()
	frame     uint64
	now       time.Time
	requested bool
	ticking   bool
}

func New(src Source) *Scheduler {
	return &Scheduler{
		src:   src,
		index: make(map[Animatable]int),
	}
}

// Add registers a for per-frame updates. Adding a registered value is a
// no-op.
func (s *Scheduler) Add(a Animatable) {
	if _, ok := s.index[a]; ok {
		return
	}
	s.index[a] = len(s.members)
	s.members = append(s.members, a)
	s.request()
}

// Remove deregisters a. Removing an unknown value is a no-op. It is safe to
// call from inside a tick, including from a's own Update.
func (s *Scheduler) Remove(a Animatable) {
	i, ok := s.index[a]
	if !ok {
		return
	}
	last := len(s.members) - 1
	if i != last {
		moved := s.members[last]
		s.members[i] = moved
		s.index[moved] = i
	}
	s.members[last] = nil
	s.members = s.members[:last]
	delete(s.index, a)
}

func (s *Scheduler) Has(a Animatable) bool {
	_, ok := s.index[a]
	return ok
}

func (s *Scheduler) Len() int {
	return len(s.members)
}

// Frame is the number of ticks run so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Now is the timestamp of the latest tick.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// Idle reports whether the scheduler has nothing registered or pending and
// therefore requests no frames.
func (s *Scheduler) Idle() bool {
	return len(s.members) == 0 && len(s.timers) == 0 && len(s.deferred) == 0
}

// Defer runs fn once after every animatable has been updated in the current
// tick, or in the next tick when called outside of one.
func (s *Scheduler) Defer(fn func()) {
	s.deferred = append(s.deferred, fn)
	s.request()
}

// Tick runs one frame. Sources call it; tests may call it directly.
func (s *Scheduler) Tick(now time.Time) {
	s.requested = false
	s.ticking = true
	s.frame++
	s.now = now

	s.fireTimers()

	s.snapshot = append(s.snapshot[:0], s.members...)
	for _, a := range s.snapshot {
		// removed earlier in this tick
		if _, ok := s.index[a]; !ok {
			continue
		}
		s.update(a, now)
	}
	clear(s.snapshot)

	if len(s.deferred) > 0 {
		batch := s.deferred
		s.deferred = nil
		for _, fn := range batch {
			s.run("defer", fn)
		}
	}

	s.ticking = false
	if !s.Idle() {
		s.request()
	}
}

func (s *Scheduler) request() {
	if s.requested || s.src == nil {
		return
	}
	s.requested = true
	s.src.Request(s.Tick)
}

func (s *Scheduler) update(a Animatable, now time.Time) {
	defer diag.Recover(fmt.Sprintf("%T", a), zap.Uint64("frame", s.frame))
	a.Update(now)
}

func (s *Scheduler) run(component string, fn func()) {
	defer diag.Recover(component, zap.Uint64("frame", s.frame))
	fn()
}
