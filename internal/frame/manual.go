package frame

import "time"

// Manual is a Source that produces a frame only when stepped.
type Manual struct {
	Interval time.Duration

	pending func(time.Time)
	now     time.Time
}

func NewManual() *Manual {
	return &Manual{Interval: DefaultInterval, now: time.Unix(0, 0)}
}

func (m *Manual) Request(fn func(time.Time)) {
	m.pending = fn
}

// Pending reports whether a frame has been requested.
func (m *Manual) Pending() bool {
	return m.pending != nil
}

// Step delivers one frame if one was requested.
func (m *Manual) Step() bool {
	fn := m.pending
	if fn == nil {
		return false
	}
	m.pending = nil
	m.now = m.now.Add(m.Interval)
	fn(m.now)
	return true
}

// StepN delivers up to n frames and returns how many ran.
func (m *Manual) StepN(n int) int {
	ran := 0
	for ran < n && m.Step() {
		ran++
	}
	return ran
}

// RunUntilIdle steps until no frame is requested or max frames ran.
func (m *Manual) RunUntilIdle(max int) int {
	return m.StepN(max)
}

// NewManualScheduler returns a scheduler wired to a fresh Manual source.
func NewManualScheduler() (*Scheduler, *Manual) {
	m := NewManual()
	return New(m), m
}
