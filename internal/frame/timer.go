package frame

// Timer is a callback scheduled for a future frame number.
type Timer struct {
	due     uint64
	fn      func()
	stopped bool
}

// Due is the frame number on which the timer fires.
func (t *Timer) Due() uint64 {
	return t.due
}

// Stop cancels the timer. It returns false if the timer already fired or
// was stopped.
func (t *Timer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// After runs fn at the start of the tick whose frame number is
// Frame()+frames. Values below one mean the next tick.
func (s *Scheduler) After(frames int, fn func()) *Timer {
	if frames < 1 {
		frames = 1
	}
	t := &Timer{due: s.frame + uint64(frames), fn: fn}
	s.timers = append(s.timers, t)
	s.request()
	return t
}

func (s *Scheduler) fireTimers() {
	if len(s.timers) == 0 {
		return
	}
	pending := s.timers
	s.timers = nil

	var keep []*Timer
	for _, t := range pending {
		if t.stopped {
			continue
		}
		if t.due > s.frame {
			keep = append(keep, t)
			continue
		}
		t.stopped = true
		s.run("timer", t.fn)
	}
	// timers created by the callbacks above are already in s.timers
	s.timers = append(keep, s.timers...)
}
