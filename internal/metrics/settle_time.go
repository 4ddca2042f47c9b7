package metrics

import (
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
)

// SettleTime is the time at which the position last entered the band
// |x - target| <= band and stayed there. A run that ends outside the band
// reports its last observed time.
type SettleTime struct {
	name    string
	band    float64
	settled float64
	last    float64
	inside  bool
}

func NewSettleTime(band float64) *SettleTime {
	return &SettleTime{
		name: "settle_time",
		band: band,
	}
}

func (s *SettleTime) Name() string { return s.name }

func (s *SettleTime) Observe(x dynamo.State, u dynamo.Control, t float64) {
	s.last = t
	in := math.Abs(x.Position()-u.Target()) <= s.band
	if in && !s.inside {
		s.settled = t
	}
	s.inside = in
}

// Settled reports whether the last observation was inside the band.
func (s *SettleTime) Settled() bool {
	return s.inside
}

func (s *SettleTime) Value() float64 {
	if !s.inside {
		return s.last
	}
	return s.settled
}

func (s *SettleTime) Reset() {
	s.settled, s.last, s.inside = 0, 0, false
}
