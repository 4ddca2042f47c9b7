package metrics

import (
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Overshoot is the largest excursion past the target, relative to the
// distance from the first observed position. Zero for a run that never
// crosses its target.
type Overshoot struct {
	name    string
	start   float64
	peak    float64
	samples int
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoot"}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if o.samples == 0 {
		o.start = x.Position()
	}
	o.samples++

	target := u.Target()
	dist := target - o.start
	if dist == 0 {
		return
	}
	past := (x.Position() - target) / dist
	o.peak = math.Max(o.peak, past)
}

func (o *Overshoot) Value() float64 {
	return o.peak
}

func (o *Overshoot) Reset() {
	o.start, o.peak, o.samples = 0, 0, 0
}

type PeakVelocity struct {
	name string
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity"}
}

func (p *PeakVelocity) Name() string { return p.name }

func (p *PeakVelocity) Observe(x dynamo.State, u dynamo.Control, t float64) {
	p.peak = math.Max(p.peak, math.Abs(x.Velocity()))
}

func (p *PeakVelocity) Value() float64 {
	return p.peak
}

func (p *PeakVelocity) Reset() {
	p.peak = 0
}
