package physics

import (
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
)

const (
	DefaultStiffness = 170.0
	DefaultDamping   = 26.0
	DefaultMass      = 1.0
	DefaultRestSpeed = 0.01
	DefaultRestDelta = 0.01

	// FrameStep is the fixed simulation step, one nominal 60 Hz frame.
	FrameStep = 1.0 / 60.0
)

// Spring is a mass on a spring with linear damping:
// a = (-k·(x-target) - c·v) / m.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

func NewSpring() *Spring {
	return &Spring{
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
		Mass:      DefaultMass,
	}
}

func (s Spring) StateDim() int   { return 2 }
func (s Spring) ControlDim() int { return 1 }

func (s Spring) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	pos, vel := x[0], x[1]
	force := -s.Stiffness*(pos-u.Target()) - s.Damping*vel
	return dynamo.State{vel, force / s.mass()}
}

// Energy is the mechanical energy left in the system relative to the target.
func (s Spring) Energy(x dynamo.State, u dynamo.Control) float64 {
	disp := x.Position() - u.Target()
	v := x.Velocity()
	return 0.5*s.Stiffness*disp*disp + 0.5*s.mass()*v*v
}

// Oscillation reports ω₀ and ζ for the analytic integrator.
func (s Spring) Oscillation() (float64, float64) {
	return NaturalFrequency(s.Stiffness, s.mass()), DampingRatio(s.Stiffness, s.Damping, s.mass())
}

func (s Spring) mass() float64 {
	if s.Mass <= 0 || math.IsNaN(s.Mass) || math.IsInf(s.Mass, 0) {
		return DefaultMass
	}
	return s.Mass
}
