package physics

import (
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/integrators"
)

// Params fully describes one integration step.
type Params struct {
	Stiffness float64
	Damping   float64
	Mass      float64
	RestSpeed float64
	RestDelta float64

	// Dt is the step size in seconds; zero means FrameStep.
	Dt float64

	// Integrator advances the state; nil means RK4.
	Integrator dynamo.Integrator
}

func DefaultParams() Params {
	return Params{
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
		Mass:      DefaultMass,
		RestSpeed: DefaultRestSpeed,
		RestDelta: DefaultRestDelta,
		Dt:        FrameStep,
	}
}

var defaultIntegrator = integrators.NewRK4()

// Step advances {position, velocity} toward target by one fixed step and
// reports whether the spring is at rest: |v| < RestSpeed and
// |x - target| < RestDelta. It touches no shared state.
func Step(position, velocity, target float64, p Params) (float64, float64, bool) {
	dt := p.Dt
	if dt <= 0 || !dynamo.IsFinite(dt) {
		dt = FrameStep
	}
	integ := p.Integrator
	if integ == nil {
		integ = defaultIntegrator
	}

	sp := Spring{Stiffness: p.Stiffness, Damping: p.Damping, Mass: p.Mass}
	next := integ.Step(sp, dynamo.State{position, velocity}, dynamo.Control{target}, 0, dt)
	pos, vel := next[0], next[1]

	if !next.IsValid() {
		// diverged (absurd stiffness for the step size); land on the target
		return target, 0, true
	}

	return pos, vel, IsRest(pos, vel, target, p)
}

// IsRest applies the convergence test on its own.
func IsRest(position, velocity, target float64, p Params) bool {
	return math.Abs(velocity) < p.RestSpeed && math.Abs(position-target) < p.RestDelta
}
