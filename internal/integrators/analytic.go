package integrators

import (
	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/springsim/internal/dynamo"
)

// Oscillator is implemented by systems that are a single damped harmonic
// oscillator and can report their natural frequency and damping ratio.
type Oscillator interface {
	Oscillation() (angularFrequency, dampingRatio float64)
}

// Analytic advances an [Oscillator] with the closed-form solution of the
// damped harmonic oscillator, so the step is exact for any dt. Systems that
// are not oscillators fall back to RK4.
type Analytic struct {
	fallback *RK4
}

func NewAnalytic() *Analytic {
	return &Analytic{fallback: NewRK4()}
}

func (a *Analytic) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	osc, ok := dyn.(Oscillator)
	if !ok || len(x) != 2 {
		return a.fallback.Step(dyn, x, u, t, dt)
	}

	omega, zeta := osc.Oscillation()
	s := harmonica.NewSpring(dt, omega, zeta)
	pos, vel := s.Update(x[0], x[1], u.Target())
	return dynamo.State{pos, vel}
}
