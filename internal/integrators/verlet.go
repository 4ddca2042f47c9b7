package integrators

import "github.com/san-kum/springsim/internal/dynamo"

// Verlet is velocity Verlet. The acceleration depends on velocity through the
// damping term, so the second evaluation uses the pre-step velocity.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2

	result := make(dynamo.State, n)
	scratch := make(dynamo.State, n)
	dx := dyn.Derive(x, u, t)
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*dx[half+i]*dt2
	}

	for i := 0; i < half; i++ {
		scratch[i] = result[i]
		scratch[half+i] = x[half+i]
	}

	dxNew := dyn.Derive(scratch, u, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}

	return result
}
