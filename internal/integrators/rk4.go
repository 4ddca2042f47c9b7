package integrators

import "github.com/san-kum/springsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method. It keeps no scratch
// buffers between calls, so one value can be shared by any number of springs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	scratch := make(dynamo.State, n)

	k1 := dyn.Derive(x, u, t)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := dyn.Derive(scratch, u, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := dyn.Derive(scratch, u, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*k3[i]
	}
	k4 := dyn.Derive(scratch, u, t+dt)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
