// Package dynamo provides the core primitives shared by the spring engine.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [State]: {position, velocity} of a one-dimensional oscillator
//   - [Control]: external input; for springs, {target}
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [Metric]: trajectory observer used by the headless runner
//
// # Example
//
//	sp := physics.Spring{Stiffness: 170, Damping: 26, Mass: 1}
//	x := dynamo.State{0, 0}
//	x = integrators.NewRK4().Step(sp, x, dynamo.Control{100}, 0, 1.0/60)
//
// # Numeric hygiene
//
// Nothing in the engine propagates NaN or Inf. Use [Finite] at entry points
// to replace non-finite input with a safe fallback.
package dynamo
