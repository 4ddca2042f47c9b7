// Package physics implements the damped harmonic oscillator that drives every
// spring animation.
//
// [Spring] is an ordinary [dynamo.System] (dX/dt for X = {position, velocity},
// with the target supplied as control input), so any integrator can advance
// it. [Step] is the pure, fixed-step entry point used by the frame loop:
//
//	pos, vel, rest := physics.Step(pos, vel, target, physics.DefaultParams())
//
// # Diagnostics
//
// [DampingRatio], [NaturalPeriod], [DampedPeriod] and [Classify] describe a
// configuration. They are for inspection and advisories only; no control
// flow in the engine depends on them.
package physics
