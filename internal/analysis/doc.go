// Package analysis measures oscillation in recorded spring trajectories.
//
// [DominantFrequency] recovers the ringing frequency of an underdamped run,
// which can be checked against [physics.DampedPeriod]:
//
//	f := analysis.DominantFrequency(positions, physics.FrameStep)
//	period := 1 / f
package analysis
