// Package spring provides the two scalar primitives of the engine.
//
// [Animation] is one interruptible transition from a start value to a
// target, advanced by a [frame.Scheduler] until it comes to rest.
//
// [Value] is a persistent quantity backed by a replaceable Animation. Every
// Set builds a fresh Animation from the current position and velocity, so
// retargeting mid-flight is continuous, and returns a [settle.Signal] that
// resolves exactly once: on rest, or when the animation is superseded,
// stopped, jumped over or destroyed.
//
//	v := spring.NewValue(sched, 0, spring.DefaultConfig())
//	unsub := v.Subscribe(func(x float64) { fmt.Println(x) })
//	done := v.Set(100, nil)
//	done.OnResolve(func(r settle.Result) { unsub() })
//
// Neither type is safe for concurrent use; see package frame.
package spring
