// Package frame is the frame loop that drives every live animation.
//
// A [Scheduler] holds the set of registered [Animatable] values and calls
// Update on each of them once per frame. Frames come from a [Source], the
// host's equivalent of requestAnimationFrame: the scheduler asks for exactly
// one frame at a time and stops asking as soon as there is nothing left to
// do, so an idle scheduler costs nothing.
//
//   - [Manual] produces frames only when stepped (tests, headless runs)
//   - [Realtime] produces frames from a timer at a nominal interval
//
// # Thread Safety
//
// A Scheduler and everything attached to it belong to one goroutine at a
// time. With [Realtime], frames run while holding the source's lock; other
// goroutines must go through [Realtime.Do] to touch animations.
package frame
