package spring

import (
	"github.com/san-kum/springsim/internal/diag"
	"github.com/san-kum/springsim/internal/fanout"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/settle"
)

// Value is a persistent animated quantity. After Destroy every method is a
// no-op and Set returns an already cancelled signal.
type Value struct {
	sched *frame.Scheduler
	cfg   Config

	pos, vel float64
	target   float64

	anim    *Animation
	pending *settle.Signal
	// override is the per-call override of the animation in flight.
	override *Override

	// gen is bumped whenever the current animation is replaced or
	// superseded; hooks of older animations compare against it.
	gen uint64

	subs      *fanout.Set[float64]
	destroyed bool
}

// NewValue returns a value resting at initial. A nil scheduler means
// frame.Default().
func NewValue(sched *frame.Scheduler, initial float64, cfg Config) *Value {
	if sched == nil {
		sched = frame.Default()
	}
	initial = finite(initial, 0, "initial")
	return &Value{
		sched:  sched,
		cfg:    cfg,
		pos:    initial,
		target: initial,
		subs:   fanout.New[float64]("spring.value"),
	}
}

func (v *Value) Get() float64 {
	return v.pos
}

func (v *Value) Velocity() float64 {
	return v.vel
}

// Target is the value the current or last animation heads for.
func (v *Value) Target() float64 {
	return v.target
}

func (v *Value) Generation() uint64 {
	return v.gen
}

func (v *Value) Config() Config {
	return v.cfg
}

// Set animates from the current position and velocity to `to`, replacing
// any running animation. o overrides the value's config for this call only.
func (v *Value) Set(to float64, o *Override) *settle.Signal {
	if v.destroyed {
		return settle.Resolved(settle.Result{Value: v.pos, Cancelled: true})
	}
	to = finite(to, 0, "to")
	v.supersede()

	cfg := v.cfg.Merge(o)
	if o == nil || o.Velocity == nil {
		cfg.Velocity = v.vel
	}

	gen := v.gen
	sig := settle.New()
	user := cfg.Hooks

	var anim *Animation
	cfg.Hooks = Hooks{
		OnStart: user.OnStart,
		OnUpdate: func(x float64) {
			if v.gen != gen {
				return
			}
			v.pos, v.vel = x, anim.Velocity()
			v.subs.Notify(x)
			if user.OnUpdate != nil {
				diag.Call("spring.update", func() { user.OnUpdate(x) })
			}
		},
		OnComplete: func(x float64) {
			if v.gen != gen {
				return
			}
			v.pos, v.vel = x, 0
			if user.OnComplete != nil {
				diag.Call("spring.complete", func() { user.OnComplete(x) })
			}
			sig.Finish(x)
		},
		OnRest: user.OnRest,
	}

	anim = NewAnimation(v.sched, v.pos, to, cfg)
	v.anim = anim
	v.pending = sig
	v.override = o
	v.target = to
	anim.Start()
	return sig
}

// Jump moves straight to `to` without animating and notifies subscribers
// synchronously. A pending completion signal is cancelled.
func (v *Value) Jump(to float64) {
	if v.destroyed {
		return
	}
	to = finite(to, 0, "to")
	v.supersede()
	v.pos, v.vel = to, 0
	v.target = to
	v.subs.Notify(to)
}

// Stop freezes the value where it is and cancels the pending signal.
func (v *Value) Stop() {
	if v.destroyed {
		return
	}
	v.supersede()
	v.vel = 0
	v.target = v.pos
}

// Pause suspends the running animation, keeping position and velocity.
func (v *Value) Pause() {
	if v.anim != nil && !v.destroyed {
		v.anim.Pause()
	}
}

func (v *Value) Resume() {
	if v.anim != nil && !v.destroyed {
		v.anim.Resume()
	}
}

func (v *Value) IsAnimating() bool {
	return v.anim != nil && v.anim.IsRunning()
}

func (v *Value) IsPaused() bool {
	return v.anim != nil && v.anim.State() == Paused
}

// Done is the completion signal of the latest Set. With no animation in
// flight it is already resolved.
func (v *Value) Done() *settle.Signal {
	if v.pending != nil {
		return v.pending
	}
	return settle.Resolved(settle.Result{Value: v.pos, Finished: !v.destroyed, Cancelled: v.destroyed})
}

// Subscribe registers fn for updates and calls it immediately with the
// current value. The returned function unsubscribes.
func (v *Value) Subscribe(fn func(float64)) func() {
	if v.destroyed {
		return func() {}
	}
	unsub := v.subs.Add(fn)
	v.subs.Send(fn, v.pos)
	return unsub
}

// SetConfig merges o into the value's config. A live animation picks up the
// new spring parameters immediately; the override of its Set call still
// applies on top.
func (v *Value) SetConfig(o *Override) {
	if v.destroyed {
		return
	}
	v.cfg = v.cfg.Merge(o)
	if v.anim != nil && !v.anim.IsComplete() {
		v.anim.Reconfigure(v.cfg.Merge(v.override))
	}
}

// Destroy cancels any animation, drops subscribers and makes the value
// inert. It is idempotent.
func (v *Value) Destroy() {
	if v.destroyed {
		return
	}
	v.supersede()
	v.subs.Clear()
	v.destroyed = true
}

func (v *Value) IsDestroyed() bool {
	return v.destroyed
}

func (v *Value) supersede() {
	v.gen++
	if v.anim != nil {
		if !v.anim.IsComplete() {
			v.pos, v.vel = v.anim.Position(), v.anim.Velocity()
		}
		v.anim.Destroy()
		v.anim = nil
	}
	v.override = nil
	if v.pending != nil {
		v.pending.Cancel(v.pos)
		v.pending = nil
	}
}
