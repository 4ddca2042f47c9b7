package spring

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/springsim/internal/diag"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/settle"
)

type AnimState int

const (
	Idle AnimState = iota
	Running
	Paused
	Complete
)

func (s AnimState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("AnimState(%d)", int(s))
}

// Animation is one scalar transition. Only a Running animation is
// registered with its scheduler. Complete is terminal until the animation
// is retargeted with SetWithVelocity or Redirect, which restarts it with a
// fresh completion signal.
type Animation struct {
	sched  *frame.Scheduler
	cfg    Config
	params physics.Params

	from, to float64
	pos, vel float64

	state     AnimState
	done      *settle.Signal
	ticks     int
	destroyed bool
}

// NewAnimation builds an idle animation from → to. A nil scheduler means
// frame.Default().
func NewAnimation(sched *frame.Scheduler, from, to float64, cfg Config) *Animation {
	if sched == nil {
		sched = frame.Default()
	}
	cfg = cfg.Normalize()
	from = finite(from, 0, "from")
	to = finite(to, 0, "to")
	return &Animation{
		sched:  sched,
		cfg:    cfg,
		params: cfg.Params(),
		from:   from,
		to:     to,
		pos:    from,
		vel:    cfg.Velocity,
		done:   settle.New(),
	}
}

func (a *Animation) Start() {
	if a.destroyed || a.state == Running || a.state == Complete {
		return
	}
	a.sched.Add(a)
	a.state = Running
	a.hook("start", a.cfg.Hooks.OnStart)
}

// Stop deregisters the animation without resolving its completion signal;
// the owner decides how to settle it.
func (a *Animation) Stop() {
	if a.destroyed {
		return
	}
	a.sched.Remove(a)
	if a.state != Complete {
		a.state = Idle
	}
}

func (a *Animation) Pause() {
	if a.destroyed || a.state != Running {
		return
	}
	a.sched.Remove(a)
	a.state = Paused
}

func (a *Animation) Resume() {
	if a.destroyed || a.state != Paused {
		return
	}
	a.sched.Add(a)
	a.state = Running
}

// Reverse swaps start and target around the current position. A running
// animation keeps its speed but flips direction.
func (a *Animation) Reverse() {
	if a.destroyed {
		return
	}
	a.from, a.to = a.to, a.from
	if a.state == Running {
		a.vel = -a.vel
	}
}

// Set moves the target without touching velocity or state.
func (a *Animation) Set(to float64) {
	if a.destroyed {
		return
	}
	a.to = finite(to, 0, "to")
}

// Redirect retargets from the current position, keeping the current
// velocity, and starts the animation if it is not running.
func (a *Animation) Redirect(to float64) {
	a.SetWithVelocity(to, a.vel)
}

// SetWithVelocity retargets from the current position with the given
// velocity and starts the animation if it is not running.
func (a *Animation) SetWithVelocity(to, velocity float64) {
	if a.destroyed {
		return
	}
	a.from = a.pos
	a.to = finite(to, 0, "to")
	a.vel = finite(velocity, 0, "velocity")

	if a.state == Complete {
		a.done = settle.New()
		a.state = Idle
	}
	if a.state != Running {
		a.Start()
	}
}

// Reconfigure swaps the spring parameters of a live animation. Position,
// velocity and hooks are kept.
func (a *Animation) Reconfigure(cfg Config) {
	if a.destroyed {
		return
	}
	cfg.Hooks = a.cfg.Hooks
	a.cfg = cfg.Normalize()
	a.params = a.cfg.Params()
}

// Update advances one physics step. The scheduler calls it once per frame.
func (a *Animation) Update(now time.Time) {
	if a.state != Running {
		return
	}
	a.ticks++

	pos, vel, rest := physics.Step(a.pos, a.vel, a.to, a.params)
	if a.cfg.Clamp {
		lo, hi := math.Min(a.from, a.to), math.Max(a.from, a.to)
		if pos < lo {
			pos, vel = lo, 0
		} else if pos > hi {
			pos, vel = hi, 0
		}
		rest = physics.IsRest(pos, vel, a.to, a.params)
	}
	a.pos, a.vel = pos, vel

	if !rest {
		a.hookValue("update", a.cfg.Hooks.OnUpdate, pos)
		return
	}
	a.finish()
}

func (a *Animation) finish() {
	a.pos, a.vel = a.to, 0
	a.state = Complete
	a.sched.Remove(a)

	hooks := a.cfg.Hooks
	value := a.to
	a.hookValue("update", hooks.OnUpdate, value)
	a.hookValue("complete", hooks.OnComplete, value)
	a.hookValue("rest", hooks.OnRest, value)
	a.done.Finish(value)
}

// Destroy stops the animation, resolves its completion signal and drops
// its hooks. It is idempotent.
func (a *Animation) Destroy() {
	if a.destroyed {
		return
	}
	a.sched.Remove(a)
	a.destroyed = true
	a.cfg.Hooks = Hooks{}

	if a.state == Complete {
		a.done.Finish(a.pos)
		return
	}
	a.state = Idle
	a.done.Cancel(a.pos)
}

func (a *Animation) hook(name string, fn func()) {
	if fn == nil || a.destroyed {
		return
	}
	diag.Call("spring."+name, fn)
}

func (a *Animation) hookValue(name string, fn func(float64), v float64) {
	if fn == nil || a.destroyed {
		return
	}
	diag.Call("spring."+name, func() { fn(v) })
}

func (a *Animation) Position() float64    { return a.pos }
func (a *Animation) Velocity() float64    { return a.vel }
func (a *Animation) From() float64        { return a.from }
func (a *Animation) To() float64          { return a.to }
func (a *Animation) State() AnimState     { return a.state }
func (a *Animation) IsRunning() bool      { return a.state == Running }
func (a *Animation) IsComplete() bool     { return a.state == Complete }
func (a *Animation) IsDestroyed() bool    { return a.destroyed }
func (a *Animation) Ticks() int           { return a.ticks }
func (a *Animation) Config() Config       { return a.cfg }
func (a *Animation) Done() *settle.Signal { return a.done }
