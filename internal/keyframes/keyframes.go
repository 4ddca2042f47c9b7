// Package keyframes drives one spring value through an ordered sequence of
// targets, waiting for each segment to come to rest before the next.
package keyframes

import (
	"fmt"
	"slices"
	"time"

	"github.com/san-kum/springsim/internal/diag"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/settle"
	"github.com/san-kum/springsim/internal/spring"
)

type State int

const (
	Idle State = iota
	Playing
	Paused
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Options struct {
	// Config is the base spring config; a keyframe's own Config is merged
	// on top for the segment leading into it. The zero Config means
	// spring.DefaultConfig().
	Config spring.Config

	OnKeyframe func(index int)
	OnUpdate   func(value float64)
	OnComplete func()
}

type Keyframes struct {
	sched  *frame.Scheduler
	value  *spring.Value
	frames []Frame
	opts   Options

	index   int
	state   State
	segment *settle.Signal

	unsub     func()
	ready     bool
	destroyed bool
}

// New resolves kfs and parks the value on the first keyframe. A nil
// scheduler means frame.Default().
func New(sched *frame.Scheduler, kfs []Keyframe, opts Options) (*Keyframes, error) {
	if len(kfs) == 0 {
		return nil, fmt.Errorf("keyframes: %w: empty sequence", dynamo.ErrInvalidKeyframes)
	}
	if sched == nil {
		sched = frame.Default()
	}
	if opts.Config.Stiffness == 0 && opts.Config.Mass == 0 {
		hooks := opts.Config.Hooks
		opts.Config = spring.DefaultConfig()
		opts.Config.Hooks = hooks
	}

	k := &Keyframes{
		sched:  sched,
		frames: Resolve(kfs),
		opts:   opts,
	}
	k.value = spring.NewValue(sched, k.frames[0].Value, opts.Config)
	k.unsub = k.value.Subscribe(func(v float64) {
		if k.ready && k.opts.OnUpdate != nil {
			k.opts.OnUpdate(v)
		}
	})
	k.ready = true
	return k, nil
}

// Play starts the sequence. A paused sequence resumes. An idle one starts
// at the current index, or from the top when that is the last keyframe, as
// does a finished one.
func (k *Keyframes) Play() {
	if k.destroyed {
		return
	}
	switch k.state {
	case Playing:
		return
	case Paused:
		k.Resume()
		return
	case Done:
		k.index = 0
	case Idle:
		if k.index == len(k.frames)-1 {
			k.index = 0
		}
	}
	k.state = Playing
	k.sched.Add(k)
	k.enter(k.index)
}

func (k *Keyframes) Pause() {
	if k.destroyed || k.state != Playing {
		return
	}
	k.state = Paused
	k.value.Pause()
	k.sched.Remove(k)
}

func (k *Keyframes) Resume() {
	if k.destroyed || k.state != Paused {
		return
	}
	k.state = Playing
	k.value.Resume()
	k.sched.Add(k)
}

// Stop parks the value on the first keyframe without animating.
func (k *Keyframes) Stop() {
	if k.destroyed {
		return
	}
	k.sched.Remove(k)
	k.state = Idle
	k.index = 0
	k.segment = nil
	k.value.Jump(k.frames[0].Value)
}

// JumpTo moves straight to keyframe i, clamped to the valid range. A
// playing or paused sequence continues from there; a finished one becomes
// idle so that Play starts at i.
func (k *Keyframes) JumpTo(i int) {
	if k.destroyed {
		return
	}
	i = min(max(i, 0), len(k.frames)-1)
	k.index = i
	k.value.Jump(k.frames[i].Value)

	switch k.state {
	case Playing, Paused:
		k.segment = settle.Resolved(settle.Result{Value: k.frames[i].Value, Finished: true})
	case Done:
		k.state = Idle
	}
	k.notifyKeyframe(i)
}

// Update advances the state machine once the current segment is at rest.
func (k *Keyframes) Update(time.Time) {
	if k.destroyed || k.state != Playing || k.segment == nil || !k.segment.IsResolved() {
		return
	}
	if k.index >= len(k.frames)-1 {
		k.state = Done
		k.segment = nil
		k.sched.Remove(k)
		if k.opts.OnComplete != nil {
			diag.Call("keyframes.complete", k.opts.OnComplete)
		}
		return
	}
	k.enter(k.index + 1)
}

func (k *Keyframes) enter(i int) {
	k.index = i
	k.notifyKeyframe(i)
	f := k.frames[i]
	k.segment = k.value.Set(f.Value, f.Config)
}

func (k *Keyframes) notifyKeyframe(i int) {
	if k.opts.OnKeyframe != nil {
		diag.Call("keyframes.keyframe", func() { k.opts.OnKeyframe(i) })
	}
}

func (k *Keyframes) Destroy() {
	if k.destroyed {
		return
	}
	k.destroyed = true
	k.sched.Remove(k)
	k.unsub()
	k.value.Destroy()
	k.segment = nil
}

func (k *Keyframes) Index() int {
	return k.index
}

func (k *Keyframes) State() State {
	return k.state
}

func (k *Keyframes) Get() float64 {
	return k.value.Get()
}

// Frames returns the resolved, sorted sequence.
func (k *Keyframes) Frames() []Frame {
	return slices.Clone(k.frames)
}

func (k *Keyframes) IsDestroyed() bool {
	return k.destroyed
}
