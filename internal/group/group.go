// Package group animates a record of named spring values as one unit.
//
// Subscribers see at most one notification per frame, carrying the latest
// full record.
package group

import (
	"maps"
	"slices"

	"github.com/san-kum/springsim/internal/diag"
	"github.com/san-kum/springsim/internal/fanout"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/settle"
	"github.com/san-kum/springsim/internal/spring"
	"go.uber.org/zap"
)

type Group struct {
	sched   *frame.Scheduler
	keys    []string
	members map[string]*spring.Value
	unsubs  []func()
	subs    *fanout.Set[map[string]float64]

	pending *settle.Signal

	flushQueued bool
	flushToken  uint64

	ready     bool
	destroyed bool
}

// New builds a group with one member per key of initial, all sharing cfg.
// A nil scheduler means frame.Default().
func New(sched *frame.Scheduler, initial map[string]float64, cfg spring.Config) *Group {
	if sched == nil {
		sched = frame.Default()
	}
	g := &Group{
		sched:   sched,
		keys:    slices.Sorted(maps.Keys(initial)),
		members: make(map[string]*spring.Value, len(initial)),
		subs:    fanout.New[map[string]float64]("group"),
	}
	for _, k := range g.keys {
		v := spring.NewValue(sched, initial[k], cfg)
		g.members[k] = v
		g.unsubs = append(g.unsubs, v.Subscribe(func(float64) { g.schedule() }))
	}
	g.ready = true
	return g
}

// Set retargets every member named in values. The returned signal resolves
// once all of those members have resolved. Unknown keys are ignored.
func (g *Group) Set(values map[string]float64, o *spring.Override) *settle.Signal {
	if g.destroyed {
		return settle.Resolved(settle.Result{Cancelled: true})
	}
	var sigs []*settle.Signal
	for _, k := range slices.Sorted(maps.Keys(values)) {
		m, ok := g.members[k]
		if !ok {
			diag.Advise("unknown group member", zap.String("key", k))
			continue
		}
		sigs = append(sigs, m.Set(values[k], o))
	}
	g.pending = settle.Join(sigs...)
	return g.pending
}

// Jump moves the named members without animating.
func (g *Group) Jump(values map[string]float64) {
	if g.destroyed {
		return
	}
	for k, v := range values {
		if m, ok := g.members[k]; ok {
			m.Jump(v)
		}
	}
}

// Stop freezes every member where it is.
func (g *Group) Stop() {
	if g.destroyed {
		return
	}
	for _, k := range g.keys {
		g.members[k].Stop()
	}
}

// Get returns a copy of the current record.
func (g *Group) Get() map[string]float64 {
	out := make(map[string]float64, len(g.members))
	for k, m := range g.members {
		out[k] = m.Get()
	}
	return out
}

func (g *Group) Member(key string) (*spring.Value, bool) {
	m, ok := g.members[key]
	return m, ok
}

func (g *Group) Keys() []string {
	return slices.Clone(g.keys)
}

// Done is the signal of the latest Set.
func (g *Group) Done() *settle.Signal {
	if g.pending == nil {
		return settle.Join()
	}
	return g.pending
}

func (g *Group) IsAnimating() bool {
	for _, m := range g.members {
		if m.IsAnimating() {
			return true
		}
	}
	return false
}

// Subscribe calls fn with the current record and then at most once per
// frame while members change.
func (g *Group) Subscribe(fn func(map[string]float64)) func() {
	if g.destroyed {
		return func() {}
	}
	unsub := g.subs.Add(fn)
	g.subs.Send(fn, g.Get())
	return unsub
}

// Destroy tears down every member and drops a queued notification. Any
// outstanding signal resolves cancelled.
func (g *Group) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	g.flushToken++
	for _, unsub := range g.unsubs {
		unsub()
	}
	g.unsubs = nil
	for _, k := range g.keys {
		g.members[k].Destroy()
	}
	g.subs.Clear()
}

func (g *Group) IsDestroyed() bool {
	return g.destroyed
}

func (g *Group) schedule() {
	if !g.ready || g.destroyed || g.flushQueued {
		return
	}
	g.flushQueued = true
	token := g.flushToken
	g.sched.Defer(func() {
		if token != g.flushToken {
			return
		}
		g.flushQueued = false
		g.subs.Notify(g.Get())
	})
}
