// Package trail chains follower springs behind a leader. Follower i picks
// up each leader target (i+1)*FollowDelay frames after it was issued.
package trail

import (
	"github.com/san-kum/springsim/internal/fanout"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/settle"
	"github.com/san-kum/springsim/internal/spring"
)

// DefaultFollowDelay is the per-follower lag in frames.
const DefaultFollowDelay = 3

type Options struct {
	// FollowDelay is the lag in frames between neighbours. Zero retargets
	// every follower in the same call as the leader.
	FollowDelay int
	// Config is shared by leader and followers. The zero Config means
	// spring.DefaultConfig().
	Config  spring.Config
	Initial float64

	// Debounce collapses follower notifications to one per frame.
	Debounce bool
}

func DefaultOptions() Options {
	return Options{FollowDelay: DefaultFollowDelay, Config: spring.DefaultConfig()}
}

// pendingUpdate is a scheduled follower retarget. A timer only applies its
// update if the entry it captured is still the one in the pending map.
type pendingUpdate struct {
	frame uint64
	seq   uint64
	to    float64
	cfg   *spring.Override
}

type Trail struct {
	sched     *frame.Scheduler
	delay     int
	leader    *spring.Value
	followers []*spring.Value
	unsubs    []func()

	seq     uint64
	pending map[int]pendingUpdate
	timers  map[int]*frame.Timer
	proxies map[int]*settle.Signal

	subs        *fanout.Set[[]float64]
	debounce    bool
	flushQueued bool
	flushToken  uint64

	ready     bool
	destroyed bool
}

// New builds a leader and n followers, all resting at opts.Initial. A nil
// scheduler means frame.Default().
func New(sched *frame.Scheduler, n int, opts Options) *Trail {
	if sched == nil {
		sched = frame.Default()
	}
	if n < 0 {
		n = 0
	}
	if opts.FollowDelay < 0 {
		opts.FollowDelay = 0
	}
	if opts.Config.Stiffness == 0 && opts.Config.Mass == 0 {
		hooks := opts.Config.Hooks
		opts.Config = spring.DefaultConfig()
		opts.Config.Hooks = hooks
	}
	t := &Trail{
		sched:    sched,
		delay:    opts.FollowDelay,
		leader:   spring.NewValue(sched, opts.Initial, opts.Config),
		pending:  make(map[int]pendingUpdate),
		timers:   make(map[int]*frame.Timer),
		proxies:  make(map[int]*settle.Signal),
		subs:     fanout.New[[]float64]("trail"),
		debounce: opts.Debounce,
	}
	for range n {
		f := spring.NewValue(sched, opts.Initial, opts.Config)
		t.followers = append(t.followers, f)
		t.unsubs = append(t.unsubs, f.Subscribe(func(float64) { t.changed() }))
	}
	t.ready = true
	return t
}

// Set retargets the leader now and every follower after its delay. The
// returned signal resolves once the leader and all followers have resolved
// for this target; followers overtaken by a newer Set resolve cancelled.
func (t *Trail) Set(to float64, o *spring.Override) *settle.Signal {
	if t.destroyed {
		return settle.Resolved(settle.Result{Cancelled: true})
	}
	sigs := []*settle.Signal{t.leader.Set(to, o)}
	to = t.leader.Target()

	t.seq++
	now := t.sched.Frame()
	for i, f := range t.followers {
		if t.delay == 0 {
			t.drop(i)
			sigs = append(sigs, f.Set(to, o))
			continue
		}
		frames := (i + 1) * t.delay
		p := pendingUpdate{frame: now + uint64(frames), seq: t.seq, to: to, cfg: o}
		t.drop(i)
		t.pending[i] = p

		proxy := settle.New()
		t.proxies[i] = proxy
		t.timers[i] = t.sched.After(frames, func() { t.fire(i, p) })
		sigs = append(sigs, proxy)
	}
	return settle.Join(sigs...)
}

func (t *Trail) fire(i int, p pendingUpdate) {
	if t.destroyed {
		return
	}
	if cur, ok := t.pending[i]; !ok || cur != p {
		return
	}
	delete(t.pending, i)
	delete(t.timers, i)
	proxy := t.proxies[i]
	delete(t.proxies, i)

	sig := t.followers[i].Set(p.to, p.cfg)
	sig.OnResolve(func(r settle.Result) { proxy.Resolve(r) })
}

// drop forgets follower i's scheduled update and cancels its proxy signal.
func (t *Trail) drop(i int) {
	delete(t.pending, i)
	if tm, ok := t.timers[i]; ok {
		tm.Stop()
		delete(t.timers, i)
	}
	if proxy, ok := t.proxies[i]; ok {
		proxy.Cancel(t.followers[i].Get())
		delete(t.proxies, i)
	}
}

// Jump moves the leader and every follower at once, discarding scheduled
// follower updates.
func (t *Trail) Jump(to float64) {
	if t.destroyed {
		return
	}
	t.leader.Jump(to)
	to = t.leader.Get()
	for i, f := range t.followers {
		t.drop(i)
		f.Jump(to)
	}
}

// Stop freezes the whole trail where it is.
func (t *Trail) Stop() {
	if t.destroyed {
		return
	}
	t.leader.Stop()
	for i, f := range t.followers {
		t.drop(i)
		f.Stop()
	}
}

// GetValues returns follower positions in index order.
func (t *Trail) GetValues() []float64 {
	out := make([]float64, len(t.followers))
	for i, f := range t.followers {
		out[i] = f.Get()
	}
	return out
}

func (t *Trail) Leader() *spring.Value {
	return t.leader
}

func (t *Trail) Len() int {
	return len(t.followers)
}

// Pending is the number of follower updates waiting for their frame.
func (t *Trail) Pending() int {
	return len(t.pending)
}

func (t *Trail) IsAnimating() bool {
	if len(t.pending) > 0 || t.leader.IsAnimating() {
		return true
	}
	for _, f := range t.followers {
		if f.IsAnimating() {
			return true
		}
	}
	return false
}

// Subscribe calls fn with the follower positions now and whenever a
// follower moves.
func (t *Trail) Subscribe(fn func([]float64)) func() {
	if t.destroyed {
		return func() {}
	}
	unsub := t.subs.Add(fn)
	t.subs.Send(fn, t.GetValues())
	return unsub
}

func (t *Trail) Destroy() {
	if t.destroyed {
		return
	}
	for i := range t.followers {
		t.drop(i)
	}
	t.destroyed = true
	t.flushToken++
	for _, unsub := range t.unsubs {
		unsub()
	}
	t.unsubs = nil
	t.leader.Destroy()
	for _, f := range t.followers {
		f.Destroy()
	}
	t.subs.Clear()
}

func (t *Trail) IsDestroyed() bool {
	return t.destroyed
}

func (t *Trail) changed() {
	if !t.ready || t.destroyed {
		return
	}
	if !t.debounce {
		t.subs.Notify(t.GetValues())
		return
	}
	if t.flushQueued {
		return
	}
	t.flushQueued = true
	token := t.flushToken
	t.sched.Defer(func() {
		if token != t.flushToken {
			return
		}
		t.flushQueued = false
		t.subs.Notify(t.GetValues())
	})
}
