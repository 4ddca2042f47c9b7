package frame

import (
	"testing"
	"time"

	"github.com/san-kum/springsim/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type counter struct {
	updates int
	onTick  func()
}

func (c *counter) Update(time.Time) {
	c.updates++
	if c.onTick != nil {
		c.onTick()
	}
}

func TestScheduler_AddIsIdempotent(t *testing.T) {
	s, m := NewManualScheduler()
	c := &counter{}

	s.Add(c)
	s.Add(c)
	assert.Equal(t, 1, s.Len())

	m.Step()
	assert.Equal(t, 1, c.updates, "a member is advanced once per tick")
}

func TestScheduler_RemoveIsIdempotent(t *testing.T) {
	s, _ := NewManualScheduler()
	c := &counter{}

	s.Remove(c)
	s.Add(c)
	s.Remove(c)
	s.Remove(c)
	assert.False(t, s.Has(c))
	assert.Zero(t, s.Len())
}

func TestScheduler_StopsRequestingWhenEmpty(t *testing.T) {
	s, m := NewManualScheduler()
	assert.False(t, m.Pending(), "a fresh scheduler requests nothing")

	c := &counter{}
	s.Add(c)
	require.True(t, m.Pending())

	m.Step()
	assert.True(t, m.Pending())

	s.Remove(c)
	m.Step()
	assert.False(t, m.Pending(), "an empty scheduler stops requesting frames")
	assert.True(t, s.Idle())

	s.Add(c)
	assert.True(t, m.Pending(), "adding resumes frame requests")
}

func TestScheduler_SelfRemovalDuringTick(t *testing.T) {
	s, m := NewManualScheduler()
	var a, b *counter
	a = &counter{}
	a.onTick = func() { s.Remove(a) }
	b = &counter{}

	s.Add(a)
	s.Add(b)
	m.StepN(3)

	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 3, b.updates)
}

func TestScheduler_RemovedPeerIsSkipped(t *testing.T) {
	s, m := NewManualScheduler()
	a := &counter{}
	b := &counter{}
	// whichever runs first removes the other
	a.onTick = func() { s.Remove(b) }
	b.onTick = func() { s.Remove(a) }

	s.Add(a)
	s.Add(b)
	m.Step()

	assert.Equal(t, 1, a.updates+b.updates)
}

func TestScheduler_AddDuringTickWaitsForNextFrame(t *testing.T) {
	s, m := NewManualScheduler()
	late := &counter{}
	first := &counter{}
	first.onTick = func() { s.Add(late) }

	s.Add(first)
	m.Step()
	assert.Zero(t, late.updates)

	m.Step()
	assert.Equal(t, 1, late.updates)
}

func TestScheduler_PanicDoesNotStopOthers(t *testing.T) {
	s, m := NewManualScheduler()
	bad := &counter{onTick: func() { panic("broken animation") }}
	good := &counter{}

	s.Add(bad)
	s.Add(good)

	core, logs := observer.New(zap.ErrorLevel)
	diag.SetLogger(zap.New(core))
	defer diag.SetLogger(nil)

	assert.NotPanics(t, func() { m.StepN(2) })
	assert.Equal(t, 2, good.updates)

	entries := logs.FilterMessage("recovered panic").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "*frame.counter", entries[0].ContextMap()["component"])
	assert.Equal(t, uint64(1), entries[0].ContextMap()["frame"])
	assert.Equal(t, uint64(2), entries[1].ContextMap()["frame"])
}

func TestScheduler_DeferredPanicIsRecovered(t *testing.T) {
	s, m := NewManualScheduler()
	ran := false

	s.Defer(func() { panic("broken callback") })
	s.Defer(func() { ran = true })

	assert.NotPanics(t, func() { m.Step() })
	assert.True(t, ran)
}

func TestScheduler_After(t *testing.T) {
	s, m := NewManualScheduler()
	var fired []uint64

	s.After(2, func() { fired = append(fired, s.Frame()) })
	stopped := s.After(1, func() { fired = append(fired, 999) })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	m.RunUntilIdle(10)
	assert.Equal(t, []uint64{2}, fired)
	assert.False(t, m.Pending())
}

func TestScheduler_TimerRunsBeforeUpdates(t *testing.T) {
	s, m := NewManualScheduler()
	c := &counter{}
	s.After(1, func() { s.Add(c) })

	m.Step()
	assert.Equal(t, 1, c.updates, "a member added by a timer is advanced in the same tick")
}

func TestScheduler_Defer(t *testing.T) {
	s, m := NewManualScheduler()
	var order []string
	c := &counter{onTick: func() { order = append(order, "update") }}
	s.Add(c)

	s.Defer(func() { order = append(order, "defer") })
	m.Step()
	assert.Equal(t, []string{"update", "defer"}, order)

	order = nil
	c.onTick = func() {
		order = append(order, "update")
		s.Defer(func() { order = append(order, "same-tick") })
	}
	m.Step()
	assert.Equal(t, []string{"update", "same-tick"}, order)
}

func TestManual_Time(t *testing.T) {
	s, m := NewManualScheduler()
	start := time.Unix(0, 0)
	c := &counter{}
	s.Add(c)

	m.StepN(3)
	assert.Equal(t, start.Add(3*DefaultInterval), s.Now())
	assert.Equal(t, uint64(3), s.Frame())
}

func TestRealtime_DrivesFrames(t *testing.T) {
	s, rt := NewRealtimeScheduler(time.Millisecond)
	defer rt.Stop()

	done := make(chan struct{})
	var c *counter
	c = &counter{onTick: func() {
		if c.updates == 3 {
			s.Remove(c)
			close(done)
		}
	}}
	rt.Do(func() { s.Add(c) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("realtime source did not deliver frames")
	}
}

func TestDefault_IsShared(t *testing.T) {
	s := Default()
	assert.Same(t, s, Default())

	ran := false
	Do(func() { ran = true })
	assert.True(t, ran)
}
