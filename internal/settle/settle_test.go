package settle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_ResolvesOnce(t *testing.T) {
	s := New()
	assert.False(t, s.IsResolved())

	assert.True(t, s.Finish(10))
	assert.False(t, s.Cancel(3))

	r, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, Result{Value: 10, Finished: true}, r)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done channel should be closed")
	}
}

func TestSignal_OnResolve(t *testing.T) {
	s := New()
	var got []Result
	s.OnResolve(func(r Result) { got = append(got, r) })

	s.Cancel(4)
	s.Finish(5)
	require.Len(t, got, 1)
	assert.True(t, got[0].Cancelled)

	s.OnResolve(func(r Result) { got = append(got, r) })
	assert.Len(t, got, 2, "late callback should run immediately")
}

func TestSignal_CallbackPanicIsolated(t *testing.T) {
	s := New()
	ran := false
	s.OnResolve(func(Result) { panic("boom") })
	s.OnResolve(func(Result) { ran = true })

	assert.NotPanics(t, func() { s.Finish(1) })
	assert.True(t, ran)
}

func TestSignal_WaitAcrossGoroutines(t *testing.T) {
	s := New()
	go func() {
		time.Sleep(time.Millisecond)
		s.Finish(42)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := s.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.0, r.Value)
}

func TestSignal_WaitContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJoin(t *testing.T) {
	t.Run("waits for every input", func(t *testing.T) {
		a, b := New(), New()
		j := Join(a, b)

		a.Finish(1)
		assert.False(t, j.IsResolved())

		b.Finish(2)
		r, ok := j.Result()
		require.True(t, ok)
		assert.True(t, r.Finished)
		assert.False(t, r.Cancelled)
	})

	t.Run("cancelled input taints the join", func(t *testing.T) {
		a, b := New(), New()
		j := Join(a, b)
		b.Cancel(0)
		a.Finish(1)

		r, _ := j.Result()
		assert.False(t, r.Finished)
		assert.True(t, r.Cancelled)
	})

	t.Run("already resolved inputs", func(t *testing.T) {
		j := Join(Resolved(Result{Finished: true}), Resolved(Result{Finished: true}))
		assert.True(t, j.IsResolved())
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, Join().IsResolved())
	})
}
