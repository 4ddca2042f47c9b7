package settle

import "sync"

// Join returns a signal that resolves once every input has resolved.
// The joined result is Finished only if all inputs finished, and Cancelled
// if any input was cancelled; Value is taken from the last input to resolve.
// Joining nothing yields an already finished signal.
func Join(signals ...*Signal) *Signal {
	out := New()
	if len(signals) == 0 {
		out.Resolve(Result{Finished: true})
		return out
	}

	var (
		mu        sync.Mutex
		remaining = len(signals)
		finished  = true
		cancelled = false
	)

	for _, sig := range signals {
		sig.OnResolve(func(r Result) {
			mu.Lock()
			remaining--
			finished = finished && r.Finished
			cancelled = cancelled || r.Cancelled
			last := remaining == 0
			joined := Result{Value: r.Value, Finished: finished, Cancelled: cancelled}
			mu.Unlock()

			if last {
				out.Resolve(joined)
			}
		})
	}
	return out
}
