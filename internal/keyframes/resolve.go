package keyframes

import (
	"cmp"
	"slices"

	"github.com/san-kum/springsim/internal/diag"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/spring"
	"go.uber.org/zap"
)

// Keyframe is one stop of a sequence. At is the normalized time position
// in [0,1]; nil spreads the keyframe evenly between its neighbours.
type Keyframe struct {
	Value  float64          `yaml:"value"`
	At     *float64         `yaml:"at,omitempty"`
	Config *spring.Override `yaml:"config,omitempty"`
}

// Frame is a keyframe with its time position resolved.
type Frame struct {
	Value  float64
	At     float64
	Config *spring.Override

	// Source is the keyframe's index in the input list.
	Source int
}

// Resolve assigns every keyframe a time position and sorts the result by
// it. Missing positions are interpolated between the nearest explicit ones,
// with 0 and 1 standing in at the ends; ties keep input order.
func Resolve(kfs []Keyframe) []Frame {
	n := len(kfs)
	if n == 0 {
		return nil
	}
	at := make([]float64, n)
	known := make([]bool, n)
	for i, kf := range kfs {
		if kf.At != nil && dynamo.IsFinite(*kf.At) {
			at[i], known[i] = min(max(*kf.At, 0), 1), true
		}
	}
	if !known[0] {
		at[0], known[0] = 0, true
	}
	if !known[n-1] {
		at[n-1], known[n-1] = 1, true
	}

	prev := 0
	for i := 1; i < n; i++ {
		if !known[i] {
			continue
		}
		for j := prev + 1; j < i; j++ {
			at[j] = at[prev] + (at[i]-at[prev])*float64(j-prev)/float64(i-prev)
		}
		prev = i
	}

	frames := make([]Frame, n)
	for i, kf := range kfs {
		if !dynamo.IsFinite(kf.Value) {
			diag.Advise("non-finite keyframe replaced", zap.Int("index", i), zap.Error(dynamo.ErrNonFinite))
		}
		v := dynamo.Finite(kf.Value, 0)
		frames[i] = Frame{Value: v, At: at[i], Config: kf.Config, Source: i}
	}
	slices.SortStableFunc(frames, func(a, b Frame) int {
		return cmp.Compare(a.At, b.At)
	})
	return frames
}

// At is a helper for building Keyframe literals.
func At(t float64) *float64 {
	return &t
}
