package sim

import (
	"fmt"

	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/spring"
)

type Observer interface {
	OnFrame(frame int, x dynamo.State, target float64, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(frame int, x dynamo.State, target float64, t float64)

func (f ObserverFunc) OnFrame(frame int, x dynamo.State, target float64, t float64) {
	f(frame, x, target, t)
}

// Retarget moves the target to To once frame Frame has run. Frame 0 is the
// initial state.
type Retarget struct {
	Frame int     `yaml:"frame" json:"frame"`
	To    float64 `yaml:"to" json:"to"`
}

type Config struct {
	Spring    spring.Config
	From      float64
	To        float64
	MaxFrames int
	Retargets []Retarget
}

func DefaultConfig() Config {
	return Config{
		Spring:    spring.DefaultConfig(),
		To:        1,
		MaxFrames: 600,
	}
}

type Result struct {
	States  []dynamo.State
	Targets []float64
	Times   []float64
	Frames  int
	Settled bool
	Metrics map[string]float64
}

// Final is the last recorded state.
func (r *Result) Final() dynamo.State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

type SimError struct {
	Frame   int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim error at frame %d: %s", e.Frame, e.Message)
}
