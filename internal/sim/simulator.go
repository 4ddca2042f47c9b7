package sim

import (
	"context"
	"fmt"
	"slices"

	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/spring"
)

// Simulator runs a spring value headless on a private manual clock, one
// frame per step, and records what it did.
type Simulator struct {
	metrics   []dynamo.Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }

// Run animates from cfg.From to cfg.To until the value comes to rest with
// no retarget left, or cfg.MaxFrames frames have run.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([]dynamo.State, 0, cfg.MaxFrames+1),
		Targets: make([]float64, 0, cfg.MaxFrames+1),
		Times:   make([]float64, 0, cfg.MaxFrames+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	sched, clock := frame.NewManualScheduler()
	v := spring.NewValue(sched, cfg.From, cfg.Spring)
	defer v.Destroy()

	retargets := slices.Clone(cfg.Retargets)
	slices.SortStableFunc(retargets, func(a, b Retarget) int { return a.Frame - b.Frame })

	record := func(i int) {
		x := dynamo.State{v.Get(), v.Velocity()}
		u := dynamo.Control{v.Target()}
		t := float64(i) * physics.FrameStep
		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnFrame(i, x, u.Target(), t)
		}
		result.States = append(result.States, x)
		result.Targets = append(result.Targets, u.Target())
		result.Times = append(result.Times, t)
	}

	sig := v.Set(cfg.To, nil)
	record(0)

	for i := 1; i <= cfg.MaxFrames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for len(retargets) > 0 && retargets[0].Frame < i {
			sig = v.Set(retargets[0].To, nil)
			retargets = retargets[1:]
		}
		if !clock.Step() && len(retargets) == 0 {
			break
		}
		result.Frames = i

		x := dynamo.State{v.Get(), v.Velocity()}
		if !x.IsValid() {
			return result, SimError{Frame: i, Message: "invalid state (NaN/Inf)"}
		}
		record(i)

		if sig.IsResolved() && len(retargets) == 0 {
			break
		}
	}

	if r, ok := sig.Result(); ok && r.Finished {
		result.Settled = true
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.MaxFrames <= 0 {
		return fmt.Errorf("max frames must be positive, got %d", cfg.MaxFrames)
	}
	for _, r := range cfg.Retargets {
		if r.Frame < 0 {
			return fmt.Errorf("retarget frame must not be negative, got %d", r.Frame)
		}
	}
	return nil
}
