// Package automation runs scripted sequences of spring animations and
// single-parameter sweeps headless.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/diag"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/optim"
	"github.com/san-kum/springsim/internal/sim"
	"github.com/san-kum/springsim/internal/spring"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of animations on one value.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step animates toward To. A step without From starts where the previous
// step came to rest.
type Step struct {
	Name      string          `yaml:"name"`
	Preset    string          `yaml:"preset"`
	Spring    spring.Override `yaml:"spring"`
	From      *float64        `yaml:"from"`
	To        float64         `yaml:"to"`
	MaxFrames int             `yaml:"max_frames"`
	Retargets []sim.Retarget  `yaml:"retargets"`
	SaveAs    string          `yaml:"save_as"`
}

// StepResult pairs a step with the config it ran under.
type StepResult struct {
	Step   Step
	Preset string
	Config sim.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

// RunScenario executes the steps in order on top of base. Results of the
// steps that completed are returned along with the first error.
func RunScenario(
	ctx context.Context,
	scenario *Scenario,
	base *config.Config,
	newSim func(sim.Config) *sim.Simulator,
) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	from := base.Run.From

	for i, step := range scenario.Steps {
		cfg, preset, err := stepConfig(base, step, from)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		diag.L().Debug("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Float64("from", cfg.From),
			zap.Float64("to", cfg.To),
		)

		result, err := newSim(cfg).Run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Preset: preset, Config: cfg, Result: result})
		from = result.Final().Position()
	}

	return results, nil
}

func stepConfig(base *config.Config, step Step, from float64) (sim.Config, string, error) {
	c := *base
	if step.Preset != "" {
		if err := c.ApplyPreset(step.Preset); err != nil {
			return sim.Config{}, "", err
		}
	}
	c.Spring = c.Spring.Merge(&step.Spring)
	if _, err := integrators.ByName(c.Spring.Integrator); err != nil {
		return sim.Config{}, "", err
	}

	cfg := sim.Config{
		Spring:    c.SpringConfig(),
		From:      from,
		To:        step.To,
		MaxFrames: c.Run.MaxFrames,
		Retargets: step.Retargets,
	}
	if step.From != nil {
		cfg.From = *step.From
	}
	if step.MaxFrames > 0 {
		cfg.MaxFrames = step.MaxFrames
	}
	return cfg, c.Preset, nil
}

// ParameterSweep varies one spring parameter over an even range.
type ParameterSweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// SweepResult holds the outcome of one sweep point.
type SweepResult struct {
	ParamValue float64
	FinalState dynamo.State
	Frames     int
	Settled    bool
	Metrics    map[string]float64
}

// RunSweep runs every sweep point in parallel through sim.Sweep. Results
// are ordered by parameter value.
func RunSweep(
	ctx context.Context,
	sweep ParameterSweep,
	base sim.Config,
	newSim func(sim.Config) *sim.Simulator,
) ([]SweepResult, error) {
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.Steps)
	}

	values := optim.Range(sweep.Min, sweep.Max, sweep.Steps)
	cfgs := make([]sim.Config, len(values))
	for i, v := range values {
		sc, err := optim.Apply(base.Spring, map[string]float64{sweep.Param: v})
		if err != nil {
			return nil, err
		}
		cfgs[i] = base
		cfgs[i].Spring = sc
	}

	runs, err := sim.Sweep(ctx, cfgs, newSim)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{
			ParamValue: values[i],
			FinalState: r.Final(),
			Frames:     r.Frames,
			Settled:    r.Settled,
			Metrics:    r.Metrics,
		}
	}
	return results, nil
}
