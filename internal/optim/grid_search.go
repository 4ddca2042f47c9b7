// Package optim tunes spring parameters against a recorded metric.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/springsim/internal/sim"
	"github.com/san-kum/springsim/internal/spring"
)

// Tunable parameter names understood by Apply.
const (
	Stiffness = "stiffness"
	Damping   = "damping"
	Mass      = "mass"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Apply sets the named spring parameters on cfg.
func Apply(cfg spring.Config, params map[string]float64) (spring.Config, error) {
	for name, v := range params {
		switch name {
		case Stiffness:
			cfg.Stiffness = v
		case Damping:
			cfg.Damping = v
		case Mass:
			cfg.Mass = v
		default:
			return cfg, fmt.Errorf("unknown parameter %q", name)
		}
	}
	return cfg, nil
}

// Search runs every grid point through sim.Sweep and returns the point
// with the lowest value of metricName.
func (g *GridSearch) Search(
	ctx context.Context,
	base sim.Config,
	newSim func(sim.Config) *sim.Simulator,
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	var points []map[string]float64
	g.collect(0, make(map[string]float64), &points)

	cfgs := make([]sim.Config, len(points))
	for i, p := range points {
		sc, err := Apply(base.Spring, p)
		if err != nil {
			return nil, 0, err
		}
		cfgs[i] = base
		cfgs[i].Spring = sc
	}

	results, err := sim.Sweep(ctx, cfgs, newSim)
	if err != nil {
		return nil, 0, err
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return nil, 0, fmt.Errorf("metric %q not recorded", metricName)
		}
		if val < best {
			best, bestParams = val, points[i]
		}
	}
	return bestParams, best, nil
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.collect(depth+1, newParams, out)
	}
}

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}
