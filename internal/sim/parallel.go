package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Sweep runs every config on its own simulator in parallel. newSim is
// called once per config; each run owns its scheduler, so nothing is
// shared between goroutines. Results keep the order of cfgs.
func Sweep(ctx context.Context, cfgs []Config, newSim func(Config) *Simulator) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cfg := range cfgs {
		g.Go(func() error {
			res, err := newSim(cfg).Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
