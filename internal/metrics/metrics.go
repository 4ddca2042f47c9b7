// Package metrics scores recorded spring trajectories.
package metrics

import (
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/physics"
)

// Standard returns the metrics recorded for every run of sp.
func Standard(sp physics.Spring, band float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewOvershoot(),
		NewSettleTime(band),
		NewPeakVelocity(),
		NewEnergy(sp),
	}
}
