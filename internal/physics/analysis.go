package physics

import (
	"fmt"
	"math"
)

// NaturalFrequency is ω₀ = √(k/m) in rad/s.
func NaturalFrequency(stiffness, mass float64) float64 {
	if stiffness <= 0 || mass <= 0 {
		return 0
	}
	return math.Sqrt(stiffness / mass)
}

// DampingRatio is ζ = c / (2·√(k·m)).
func DampingRatio(stiffness, damping, mass float64) float64 {
	if stiffness <= 0 || mass <= 0 {
		return math.Inf(1)
	}
	return damping / (2 * math.Sqrt(stiffness*mass))
}

// NaturalPeriod is the undamped period 2π/ω₀ in seconds.
func NaturalPeriod(stiffness, mass float64) float64 {
	w := NaturalFrequency(stiffness, mass)
	if w == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / w
}

// DampedPeriod is 2π/ω_d with ω_d = ω₀·√(1-ζ²). It is +Inf when the spring
// does not oscillate (ζ ≥ 1).
func DampedPeriod(stiffness, damping, mass float64) float64 {
	zeta := DampingRatio(stiffness, damping, mass)
	if zeta >= 1 {
		return math.Inf(1)
	}
	wd := NaturalFrequency(stiffness, mass) * math.Sqrt(1-zeta*zeta)
	return 2 * math.Pi / wd
}

type Regime int

const (
	Undamped Regime = iota
	Underdamped
	CriticallyDamped
	Overdamped
)

func (r Regime) String() string {
	switch r {
	case Undamped:
		return "undamped"
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically damped"
	case Overdamped:
		return "overdamped"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// criticalBand is how close ζ must be to 1 to count as critical.
const criticalBand = 1e-3

func Classify(stiffness, damping, mass float64) Regime {
	zeta := DampingRatio(stiffness, damping, mass)
	switch {
	case damping == 0:
		return Undamped
	case math.Abs(zeta-1) < criticalBand:
		return CriticallyDamped
	case zeta < 1:
		return Underdamped
	default:
		return Overdamped
	}
}

// Advisory is a non-fatal remark about a configuration.
type Advisory struct {
	Field   string
	Message string
}

func (a Advisory) String() string {
	return a.Field + ": " + a.Message
}

// Diagnose inspects p and returns advisories. The engine still runs with
// the given values; only a non-positive mass is substituted elsewhere.
func Diagnose(p Params) []Advisory {
	var out []Advisory
	add := func(field, format string, args ...any) {
		out = append(out, Advisory{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if p.Mass <= 0 {
		add("mass", "must be positive, got %g (default %g used)", p.Mass, DefaultMass)
	}
	if p.Stiffness <= 0 {
		add("stiffness", "must be positive, got %g; the spring will never pull", p.Stiffness)
	}
	if p.Damping < 0 {
		add("damping", "negative damping %g adds energy; the spring will diverge", p.Damping)
	}
	if p.RestSpeed <= 0 {
		add("rest_speed", "must be positive, got %g", p.RestSpeed)
	}
	if p.RestDelta <= 0 {
		add("rest_delta", "must be positive, got %g", p.RestDelta)
	}

	if p.Stiffness > 0 && p.Mass > 0 && p.Damping >= 0 {
		zeta := DampingRatio(p.Stiffness, p.Damping, p.Mass)
		switch {
		case p.Damping == 0:
			add("damping", "zero damping never settles unless the rest thresholds are loose")
		case zeta < 0.05:
			add("damping", "damping ratio %.3f is barely damped; expect long ringing", zeta)
		case zeta > 10:
			add("damping", "damping ratio %.1f is heavily overdamped; motion will crawl", zeta)
		}

		dt := p.Dt
		if dt <= 0 {
			dt = FrameStep
		}
		if w := NaturalFrequency(p.Stiffness, p.Mass); w*dt > 2 {
			add("stiffness", "ω₀·dt = %.2f; the fixed step is too coarse for this spring", w*dt)
		}
	}

	return out
}
