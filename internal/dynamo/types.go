package dynamo

import "math"

// State is {position, velocity} for a single spring.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Position() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

func (s State) Velocity() float64 {
	if len(s) < 2 {
		return 0
	}
	return s[1]
}

// Control carries external input. Springs read Control{target}.
type Control []float64

func (u Control) Target() float64 {
	if len(u) == 0 {
		return 0
	}
	return u[0]
}

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State, u Control) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

// IsFinite reports whether v is neither NaN nor Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite returns v, or fallback when v is NaN or Inf.
func Finite(v, fallback float64) float64 {
	if IsFinite(v) {
		return v
	}
	return fallback
}
