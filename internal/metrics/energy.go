package metrics

import (
	"github.com/san-kum/springsim/internal/dynamo"
)

// Energy is the mean spring energy ½k(x-x*)² + ½mv² left over the run.
type Energy struct {
	name        string
	dyn         dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(dyn dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "energy",
		dyn:  dyn,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) < 2 {
		return
	}
	e.totalEnergy += e.dyn.Energy(x, u)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}
