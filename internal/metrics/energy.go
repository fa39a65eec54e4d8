package metrics

import (
	"math"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

// KineticEnergy averages the rotational kinetic energy over a run.
type KineticEnergy struct {
	name    string
	dyn     dynamo.System
	samples int
	total   float64
}

func NewKineticEnergy(dyn dynamo.System) *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy", dyn: dyn}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(x dynamo.State, t float64) {
	ec, ok := k.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}
	k.total += ec.Energy(x)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// EnergyDrift tracks the maximum relative drift of the system energy.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
	dyn      dynamo.System
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", dyn: dyn}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	ec, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := ec.Energy(x)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
