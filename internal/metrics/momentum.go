package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/dynamo"
	"github.com/san-kum/rotodyn/internal/linalg"
)

// MomentumDrift tracks the maximum relative drift of the angular momentum
// norm |I w|, conserved for torque-free motion.
type MomentumDrift struct {
	name    string
	inertia func() *mat.Dense
	initial float64
	max     float64
	samples int
}

func NewMomentumDrift(inertia func() *mat.Dense) *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift", inertia: inertia}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(x dynamo.State, t float64) {
	if len(x) < 7 {
		return
	}
	w := mat.NewVecDense(3, []float64{x[4], x[5], x[6]})
	h := mat.Norm(linalg.MulVec3(m.inertia(), w), 2)

	if m.samples == 0 {
		m.initial = h
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(h-m.initial) / m.initial
		m.max = math.Max(m.max, drift)
	}
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.initial = 0
	m.max = 0
	m.samples = 0
}
