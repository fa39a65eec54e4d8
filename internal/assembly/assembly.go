// Package assembly drives the torque partials to build the full system
// Jacobians an estimation filter consumes: the 6x6 state Jacobian over
// (attitude error, angular velocity) and the parameter Jacobian with one
// column block per estimated parameter.
package assembly

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/estparams"
	"github.com/san-kum/rotodyn/internal/linalg"
	"github.com/san-kum/rotodyn/internal/partials"
)

// State row/column layout: attitude error occupies indices 0-2, angular
// velocity 3-5.
const (
	attitudeOffset = 0
	velocityOffset = 3
	stateDimension = 6
)

type Assembler struct {
	partials []partials.TorquePartial
	registry *estparams.Registry

	angularVelocity func() *mat.VecDense
	inertiaTensor   func() *mat.Dense
}

// New builds an assembler over the active torque partials. angularVelocity
// and inertiaTensor evaluate the accelerated body's current state for the
// kinematic rows and the torque-to-acceleration scaling.
func New(
	angularVelocity func() *mat.VecDense,
	inertiaTensor func() *mat.Dense,
	registry *estparams.Registry,
	ps ...partials.TorquePartial,
) *Assembler {
	return &Assembler{
		partials:        ps,
		registry:        registry,
		angularVelocity: angularVelocity,
		inertiaTensor:   inertiaTensor,
	}
}

// Update refreshes every active partial's cache for epoch t. It must be
// called (directly or through the Jacobian methods) before any block is
// read for that epoch.
func (a *Assembler) Update(t float64) {
	for _, p := range a.partials {
		p.Update(t)
	}
}

// StateJacobian assembles d(state derivative)/d(state) at epoch t. Torque
// contributions accumulate additively into the angular-acceleration rows and
// are scaled by the inverse inertia tensor once; the attitude rows hold the
// kinematic linearization d(theta')/d(theta) = -skew(w), d(theta')/d(w) = Id.
func (a *Assembler) StateJacobian(t float64) *mat.Dense {
	a.Update(t)

	j := mat.NewDense(stateDimension, stateDimension, nil)
	for _, p := range a.partials {
		p.AddOrientationPartial(j, true, velocityOffset, attitudeOffset)
		p.AddAngularVelocityPartial(j, true, velocityOffset, velocityOffset)
	}
	a.scaleTorqueRows(j)

	w := a.angularVelocity()
	wCross := linalg.CrossProductMatrix(w)
	for i := 0; i < 3; i++ {
		for c := 0; c < 3; c++ {
			j.Set(attitudeOffset+i, attitudeOffset+c, -wCross.At(i, c))
		}
		j.Set(attitudeOffset+i, velocityOffset+i, 1)
	}

	return j
}

// ParameterJacobian assembles d(state derivative)/d(parameters) at epoch t,
// with columns laid out in registry order (scalars first, then vectors).
// Bindings with zero columns are never invoked. An empty registry yields nil.
func (a *Assembler) ParameterJacobian(t float64) *mat.Dense {
	a.Update(t)

	width := a.registry.TotalColumns()
	if width == 0 {
		return nil
	}
	j := mat.NewDense(stateDimension, width, nil)

	col := 0
	for _, s := range a.registry.Scalars {
		for _, p := range a.partials {
			binding := p.ScalarParameterPartial(s)
			if binding.Columns == 0 {
				continue
			}
			block := mat.NewDense(3, binding.Columns, nil)
			binding.Write(block)
			linalg.AccumulateBlock(j, block, velocityOffset, col, true)
		}
		col++
	}
	for _, v := range a.registry.Vectors {
		for _, p := range a.partials {
			binding := p.VectorParameterPartial(v)
			if binding.Columns == 0 {
				continue
			}
			block := mat.NewDense(3, binding.Columns, nil)
			binding.Write(block)
			linalg.AccumulateBlock(j, block, velocityOffset, col, true)
		}
		col += v.Dimension()
	}

	a.scaleTorqueRows(j)
	return j
}

// ScalarColumn returns the Jacobian column of the i-th registered scalar.
func (a *Assembler) ScalarColumn(i int) int { return i }

// VectorColumn returns the first Jacobian column of the i-th registered
// vector block.
func (a *Assembler) VectorColumn(i int) int {
	col := len(a.registry.Scalars)
	for k := 0; k < i; k++ {
		col += a.registry.Vectors[k].Dimension()
	}
	return col
}

// scaleTorqueRows left-multiplies the angular-acceleration rows by the
// inverse inertia tensor, converting accumulated torque partials into state
// derivative partials.
func (a *Assembler) scaleTorqueRows(j *mat.Dense) {
	_, cols := j.Dims()
	inv := linalg.Inverse3(a.inertiaTensor())

	rows := mat.NewDense(3, cols, nil)
	for i := 0; i < 3; i++ {
		for c := 0; c < cols; c++ {
			rows.Set(i, c, j.At(velocityOffset+i, c))
		}
	}
	scaled := mat.NewDense(3, cols, nil)
	scaled.Mul(inv, rows)
	for i := 0; i < 3; i++ {
		for c := 0; c < cols; c++ {
			j.Set(velocityOffset+i, c, scaled.At(i, c))
		}
	}
}
