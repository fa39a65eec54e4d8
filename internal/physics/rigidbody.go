package physics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/linalg"
)

// GravitationalConstant in m^3 kg^-1 s^-2 (CODATA 2018).
const GravitationalConstant = 6.67430e-11

// GravityField holds a body's gravitational parameter, reference radius and
// unnormalized degree-2 spherical harmonic coefficients.
type GravityField struct {
	Mu              float64
	ReferenceRadius float64
	C20, C21, C22   float64
	S21, S22        float64
}

// RigidBody ties a gravity field and a scaled mean moment of inertia to a
// named body. The angular velocity is settable by the propagation loop; the
// evaluator closures hand the current values to the torque partials.
type RigidBody struct {
	Name string

	Field GravityField

	// MeanMoment is the scaled mean moment of inertia
	// (Ixx+Iyy+Izz)/(3 M R^2).
	MeanMoment float64

	omega [3]float64
}

// Mass derives the body mass from its gravitational parameter.
func (b *RigidBody) Mass() float64 {
	return b.Field.Mu / GravitationalConstant
}

// NormalizationFactor is 1/(M R^2), the factor scaling the inertia tensor
// into unitless degree-2 coefficients.
func (b *RigidBody) NormalizationFactor() float64 {
	r := b.Field.ReferenceRadius
	return 1.0 / (b.Mass() * r * r)
}

// InertiaTensor builds the body-frame inertia tensor from the degree-2
// coefficients and the mean moment of inertia.
func (b *RigidBody) InertiaTensor() *mat.Dense {
	return linalg.InertiaFromCoefficients(
		b.Field.C20, b.Field.C21, b.Field.C22, b.Field.S21, b.Field.S22,
		b.MeanMoment, 1.0/b.NormalizationFactor())
}

// SetAngularVelocity records the body's current angular velocity, typically
// from the propagated state at the current epoch.
func (b *RigidBody) SetAngularVelocity(w mat.Vector) {
	b.omega[0], b.omega[1], b.omega[2] = w.AtVec(0), w.AtVec(1), w.AtVec(2)
}

// AngularVelocity returns the last-set angular velocity.
func (b *RigidBody) AngularVelocity() *mat.VecDense {
	return mat.NewVecDense(3, []float64{b.omega[0], b.omega[1], b.omega[2]})
}

// GravitationalParameter returns the body's mu.
func (b *RigidBody) GravitationalParameter() float64 {
	return b.Field.Mu
}
