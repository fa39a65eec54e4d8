package partials

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/estparams"
)

// TorqueType tags the physical model a partial belongs to.
type TorqueType int

const (
	TorqueUndefined TorqueType = iota
	TorqueFree
	TorqueSecondDegreeGravitational
)

func (t TorqueType) String() string {
	switch t {
	case TorqueFree:
		return "torque_free"
	case TorqueSecondDegreeGravitational:
		return "second_degree_gravitational"
	default:
		return "undefined"
	}
}

// StateType classifies a propagated state a partial may depend on.
type StateType int

const (
	StateTranslational StateType = iota
	StateRotational
	StateBodyMass
	StateCustom
)

// StateReference points at the propagated state of one body.
type StateReference struct {
	Body  string
	Point string
}

// ParameterPartial binds a parameter-partial write to its column count.
// Columns == 0 means the torque has no dependency on the parameter and
// Write must not be invoked.
type ParameterPartial struct {
	Write   func(dst *mat.Dense)
	Columns int
}

// NoDependency is the structural answer for unsupported parameters.
var NoDependency = ParameterPartial{}

// TorquePartial is the uniform contract every torque model's partial
// implements. The assembly driver calls Update exactly once per evaluation
// epoch before any write or dispatch call; the cache has no lazy fallback.
type TorquePartial interface {
	// AcceleratedBody is the body whose rotational equations of motion the
	// torque contributes to.
	AcceleratedBody() string

	// ExertingBody is the body exerting the torque. For body-intrinsic
	// terms it equals AcceleratedBody.
	ExertingBody() string

	Type() TorqueType

	// Update recomputes all cached quantities for the given simulation
	// time. Repeated calls at the same time are no-ops; any time change
	// refreshes the full cache atomically.
	Update(t float64)

	// AddOrientationPartial accumulates the 3x3 sensitivity of the torque
	// to the accelerated body's orientation error into dst at the given
	// offsets, added when add is true and subtracted otherwise. Models
	// without orientation dependency leave dst untouched.
	AddOrientationPartial(dst *mat.Dense, add bool, startRow, startCol int)

	// AddAngularVelocityPartial is the angular-velocity analogue of
	// AddOrientationPartial.
	AddAngularVelocityPartial(dst *mat.Dense, add bool, startRow, startCol int)

	// DependsOnTranslationalState reports whether the torque partial
	// depends on a non-rotational propagated state.
	DependsOnTranslationalState(ref StateReference, st StateType) bool

	// DependsOnAdditionalState reports whether the torque partial depends
	// on an auxiliary propagated state type.
	DependsOnAdditionalState(ref StateReference, st StateType) bool

	// ScalarParameterPartial returns the binding for a scalar estimation
	// parameter, or NoDependency.
	ScalarParameterPartial(p estparams.Scalar) ParameterPartial

	// VectorParameterPartial returns the binding for a vector estimation
	// parameter, or NoDependency.
	VectorParameterPartial(p estparams.Vector) ParameterPartial
}
