package partials

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/estparams"
	"github.com/san-kum/rotodyn/internal/linalg"
)

// InertialTorquePartial differentiates the torque-free Euler term
// tau = -w x (I w) of a body's rotational equations of motion. The partial
// holds non-owning evaluator closures for the body's state; it must not
// outlive the scope that guarantees their validity.
type InertialTorquePartial struct {
	body string

	angularVelocity        func() *mat.VecDense
	inertiaTensor          func() *mat.Dense
	normalizationFactor    func() float64
	gravitationalParameter func() float64

	updated     bool
	currentTime float64

	omega      *mat.VecDense
	omegaCross *mat.Dense
	inertia    *mat.Dense
	inertiaInv *mat.Dense
	nu         float64
	mu         float64
	torque     *mat.VecDense

	wrtAngularVelocity *mat.Dense
}

// NewInertialTorquePartial builds the partial for one body. The evaluators
// are called once per Update and their results are copied into the cache, so
// an evaluator may reuse its buffer between calls.
func NewInertialTorquePartial(
	body string,
	angularVelocity func() *mat.VecDense,
	inertiaTensor func() *mat.Dense,
	normalizationFactor func() float64,
	gravitationalParameter func() float64,
) *InertialTorquePartial {
	return &InertialTorquePartial{
		body:                   body,
		angularVelocity:        angularVelocity,
		inertiaTensor:          inertiaTensor,
		normalizationFactor:    normalizationFactor,
		gravitationalParameter: gravitationalParameter,
	}
}

func (p *InertialTorquePartial) AcceleratedBody() string { return p.body }
func (p *InertialTorquePartial) ExertingBody() string    { return p.body }
func (p *InertialTorquePartial) Type() TorqueType        { return TorqueFree }

// Update refreshes the cache for time t. A repeated call at the cached time
// does nothing; any other time rebuilds every cached quantity.
func (p *InertialTorquePartial) Update(t float64) {
	if p.updated && p.currentTime == t {
		return
	}

	p.omega = mat.VecDenseCopyOf(p.angularVelocity())
	p.omegaCross = linalg.CrossProductMatrix(p.omega)
	p.nu = p.normalizationFactor()
	p.mu = p.gravitationalParameter()
	p.inertia = mat.DenseCopyOf(p.inertiaTensor())
	p.inertiaInv = linalg.Inverse3(p.inertia)

	iw := linalg.MulVec3(p.inertia, p.omega)
	p.torque = linalg.MulVec3(p.omegaCross, iw)
	p.torque.ScaleVec(-1, p.torque)

	// d(tau)/dw = -skew(w)*I + skew(I*w)
	p.wrtAngularVelocity = linalg.MulMat3(p.omegaCross, p.inertia)
	p.wrtAngularVelocity.Scale(-1, p.wrtAngularVelocity)
	p.wrtAngularVelocity.Add(p.wrtAngularVelocity, linalg.CrossProductMatrix(iw))

	p.currentTime = t
	p.updated = true
}

// AddOrientationPartial is a no-op: the torque-free term has no direct
// orientation dependency.
func (p *InertialTorquePartial) AddOrientationPartial(dst *mat.Dense, add bool, startRow, startCol int) {
}

func (p *InertialTorquePartial) AddAngularVelocityPartial(dst *mat.Dense, add bool, startRow, startCol int) {
	linalg.AccumulateBlock(dst, p.wrtAngularVelocity, startRow, startCol, add)
}

func (p *InertialTorquePartial) DependsOnTranslationalState(ref StateReference, st StateType) bool {
	return false
}

func (p *InertialTorquePartial) DependsOnAdditionalState(ref StateReference, st StateType) bool {
	return false
}

func (p *InertialTorquePartial) ScalarParameterPartial(param estparams.Scalar) ParameterPartial {
	if param.Body != p.body {
		return NoDependency
	}
	switch param.Kind {
	case estparams.KindMeanMomentOfInertia:
		return ParameterPartial{Write: p.wrtMeanMomentOfInertia, Columns: 1}
	case estparams.KindGravitationalParameter:
		return ParameterPartial{Write: p.wrtGravitationalParameter, Columns: 1}
	default:
		return NoDependency
	}
}

func (p *InertialTorquePartial) VectorParameterPartial(param estparams.Vector) ParameterPartial {
	if param.Body != p.body {
		return NoDependency
	}
	switch param.Kind {
	case estparams.KindSphericalHarmonicCosine:
		if !hasDegree2(param, []int{0, 1, 2}) {
			return NoDependency
		}
		return ParameterPartial{
			Write:   func(dst *mat.Dense) { p.wrtSphericalHarmonics(dst, param, false, []int{0, 1, 2}) },
			Columns: param.Dimension(),
		}
	case estparams.KindSphericalHarmonicSine:
		if !hasDegree2(param, []int{1, 2}) {
			return NoDependency
		}
		return ParameterPartial{
			Write:   func(dst *mat.Dense) { p.wrtSphericalHarmonics(dst, param, true, []int{1, 2}) },
			Columns: param.Dimension(),
		}
	default:
		return NoDependency
	}
}

// inertiaChainColumn maps a perturbation dI of the inertia tensor into the
// equivalent torque-level column: -skew(w)*dI*w - dI*inv(I)*tau. The first
// term is the direct variation of -w x (I w); the second carries the
// kinematic chain through the inverse inertia tensor back to torque level.
func (p *InertialTorquePartial) inertiaChainColumn(dI *mat.Dense) *mat.VecDense {
	col := linalg.MulVec3(p.omegaCross, linalg.MulVec3(dI, p.omega))
	col.ScaleVec(-1, col)
	chain := linalg.MulVec3(dI, linalg.MulVec3(p.inertiaInv, p.torque))
	col.SubVec(col, chain)
	return col
}

func (p *InertialTorquePartial) wrtMeanMomentOfInertia(dst *mat.Dense) {
	dI := linalg.Identity3()
	dI.Scale(1.0/p.nu, dI)
	dst.Zero()
	linalg.SetColumn(dst, 0, p.inertiaChainColumn(dI))
}

func (p *InertialTorquePartial) wrtGravitationalParameter(dst *mat.Dense) {
	// Only the coefficient part of the inertia tensor scales with the
	// gravitational parameter; the mean-moment trace is a fixed physical
	// inertia. dI/dmu = (I - tr(I)/3 * Id) / mu.
	dI := linalg.Identity3()
	dI.Scale(-linalg.Trace3(p.inertia)/3.0, dI)
	dI.Add(dI, p.inertia)
	dI.Scale(1.0/p.mu, dI)
	dst.Zero()
	linalg.SetColumn(dst, 0, p.inertiaChainColumn(dI))
}

func (p *InertialTorquePartial) wrtSphericalHarmonics(dst *mat.Dense, param estparams.Vector, sine bool, orders []int) {
	dst.Zero()
	for _, order := range orders {
		col := param.IndexOf(2, order)
		if col < 0 {
			continue
		}
		dI := linalg.CoefficientInertiaFactor(2, order, sine)
		dI.Scale(1.0/p.nu, dI)
		linalg.SetColumn(dst, col, p.inertiaChainColumn(dI))
	}
}

func hasDegree2(param estparams.Vector, orders []int) bool {
	for _, order := range orders {
		if param.IndexOf(2, order) >= 0 {
			return true
		}
	}
	return false
}
