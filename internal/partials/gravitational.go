package partials

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/estparams"
	"github.com/san-kum/rotodyn/internal/linalg"
)

// SecondDegreeGravitationalTorquePartial differentiates the degree-2
// gravity gradient torque tau = (3 mu / d^3) u x (I u), with u the
// body-fixed unit vector from the accelerated body to the exerting body at
// distance d. The angular-velocity partial of this model is identically
// zero; the orientation partial is the nontrivial block.
type SecondDegreeGravitationalTorquePartial struct {
	acceleratedBody string
	exertingBody    string

	relativePosition       func() *mat.VecDense
	inertiaTensor          func() *mat.Dense
	normalizationFactor    func() float64
	gravitationalParameter func() float64

	updated     bool
	currentTime float64

	unit        *mat.VecDense
	premultiple float64
	inertia     *mat.Dense
	nu          float64
	mu          float64
	torque      *mat.VecDense

	wrtOrientation *mat.Dense
}

// NewSecondDegreeGravitationalTorquePartial builds the partial for the
// torque exerted by exertingBody on acceleratedBody. relativePosition
// returns the body-fixed vector from the accelerated body to the exerting
// body; gravitationalParameter is the exerting body's. Update copies the
// evaluator results into the cache, so an evaluator may reuse its buffer
// between calls.
func NewSecondDegreeGravitationalTorquePartial(
	acceleratedBody, exertingBody string,
	relativePosition func() *mat.VecDense,
	inertiaTensor func() *mat.Dense,
	normalizationFactor func() float64,
	gravitationalParameter func() float64,
) *SecondDegreeGravitationalTorquePartial {
	return &SecondDegreeGravitationalTorquePartial{
		acceleratedBody:        acceleratedBody,
		exertingBody:           exertingBody,
		relativePosition:       relativePosition,
		inertiaTensor:          inertiaTensor,
		normalizationFactor:    normalizationFactor,
		gravitationalParameter: gravitationalParameter,
	}
}

func (p *SecondDegreeGravitationalTorquePartial) AcceleratedBody() string { return p.acceleratedBody }
func (p *SecondDegreeGravitationalTorquePartial) ExertingBody() string    { return p.exertingBody }
func (p *SecondDegreeGravitationalTorquePartial) Type() TorqueType {
	return TorqueSecondDegreeGravitational
}

func (p *SecondDegreeGravitationalTorquePartial) Update(t float64) {
	if p.updated && p.currentTime == t {
		return
	}

	r := p.relativePosition()
	d := math.Sqrt(mat.Dot(r, r))
	p.unit = mat.NewVecDense(3, nil)
	p.unit.ScaleVec(1.0/d, r)

	p.nu = p.normalizationFactor()
	p.mu = p.gravitationalParameter()
	p.premultiple = 3.0 * p.mu / (d * d * d)
	p.inertia = mat.DenseCopyOf(p.inertiaTensor())

	unitCross := linalg.CrossProductMatrix(p.unit)
	iu := linalg.MulVec3(p.inertia, p.unit)
	p.torque = linalg.MulVec3(unitCross, iu)
	p.torque.ScaleVec(p.premultiple, p.torque)

	// d(tau)/d(theta) = k * (-skew(I u) + skew(u) I) * skew(u), from the
	// body-frame variation du = u x dtheta of an inertially fixed
	// direction under an attitude error dtheta.
	dTauDu := linalg.MulMat3(unitCross, p.inertia)
	dTauDu.Sub(dTauDu, linalg.CrossProductMatrix(iu))
	p.wrtOrientation = linalg.MulMat3(dTauDu, unitCross)
	p.wrtOrientation.Scale(p.premultiple, p.wrtOrientation)

	p.currentTime = t
	p.updated = true
}

func (p *SecondDegreeGravitationalTorquePartial) AddOrientationPartial(dst *mat.Dense, add bool, startRow, startCol int) {
	linalg.AccumulateBlock(dst, p.wrtOrientation, startRow, startCol, add)
}

// AddAngularVelocityPartial is a no-op: the gravity gradient torque does not
// depend on angular velocity.
func (p *SecondDegreeGravitationalTorquePartial) AddAngularVelocityPartial(dst *mat.Dense, add bool, startRow, startCol int) {
}

func (p *SecondDegreeGravitationalTorquePartial) DependsOnTranslationalState(ref StateReference, st StateType) bool {
	return false
}

func (p *SecondDegreeGravitationalTorquePartial) DependsOnAdditionalState(ref StateReference, st StateType) bool {
	return false
}

func (p *SecondDegreeGravitationalTorquePartial) ScalarParameterPartial(param estparams.Scalar) ParameterPartial {
	if param.Kind == estparams.KindGravitationalParameter && param.Body == p.exertingBody {
		return ParameterPartial{Write: p.wrtGravitationalParameter, Columns: 1}
	}
	return NoDependency
}

func (p *SecondDegreeGravitationalTorquePartial) VectorParameterPartial(param estparams.Vector) ParameterPartial {
	if param.Body != p.acceleratedBody {
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

func (p *SecondDegreeGravitationalTorquePartial) wrtGravitationalParameter(dst *mat.Dense) {
	dst.Zero()
	col := mat.NewVecDense(3, nil)
	col.ScaleVec(1.0/p.mu, p.torque)
	linalg.SetColumn(dst, 0, col)
}

func (p *SecondDegreeGravitationalTorquePartial) wrtSphericalHarmonics(dst *mat.Dense, param estparams.Vector, sine bool, orders []int) {
	dst.Zero()
	unitCross := linalg.CrossProductMatrix(p.unit)
	for _, order := range orders {
		col := param.IndexOf(2, order)
		if col < 0 {
			continue
		}
		dI := linalg.CoefficientInertiaFactor(2, order, sine)
		dI.Scale(1.0/p.nu, dI)
		v := linalg.MulVec3(unitCross, linalg.MulVec3(dI, p.unit))
		v.ScaleVec(p.premultiple, v)
		linalg.SetColumn(dst, col, v)
	}
}
