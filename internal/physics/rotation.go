package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/dynamo"
	"github.com/san-kum/rotodyn/internal/linalg"
)

// TorqueModel evaluates one external torque on a body, in the body frame.
type TorqueModel interface {
	ExertingBody() string
	Torque(q []float64, w *mat.VecDense, t float64) *mat.VecDense
}

// SecondDegreeGravitationalTorque is the degree-2 gravity gradient torque
// exerted by a distant point mass: tau = (3 mu / d^3) u x (I u).
type SecondDegreeGravitationalTorque struct {
	Body     *RigidBody
	Exerting string
	// Mu of the exerting body.
	Mu float64
	// PositionInertial returns the inertial-frame vector from the
	// accelerated body to the exerting body at time t.
	PositionInertial func(t float64) *mat.VecDense
}

func (g *SecondDegreeGravitationalTorque) ExertingBody() string { return g.Exerting }

// BodyFixedPosition rotates the inertial relative position into the body
// frame for attitude quaternion q.
func (g *SecondDegreeGravitationalTorque) BodyFixedPosition(q []float64, t float64) *mat.VecDense {
	rot := linalg.RotationMatrixFromQuaternion(q[0], q[1], q[2], q[3])
	r := mat.NewVecDense(3, nil)
	r.MulVec(rot.T(), g.PositionInertial(t))
	return r
}

func (g *SecondDegreeGravitationalTorque) Torque(q []float64, w *mat.VecDense, t float64) *mat.VecDense {
	r := g.BodyFixedPosition(q, t)
	d := math.Sqrt(mat.Dot(r, r))
	u := mat.NewVecDense(3, nil)
	u.ScaleVec(1.0/d, r)

	tau := linalg.MulVec3(linalg.CrossProductMatrix(u), linalg.MulVec3(g.Body.InertiaTensor(), u))
	tau.ScaleVec(3.0*g.Mu/(d*d*d), tau)
	return tau
}

// RotationalDynamics is the propagated system for one body's attitude:
// quaternion kinematics plus Euler's equation
// I w' = sum(tau) - w x (I w). The inertia tensor is frozen at
// construction; rebuild the system after changing body parameters.
type RotationalDynamics struct {
	Body    *RigidBody
	Torques []TorqueModel

	inertia    *mat.Dense
	inertiaInv *mat.Dense
}

func NewRotationalDynamics(body *RigidBody, torques ...TorqueModel) *RotationalDynamics {
	inertia := body.InertiaTensor()
	return &RotationalDynamics{
		Body:       body,
		Torques:    torques,
		inertia:    inertia,
		inertiaInv: linalg.Inverse3(inertia),
	}
}

func (d *RotationalDynamics) StateDim() int { return 7 }

func (d *RotationalDynamics) Derive(s dynamo.State, t float64) dynamo.State {
	if len(s) < 7 {
		return make(dynamo.State, 7)
	}
	q := s[0:4]
	w := mat.NewVecDense(3, []float64{s[4], s[5], s[6]})

	dq := linalg.QuaternionDerivative(q, w)

	tau := linalg.MulVec3(linalg.CrossProductMatrix(w), linalg.MulVec3(d.inertia, w))
	tau.ScaleVec(-1, tau)
	for _, m := range d.Torques {
		tau.AddVec(tau, m.Torque(q, w, t))
	}
	wdot := linalg.MulVec3(d.inertiaInv, tau)

	return dynamo.State{
		dq[0], dq[1], dq[2], dq[3],
		wdot.AtVec(0), wdot.AtVec(1), wdot.AtVec(2),
	}
}

// Project renormalizes the attitude quaternion after an integration step.
func (d *RotationalDynamics) Project(s dynamo.State) {
	if len(s) >= 4 {
		linalg.NormalizeQuaternion(s[0:4])
	}
}

// Energy is the rotational kinetic energy 0.5 w^T I w.
func (d *RotationalDynamics) Energy(s dynamo.State) float64 {
	if len(s) < 7 {
		return 0
	}
	w := mat.NewVecDense(3, []float64{s[4], s[5], s[6]})
	return 0.5 * mat.Dot(w, linalg.MulVec3(d.inertia, w))
}

func (d *RotationalDynamics) GetParams() map[string]float64 {
	return map[string]float64{
		"mu":          d.Body.Field.Mu,
		"mean_moment": d.Body.MeanMoment,
		"c20":         d.Body.Field.C20,
		"c21":         d.Body.Field.C21,
		"c22":         d.Body.Field.C22,
		"s21":         d.Body.Field.S21,
		"s22":         d.Body.Field.S22,
	}
}

func (d *RotationalDynamics) SetParam(n string, v float64) error {
	switch n {
	case "mu":
		if v <= 0 {
			return fmt.Errorf("%w: mu must be positive, got %g", dynamo.ErrParameterBounds, v)
		}
		d.Body.Field.Mu = v
	case "mean_moment":
		if v <= 0 {
			return fmt.Errorf("%w: mean_moment must be positive, got %g", dynamo.ErrParameterBounds, v)
		}
		d.Body.MeanMoment = v
	case "c20":
		d.Body.Field.C20 = v
	case "c21":
		d.Body.Field.C21 = v
	case "c22":
		d.Body.Field.C22 = v
	case "s21":
		d.Body.Field.S21 = v
	case "s22":
		d.Body.Field.S22 = v
	default:
		return fmt.Errorf("unknown parameter %q", n)
	}
	d.inertia = d.Body.InertiaTensor()
	d.inertiaInv = linalg.Inverse3(d.inertia)
	return nil
}
