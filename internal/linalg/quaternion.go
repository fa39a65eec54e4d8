package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationMatrixFromQuaternion returns the body-to-inertial rotation matrix
// for a scalar-first unit quaternion (q0, q1, q2, q3).
func RotationMatrixFromQuaternion(q0, q1, q2, q3 float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1 - 2*(q2*q2+q3*q3), 2 * (q1*q2 - q0*q3), 2 * (q1*q3 + q0*q2),
		2 * (q1*q2 + q0*q3), 1 - 2*(q1*q1+q3*q3), 2 * (q2*q3 - q0*q1),
		2 * (q1*q3 - q0*q2), 2 * (q2*q3 + q0*q1), 1 - 2*(q1*q1+q2*q2),
	})
}

// QuaternionDerivative returns dq/dt for a scalar-first quaternion q and
// body-frame angular velocity w: q' = 0.5 * q (x) (0, w).
func QuaternionDerivative(q []float64, w mat.Vector) []float64 {
	q0, q1, q2, q3 := q[0], q[1], q[2], q[3]
	w1, w2, w3 := w.AtVec(0), w.AtVec(1), w.AtVec(2)
	return []float64{
		0.5 * (-q1*w1 - q2*w2 - q3*w3),
		0.5 * (q0*w1 - q3*w2 + q2*w3),
		0.5 * (q3*w1 + q0*w2 - q1*w3),
		0.5 * (-q2*w1 + q1*w2 + q0*w3),
	}
}

// NormalizeQuaternion rescales q in place to unit norm. A zero quaternion is
// reset to identity.
func NormalizeQuaternion(q []float64) {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 {
		q[0], q[1], q[2], q[3] = 1, 0, 0, 0
		return
	}
	for i := range q[:4] {
		q[i] /= n
	}
}
