package assembly

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/estparams"
	"github.com/san-kum/rotodyn/internal/linalg"
	"github.com/san-kum/rotodyn/internal/partials"
)

func testSetup(reg *estparams.Registry) *Assembler {
	omega := func() *mat.VecDense { return mat.NewVecDense(3, []float64{0.1, 0, 0.2}) }
	inertia := func() *mat.Dense {
		return mat.NewDense(3, 3, []float64{100, 0, 0, 0, 120, 0, 0, 0, 110})
	}
	p := partials.NewInertialTorquePartial("phobos",
		omega, inertia,
		func() float64 { return 1.0 },
		func() float64 { return 398600.0 })
	return New(omega, inertia, reg, p)
}

func TestStateJacobianLayout(t *testing.T) {
	a := testSetup(&estparams.Registry{})
	j := a.StateJacobian(0)

	r, c := j.Dims()
	if r != 6 || c != 6 {
		t.Fatalf("dims = %dx%d, want 6x6", r, c)
	}

	// Kinematic rows: d(theta')/d(w) = identity.
	for i := 0; i < 3; i++ {
		if j.At(i, 3+i) != 1 {
			t.Errorf("kinematic identity missing at (%d,%d)", i, 3+i)
		}
	}

	// Kinematic attitude block is -skew(w).
	wCross := linalg.CrossProductMatrix(mat.NewVecDense(3, []float64{0.1, 0, 0.2}))
	for i := 0; i < 3; i++ {
		for c := 0; c < 3; c++ {
			if math.Abs(j.At(i, c)+wCross.At(i, c)) > 1e-14 {
				t.Errorf("attitude kinematics at (%d,%d): got %g", i, c, j.At(i, c))
			}
		}
	}

	// Angular-acceleration block is inv(I) * (-skew(w) I + skew(I w)).
	inertia := mat.NewDense(3, 3, []float64{100, 0, 0, 0, 120, 0, 0, 0, 110})
	block := mat.NewDense(3, 3, []float64{0, 2, 0, 2, 0, 1, 0, -2, 0})
	want := linalg.MulMat3(linalg.Inverse3(inertia), block)
	for i := 0; i < 3; i++ {
		for c := 0; c < 3; c++ {
			if math.Abs(j.At(3+i, 3+c)-want.At(i, c)) > 1e-12 {
				t.Errorf("velocity block (%d,%d): got %g, want %g", i, c, j.At(3+i, 3+c), want.At(i, c))
			}
		}
	}

	// The torque-free model has no orientation dependency.
	for i := 3; i < 6; i++ {
		for c := 0; c < 3; c++ {
			if j.At(i, c) != 0 {
				t.Errorf("orientation block should be zero at (%d,%d)", i, c)
			}
		}
	}
}

func TestParameterJacobianColumns(t *testing.T) {
	reg := &estparams.Registry{}
	reg.AddScalar(estparams.Scalar{Kind: estparams.KindGravitationalParameter, Body: "phobos"})
	reg.AddScalar(estparams.Scalar{Kind: estparams.KindRotationPole, Body: "phobos"})
	reg.AddVector(estparams.Degree2Sine("phobos"))

	a := testSetup(reg)
	j := a.ParameterJacobian(0)

	r, c := j.Dims()
	if r != 6 || c != 4 {
		t.Fatalf("dims = %dx%d, want 6x4", r, c)
	}

	// Unsupported parameter's column stays zero.
	for i := 0; i < 6; i++ {
		if j.At(i, 1) != 0 {
			t.Errorf("unsupported parameter column written at row %d", i)
		}
	}

	// Supported scalar column is nonzero somewhere in the torque rows.
	nonzero := false
	for i := 3; i < 6; i++ {
		if j.At(i, 0) != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		t.Error("gravitational-parameter column is all zero")
	}

	// Attitude rows never depend on parameters.
	for i := 0; i < 3; i++ {
		for c := 0; c < 4; c++ {
			if j.At(i, c) != 0 {
				t.Errorf("attitude row %d has parameter dependency at column %d", i, c)
			}
		}
	}
}

func TestParameterJacobianEmptyRegistry(t *testing.T) {
	a := testSetup(&estparams.Registry{})
	if j := a.ParameterJacobian(0); j != nil {
		t.Errorf("empty registry should yield nil, got %v", mat.Formatted(j))
	}
}
