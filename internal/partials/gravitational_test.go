package partials

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rotodyn/internal/estparams"
	"github.com/san-kum/rotodyn/internal/linalg"
)

const centralBody = "mars"

func newGravityGradientPartial() *SecondDegreeGravitationalTorquePartial {
	return NewSecondDegreeGravitationalTorquePartial(
		testBody, centralBody,
		func() *mat.VecDense { return mat.NewVecDense(3, []float64{9000e3, 2000e3, -500e3}) },
		func() *mat.Dense {
			return mat.NewDense(3, 3, []float64{100, 0, 0, 0, 120, 0, 0, 0, 110})
		},
		func() float64 { return 1.0 },
		func() float64 { return 4.2828e13 },
	)
}

func TestGravityGradientAngularVelocityPartialIsNoOp(t *testing.T) {
	p := newGravityGradientPartial()
	p.Update(0)

	dst := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	before := mat.DenseCopyOf(dst)
	p.AddAngularVelocityPartial(dst, true, 0, 0)

	if !mat.Equal(before, dst) {
		t.Error("gravity gradient torque has no angular-velocity dependency")
	}
}

func TestGravityGradientOrientationPartialSymmetry(t *testing.T) {
	p := newGravityGradientPartial()
	p.Update(0)

	dst := mat.NewDense(6, 6, nil)
	p.AddOrientationPartial(dst, true, 3, 0)
	p.AddOrientationPartial(dst, false, 3, 0)

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if dst.At(i, j) != 0 {
				t.Fatalf("residue at (%d,%d): %g", i, j, dst.At(i, j))
			}
		}
	}
}

func TestGravityGradientOrientationPartialNonzero(t *testing.T) {
	p := newGravityGradientPartial()
	p.Update(0)

	dst := mat.NewDense(3, 3, nil)
	p.AddOrientationPartial(dst, true, 0, 0)

	if mat.Norm(dst, 2) == 0 {
		t.Error("orientation partial should be nonzero off a principal axis")
	}
}

func TestGravityGradientMuPartial(t *testing.T) {
	p := newGravityGradientPartial()
	p.Update(0)

	binding := p.ScalarParameterPartial(estparams.Scalar{
		Kind: estparams.KindGravitationalParameter,
		Body: centralBody,
	})
	if binding.Columns != 1 {
		t.Fatalf("mu columns = %d, want 1", binding.Columns)
	}

	dst := mat.NewDense(3, 1, nil)
	binding.Write(dst)

	// tau/mu, recomputed directly from the torque law.
	r := mat.NewVecDense(3, []float64{9000e3, 2000e3, -500e3})
	d := math.Sqrt(mat.Dot(r, r))
	u := mat.NewVecDense(3, nil)
	u.ScaleVec(1.0/d, r)
	inertia := mat.NewDense(3, 3, []float64{100, 0, 0, 0, 120, 0, 0, 0, 110})
	want := linalg.MulVec3(linalg.CrossProductMatrix(u), linalg.MulVec3(inertia, u))
	want.ScaleVec(3.0/(d*d*d), want)

	for i := 0; i < 3; i++ {
		rel := math.Abs(dst.At(i, 0)-want.AtVec(i)) / math.Max(math.Abs(want.AtVec(i)), 1e-30)
		if want.AtVec(i) != 0 && rel > 1e-10 {
			t.Errorf("mu partial row %d: got %g, want %g", i, dst.At(i, 0), want.AtVec(i))
		}
	}
}

func TestGravityGradientParameterDispatch(t *testing.T) {
	p := newGravityGradientPartial()
	p.Update(0)

	// Accelerated body's own mu does not enter this torque's formula.
	if b := p.ScalarParameterPartial(estparams.Scalar{
		Kind: estparams.KindGravitationalParameter,
		Body: testBody,
	}); b.Columns != 0 {
		t.Errorf("accelerated-body mu columns = %d, want 0", b.Columns)
	}

	if b := p.VectorParameterPartial(estparams.Degree2Sine(testBody)); b.Columns != 2 {
		t.Errorf("sine columns = %d, want 2", b.Columns)
	}
	if b := p.VectorParameterPartial(estparams.Degree2Sine(centralBody)); b.Columns != 0 {
		t.Errorf("central-body sine columns = %d, want 0", b.Columns)
	}
}

func TestGravityGradientCopiesInertiaBuffer(t *testing.T) {
	inertiaBuf := mat.NewDense(3, 3, []float64{100, 0, 0, 0, 120, 0, 0, 0, 110})
	p := NewSecondDegreeGravitationalTorquePartial(
		testBody, centralBody,
		func() *mat.VecDense { return mat.NewVecDense(3, []float64{9000e3, 2000e3, -500e3}) },
		func() *mat.Dense { return inertiaBuf },
		func() float64 { return 1.0 },
		func() float64 { return 4.2828e13 },
	)

	p.Update(0)
	before := mat.NewDense(3, 1, nil)
	p.ScalarParameterPartial(estparams.Scalar{
		Kind: estparams.KindGravitationalParameter,
		Body: centralBody,
	}).Write(before)

	// The evaluator reuses its buffer; the cached torque must not follow it.
	inertiaBuf.Scale(5, inertiaBuf)

	after := mat.NewDense(3, 1, nil)
	p.ScalarParameterPartial(estparams.Scalar{
		Kind: estparams.KindGravitationalParameter,
		Body: centralBody,
	}).Write(after)

	if !mat.Equal(before, after) {
		t.Error("cached torque must not alias the inertia evaluator's buffer")
	}
}

func TestGravityGradientCacheStampIsExplicit(t *testing.T) {
	calls := 0
	p := NewSecondDegreeGravitationalTorquePartial(
		testBody, centralBody,
		func() *mat.VecDense {
			calls++
			return mat.NewVecDense(3, []float64{9000e3, 0, 0})
		},
		func() *mat.Dense { return mat.NewDense(3, 3, []float64{100, 0, 0, 0, 120, 0, 0, 0, 110}) },
		func() float64 { return 1.0 },
		func() float64 { return 4.2828e13 },
	)

	// Time zero is a legitimate epoch: the first update must not be
	// mistaken for "already cached".
	p.Update(0)
	if calls != 1 {
		t.Fatalf("first update at t=0 evaluated %d times, want 1", calls)
	}
	p.Update(0)
	if calls != 1 {
		t.Errorf("repeated update at t=0 re-evaluated (%d calls)", calls)
	}
	p.Update(10)
	if calls != 2 {
		t.Errorf("time change did not refresh (%d calls)", calls)
	}
}
