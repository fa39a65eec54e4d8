package linalg

import "gonum.org/v1/gonum/mat"

// CrossProductMatrix returns the skew-symmetric matrix S(v) such that
// S(v)*w == v x w for any 3-vector w.
func CrossProductMatrix(v mat.Vector) *mat.Dense {
	x, y, z := v.AtVec(0), v.AtVec(1), v.AtVec(2)
	return mat.NewDense(3, 3, []float64{
		0, -z, y,
		z, 0, -x,
		-y, x, 0,
	})
}

// Inverse3 inverts a 3x3 matrix. A singular input panics; inertia tensors
// of physical bodies are always invertible.
func Inverse3(a mat.Matrix) *mat.Dense {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(a); err != nil {
		panic("linalg: singular 3x3 matrix")
	}
	return inv
}

// MulMat3 returns a*b for 3x3 operands.
func MulMat3(a, b mat.Matrix) *mat.Dense {
	c := mat.NewDense(3, 3, nil)
	c.Mul(a, b)
	return c
}

// MulVec3 returns a*v for a 3x3 matrix and a 3-vector.
func MulVec3(a mat.Matrix, v mat.Vector) *mat.VecDense {
	w := mat.NewVecDense(3, nil)
	w.MulVec(a, v)
	return w
}

// Identity3 returns a fresh 3x3 identity matrix.
func Identity3() *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// AccumulateBlock adds (or subtracts, when add is false) block into dst
// starting at (startRow, startCol). dst is caller-owned and must be large
// enough to hold the block at the given offsets.
func AccumulateBlock(dst *mat.Dense, block mat.Matrix, startRow, startCol int, add bool) {
	r, c := block.Dims()
	sign := 1.0
	if !add {
		sign = -1.0
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(startRow+i, startCol+j, dst.At(startRow+i, startCol+j)+sign*block.At(i, j))
		}
	}
}

// SetColumn writes a 3-vector into column j of dst.
func SetColumn(dst *mat.Dense, j int, v mat.Vector) {
	for i := 0; i < 3; i++ {
		dst.Set(i, j, v.AtVec(i))
	}
}

// Trace3 returns the trace of a 3x3 matrix.
func Trace3(a mat.Matrix) float64 {
	return a.At(0, 0) + a.At(1, 1) + a.At(2, 2)
}
