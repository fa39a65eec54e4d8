package linalg

import "gonum.org/v1/gonum/mat"

// InertiaFromCoefficients builds a rigid body's inertia tensor from its
// unnormalized degree-2 gravity field coefficients and scaled mean moment of
// inertia. The coefficient part is trace-free; the mean moment carries the
// full trace. scale is 1/nu, with nu the inertia tensor normalization factor
// (1/(M*R^2) for body mass M and reference radius R).
func InertiaFromCoefficients(c20, c21, c22, s21, s22, meanMoment, scale float64) *mat.Dense {
	i := mat.NewDense(3, 3, []float64{
		c20/3.0 - 2.0*c22 + meanMoment, -2.0 * s22, -c21,
		-2.0 * s22, c20/3.0 + 2.0*c22 + meanMoment, -s21,
		-c21, -s21, -2.0*c20/3.0 + meanMoment,
	})
	i.Scale(scale, i)
	return i
}

// CoefficientInertiaFactor returns the derivative of the unscaled inertia
// tensor with respect to a single degree-2 gravity field coefficient,
// identified by order and cosine/sine flavor. Orders outside the degree-2
// band return nil.
func CoefficientInertiaFactor(degree, order int, sine bool) *mat.Dense {
	if degree != 2 {
		return nil
	}
	switch {
	case !sine && order == 0:
		return mat.NewDense(3, 3, []float64{
			1.0 / 3.0, 0, 0,
			0, 1.0 / 3.0, 0,
			0, 0, -2.0 / 3.0,
		})
	case !sine && order == 1:
		return mat.NewDense(3, 3, []float64{
			0, 0, -1,
			0, 0, 0,
			-1, 0, 0,
		})
	case !sine && order == 2:
		return mat.NewDense(3, 3, []float64{
			-2, 0, 0,
			0, 2, 0,
			0, 0, 0,
		})
	case sine && order == 1:
		return mat.NewDense(3, 3, []float64{
			0, 0, 0,
			0, 0, -1,
			0, -1, 0,
		})
	case sine && order == 2:
		return mat.NewDense(3, 3, []float64{
			0, -2, 0,
			-2, 0, 0,
			0, 0, 0,
		})
	}
	return nil
}
