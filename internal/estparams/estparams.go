// Package estparams describes the estimation parameters a filter run solves
// for. Descriptors are opaque tags from the torque partials' point of view:
// a partial only tests a descriptor for relevance, it never enumerates or
// owns them.
package estparams

// Kind identifies what physical quantity a parameter descriptor refers to.
type Kind int

const (
	KindUnknown Kind = iota
	KindGravitationalParameter
	KindMeanMomentOfInertia
	KindSphericalHarmonicCosine
	KindSphericalHarmonicSine
	KindRotationPole
)

func (k Kind) String() string {
	switch k {
	case KindGravitationalParameter:
		return "gravitational_parameter"
	case KindMeanMomentOfInertia:
		return "mean_moment_of_inertia"
	case KindSphericalHarmonicCosine:
		return "spherical_harmonic_cosine"
	case KindSphericalHarmonicSine:
		return "spherical_harmonic_sine"
	case KindRotationPole:
		return "rotation_pole"
	default:
		return "unknown"
	}
}

// Index identifies a single spherical harmonic coefficient.
type Index struct {
	Degree int
	Order  int
}

// Scalar describes a single estimated value attached to a body.
type Scalar struct {
	Kind Kind
	Body string
}

// Vector describes an estimated coefficient block attached to a body. For
// spherical harmonics, Indices lists the coefficients in column order.
type Vector struct {
	Kind    Kind
	Body    string
	Indices []Index
}

// Dimension is the number of Jacobian columns the parameter occupies.
func (v Vector) Dimension() int { return len(v.Indices) }

// IndexOf returns the column position of the (degree, order) coefficient
// inside the parameter block, or -1 when the block does not contain it.
func (v Vector) IndexOf(degree, order int) int {
	for i, idx := range v.Indices {
		if idx.Degree == degree && idx.Order == order {
			return i
		}
	}
	return -1
}

// Registry enumerates the currently estimated parameters, in the column
// order the assembled Jacobian uses: scalars first, then vectors.
type Registry struct {
	Scalars []Scalar
	Vectors []Vector
}

func (r *Registry) AddScalar(s Scalar) { r.Scalars = append(r.Scalars, s) }
func (r *Registry) AddVector(v Vector) { r.Vectors = append(r.Vectors, v) }

// TotalColumns is the combined width of all registered parameters.
func (r *Registry) TotalColumns() int {
	n := len(r.Scalars)
	for _, v := range r.Vectors {
		n += v.Dimension()
	}
	return n
}

// Degree2Cosine builds the canonical C20/C21/C22 vector descriptor.
func Degree2Cosine(body string) Vector {
	return Vector{
		Kind:    KindSphericalHarmonicCosine,
		Body:    body,
		Indices: []Index{{2, 0}, {2, 1}, {2, 2}},
	}
}

// Degree2Sine builds the canonical S21/S22 vector descriptor.
func Degree2Sine(body string) Vector {
	return Vector{
		Kind:    KindSphericalHarmonicSine,
		Body:    body,
		Indices: []Index{{2, 1}, {2, 2}},
	}
}
