package estparams

import "testing"

func TestVectorIndexOf(t *testing.T) {
	v := Degree2Cosine("phobos")

	if got := v.IndexOf(2, 1); got != 1 {
		t.Errorf("IndexOf(2,1) = %d, want 1", got)
	}
	if got := v.IndexOf(3, 0); got != -1 {
		t.Errorf("IndexOf(3,0) = %d, want -1", got)
	}
}

func TestDegree2Descriptors(t *testing.T) {
	if d := Degree2Cosine("phobos").Dimension(); d != 3 {
		t.Errorf("cosine dimension = %d, want 3", d)
	}
	if d := Degree2Sine("phobos").Dimension(); d != 2 {
		t.Errorf("sine dimension = %d, want 2", d)
	}
}

func TestRegistryTotalColumns(t *testing.T) {
	var r Registry
	r.AddScalar(Scalar{Kind: KindGravitationalParameter, Body: "phobos"})
	r.AddScalar(Scalar{Kind: KindMeanMomentOfInertia, Body: "phobos"})
	r.AddVector(Degree2Cosine("phobos"))
	r.AddVector(Degree2Sine("phobos"))

	if got := r.TotalColumns(); got != 7 {
		t.Errorf("TotalColumns = %d, want 7", got)
	}
}
