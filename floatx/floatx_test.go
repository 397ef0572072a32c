package floatx

import "testing"

func TestApply(t *testing.T) {

	in := []float64{1, 4, 9}
	out := Apply(Sqrt, in, make([]float64, 3))
	expected := []float64{1, 2, 3}
	for i := range expected {
		if out[i] != expected[i] {
			t.Errorf("Apply(Sqrt): expected %v, got %v", expected[i], out[i])
		}
	}

	// In place.
	Apply(ScaleFunc(2), in, nil)
	if in[1] != 8 {
		t.Errorf("in-place Apply failed, got %v", in[1])
	}
}

func TestFloorFunc(t *testing.T) {

	in := []float64{1e-9, 0.5}
	Apply(FloorFunc(0.01), in, nil)
	if in[0] != 0.01 || in[1] != 0.5 {
		t.Errorf("FloorFunc: got %v", in)
	}
}

func TestCheck2D(t *testing.T) {

	s := MakeFloat2D(3, 2)
	r, c := Check2D(s)
	if r != 3 || c != 2 {
		t.Errorf("Check2D: expected 3x2, got %dx%d", r, c)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on ragged slice")
		}
	}()
	s[1] = []float64{1}
	Check2D(s)
}
