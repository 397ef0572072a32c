package model

import (
	"strings"
	"testing"
)

func seq(vals ...float64) [][]float64 {
	s := make([][]float64, len(vals))
	for i, v := range vals {
		s[i] = []float64{v, v + 1}
	}
	return s
}

func TestNewClassData(t *testing.T) {

	cd, e := NewClassData("alpha", [][][]float64{seq(1, 2, 3), seq(4, 5)})
	if e != nil {
		t.Fatal(e)
	}

	if cd.NumSeqs() != 2 {
		t.Errorf("NumSeqs: expected 2, got %d", cd.NumSeqs())
	}
	if cd.NumFrames() != 5 {
		t.Errorf("NumFrames: expected 5, got %d", cd.NumFrames())
	}
	if cd.Dim() != 2 {
		t.Errorf("Dim: expected 2, got %d", cd.Dim())
	}

	// sum(lengths) must match the matrix row count.
	sum := 0
	for _, l := range cd.Lengths {
		sum += l
	}
	if sum != len(cd.X) {
		t.Errorf("sum(lengths)=%d does not match rows=%d", sum, len(cd.X))
	}
	if len(cd.Lengths) != cd.NumSeqs() {
		t.Errorf("len(lengths)=%d does not match num seqs=%d", len(cd.Lengths), cd.NumSeqs())
	}
}

func TestNewClassDataBad(t *testing.T) {

	if _, e := NewClassData("x", nil); e == nil {
		t.Errorf("expected error for empty class")
	}
	if _, e := NewClassData("x", [][][]float64{{}}); e == nil {
		t.Errorf("expected error for empty sequence")
	}

	ragged := [][][]float64{{{1, 2}, {1}}}
	if _, e := NewClassData("x", ragged); e == nil {
		t.Errorf("expected error for ragged frames")
	}
}

func TestCombine(t *testing.T) {

	seqs := [][][]float64{seq(1, 2), seq(3), seq(4, 5, 6)}
	x, lengths := Combine(seqs, []int{2, 0})

	if len(x) != 5 {
		t.Errorf("expected 5 rows, got %d", len(x))
	}
	if len(lengths) != 2 || lengths[0] != 3 || lengths[1] != 2 {
		t.Errorf("unexpected lengths %v", lengths)
	}
	if x[0][0] != 4 || x[3][0] != 1 {
		t.Errorf("order not preserved: %v", x)
	}
}

func TestDataset(t *testing.T) {

	ds := NewDataset()
	for _, label := range []string{"zed", "alpha"} {
		cd, e := NewClassData(label, [][][]float64{seq(1, 2)})
		if e != nil {
			t.Fatal(e)
		}
		if e := ds.Add(cd); e != nil {
			t.Fatal(e)
		}
	}

	labels := ds.Labels()
	if labels[0] != "alpha" || labels[1] != "zed" {
		t.Errorf("labels not sorted: %v", labels)
	}

	cd, _ := NewClassData("alpha", [][][]float64{seq(9)})
	if e := ds.Add(cd); e == nil {
		t.Errorf("expected duplicate label error")
	}
}

func TestReadDataset(t *testing.T) {

	in := `{"classes": {"a": [[[1,2],[3,4]]], "b": [[[5,6]],[[7,8],[9,10]]]}}`
	ds, e := ReadDataset(strings.NewReader(in))
	if e != nil {
		t.Fatal(e)
	}
	if ds.Len() != 2 {
		t.Fatalf("expected 2 classes, got %d", ds.Len())
	}
	b, ok := ds.Class("b")
	if !ok {
		t.Fatal("class b missing")
	}
	if b.NumSeqs() != 2 || b.NumFrames() != 3 {
		t.Errorf("class b: %d seqs %d frames", b.NumSeqs(), b.NumFrames())
	}

	if _, e := ReadDataset(strings.NewReader(`{"classes":{}}`)); e == nil {
		t.Errorf("expected error for empty dataset")
	}
}

func TestErrorTaxonomy(t *testing.T) {

	te := Trainingf(5, "no convergence after %d iterations", 20)
	if !IsTrainingError(te) {
		t.Errorf("expected TrainingError")
	}
	if IsScoringError(te) {
		t.Errorf("TrainingError misclassified as ScoringError")
	}

	se := Scoringf("dim mismatch")
	if !IsScoringError(se) {
		t.Errorf("expected ScoringError")
	}
}
