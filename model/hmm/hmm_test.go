package hmm

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/Polarbeargo/AIND-Recognizer/model"
)

// twoPhaseSeqs generates sequences whose first half is drawn around m1 and
// second half around m2, a natural fit for a two-state model.
func twoPhaseSeqs(r *rand.Rand, m1, m2 float64, dim, numSeqs, seqLen int) (x [][]float64, lengths []int) {

	for s := 0; s < numSeqs; s++ {
		for i := 0; i < seqLen; i++ {
			mu := m1
			if i >= seqLen/2 {
				mu = m2
			}
			frame := make([]float64, dim)
			for d := range frame {
				frame[d] = mu + r.NormFloat64()*0.3
			}
			x = append(x, frame)
		}
		lengths = append(lengths, seqLen)
	}
	return
}

func TestTrainerFit(t *testing.T) {

	r := rand.New(rand.NewSource(42))
	x, lengths := twoPhaseSeqs(r, 0, 3, 2, 6, 10)

	trainer := NewTrainer()
	scorer, e := trainer.Fit(x, lengths, 2, model.DefaultSeed)
	if e != nil {
		t.Fatal(e)
	}
	m := scorer.(*Model)
	if m.NStates != 2 || m.NE != 2 {
		t.Fatalf("unexpected model shape: %d states, %d elements", m.NStates, m.NE)
	}

	own, e := m.LogProb(x, lengths)
	if e != nil {
		t.Fatal(e)
	}
	if math.IsInf(own, 0) || math.IsNaN(own) {
		t.Fatalf("non-finite log-likelihood %v", own)
	}

	// Data far from both phases must be much less likely.
	far, farLengths := twoPhaseSeqs(r, 10, 13, 2, 6, 10)
	fs, e := m.LogProb(far, farLengths)
	if e != nil {
		t.Fatal(e)
	}
	if fs >= own {
		t.Errorf("far data scored %f, own data %f", fs, own)
	}
}

func TestTrainerFitReproducible(t *testing.T) {

	r := rand.New(rand.NewSource(7))
	x, lengths := twoPhaseSeqs(r, 0, 3, 2, 4, 8)

	trainer := NewTrainer()
	a, e := trainer.Fit(x, lengths, 2, 17)
	if e != nil {
		t.Fatal(e)
	}
	b, e := trainer.Fit(x, lengths, 2, 17)
	if e != nil {
		t.Fatal(e)
	}

	sa, _ := a.LogProb(x, lengths)
	sb, _ := b.LogProb(x, lengths)
	if sa != sb {
		t.Errorf("same seed produced different models: %f vs %f", sa, sb)
	}
}

func TestTrainerFitFailures(t *testing.T) {

	trainer := NewTrainer()

	// Fewer frames than the states need.
	x := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	_, e := trainer.Fit(x, []int{3}, 5, model.DefaultSeed)
	if e == nil || !model.IsTrainingError(e) {
		t.Errorf("expected TrainingError for insufficient data, got %v", e)
	}

	// Bad lengths vector.
	_, e = trainer.Fit(x, []int{2}, 1, model.DefaultSeed)
	if e == nil || !model.IsTrainingError(e) {
		t.Errorf("expected TrainingError for bad lengths, got %v", e)
	}

	// Empty input.
	_, e = trainer.Fit(nil, nil, 1, model.DefaultSeed)
	if e == nil || !model.IsTrainingError(e) {
		t.Errorf("expected TrainingError for empty input, got %v", e)
	}
}

func TestLogProbFailures(t *testing.T) {

	r := rand.New(rand.NewSource(3))
	x, lengths := twoPhaseSeqs(r, 0, 3, 2, 4, 8)

	trainer := NewTrainer()
	m, e := trainer.Fit(x, lengths, 2, model.DefaultSeed)
	if e != nil {
		t.Fatal(e)
	}

	// Dimensionality mismatch.
	bad := [][]float64{{1, 2, 3}}
	_, e = m.LogProb(bad, []int{1})
	if e == nil || !model.IsScoringError(e) {
		t.Errorf("expected ScoringError for dim mismatch, got %v", e)
	}

	// Inconsistent lengths.
	_, e = m.LogProb(x, []int{1})
	if e == nil || !model.IsScoringError(e) {
		t.Errorf("expected ScoringError for bad lengths, got %v", e)
	}
}

func TestModelPersistence(t *testing.T) {

	r := rand.New(rand.NewSource(11))
	x, lengths := twoPhaseSeqs(r, 0, 3, 2, 4, 8)

	trainer := NewTrainer()
	scorer, e := trainer.Fit(x, lengths, 2, model.DefaultSeed)
	if e != nil {
		t.Fatal(e)
	}
	m := scorer.(*Model)

	b, e := json.Marshal(m)
	if e != nil {
		t.Fatal(e)
	}

	m1 := new(Model)
	if e := json.Unmarshal(b, m1); e != nil {
		t.Fatal(e)
	}
	if e := m1.Initialize(); e != nil {
		t.Fatal(e)
	}

	s0, _ := m.LogProb(x, lengths)
	s1, e := m1.LogProb(x, lengths)
	if e != nil {
		t.Fatal(e)
	}
	if math.Abs(s0-s1) > 1e-9 {
		t.Errorf("persistence changed score: %f vs %f", s0, s1)
	}
}
