// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm implements hidden Markov models with diagonal-covariance
Gaussian state outputs.

The Trainer estimates parameters by segmental Viterbi re-estimation: frames
are assigned to states by uniform segmentation, then realigned with the
Viterbi path and re-estimated until the path log-likelihood stops moving.
Scoring uses the forward recursion with per-frame rescaling.
*/
package hmm

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/Polarbeargo/AIND-Recognizer/floatx"
	"github.com/Polarbeargo/AIND-Recognizer/model"
)

const (
	// smallNumber smooths transition and initial-state counts so that no
	// probability is exactly zero in the log domain.
	smallNumber = 0.000001

	defaultMaxIter = 20
	defaultEpsilon = 1e-4

	// minFramesPerState is the least data Fit accepts per requested state.
	minFramesPerState = 2
)

// Trainer fits HMMs. It implements model.Trainer and is safe for use from
// multiple goroutines since all state lives in the models it creates.
type Trainer struct {
	maxIter int
	eps     float64
}

// Option type is used to pass options to NewTrainer().
type Option func(*Trainer)

// NewTrainer creates an HMM trainer.
func NewTrainer(options ...Option) *Trainer {

	t := &Trainer{
		maxIter: defaultMaxIter,
		eps:     defaultEpsilon,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// MaxIter option sets the re-estimation iteration cap.
func MaxIter(n int) Option {
	return func(t *Trainer) {
		if n > 0 {
			t.maxIter = n
		}
	}
}

// Epsilon option sets the relative log-likelihood convergence tolerance.
func Epsilon(eps float64) Option {
	return func(t *Trainer) {
		if eps > 0 {
			t.eps = eps
		}
	}
}

// Model is a fitted HMM. Exported fields are the persisted parameters;
// call Initialize after reading a model back from a file.
type Model struct {
	NStates       int         `json:"num_states"`
	NE            int         `json:"num_elements"`
	LogInitProbs  []float64   `json:"log_init_probs"`
	LogTransProbs [][]float64 `json:"log_trans_probs"`
	States        []*Gaussian `json:"states"`
}

// Fit estimates an HMM with numStates hidden states from the concatenated
// sequences in x. All failures are reported as model.TrainingError.
func (t *Trainer) Fit(x [][]float64, lengths []int, numStates int, seed int64) (model.Scorer, error) {

	if numStates < 1 {
		return nil, model.Trainingf(numStates, "state count must be positive")
	}
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, model.Trainingf(numStates, "no observation frames")
	}
	ne := len(x[0])
	for _, frame := range x {
		if len(frame) != ne {
			return nil, model.Trainingf(numStates, "ragged frames: got %d elements, expected %d", len(frame), ne)
		}
	}
	seqs, err := split(x, lengths)
	if err != nil {
		return nil, model.Trainingf(numStates, "%v", err)
	}
	if len(x) < numStates*minFramesPerState {
		return nil, model.Trainingf(numStates, "insufficient data: %d frames for %d states", len(x), numStates)
	}

	m := &Model{
		NStates:       numStates,
		NE:            ne,
		LogInitProbs:  make([]float64, numStates),
		LogTransProbs: floatx.MakeFloat2D(numStates, numStates),
		States:        make([]*Gaussian, numStates),
	}
	for i := range m.States {
		m.States[i] = newGaussian(ne)
	}

	transCounts := floatx.MakeFloat2D(numStates, numStates)
	initCounts := make([]float64, numStates)

	// Uniform segmentation: frame t of a sequence with T frames starts in
	// state floor(t*N/T).
	for _, seq := range seqs {
		T := len(seq)
		prev := -1
		for i, frame := range seq {
			s := i * numStates / T
			m.States[s].update(frame, 1.0)
			if i == 0 {
				initCounts[s]++
			} else {
				transCounts[prev][s]++
			}
			prev = s
		}
	}
	m.estimate(transCounts, initCounts)

	// Perturb the means so that states initialized from similar segments
	// can separate during realignment.
	r := rand.New(rand.NewSource(seed))
	for _, g := range m.States {
		for d := range g.Mean {
			g.Mean[d] += r.NormFloat64() * smallSD
		}
	}

	prevLogProb := math.Inf(-1)
	for iter := 0; iter < t.maxIter; iter++ {

		floatx.Clear2D(transCounts)
		floatx.Clear(initCounts)
		for _, g := range m.States {
			g.clear()
		}

		var logProb float64
		for _, seq := range seqs {
			path, lp := m.viterbi(seq)
			logProb += lp
			initCounts[path[0]]++
			for i, frame := range seq {
				m.States[path[i]].update(frame, 1.0)
				if i > 0 {
					transCounts[path[i-1]][path[i]]++
				}
			}
		}
		if math.IsNaN(logProb) || math.IsInf(logProb, 0) {
			return nil, model.Trainingf(numStates, "non-finite log-likelihood during re-estimation")
		}

		m.estimate(transCounts, initCounts)

		glog.V(3).Infof("iter %d: viterbi logProb %e", iter, logProb)
		if iter > 0 && math.Abs(logProb-prevLogProb) <= t.eps*(1.0+math.Abs(logProb)) {
			return m, nil
		}
		prevLogProb = logProb
	}

	return nil, model.Trainingf(numStates, "no convergence after %d iterations", t.maxIter)
}

// estimate turns the accumulated counts into smoothed log-probabilities and
// re-estimates the state output distributions. States that received fewer
// frames than minNumSamples keep their previous parameters.
func (m *Model) estimate(transCounts [][]float64, initCounts []float64) {

	n := float64(m.NStates)
	for i, row := range transCounts {
		total := floats.Sum(row) + smallNumber*n
		for j, c := range row {
			m.LogTransProbs[i][j] = math.Log((c + smallNumber) / total)
		}
	}

	totalInit := floats.Sum(initCounts) + smallNumber*n
	for i, c := range initCounts {
		m.LogInitProbs[i] = math.Log((c + smallNumber) / totalInit)
	}

	for i, g := range m.States {
		if g.numSamples() < minNumSamples {
			glog.V(3).Infof("state %d starved (%.0f frames), keeping previous parameters", i, g.numSamples())
			continue
		}
		g.estimate()
	}
}

// LogProb returns the total log-likelihood of the concatenated sequences in
// x under the model. Implements model.Scorer.
func (m *Model) LogProb(x [][]float64, lengths []int) (float64, error) {

	if len(x) == 0 {
		return 0, model.Scoringf("no observation frames")
	}
	for _, frame := range x {
		if len(frame) != m.NE {
			return 0, model.Scoringf("dimension mismatch: data has %d elements, model expects %d", len(frame), m.NE)
		}
	}
	seqs, err := split(x, lengths)
	if err != nil {
		return 0, model.Scoringf("%v", err)
	}

	var total float64
	for _, seq := range seqs {
		total += m.alpha(seq)
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, model.Scoringf("non-finite log-likelihood")
	}
	return total, nil
}

// Initialize rebuilds the derived fields of a model read from a file.
func (m *Model) Initialize() error {

	if m.NStates < 1 || len(m.States) != m.NStates ||
		len(m.LogInitProbs) != m.NStates || len(m.LogTransProbs) != m.NStates {
		return model.Scoringf("model has inconsistent shape for %d states", m.NStates)
	}
	for _, g := range m.States {
		if err := g.Initialize(); err != nil {
			return err
		}
	}
	return nil
}

// Compute the log-likelihood of one sequence with the forward recursion.
//
// 1. Initialization: alpha(i,0) = pi(i) b(i,o(0))
// 2. Induction:      alpha(j,t) = sum_i [alpha(i,t-1) a(i,j)] b(j,o(t))
// 3. Termination:    P(O) = sum_i alpha(i,T-1)
//
// Alphas are renormalized at every t; the log of the running scale is the
// sequence log-likelihood.
func (m *Model) alpha(seq [][]float64) float64 {

	N := m.NStates
	logAlpha := make([]float64, N)
	next := make([]float64, N)
	work := make([]float64, N)

	for i := 0; i < N; i++ {
		logAlpha[i] = m.LogInitProbs[i] + m.States[i].logProb(seq[0])
	}
	logProb := floats.LogSumExp(logAlpha)
	floats.AddConst(-logProb, logAlpha)

	for t := 1; t < len(seq); t++ {
		for j := 0; j < N; j++ {
			for i := 0; i < N; i++ {
				work[i] = logAlpha[i] + m.LogTransProbs[i][j]
			}
			next[j] = floats.LogSumExp(work) + m.States[j].logProb(seq[t])
		}
		scale := floats.LogSumExp(next)
		copy(logAlpha, next)
		floats.AddConst(-scale, logAlpha)
		logProb += scale
	}
	return logProb
}

// viterbi computes the most probable state path for one sequence.
//
// delta(j, 0) = pi(j) + b(j, 0)
// delta(j, t) = max_k [ delta(k, t-1) + a(k, j) ] + b(j, t)
// index(j, t) = argmax_k [ delta(k, t-1) + a(k, j) ]
func (m *Model) viterbi(seq [][]float64) (bt []int, logViterbiProb float64) {

	N := m.NStates
	T := len(seq)

	delta := floatx.MakeFloat2D(N, T)
	index := make([][]int, N)
	for i := 0; i < N; i++ {
		index[i] = make([]int, T)
	}
	bt = make([]int, T)

	for i := 0; i < N; i++ {
		delta[i][0] = m.LogInitProbs[i] + m.States[i].logProb(seq[0])
	}

	for t := 1; t < T; t++ {
		for i := 0; i < N; i++ {
			b := m.States[i].logProb(seq[t])
			max := delta[0][t-1] + m.LogTransProbs[0][i] + b
			argmax := 0
			for k := 1; k < N; k++ {
				tempProb := delta[k][t-1] + m.LogTransProbs[k][i] + b
				if tempProb > max {
					max = tempProb
					argmax = k
				}
			}
			delta[i][t] = max
			index[i][t] = argmax
		}
	}

	max := delta[0][T-1]
	argmax := 0
	for i := 1; i < N; i++ {
		if delta[i][T-1] > max {
			max = delta[i][T-1]
			argmax = i
		}
	}
	bt[T-1] = argmax
	logViterbiProb = max

	for t := T - 2; t >= 0; t-- {
		bt[t] = index[bt[t+1]][t+1]
	}
	return
}

// split cuts the concatenated matrix back into sequences and validates the
// lengths invariant.
func split(x [][]float64, lengths []int) ([][][]float64, error) {

	if len(lengths) == 0 {
		return nil, errors.New("no sequences")
	}
	seqs := make([][][]float64, 0, len(lengths))
	start := 0
	for i, l := range lengths {
		if l < 1 {
			return nil, errors.Errorf("sequence %d is empty", i)
		}
		if start+l > len(x) {
			return nil, errors.Errorf("lengths sum past %d rows", len(x))
		}
		seqs = append(seqs, x[start:start+l])
		start += l
	}
	if start != len(x) {
		return nil, errors.Errorf("lengths sum %d does not match %d rows", start, len(x))
	}
	return seqs, nil
}
