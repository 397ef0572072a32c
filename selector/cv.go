// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selector

import (
	"github.com/golang/glog"
	"gonum.org/v1/gonum/stat"

	"github.com/Polarbeargo/AIND-Recognizer/model"
)

// CV selects the state count with the highest mean held-out log-likelihood
// across k folds of the class's sequence list. Folds split sequences, never
// individual frames. A candidate only enters the ranking when at least one
// fold fits and scores; the winner is refit on the full class data.
//
// When the class has fewer sequences than folds, the fold count shrinks to
// the sequence count; a single-sequence class cannot be cross-validated and
// goes straight to the fallback.
type CV struct {
	base
}

// NewCV creates a cross-validation selector for one class.
func NewCV(trainer model.Trainer, ds *model.Dataset, label string, cfg Config) (*CV, error) {

	b, err := newBase(trainer, ds, label, cfg)
	if err != nil {
		return nil, err
	}
	return &CV{base: b}, nil
}

// Select sweeps the candidate range and returns the model refit at the state
// count with the best mean held-out score.
func (s *CV) Select() *Result {

	k := s.cfg.folds()
	if n := s.class.NumSeqs(); n < k {
		k = n
	}
	if k < 2 {
		s.diag(s.class.Label, 0, "fit",
			&model.TrainingError{Reason: "too few sequences for cross-validation"})
		return s.fallback()
	}
	folds := kfold(s.class.NumSeqs(), k)

	bestN := 0
	var bestMean float64
	found := false

	for n := s.cfg.MinStates; n <= s.cfg.MaxStates; n++ {

		var scores []float64
		for _, heldOut := range folds {

			trainX, trainLengths := model.Combine(s.class.Seqs, complement(heldOut, s.class.NumSeqs()))

			// Fold models train on partial data and bypass the cache.
			m, err := s.trainer.Fit(trainX, trainLengths, n, s.cfg.Seed)
			if err != nil {
				s.diag(s.class.Label, n, "fit", err)
				continue
			}

			testX, testLengths := model.Combine(s.class.Seqs, heldOut)
			logL, err := m.LogProb(testX, testLengths)
			if err != nil {
				s.diag(s.class.Label, n, "score", err)
				continue
			}
			scores = append(scores, logL)
		}
		if len(scores) == 0 {
			// No fold survived; the candidate does not participate.
			continue
		}

		mean := stat.Mean(scores, nil)
		glog.V(2).Infof("class %q: CV(%d) = %f over %d folds", s.class.Label, n, mean, len(scores))

		if !found || mean > bestMean {
			bestN, bestMean, found = n, mean, true
		}
	}

	if !found {
		return s.fallback()
	}

	m := s.fitClass(s.class, bestN)
	if m == nil {
		// Fold fits succeeded but the full-data refit did not.
		return s.fallback()
	}
	return s.result(bestN, m)
}

// kfold splits the index range [0, n) into k contiguous folds; the first
// n%k folds carry one extra index.
func kfold(n, k int) [][]int {

	folds := make([][]int, 0, k)
	size, rem := n/k, n%k
	start := 0
	for i := 0; i < k; i++ {
		l := size
		if i < rem {
			l++
		}
		fold := make([]int, 0, l)
		for j := start; j < start+l; j++ {
			fold = append(fold, j)
		}
		folds = append(folds, fold)
		start += l
	}
	return folds
}

// complement returns the indices of [0, n) not present in fold. fold is
// sorted ascending by construction.
func complement(fold []int, n int) []int {

	out := make([]int, 0, n-len(fold))
	next := 0
	for i := 0; i < n; i++ {
		if next < len(fold) && fold[next] == i {
			next++
			continue
		}
		out = append(out, i)
	}
	return out
}
