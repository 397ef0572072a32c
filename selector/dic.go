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

// DIC selects the state count with the highest Discriminative Information
// Criterion (Biem 2003):
//
//	DIC = log P(X_i) - mean_j!=i log P(X_j)
//
// the target class's own log-likelihood minus the mean log-likelihood the
// target's model assigns to every other class's data. Higher is better: a
// good state count explains its own class well and the others poorly.
//
// An other class only enters the mean when it can itself be fit at the
// candidate state count and its data can be scored; failures shrink the
// divisor rather than contributing a zero. A candidate with no surviving
// other class is excluded from the ranking.
type DIC struct {
	base
}

// NewDIC creates a DIC selector for one class.
func NewDIC(trainer model.Trainer, ds *model.Dataset, label string, cfg Config) (*DIC, error) {

	b, err := newBase(trainer, ds, label, cfg)
	if err != nil {
		return nil, err
	}
	return &DIC{base: b}, nil
}

// Select sweeps the candidate range and returns the model with maximum DIC.
func (s *DIC) Select() *Result {

	bestN := 0
	var bestScore float64
	var bestModel model.Scorer

	for n := s.cfg.MinStates; n <= s.cfg.MaxStates; n++ {

		own := s.fitClass(s.class, n)
		if own == nil {
			continue
		}
		logPXi, ok := s.score(own, s.class, n)
		if !ok {
			continue
		}

		var cross []float64
		for _, label := range s.ds.Labels() {
			if label == s.class.Label {
				continue
			}
			other, _ := s.ds.Class(label)

			// The other class must be fittable at this state count
			// to participate in the comparison.
			if s.fitClass(other, n) == nil {
				continue
			}
			anti, err := own.LogProb(other.X, other.Lengths)
			if err != nil {
				s.diag(label, n, "score", err)
				continue
			}
			cross = append(cross, anti)
		}
		if len(cross) == 0 {
			// Nothing to discriminate against at this candidate.
			continue
		}

		dic := logPXi - stat.Mean(cross, nil)
		glog.V(2).Infof("class %q: DIC(%d) = %f over %d other classes", s.class.Label, n, dic, len(cross))

		if bestModel == nil || dic > bestScore {
			bestN, bestScore, bestModel = n, dic, own
		}
	}

	if bestModel == nil {
		return s.fallback()
	}
	return s.result(bestN, bestModel)
}
