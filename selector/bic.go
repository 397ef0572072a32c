// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selector

import (
	"math"

	"github.com/golang/glog"

	"github.com/Polarbeargo/AIND-Recognizer/model"
)

// BIC selects the state count with the lowest Bayesian Information
// Criterion:
//
//	BIC = -2 * logL + p * log(N)
//
// where N is the number of observation frames and p the free parameter
// count, n^2 + 2*d*n - 1 for n states of dimensionality d (transition
// degrees of freedom plus per-state mean and variance, minus one for the
// row-stochastic constraint). Lower is better: the log(N) term penalizes
// complexity.
type BIC struct {
	base
}

// NewBIC creates a BIC selector for one class.
func NewBIC(trainer model.Trainer, ds *model.Dataset, label string, cfg Config) (*BIC, error) {

	b, err := newBase(trainer, ds, label, cfg)
	if err != nil {
		return nil, err
	}
	return &BIC{base: b}, nil
}

// Select sweeps the candidate range and returns the model with minimum BIC.
func (s *BIC) Select() *Result {

	logN := math.Log(float64(s.class.NumFrames()))
	d := float64(s.class.Dim())

	bestN := 0
	bestScore := math.Inf(1)
	var bestModel model.Scorer

	for n := s.cfg.MinStates; n <= s.cfg.MaxStates; n++ {

		m := s.fitClass(s.class, n)
		if m == nil {
			continue
		}
		logL, ok := s.score(m, s.class, n)
		if !ok {
			continue
		}

		p := float64(n*n) + 2.0*d*float64(n) - 1.0
		bic := -2.0*logL + p*logN
		glog.V(2).Infof("class %q: BIC(%d) = %f (logL %f)", s.class.Label, n, bic, logL)

		if bic < bestScore {
			bestN, bestScore, bestModel = n, bic, m
		}
	}

	if bestModel == nil {
		return s.fallback()
	}
	return s.result(bestN, bestModel)
}
