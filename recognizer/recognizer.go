// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package recognizer labels test sequences by comparing their log-likelihood
under every class's fitted model.
*/
package recognizer

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/Polarbeargo/AIND-Recognizer/model"
)

// ModelSet maps class labels to fitted models in insertion order. Order
// matters: when two classes tie on score, the first one added keeps the
// guess. Classes whose selection produced no model are simply not added.
type ModelSet struct {
	labels []string
	models map[string]model.Scorer
}

// NewModelSet creates an empty model set.
func NewModelSet() *ModelSet {
	return &ModelSet{models: make(map[string]model.Scorer)}
}

// Add appends a class's model. Duplicate labels and nil models are rejected.
func (s *ModelSet) Add(label string, m model.Scorer) error {

	if m == nil {
		return errors.Errorf("nil model for class %q", label)
	}
	if _, ok := s.models[label]; ok {
		return errors.Errorf("duplicate class label %q", label)
	}
	s.labels = append(s.labels, label)
	s.models[label] = m
	return nil
}

// Labels returns the class labels in insertion order.
func (s *ModelSet) Labels() []string { return s.labels }

// Len is the number of models in the set.
func (s *ModelSet) Len() int { return len(s.labels) }

// Item is one test sequence batch in concatenated form.
type Item struct {
	ID      string
	X       [][]float64
	Lengths []int
}

// Prediction is the outcome for one test item: the log-likelihood under
// every class's model (negative infinity where scoring failed) and the
// best-guess label. OK is false when no class produced a usable score.
type Prediction struct {
	ID     string
	Scores map[string]float64
	Guess  string
	OK     bool
}

// Recognize scores every item under every model and picks the arg-max label
// per item. Output is index-aligned with items. A class's scoring failure
// never aborts the pass; the failed score is recorded as -Inf and can never
// win the strict greater-than comparison.
func Recognize(set *ModelSet, items []Item) []Prediction {

	preds := make([]Prediction, len(items))
	for i, item := range items {

		scores := make(map[string]float64, set.Len())
		best := math.Inf(-1)
		guess := ""
		ok := false

		for _, label := range set.labels {
			logL, err := set.models[label].LogProb(item.X, item.Lengths)
			if err != nil {
				glog.V(2).Infof("item %d (%s): class %q failed to score: %v", i, item.ID, label, err)
				scores[label] = math.Inf(-1)
				continue
			}
			scores[label] = logL
			if logL > best {
				best = logL
				guess = label
				ok = true
			}
		}

		preds[i] = Prediction{ID: item.ID, Scores: scores, Guess: guess, OK: ok}
	}
	return preds
}
