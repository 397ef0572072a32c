// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package selector chooses the number of hidden states for one class's
sequence model.

Four strategies share a contract: sweep the candidate state counts, fit a
model per candidate, rank the candidates by a statistical criterion, and
return one fitted model. Select never fails: candidates whose fit or score
fails are excluded from the ranking, an empty ranking falls back to a fit at
the default state count, and if even that fails the result carries a nil
model so the caller can leave the class out of its model map.
*/
package selector

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/Polarbeargo/AIND-Recognizer/model"
)

// A Selector picks a state count for its class and returns the fitted model.
type Selector interface {
	Select() *Result
}

// Result is the outcome of one selection: the chosen state count and the
// fitted model. Model is nil and NumStates zero when every candidate and the
// fallback failed.
type Result struct {
	Label     string
	NumStates int
	Model     model.Scorer
}

// Event describes one absorbed failure during a selection sweep. Stage is
// "fit", "score" or "fallback".
type Event struct {
	Label     string
	NumStates int
	Stage     string
	Err       error
}

// Config carries the parameters shared by all selection strategies.
type Config struct {
	// Candidate state counts, inclusive on both ends.
	MinStates int
	MaxStates int

	// Fallback state count, also the constant selector's choice.
	Default int

	// Seed passed to every fit for reproducibility.
	Seed int64

	// Folds used by the cross-validation selector. Zero means 3.
	Folds int

	// Diag, when set, receives every absorbed fit/score failure.
	// When nil, failures are logged at verbosity 2.
	Diag func(Event)

	// Cache, when set, is consulted before fitting a class at a state
	// count and updated after a successful fit. Share one cache across
	// the selectors of a run.
	Cache *Cache
}

func (c Config) folds() int {
	if c.Folds > 0 {
		return c.Folds
	}
	return 3
}

func (c Config) validate() error {
	if c.MinStates < 1 || c.MaxStates < c.MinStates {
		return fmt.Errorf("invalid candidate range [%d, %d]", c.MinStates, c.MaxStates)
	}
	if c.Default < 1 {
		return fmt.Errorf("invalid default state count %d", c.Default)
	}
	return nil
}

// base carries what every strategy needs: the trainer, the full dataset
// (DIC visits every other class), and the target class.
type base struct {
	trainer model.Trainer
	ds      *model.Dataset
	class   *model.ClassData
	cfg     Config
}

func newBase(trainer model.Trainer, ds *model.Dataset, label string, cfg Config) (base, error) {

	if err := cfg.validate(); err != nil {
		return base{}, err
	}
	class, ok := ds.Class(label)
	if !ok {
		return base{}, fmt.Errorf("class %q not in dataset", label)
	}
	return base{trainer: trainer, ds: ds, class: class, cfg: cfg}, nil
}

// fitClass fits cd at n and returns nil on failure. Successful fits go
// through the shared cache when one is configured.
func (b *base) fitClass(cd *model.ClassData, n int) model.Scorer {

	if b.cfg.Cache != nil {
		if m, ok := b.cfg.Cache.get(cd.Label, n); ok {
			return m
		}
	}
	m, err := b.trainer.Fit(cd.X, cd.Lengths, n, b.cfg.Seed)
	if err != nil {
		b.diag(cd.Label, n, "fit", err)
		return nil
	}
	if b.cfg.Cache != nil {
		b.cfg.Cache.add(cd.Label, n, m)
	}
	return m
}

// score evaluates cd under m and reports failures through the diagnostics
// channel. The boolean is false when the score is unusable.
func (b *base) score(m model.Scorer, cd *model.ClassData, n int) (float64, bool) {

	s, err := m.LogProb(cd.X, cd.Lengths)
	if err != nil {
		b.diag(cd.Label, n, "score", err)
		return 0, false
	}
	return s, true
}

// fallback fits the class at the default state count. A nil-model result
// means even the fallback failed and the class has no model.
func (b *base) fallback() *Result {

	m := b.fitClass(b.class, b.cfg.Default)
	if m == nil {
		b.diag(b.class.Label, b.cfg.Default, "fallback", fmt.Errorf("no candidate produced a model"))
		return &Result{Label: b.class.Label}
	}
	return &Result{Label: b.class.Label, NumStates: b.cfg.Default, Model: m}
}

func (b *base) result(n int, m model.Scorer) *Result {
	return &Result{Label: b.class.Label, NumStates: n, Model: m}
}

func (b *base) diag(label string, n int, stage string, err error) {

	if b.cfg.Diag != nil {
		b.cfg.Diag(Event{Label: label, NumStates: n, Stage: stage, Err: err})
		return
	}
	glog.V(2).Infof("selection %s failure for class %q at %d states: %v", stage, label, n, err)
}

// Constant ignores the candidate range and fits at the default state count.
// It is the baseline the other strategies are compared against.
type Constant struct {
	base
}

// NewConstant creates a constant selector for one class.
func NewConstant(trainer model.Trainer, ds *model.Dataset, label string, cfg Config) (*Constant, error) {

	b, err := newBase(trainer, ds, label, cfg)
	if err != nil {
		return nil, err
	}
	return &Constant{base: b}, nil
}

// Select fits the class at the default state count.
func (s *Constant) Select() *Result {
	return s.fallback()
}

// New creates a selector by strategy name: constant, bic, dic or cv.
func New(strategy string, trainer model.Trainer, ds *model.Dataset, label string, cfg Config) (Selector, error) {

	switch strategy {
	case "constant":
		return NewConstant(trainer, ds, label, cfg)
	case "bic":
		return NewBIC(trainer, ds, label, cfg)
	case "dic":
		return NewDIC(trainer, ds, label, cfg)
	case "cv":
		return NewCV(trainer, ds, label, cfg)
	}
	return nil, fmt.Errorf("unknown selection strategy %q", strategy)
}
