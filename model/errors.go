// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// TrainingError reports that a candidate state count could not produce a
// usable model. Selection strategies absorb it by excluding the candidate.
type TrainingError struct {
	NumStates int
	Reason    string
}

func (e *TrainingError) Error() string {
	return fmt.Sprintf("training failed for %d states: %s", e.NumStates, e.Reason)
}

// Trainingf creates a TrainingError.
func Trainingf(numStates int, format string, args ...interface{}) error {
	return &TrainingError{NumStates: numStates, Reason: fmt.Sprintf(format, args...)}
}

// ScoringError reports that a fitted model could not evaluate the given data.
type ScoringError struct {
	Reason string
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed: %s", e.Reason)
}

// Scoringf creates a ScoringError.
func Scoringf(format string, args ...interface{}) error {
	return &ScoringError{Reason: fmt.Sprintf(format, args...)}
}

// IsTrainingError reports whether err, possibly wrapped, is a TrainingError.
func IsTrainingError(err error) bool {
	_, ok := errors.Cause(err).(*TrainingError)
	return ok
}

// IsScoringError reports whether err, possibly wrapped, is a ScoringError.
func IsScoringError(err error) bool {
	_, ok := errors.Cause(err).(*ScoringError)
	return ok
}
