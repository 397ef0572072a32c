// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package model defines the contracts between the training data, the sequence
models, and the components that select and compare them.

A class's observations are handled in batch form: a matrix of frames (one
row per frame, one column per feature) plus a vector of per-sequence frame
counts that splits the matrix back into sequences.
*/
package model

const (
	// DefaultSeed provided for model implementations.
	DefaultSeed = 33
)

// A Scorer computes the total log-likelihood of a batch of sequences.
type Scorer interface {

	// LogProb returns the total log-likelihood of the concatenated
	// sequences in x, split according to lengths. Returns a ScoringError
	// when the model cannot evaluate the data.
	LogProb(x [][]float64, lengths []int) (float64, error)
}

// A Trainer fits a sequence model with a given number of hidden states.
type Trainer interface {

	// Fit estimates model parameters from the concatenated sequences in x.
	// The seed makes the estimation reproducible. Returns a TrainingError
	// when no usable model can be estimated for this state count.
	Fit(x [][]float64, lengths []int, numStates int, seed int64) (Scorer, error)
}
