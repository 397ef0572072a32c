// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asl holds the shared pieces of the recognizer toolkit: the run
// configuration and the result records exchanged between the recognize and
// score commands.
package asl

import (
	"math"

	"github.com/golang/glog"
)

// Result is the recognition outcome for one test item. Ref carries the
// reference label when the test set is labeled; Hyp is empty when no class
// model could score the item.
type Result struct {
	ItemID string             `json:"item_id"`
	Ref    string             `json:"ref,omitempty"`
	Hyp    string             `json:"hyp,omitempty"`
	Scores map[string]float64 `json:"scores,omitempty"`
}

// FilterScores makes a score table JSON compatible.
// Replaces -Inf with -MaxFloat.
func FilterScores(scores map[string]float64) map[string]float64 {

	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		if math.IsInf(v, -1) {
			v = -math.MaxFloat64
		}
		out[k] = v
	}
	return out
}

// Fatal logs the error and exits if err is not nil.
func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
