// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"sort"

	"github.com/pkg/errors"
)

// ClassData holds one class's observation sequences in both forms: the
// sequence list and the concatenated matrix plus per-sequence lengths.
// It is built once and never mutated.
type ClassData struct {
	Label   string
	Seqs    [][][]float64
	X       [][]float64
	Lengths []int
}

// NewClassData validates the sequences and builds the concatenated form.
// Frame slices are shared with the input, not copied.
func NewClassData(label string, seqs [][][]float64) (*ClassData, error) {

	if len(seqs) == 0 {
		return nil, errors.Errorf("class %q has no sequences", label)
	}
	if len(seqs[0]) == 0 || len(seqs[0][0]) == 0 {
		return nil, errors.Errorf("class %q has an empty sequence", label)
	}
	dim := len(seqs[0][0])
	total := 0
	for i, seq := range seqs {
		if len(seq) == 0 {
			return nil, errors.Errorf("class %q: sequence %d is empty", label, i)
		}
		for _, frame := range seq {
			if len(frame) != dim {
				return nil, errors.Errorf("class %q: sequence %d has frames of dim %d, expected %d",
					label, i, len(frame), dim)
			}
		}
		total += len(seq)
	}

	x := make([][]float64, 0, total)
	lengths := make([]int, 0, len(seqs))
	for _, seq := range seqs {
		x = append(x, seq...)
		lengths = append(lengths, len(seq))
	}

	return &ClassData{Label: label, Seqs: seqs, X: x, Lengths: lengths}, nil
}

// Dim is the dimensionality of the observation vectors.
func (c *ClassData) Dim() int { return len(c.X[0]) }

// NumFrames is the total number of observation frames across all sequences.
func (c *ClassData) NumFrames() int { return len(c.X) }

// NumSeqs is the number of observation sequences.
func (c *ClassData) NumSeqs() int { return len(c.Seqs) }

// Combine concatenates the sequences selected by idx into a matrix plus
// lengths pair, preserving the order of idx.
func Combine(seqs [][][]float64, idx []int) (x [][]float64, lengths []int) {

	for _, i := range idx {
		x = append(x, seqs[i]...)
		lengths = append(lengths, len(seqs[i]))
	}
	return
}

// Dataset maps class labels to their data. Labels iterate in sorted order
// so that runs are reproducible.
type Dataset struct {
	labels  []string
	classes map[string]*ClassData
}

func NewDataset() *Dataset {
	return &Dataset{classes: make(map[string]*ClassData)}
}

// Add inserts a class. Duplicate labels are rejected.
func (d *Dataset) Add(c *ClassData) error {

	if _, ok := d.classes[c.Label]; ok {
		return errors.Errorf("duplicate class label %q", c.Label)
	}
	d.classes[c.Label] = c
	d.labels = append(d.labels, c.Label)
	sort.Strings(d.labels)
	return nil
}

// Class returns the data for a label.
func (d *Dataset) Class(label string) (*ClassData, bool) {
	c, ok := d.classes[label]
	return c, ok
}

// Labels returns the class labels in sorted order.
func (d *Dataset) Labels() []string { return d.labels }

// Len is the number of classes.
func (d *Dataset) Len() int { return len(d.labels) }
