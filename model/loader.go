// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// datasetFile is the on-disk dataset format: a mapping from class label to
// the list of sequences, each sequence a frames x features matrix.
type datasetFile struct {
	Classes map[string][][][]float64 `json:"classes"`
}

// ReadDataset reads a JSON dataset.
func ReadDataset(r io.Reader) (*Dataset, error) {

	var df datasetFile
	if err := json.NewDecoder(r).Decode(&df); err != nil {
		return nil, errors.Wrap(err, "failed to decode dataset")
	}
	if len(df.Classes) == 0 {
		return nil, errors.New("dataset has no classes")
	}

	ds := NewDataset()
	for label, seqs := range df.Classes {
		cd, err := NewClassData(label, seqs)
		if err != nil {
			return nil, err
		}
		if err := ds.Add(cd); err != nil {
			return nil, err
		}
		glog.V(2).Infof("loaded class %q: %d sequences, %d frames, dim %d",
			label, cd.NumSeqs(), cd.NumFrames(), cd.Dim())
	}
	return ds, nil
}

// ReadDatasetFile reads a JSON dataset from a file.
func ReadDatasetFile(fn string) (*Dataset, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset file %s", fn)
	}
	defer f.Close()
	return ReadDataset(f)
}
