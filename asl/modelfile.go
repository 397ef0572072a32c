package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/Polarbeargo/AIND-Recognizer/model/hmm"
)

// classModel is one class's entry in the model file: the selected state
// count and the fitted model parameters.
type classModel struct {
	NumStates int        `json:"num_states"`
	Model     *hmm.Model `json:"model"`
}

type modelFile struct {
	Selector string                 `json:"selector"`
	Classes  map[string]*classModel `json:"classes"`
}

func writeModels(fn string, mf *modelFile) error {

	f, err := os.Create(fn)
	if err != nil {
		return errors.Wrapf(err, "failed to create model file %s", fn)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(mf)
}

func readModels(fn string) (*modelFile, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open model file %s", fn)
	}
	defer f.Close()

	mf := new(modelFile)
	if err := json.NewDecoder(f).Decode(mf); err != nil {
		return nil, errors.Wrapf(err, "failed to decode model file %s", fn)
	}
	for label, cm := range mf.Classes {
		if cm.Model == nil {
			return nil, errors.Errorf("class %q has no model parameters", label)
		}
		if err := cm.Model.Initialize(); err != nil {
			return nil, errors.Wrapf(err, "failed to initialize model for class %q", label)
		}
	}
	return mf, nil
}
