// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asl

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the run configuration. Command-line flags overwrite config file
// values.
type Config struct {
	Selector string `yaml:"selector" json:"selector"`

	DataSet     string `yaml:"data_set,omitempty" json:"data_set,omitempty"`
	TestSet     string `yaml:"test_set,omitempty" json:"test_set,omitempty"`
	ModelOut    string `yaml:"model_out,omitempty" json:"model_out,omitempty"`
	ModelIn     string `yaml:"model_in,omitempty" json:"model_in,omitempty"`
	ResultsFile string `yaml:"results_file,omitempty" json:"results_file,omitempty"`
	ScoreFile   string `yaml:"score_file,omitempty" json:"score_file,omitempty"`

	Selection Selection `yaml:"selection"`

	HMM HMM `yaml:"hmm"`
}

// Selection holds the model-order selection parameters.
type Selection struct {
	MinStates     int   `yaml:"min_states,omitempty" json:"min_states,omitempty"`
	MaxStates     int   `yaml:"max_states,omitempty" json:"max_states,omitempty"`
	DefaultStates int   `yaml:"default_states,omitempty" json:"default_states,omitempty"`
	Seed          int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	Folds         int   `yaml:"folds,omitempty" json:"folds,omitempty"`
	CacheSize     int   `yaml:"cache_size,omitempty" json:"cache_size,omitempty"`
	Parallel      bool  `yaml:"parallel,omitempty" json:"parallel,omitempty"`
}

// HMM holds the trainer parameters.
type HMM struct {
	MaxIter int     `yaml:"max_iter,omitempty" json:"max_iter,omitempty"`
	Epsilon float64 `yaml:"epsilon,omitempty" json:"epsilon,omitempty"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Selector: "bic",
		Selection: Selection{
			MinStates:     2,
			MaxStates:     10,
			DefaultStates: 3,
			Seed:          14,
			Folds:         3,
		},
	}
}

// ReadConfig parses a yaml configuration.
func ReadConfig(data []byte) (*Config, error) {

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return config, nil
}

// ReadConfigFile reads a yaml configuration file.
func ReadConfigFile(fn string) (*Config, error) {

	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", fn)
	}
	return ReadConfig(data)
}
