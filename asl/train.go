package main

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	asl "github.com/Polarbeargo/AIND-Recognizer"
	"github.com/Polarbeargo/AIND-Recognizer/model"
	"github.com/Polarbeargo/AIND-Recognizer/model/hmm"
	"github.com/Polarbeargo/AIND-Recognizer/selector"
)

var trainCommand = cli.Command{
	Name:      "train",
	ShortName: "t",
	Usage:     "Selects the model order per class and estimates the models.",
	Description: `runs model-order selection for every class in the dataset and
writes the fitted models to the model file.

ex:
 $ asl train -d train.json -o models.json --selector bic
`,
	Action: trainAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-set, d", Usage: "the JSON file with the training sequences per class"},
		cli.StringFlag{Name: "model-out, o", Usage: "output model filename"},
		cli.StringFlag{Name: "selector", Usage: "selection strategy {constant, bic, dic, cv}"},
		cli.IntFlag{Name: "min-states", Usage: "smallest candidate state count"},
		cli.IntFlag{Name: "max-states", Usage: "largest candidate state count"},
		cli.IntFlag{Name: "default-states", Usage: "fallback state count"},
		cli.Int64Flag{Name: "seed", Usage: "seed for reproducible estimation"},
		cli.IntFlag{Name: "folds", Usage: "folds for the cv selector"},
		cli.BoolFlag{Name: "parallel", Usage: "select classes concurrently, overwrites config file when set"},
	},
}

func trainAction(c *cli.Context) error {

	initApp(c)

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam(c, "data-set", &config.DataSet)
	requiredStringParam(c, "model-out", &config.ModelOut)
	stringParam(c, "selector", &config.Selector)
	intParam(c, "min-states", &config.Selection.MinStates)
	intParam(c, "max-states", &config.Selection.MaxStates)
	intParam(c, "default-states", &config.Selection.DefaultStates)
	int64Param(c, "seed", &config.Selection.Seed)
	intParam(c, "folds", &config.Selection.Folds)
	if c.Bool("parallel") {
		config.Selection.Parallel = true
	}

	ds, e := model.ReadDatasetFile(config.DataSet)
	asl.Fatal(e)
	glog.Infof("selection strategy: %s, %d classes", config.Selector, ds.Len())

	trainer := hmm.NewTrainer(
		hmm.MaxIter(config.HMM.MaxIter),
		hmm.Epsilon(config.HMM.Epsilon),
	)
	cfg := selector.Config{
		MinStates: config.Selection.MinStates,
		MaxStates: config.Selection.MaxStates,
		Default:   config.Selection.DefaultStates,
		Seed:      config.Selection.Seed,
		Folds:     config.Selection.Folds,
		Cache:     selector.NewCache(config.Selection.CacheSize),
	}

	selectClass := func(label string) *selector.Result {
		sel, e := selector.New(config.Selector, trainer, ds, label, cfg)
		asl.Fatal(e)
		return sel.Select()
	}

	// Each class's selection is independent; the dataset is read-only and
	// the cache is safe for concurrent use, so classes can run in parallel.
	results := make(map[string]*selector.Result, ds.Len())
	if config.Selection.Parallel {
		var mu sync.Mutex
		var wg sync.WaitGroup
		for _, label := range ds.Labels() {
			wg.Add(1)
			go func(label string) {
				defer wg.Done()
				r := selectClass(label)
				mu.Lock()
				results[label] = r
				mu.Unlock()
			}(label)
		}
		wg.Wait()
	} else {
		for _, label := range ds.Labels() {
			results[label] = selectClass(label)
		}
	}

	mf := &modelFile{Selector: config.Selector, Classes: make(map[string]*classModel)}
	for _, label := range ds.Labels() {
		r := results[label]
		if r.Model == nil {
			glog.Warningf("class %q: no candidate or fallback produced a model, leaving it out", label)
			continue
		}
		m, ok := r.Model.(*hmm.Model)
		if !ok {
			asl.Fatal(fmt.Errorf("class %q: unexpected model type %T", label, r.Model))
		}
		glog.Infof("class %q: selected %d states", label, r.NumStates)
		mf.Classes[label] = &classModel{NumStates: r.NumStates, Model: m}
	}

	asl.Fatal(writeModels(config.ModelOut, mf))
	glog.Infof("wrote %d models to %s", len(mf.Classes), config.ModelOut)
	return nil
}
