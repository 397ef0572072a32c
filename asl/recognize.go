package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	asl "github.com/Polarbeargo/AIND-Recognizer"
	"github.com/Polarbeargo/AIND-Recognizer/model"
	"github.com/Polarbeargo/AIND-Recognizer/recognizer"
)

var recognizeCommand = cli.Command{
	Name:      "recognize",
	ShortName: "r",
	Usage:     "Labels test sequences using the trained models.",
	Description: `scores every test sequence under every class model and writes
one result record per sequence.

ex:
 $ asl recognize -i models.json -t test.json -r results.json
`,
	Action: recognizeAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "model-in, i", Usage: "input model filename"},
		cli.StringFlag{Name: "test-set, t", Usage: "the JSON file with the test sequences per class"},
		cli.StringFlag{Name: "results-file, r", Usage: "results file, stdout when omitted"},
	},
}

func recognizeAction(c *cli.Context) error {

	initApp(c)

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam(c, "model-in", &config.ModelIn)
	requiredStringParam(c, "test-set", &config.TestSet)

	var resultsFile *os.File
	if e := stringParam(c, "results-file", &config.ResultsFile); e == NoConfigValueError {
		glog.Infof("no results file specified, writing to stdout")
		resultsFile = os.Stdout
	} else {
		var err error
		resultsFile, err = os.Create(config.ResultsFile)
		asl.Fatal(err)
		defer resultsFile.Close()
	}

	mf, e := readModels(config.ModelIn)
	asl.Fatal(e)

	// Model map iteration order decides score ties, keep it stable.
	labels := make([]string, 0, len(mf.Classes))
	for label := range mf.Classes {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	set := recognizer.NewModelSet()
	for _, label := range labels {
		asl.Fatal(set.Add(label, mf.Classes[label].Model))
	}

	ts, e := model.ReadDatasetFile(config.TestSet)
	asl.Fatal(e)

	var items []recognizer.Item
	var refs []string
	for _, label := range ts.Labels() {
		cd, _ := ts.Class(label)
		for i := range cd.Seqs {
			x, lengths := model.Combine(cd.Seqs, []int{i})
			items = append(items, recognizer.Item{
				ID:      fmt.Sprintf("%s-%d", label, i),
				X:       x,
				Lengths: lengths,
			})
			refs = append(refs, label)
		}
	}

	preds := recognizer.Recognize(set, items)

	enc := json.NewEncoder(resultsFile)
	correct := 0
	for i, p := range preds {
		if p.Guess == refs[i] {
			correct++
		}
		result := &asl.Result{
			ItemID: items[i].ID,
			Ref:    refs[i],
			Hyp:    p.Guess,
			Scores: asl.FilterScores(p.Scores),
		}
		asl.Fatal(enc.Encode(result))
	}

	glog.Infof("recognized %d items, %d correct", len(preds), correct)
	return nil
}
