// Computes accuracy metrics for a results file.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	asl "github.com/Polarbeargo/AIND-Recognizer"
)

var scoreCommand = cli.Command{
	Name:      "score",
	ShortName: "s",
	Usage:     "Computes recognition accuracy for a results file.",
	Description: `
compares the hypothesized label of every result record against its
reference label.

ex:
 $ asl score -r results.json
`,
	Action: scoreAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "results-file, r", Usage: "the input file with results to be analyzed"},
		cli.StringFlag{Name: "score-file, t", Usage: "output score file, stdout when omitted"},
	},
}

func scoreAction(c *cli.Context) error {

	initApp(c)

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam(c, "results-file", &config.ResultsFile)

	var scoreFile *os.File
	if e := stringParam(c, "score-file", &config.ScoreFile); e == NoConfigValueError {
		glog.Infof("no score file specified, writing to stdout")
		scoreFile = os.Stdout
	} else {
		var err error
		scoreFile, err = os.Create(config.ScoreFile)
		asl.Fatal(err)
		defer scoreFile.Close()
	}

	resultsFile, e := os.Open(config.ResultsFile)
	asl.Fatal(e)
	defer resultsFile.Close()

	var total, correct, noGuess int
	reader := bufio.NewReader(resultsFile)
	for {
		b, eb := reader.ReadBytes('\n')
		if eb == io.EOF {
			break
		}
		asl.Fatal(eb)

		result := new(asl.Result)
		asl.Fatal(json.Unmarshal(b, result))

		total++
		switch {
		case result.Hyp == "":
			noGuess++
		case result.Hyp == result.Ref:
			correct++
		}
		glog.V(3).Infof("ID: %s, ref: %s, hyp: %s", result.ItemID, result.Ref, result.Hyp)
	}

	if total == 0 {
		asl.Fatal(fmt.Errorf("results file %s has no records", config.ResultsFile))
	}
	fmt.Fprintf(scoreFile, "items: %d, correct: %d, no guess: %d, acc: %.4f\n",
		total, correct, noGuess, float64(correct)/float64(total))
	return nil
}
