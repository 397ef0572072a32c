// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command asl trains per-class sequence models with automatic model-order
// selection and recognizes test sequences by maximum likelihood.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/urfave/cli"
)

func main() {

	// glog reads its settings from the standard flag package.
	flag.CommandLine.Parse([]string{})
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	app := cli.NewApp()
	app.Name = "asl"
	app.Usage = "HMM sequence recognizer with model-order selection."
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "config.yaml",
			Usage: "configuration file, command flags overwrite config values",
		},
	}
	app.Commands = []cli.Command{
		trainCommand,
		recognizeCommand,
		scoreCommand,
	}

	if err := app.Run(os.Args); err != nil {
		glog.Fatal(err)
	}
}
