package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	asl "github.com/Polarbeargo/AIND-Recognizer"
)

var config *asl.Config

// NoConfigValueError reports a parameter present in neither the config file
// nor the command line.
var NoConfigValueError = fmt.Errorf("no config value")

func initApp(c *cli.Context) {

	fn := c.GlobalString("config-file")
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		glog.Infof("no config file [%s], using defaults", fn)
		config = asl.DefaultConfig()
		return
	}

	var err error
	config, err = asl.ReadConfigFile(fn)
	asl.Fatal(err)
	glog.V(1).Infof("read configuration:\n%+v", config)
}

// stringParam overwrites target when the flag is set and reports whether a
// value is available from either source.
func stringParam(c *cli.Context, name string, target *string) error {

	if v := c.String(name); v != "" {
		*target = v
	}
	if *target == "" {
		return NoConfigValueError
	}
	return nil
}

func requiredStringParam(c *cli.Context, name string, target *string) {

	if e := stringParam(c, name, target); e != nil {
		asl.Fatal(fmt.Errorf("missing required parameter [%s]", name))
	}
}

func intParam(c *cli.Context, name string, target *int) {
	if c.IsSet(name) {
		*target = c.Int(name)
	}
}

func int64Param(c *cli.Context, name string, target *int64) {
	if c.IsSet(name) {
		*target = c.Int64(name)
	}
}
