// Package cmd implements the igt command line tool for the IG trading
// platform.
package cmd

import (
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/igtrade/igtrade"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&accountCmd{},
	&positionsCmd{},
	&positionCmd{},
	&instrumentCmd{},
	&sessionCmd{},
	&loginCmd{},
	&logoutCmd{},
}

// As a CLI application with a short lived lifecycle, global flags shared
// by every subcommand live in package variables.

var configFile = flag.String("config", "", "Path to the configuration file (default ~/"+igtrade.DefaultConfigFile+")")
var platform = flag.String("platform", "", "Trading platform to target: live or demo. Overrides the configuration file.")
var outputFormat = flag.String("format", "text", "Output format: text or json")
var queryPath = flag.String("query", "", "JSONPath selector applied to json output, e.g. $.accounts[0].balance")

// newClient resolves credentials from the configuration file, the flags
// and the environment, and builds a client for the selected platform.
func newClient() (*igtrade.Client, error) {
	conf, err := igtrade.LoadConfiguration(*configFile)
	if err != nil {
		return nil, err
	}
	auth, api, err := conf.Resolve(*platform)
	if err != nil {
		return nil, err
	}
	return igtrade.NewClient(auth, api), nil
}

// checkFormat validates the global -format flag before a command runs.
func checkFormat() error {
	switch *outputFormat {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected text or json", *outputFormat)
	}
}
