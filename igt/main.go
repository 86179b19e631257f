package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/igtrade/igtrade/cmd"
)

var verbose = flag.Bool("v", false, "log every API request and response status")

func main() {
	// A .env file is a convenient place for IG_API_KEY and friends
	// during development. Ignore the error: the file is optional.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	os.Exit(int(commander.Execute(context.Background())))
}
