package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/igtrade/igtrade"
	"github.com/igtrade/igtrade/renderer"
)

// positionsCmd is a container for positions subcommands.
type positionsCmd struct {
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "open positions commands" }
func (*positionsCmd) Usage() string {
	return `igt positions <subcommand> [args]

Commands:
  get - List the open positions of the account.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {}
func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "positions")
	commander.Register(&positionsGetCmd{}, "")
	return commander.Execute(ctx, args...)
}

// positionsGetCmd implements the "positions get" command.
type positionsGetCmd struct {
}

func (*positionsGetCmd) Name() string     { return "get" }
func (*positionsGetCmd) Synopsis() string { return "list the open positions" }
func (*positionsGetCmd) Usage() string {
	return `igt positions get

  Lists every open position with its market snapshot.
`
}

func (c *positionsGetCmd) SetFlags(f *flag.FlagSet) {}

func (c *positionsGetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	positions, err := client.Positions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching positions: %v\n", err)
		return subcommands.ExitFailure
	}

	result := struct {
		Positions []igtrade.OpenPosition `json:"positions"`
	}{positions}
	return emit(result, renderer.PositionsMarkdown(positions))
}
