package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/igtrade/igtrade/renderer"
)

// sessionCmd is a container for session subcommands.
type sessionCmd struct {
}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "session information commands" }
func (*sessionCmd) Usage() string {
	return `igt session <subcommand> [args]

Commands:
  get - Fetch the details of the current API session.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {}
func (c *sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "session")
	commander.Register(&sessionGetCmd{}, "")
	return commander.Execute(ctx, args...)
}

// sessionGetCmd implements the "session get" command.
type sessionGetCmd struct {
}

func (*sessionGetCmd) Name() string     { return "get" }
func (*sessionGetCmd) Synopsis() string { return "fetch the current session details" }
func (*sessionGetCmd) Usage() string {
	return `igt session get

  Fetches the client, account and locale details of the current session.
`
}

func (c *sessionGetCmd) SetFlags(f *flag.FlagSet) {}

func (c *sessionGetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	details, err := client.SessionDetails(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching session details: %v\n", err)
		return subcommands.ExitFailure
	}
	return emit(details, renderer.SessionMarkdown(details))
}
