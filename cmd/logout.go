package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// logoutCmd implements the "logout" command.
type logoutCmd struct {
}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "close the current session" }
func (*logoutCmd) Usage() string {
	return `igt logout

  Closes the session on the platform and discards its tokens.
`
}

func (c *logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := client.Logout(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error logging out: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Logged out.")
	return subcommands.ExitSuccess
}
