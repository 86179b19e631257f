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

// accountCmd is a container for account subcommands.
type accountCmd struct {
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "account information commands" }
func (*accountCmd) Usage() string {
	return `igt account <subcommand> [args]

Commands:
  get - Fetch accounts and session details.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {}
func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "account")
	commander.Register(&accountGetCmd{}, "")
	return commander.Execute(ctx, args...)
}

// accountGetCmd implements the "account get" command.
type accountGetCmd struct {
}

func (*accountGetCmd) Name() string     { return "get" }
func (*accountGetCmd) Synopsis() string { return "fetch accounts and session details" }
func (*accountGetCmd) Usage() string {
	return `igt account get

  Fetches every trading account of the authenticated client, with
  balances, and the details of the current session.
`
}

func (c *accountGetCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountGetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	accounts, err := client.Accounts(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	session, err := client.SessionDetails(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching session details: %v\n", err)
		return subcommands.ExitFailure
	}

	result := struct {
		Accounts []igtrade.Account       `json:"accounts"`
		Session  *igtrade.SessionDetails `json:"session"`
	}{accounts, session}
	return emit(result, renderer.AccountsMarkdown(accounts, session))
}
