package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/igtrade/igtrade"
)

// loginCmd implements the "login" command.
type loginCmd struct {
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "verify credentials by opening a session" }
func (*loginCmd) Usage() string {
	return `igt login

  Opens a session on the platform with the configured credentials. Other
  commands log in automatically; login exists to verify a configuration.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	session, err := client.Login(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(loginMessage(session))
	return subcommands.ExitSuccess
}

// loginMessage describes a fresh session. The platform does not always
// advertise a lifetime; without one the tokens cannot be relied on past
// this response.
func loginMessage(session igtrade.Session) string {
	if !session.Valid() {
		return "Logged in, session lifetime unknown."
	}
	return fmt.Sprintf("Logged in, session valid until %s.", session.Expiry.Format("15:04:05"))
}
