package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/igtrade/igtrade"
)

// positionCmd is a container for single position dealing subcommands.
type positionCmd struct {
}

func (*positionCmd) Name() string     { return "position" }
func (*positionCmd) Synopsis() string { return "open or close a position" }
func (*positionCmd) Usage() string {
	return `igt position <subcommand> [args]

Commands:
  open  - Open an over-the-counter position.
  close - Close (part of) an open position.
`
}

func (c *positionCmd) SetFlags(f *flag.FlagSet) {}
func (c *positionCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "position")
	commander.Register(&positionOpenCmd{}, "")
	commander.Register(&positionCloseCmd{}, "")
	return commander.Execute(ctx, args...)
}

// parseLevel parses an optional price level flag.
func parseLevel(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	level, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s %q: %w", name, value, err)
	}
	return &level, nil
}

// positionOpenCmd implements the "position open" command.
type positionOpenCmd struct {
	epic      string
	direction string
	size      string
	currency  string
	orderType string
	level     string
	stop      string
	limit     string
	expiry    string
}

func (*positionOpenCmd) Name() string     { return "open" }
func (*positionOpenCmd) Synopsis() string { return "open an over-the-counter position" }
func (*positionOpenCmd) Usage() string {
	return `igt position open -epic <epic> -direction BUY|SELL -size <size> -currency <code> [-type MARKET|LIMIT] [-level <price>] [-stop <price>] [-limit <price>]

  Opens a position and prints the deal reference assigned by the platform.
`
}

func (c *positionOpenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.epic, "epic", "", "Instrument epic to deal, e.g. IX.D.FTSE.DAILY.IP")
	f.StringVar(&c.direction, "direction", "", "Deal direction: BUY or SELL")
	f.StringVar(&c.size, "size", "", "Deal size")
	f.StringVar(&c.currency, "currency", "", "Currency code of the deal, e.g. GBP")
	f.StringVar(&c.orderType, "type", string(igtrade.MarketOrder), "Order type: MARKET or LIMIT")
	f.StringVar(&c.level, "level", "", "Level for LIMIT orders")
	f.StringVar(&c.stop, "stop", "", "Stop level")
	f.StringVar(&c.limit, "limit", "", "Limit level")
	f.StringVar(&c.expiry, "expiry", "-", "Instrument expiry, or - for non expiring instruments")
}

func (c *positionOpenCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	size, err := decimal.NewFromString(c.size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -size %q: %v\n", c.size, err)
		return subcommands.ExitUsageError
	}
	level, err := parseLevel("level", c.level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	stop, err := parseLevel("stop", c.stop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	limit, err := parseLevel("limit", c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	order := igtrade.OrderRequest{
		Epic:         c.epic,
		Expiry:       c.expiry,
		Direction:    igtrade.Direction(c.direction),
		Size:         size,
		OrderType:    igtrade.OrderType(c.orderType),
		Level:        level,
		CurrencyCode: c.currency,
		StopLevel:    stop,
		LimitLevel:   limit,
	}
	reference, err := client.CreatePosition(ctx, order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening position: %v\n", err)
		return subcommands.ExitFailure
	}

	result := struct {
		DealReference string `json:"dealReference"`
	}{reference}
	return emit(result, fmt.Sprintf("Position opened, deal reference `%s`.\n", reference))
}

// positionCloseCmd implements the "position close" command.
type positionCloseCmd struct {
	dealID    string
	direction string
	size      string
	orderType string
	level     string
}

func (*positionCloseCmd) Name() string     { return "close" }
func (*positionCloseCmd) Synopsis() string { return "close (part of) an open position" }
func (*positionCloseCmd) Usage() string {
	return `igt position close -deal <dealId> -direction BUY|SELL -size <size> [-type MARKET|LIMIT] [-level <price>]

  Closes an open position. The direction is the closing deal's: SELL to
  close a long position, BUY to close a short one. A size smaller than
  the position's closes it partially.
`
}

func (c *positionCloseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dealID, "deal", "", "Deal ID of the position to close")
	f.StringVar(&c.direction, "direction", "", "Closing deal direction: BUY or SELL")
	f.StringVar(&c.size, "size", "", "Size to close")
	f.StringVar(&c.orderType, "type", string(igtrade.MarketOrder), "Order type: MARKET or LIMIT")
	f.StringVar(&c.level, "level", "", "Level for LIMIT orders")
}

func (c *positionCloseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	size, err := decimal.NewFromString(c.size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -size %q: %v\n", c.size, err)
		return subcommands.ExitUsageError
	}
	level, err := parseLevel("level", c.level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	reference, err := client.ClosePosition(ctx, igtrade.CloseRequest{
		DealID:    c.dealID,
		Direction: igtrade.Direction(c.direction),
		Size:      size,
		OrderType: igtrade.OrderType(c.orderType),
		Level:     level,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error closing position: %v\n", err)
		return subcommands.ExitFailure
	}

	result := struct {
		DealReference string `json:"dealReference"`
	}{reference}
	return emit(result, fmt.Sprintf("Position closed, deal reference `%s`.\n", reference))
}
