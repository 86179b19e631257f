package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/igtrade/igtrade"
	"github.com/igtrade/igtrade/renderer"
)

// instrumentCmd is a container for instrument subcommands.
type instrumentCmd struct {
}

func (*instrumentCmd) Name() string     { return "instrument" }
func (*instrumentCmd) Synopsis() string { return "instrument search and details commands" }
func (*instrumentCmd) Usage() string {
	return `igt instrument <subcommand> [args]

Commands:
  search - Search instruments by name, ISIN or epic fragment.
  get    - Fetch the details of one instrument, optionally with prices.
`
}

func (c *instrumentCmd) SetFlags(f *flag.FlagSet) {}
func (c *instrumentCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "instrument")
	commander.Register(&instrumentSearchCmd{}, "")
	commander.Register(&instrumentGetCmd{}, "")
	return commander.Execute(ctx, args...)
}

// instrumentSearchCmd implements the "instrument search" command.
type instrumentSearchCmd struct {
}

func (*instrumentSearchCmd) Name() string     { return "search" }
func (*instrumentSearchCmd) Synopsis() string { return "search instruments by term" }
func (*instrumentSearchCmd) Usage() string {
	return `igt instrument search <search term>

  Searches the platform's markets for instruments matching the term.
`
}

func (c *instrumentSearchCmd) SetFlags(f *flag.FlagSet) {}

func (c *instrumentSearchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required.")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	markets, err := client.SearchMarkets(ctx, term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching instruments: %v\n", err)
		return subcommands.ExitFailure
	}

	result := struct {
		Markets []igtrade.Market `json:"markets"`
	}{markets}
	return emit(result, renderer.SearchMarkdown(term, markets))
}

// instrumentGetCmd implements the "instrument get" command.
type instrumentGetCmd struct {
	prices     bool
	from       string
	to         string
	max        int
	resolution string
}

func (*instrumentGetCmd) Name() string     { return "get" }
func (*instrumentGetCmd) Synopsis() string { return "fetch instrument details, optionally with prices" }
func (*instrumentGetCmd) Usage() string {
	return `igt instrument get <epic> [-p] [-from <time> -to <time>] [-m <max>] [-n <resolution>]

  Fetches the full details of the instrument identified by the epic. With
  -p, also fetches historical prices: either the -from/-to range or the
  -m most recent candles, at the -n resolution.

  Times are written as 2006-01-02T15:04:05. Resolutions: ` + resolutionNames() + `.
`
}

func resolutionNames() string {
	var names []string
	for _, r := range igtrade.Resolutions() {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func (c *instrumentGetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.prices, "p", false, "Also fetch historical prices")
	f.StringVar(&c.from, "from", "", "Start of the price range, e.g. 2021-02-01T00:00:00")
	f.StringVar(&c.to, "to", "", "End of the price range")
	f.IntVar(&c.max, "m", 0, "Number of most recent candles, ignored when a range is given")
	f.StringVar(&c.resolution, "n", "", "Candle resolution, e.g. DAY")
}

func (c *instrumentGetCmd) priceQuery() (igtrade.PriceQuery, error) {
	q := igtrade.PriceQuery{
		Resolution: igtrade.Resolution(c.resolution),
		Max:        c.max,
	}
	const layout = "2006-01-02T15:04:05"
	if c.from != "" {
		from, err := time.Parse(layout, c.from)
		if err != nil {
			return q, fmt.Errorf("invalid -from %q: %w", c.from, err)
		}
		q.From = from
	}
	if c.to != "" {
		to, err := time.Parse(layout, c.to)
		if err != nil {
			return q, fmt.Errorf("invalid -to %q: %w", c.to, err)
		}
		q.To = to
	}
	return q, nil
}

func (c *instrumentGetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one epic is required.")
		return subcommands.ExitUsageError
	}
	epic := f.Arg(0)

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	details, err := client.Market(ctx, epic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching instrument: %v\n", err)
		return subcommands.ExitFailure
	}

	var history *igtrade.PriceHistory
	if c.prices {
		q, err := c.priceQuery()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		history, err = client.Prices(ctx, epic, q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	result := struct {
		Instrument *igtrade.MarketDetails `json:"instrument"`
		Prices     *igtrade.PriceHistory  `json:"prices,omitempty"`
	}{details, history}
	return emit(result, renderer.InstrumentMarkdown(details, history))
}
