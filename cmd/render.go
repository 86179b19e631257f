package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// printMarkdown renders a markdown report for the terminal. When the
// renderer cannot be built (no TTY, unknown terminal) the raw markdown is
// still readable, so it is printed as is.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// renderJSON marshals v with indentation, applying the JSONPath selector
// first when one is given.
func renderJSON(v any, query string) (string, error) {
	if query != "" {
		// jsonpath evaluates against generic maps and slices, so round
		// trip the typed value through encoding/json first.
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return "", err
		}
		v, err = jsonpath.Get(query, generic)
		if err != nil {
			return "", fmt.Errorf("query %q: %w", query, err)
		}
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func printJSON(v any) error {
	out, err := renderJSON(v, *queryPath)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// emit writes a command result in the selected global format: v as JSON,
// or the markdown report as rendered text.
func emit(v any, markdown string) subcommands.ExitStatus {
	if err := checkFormat(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if *outputFormat == "json" {
		if err := printJSON(v); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering json: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(markdown)
	return subcommands.ExitSuccess
}
