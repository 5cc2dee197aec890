// Package cmd implements the CLI application around the order book.
package cmd

import (
	"fmt"
	"os"

	"github.com/etnz/shopsight"
	"github.com/google/subcommands"
)

// Commands lists the subcommands for registration by the main package.
var Commands = []subcommands.Command{
	&generateCmd{},
	&serveCmd{},
	&summaryCmd{},
	&dailyCmd{},
	&topCmd{},
	&fraudCmd{},
	&exportCmd{},
	&assistCmd{},
	&topicCmd{},
}

// defaultDataFile is where `generate` writes and where the reporting
// verbs read when -f is not given.
const defaultDataFile = "generated_data/orders.csv"

// loadDataset reads an order book, printing row-level warnings to
// stderr. Schema errors and unreadable files are returned.
func loadDataset(path string) (*shopsight.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open order file %q: %w", path, err)
	}
	defer f.Close()

	ds, rowErrs, err := shopsight.DecodeDataset(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load order file %q: %w", path, err)
	}
	if len(rowErrs) > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d malformed rows excluded from %s\n", len(rowErrs), path)
		for i, re := range rowErrs {
			if i == 5 {
				fmt.Fprintf(os.Stderr, "  ... and %d more\n", len(rowErrs)-5)
				break
			}
			fmt.Fprintf(os.Stderr, "  %v\n", re)
		}
	}
	return ds, nil
}

// fail prints the error and returns the failure status, the common exit
// of every verb.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
