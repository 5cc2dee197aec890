package cmd

import (
	"context"
	"flag"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	file    string
	filters filterFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the headline sales metrics" }
func (*summaryCmd) Usage() string {
	return `shopsight summary [-f <file>] [filters...]

  Displays revenue, profit, margin and order counts for the (filtered)
  order book.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", defaultDataFile, "Order CSV file")
	c.filters.SetFlags(f)
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := loadView(c.file, &c.filters)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SummaryMarkdown(shopsight.Summarize(view)))
	return subcommands.ExitSuccess
}
