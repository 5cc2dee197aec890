package cmd

import (
	"context"
	"flag"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/renderer"
	"github.com/google/subcommands"
)

type fraudCmd struct {
	file    string
	filters filterFlags
}

func (*fraudCmd) Name() string     { return "fraud" }
func (*fraudCmd) Synopsis() string { return "run the fraud rules over the order book" }
func (*fraudCmd) Usage() string {
	return `shopsight fraud [-f <file>] [filters...]

  Flags suspicious orders with reason codes and shows flag counts per
  rule and the revenue at risk.
`
}

func (c *fraudCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", defaultDataFile, "Order CSV file")
	c.filters.SetFlags(f)
}

func (c *fraudCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := loadView(c.file, &c.filters)
	if err != nil {
		return fail(err)
	}
	report := shopsight.EvaluateFraud(view, shopsight.DefaultFraudConfig())
	printMarkdown(renderer.FraudMarkdown(view, report))
	return subcommands.ExitSuccess
}
