package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/date"
	"github.com/etnz/shopsight/renderer"
	"github.com/google/subcommands"
)

type dailyCmd struct {
	file    string
	period  string
	filters filterFlags
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the profit and loss trend" }
func (*dailyCmd) Usage() string {
	return `shopsight daily [-f <file>] [-period day|week|month] [filters...]

  Displays the profit and loss per day, week or month.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", defaultDataFile, "Order CSV file")
	f.StringVar(&c.period, "period", "day", "Bucket size: day, week or month")
	c.filters.SetFlags(f)
}

func (c *dailyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := loadView(c.file, &c.filters)
	if err != nil {
		return fail(err)
	}
	switch c.period {
	case "day":
		printMarkdown(renderer.DailyMarkdown(shopsight.DailyProfit(view)))
	case "week":
		printMarkdown(renderer.PeriodicMarkdown(shopsight.PeriodicProfit(view, date.Weekly), date.Weekly))
	case "month":
		printMarkdown(renderer.PeriodicMarkdown(shopsight.PeriodicProfit(view, date.Monthly), date.Monthly))
	default:
		return fail(fmt.Errorf("invalid -period %q: must be day, week or month", c.period))
	}
	return subcommands.ExitSuccess
}
