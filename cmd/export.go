package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/shopsight/server"
	"github.com/google/subcommands"
)

type exportCmd struct {
	file    string
	out     string
	filters filterFlags
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the order book as a spreadsheet" }
func (*exportCmd) Usage() string {
	return `shopsight export [-f <file>] [-o <out.xlsx>] [filters...]

  Writes the (filtered) order book as an XLSX workbook.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", defaultDataFile, "Order CSV file")
	f.StringVar(&c.out, "o", "orders.xlsx", "Output XLSX file")
	c.filters.SetFlags(f)
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := loadView(c.file, &c.filters)
	if err != nil {
		return fail(err)
	}
	wb, err := server.ExportXLSX(view)
	if err != nil {
		return fail(err)
	}
	if err := wb.SaveAs(c.out); err != nil {
		return fail(err)
	}
	fmt.Printf("Exported %d orders to %s\n", view.Len(), c.out)
	return subcommands.ExitSuccess
}
