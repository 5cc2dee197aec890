package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/renderer"
	"github.com/google/subcommands"
)

type topCmd struct {
	file    string
	by      string
	k       int
	filters filterFlags
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "display the best sellers" }
func (*topCmd) Usage() string {
	return `shopsight top [-f <file>] [-by products|categories|customers] [-k n] [filters...]

  Displays the top products (default), categories or customers.
`
}

func (c *topCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", defaultDataFile, "Order CSV file")
	f.StringVar(&c.by, "by", "products", "Ranking: products, categories or customers")
	f.IntVar(&c.k, "k", shopsight.DefaultTopK, "Number of rows")
	c.filters.SetFlags(f)
}

func (c *topCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, err := loadView(c.file, &c.filters)
	if err != nil {
		return fail(err)
	}
	switch c.by {
	case "products":
		printMarkdown(renderer.TopProductsMarkdown(shopsight.TopProducts(view, c.k)))
	case "categories":
		printMarkdown(renderer.TopCategoriesMarkdown(shopsight.TopCategories(view, c.k)))
	case "customers":
		printMarkdown(renderer.CustomersMarkdown(shopsight.TopCustomers(view, c.k)))
	default:
		return fail(fmt.Errorf("invalid -by %q: must be products, categories or customers", c.by))
	}
	return subcommands.ExitSuccess
}
