package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/synth"
	"github.com/google/subcommands"
)

type generateCmd struct {
	n    int
	seed int64
	out  string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "generate a synthetic order book" }
func (*generateCmd) Usage() string {
	return `shopsight generate [-n <rows>] [-seed <seed>] [-o <file>]

  Generates a synthetic eCommerce order book and writes it as CSV.
  The same seed always produces the same file.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 100_000, "Number of orders to generate")
	f.Int64Var(&c.seed, "seed", 42, "Random seed")
	f.StringVar(&c.out, "o", defaultDataFile, "Output CSV file")
}

func (c *generateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("Generating %d synthetic orders...\n", c.n)

	g := synth.New(c.seed)
	g.Progress = func(done int) { fmt.Printf("Generated %d orders...\n", done) }
	ds := g.Generate(c.n, shopsight.DefaultFraudConfig())

	if dir := filepath.Dir(c.out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fail(err)
		}
	}
	out, err := os.Create(c.out)
	if err != nil {
		return fail(err)
	}
	defer out.Close()
	if err := shopsight.EncodeDataset(out, ds); err != nil {
		return fail(err)
	}

	s := shopsight.Summarize(ds)
	report := shopsight.EvaluateFraud(ds, shopsight.DefaultFraudConfig())
	fmt.Printf("\nData saved to %s\n", c.out)
	fmt.Printf("Total orders: %d\n", s.Orders)
	fmt.Printf("Date range: %s to %s\n", s.Span.From, s.Span.To)
	fmt.Printf("Total revenue: %s\n", s.Revenue)
	fmt.Printf("Total profit: %s\n", s.Profit)
	fmt.Printf("Unique customers: %d\n", s.Customers)
	fmt.Printf("Flagged orders: %d\n", report.Flagged)
	return subcommands.ExitSuccess
}
