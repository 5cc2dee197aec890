package cmd

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/etnz/shopsight/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
	file string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the interactive dashboard" }
func (*serveCmd) Usage() string {
	return `shopsight serve [-addr <addr>] [-f <file>]

  Serves the web dashboard on the order book. Ctrl-C stops it.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address (default from SHOPSIGHT_ADDR or :8383)")
	f.StringVar(&c.file, "f", "", "Order CSV file (default from SHOPSIGHT_DATA)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := server.LoadConfig()
	if c.addr != "" {
		cfg.Addr = c.addr
	}
	if c.file != "" {
		cfg.DataFile = c.file
	}

	ds, err := loadDataset(cfg.DataFile)
	if err != nil {
		return fail(err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, ds).Run(ctx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
