package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/spending-ledger/internal/cli"
	"github.com/gigurra/spending-ledger/internal/config"
	"github.com/gigurra/spending-ledger/internal/ledger"
	"github.com/gigurra/spending-ledger/internal/summary"
)

const commandName = "ledger-summary"

type Params struct {
	Category string `descr:"Only include transactions in this category (case-sensitive)" optional:"true"`
	Interval string `descr:"Only include transactions from the last N days (d), months (m) or years (n), e.g. 30d" optional:"true"`
	Output   string `descr:"Output format" alts:"text,table,json" strict:"true" default:"text"`
	Export   string `descr:"Also write the summary to this xlsx file" optional:"true"`
	Ledger   string `descr:"Path to the ledger file (overrides config and LEDGER_FILE)" optional:"true"`
	Config   string `descr:"Path to config file (default: ~/.ledger/config.yaml)" optional:"true"`
	Verbose  bool   `descr:"Log progress to stderr" optional:"true"`
}

func main() {
	cli.LoadEnvFile()

	boa.NewCmdT[Params](commandName).
		WithShort("Summarize spending per category").
		WithLong("Reads the ledger, keeps the transactions matching the optional category and interval filters, and prints each category's total followed by its transactions.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr, os.LookupEnv, time.Now()); err != nil {
				cli.Fail(commandName, err)
			}
		}).
		Run()
}

func run(params *Params, stdout, stderr io.Writer, lookup config.LookupFunc, now time.Time) error {
	// Filters are checked before the ledger is touched
	filter, err := summary.NewFilter(params.Category, params.Interval, now)
	if err != nil {
		return err
	}

	output := params.Output
	if output == "" {
		output = "text"
	}
	renderer, err := summary.GetRenderer(output)
	if err != nil {
		return err
	}

	env, err := cli.Setup(cli.CommonParams{
		Ledger:  params.Ledger,
		Config:  params.Config,
		Verbose: params.Verbose,
	}, lookup, stderr)
	if err != nil {
		return err
	}
	opts, err := cli.PresentationOptions(env.Config, env.Logger)
	if err != nil {
		return err
	}

	agg := summary.NewAggregator(filter)
	err = env.Store.Scan(func(r ledger.Record) error {
		agg.Add(r)
		return nil
	})
	if err != nil {
		return err
	}
	res := agg.Result()
	env.Logger.Debug("aggregated ledger",
		"scanned", agg.Scanned(),
		"matched", res.Count(),
		"categories", len(res.Categories()),
		"filters", filter.Description())

	if err := renderer.Render(stdout, res, filter, opts); err != nil {
		return fmt.Errorf("writing %s report: %w", output, err)
	}

	if params.Export != "" {
		if err := summary.ExportXLSX(params.Export, res, filter, opts); err != nil {
			return err
		}
		env.Logger.Info("exported summary", "path", params.Export)
	}
	return nil
}
