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
)

const commandName = "ledger-add"

// Fields are optional at the flag level so missing values are reported as
// InvalidInputError like every other bad input.
type Params struct {
	Name     string `descr:"What the money was spent on" optional:"true"`
	Category string `descr:"Spending category (case-sensitive)" optional:"true"`
	Amount   string `descr:"Amount spent, a non-negative decimal such as 12 or 3.50" optional:"true"`
	Ledger   string `descr:"Path to the ledger file (overrides config and LEDGER_FILE)" optional:"true"`
	Config   string `descr:"Path to config file (default: ~/.ledger/config.yaml)" optional:"true"`
	Verbose  bool   `descr:"Log progress to stderr" optional:"true"`
}

func main() {
	cli.LoadEnvFile()

	boa.NewCmdT[Params](commandName).
		WithShort("Record a transaction in the ledger").
		WithLong("Appends a transaction with the given name, category and amount, stamped with the current time. The ledger file is created if it does not exist yet.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr, os.LookupEnv, time.Now()); err != nil {
				cli.Fail(commandName, err)
			}
		}).
		Run()
}

func run(params *Params, stdout, stderr io.Writer, lookup config.LookupFunc, now time.Time) error {
	record, err := ledger.BuildRecord(params.Name, params.Category, params.Amount, now)
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

	if err := env.Store.InitializeEmpty(); err != nil {
		return err
	}
	if err := env.Store.Append(record); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Recorded %s (%s) %s at %s\n",
		record.Name, record.Category, record.Amount, record.Timestamp.UTC().Format(ledger.TimestampLayout))
	return nil
}
