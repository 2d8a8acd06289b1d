// Package cli holds the setup shared by the ledger commands: config resolution,
// logging, the ledger store and the error report printed on failure.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gigurra/spending-ledger/internal/config"
	"github.com/gigurra/spending-ledger/internal/ledger"
	"github.com/gigurra/spending-ledger/internal/log"
	"github.com/gigurra/spending-ledger/internal/summary"
	"github.com/joho/godotenv"
)

// CommonParams are the flags every ledger command accepts.
type CommonParams struct {
	Ledger  string
	Config  string
	Verbose bool
}

// Env bundles what a command needs once its settings are resolved.
type Env struct {
	Config *config.Config
	Logger *log.Logger
	Store  *ledger.FileStore
}

// LoadEnvFile loads a .env file from the working directory when there is one.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Setup resolves config with precedence flags > environment > file > defaults,
// validates it, and opens the ledger store. Log output goes to stderr.
func Setup(p CommonParams, lookup config.LookupFunc, stderr io.Writer) (*Env, error) {
	cfg, err := config.Resolve(p.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if p.Ledger != "" {
		cfg.LedgerFile = p.Ledger
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:     log.LevelFor(p.Verbose),
		Component: "ledger",
		Output:    stderr,
	})
	logger.Debug("configuration resolved",
		"ledger", cfg.LedgerFile,
		"currency", cfg.Currency,
		"locale", cfg.Locale,
		"atomic_writes", cfg.AtomicWrites)

	store := ledger.NewFileStore(cfg.LedgerFile, logger)
	store.AtomicWrites = cfg.AtomicWrites

	return &Env{Config: cfg, Logger: logger, Store: store}, nil
}

// PresentationOptions picks the locale and currency used to display a summary.
func PresentationOptions(cfg *config.Config, logger *log.Logger) (summary.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return summary.Options{}, err
	}

	tag := summary.DetectLocale()
	if cfg.Locale != "" {
		tag, err = summary.ParseLocale(cfg.Locale)
		if err != nil {
			return summary.Options{}, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
	}

	code := cfg.Currency
	switch code {
	case "":
		code = summary.DefaultCurrency
	case config.AutoCurrency:
		if c, ok := summary.CurrencyForLocale(tag); ok {
			code = c
		} else {
			code = summary.DefaultCurrency
		}
	}
	if !summary.IsKnownCurrency(code) {
		logger.Warn("unknown currency, amounts are labelled with the code", "currency", code)
	}

	return summary.Options{
		Currency: summary.GetCurrency(code),
		Locale:   summary.NewLocale(tag, loc),
	}, nil
}

// ErrorKind names the category of a failure for the error report.
func ErrorKind(err error) string {
	var readErr *ledger.StoreReadError
	var writeErr *ledger.StoreWriteError
	var inputErr *ledger.InvalidInputError
	var filterErr *summary.InvalidFilterError

	switch {
	case errors.As(err, &readErr):
		return "StoreReadError"
	case errors.As(err, &writeErr):
		return "StoreWriteError"
	case errors.As(err, &inputErr):
		return "InvalidInputError"
	case errors.As(err, &filterErr):
		return "InvalidFilterError"
	default:
		return "Error"
	}
}

// Report writes the failure report for a command: the error kind and message,
// then a line saying the command stopped early.
func Report(w io.Writer, command string, err error) {
	fmt.Fprintf(w, "%s: %s\n", ErrorKind(err), err)
	fmt.Fprintf(w, "%s terminating prematurely\n", command)
}

// Fail reports err on stdout and exits with status 1.
func Fail(command string, err error) {
	Report(os.Stdout, command, err)
	os.Exit(1)
}
