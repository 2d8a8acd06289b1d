package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultLedgerFile is the ledger used when nothing else is configured.
const DefaultLedgerFile = "GeneralLedger.json"

// AutoCurrency picks the display currency from the locale's region.
const AutoCurrency = "auto"

// Config holds ledger settings. Precedence: CLI flags > environment > config file > defaults.
type Config struct {
	// LedgerFile is the path of the JSON ledger document
	LedgerFile string `yaml:"ledger_file,omitempty"`

	// Currency is the ISO code used to label amounts, or "auto"
	Currency string `yaml:"currency,omitempty"`

	// Locale controls timestamp layout (e.g. "en-US", "sv_SE.UTF-8"). Empty = detect from the system.
	Locale string `yaml:"locale,omitempty"`

	// TimeZone is an IANA zone name for displayed timestamps. Empty = local time.
	TimeZone string `yaml:"time_zone,omitempty"`

	// AtomicWrites replaces the ledger via temp file + rename instead of rewriting it in place
	AtomicWrites bool `yaml:"atomic_writes,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LedgerFile: DefaultLedgerFile,
		Currency:   "USD",
	}
}

// DefaultConfigPath returns the default config file path (~/.ledger/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ledger", "config.yaml")
}

// LoadConfig reads a yaml config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	// An explicit empty value in the file means "use the default"
	if cfg.LedgerFile == "" {
		cfg.LedgerFile = DefaultLedgerFile
	}
	return cfg, nil
}

// Resolve loads the explicit config file if given. Otherwise the default path is
// used when present, and the built-in defaults when it is not.
func Resolve(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadConfig(explicitPath)
	}

	path := DefaultConfigPath()
	if path == "" {
		return Default(), nil
	}
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides settings from LEDGER_* environment variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup("LEDGER_FILE"); ok && v != "" {
		c.LedgerFile = v
	}
	if v, ok := lookup("LEDGER_CURRENCY"); ok && v != "" {
		c.Currency = v
	}
	if v, ok := lookup("LEDGER_LOCALE"); ok && v != "" {
		c.Locale = v
	}
	if v, ok := lookup("LEDGER_TZ"); ok && v != "" {
		c.TimeZone = v
	}
	if v, ok := lookup("LEDGER_ATOMIC_WRITES"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LEDGER_ATOMIC_WRITES %q: %w", v, err)
		}
		c.AtomicWrites = b
	}
	return nil
}

// Location resolves TimeZone, defaulting to local time.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Validate checks the settings and reports every problem at once.
// Currency and locale values are checked where they are interpreted.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.LedgerFile) == "" {
		problems = append(problems, "ledger file must not be empty")
	}
	if c.Currency != "" && c.Currency != AutoCurrency && len(c.Currency) != 3 {
		problems = append(problems, fmt.Sprintf("invalid currency %q: must be a 3-letter ISO code or %q", c.Currency, AutoCurrency))
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
