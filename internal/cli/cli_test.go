package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gigurra/spending-ledger/internal/config"
	"github.com/gigurra/spending-ledger/internal/ledger"
	"github.com/gigurra/spending-ledger/internal/log"
	"github.com/gigurra/spending-ledger/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSetup_Precedence(t *testing.T) {
	cfgPath := writeConfig(t, "ledger_file: from-file.json\ncurrency: EUR\n")

	env, err := Setup(CommonParams{Config: cfgPath}, noEnv, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-file.json", env.Store.Path)
	assert.Equal(t, "EUR", env.Config.Currency)

	lookup := func(key string) (string, bool) {
		if key == "LEDGER_FILE" {
			return "from-env.json", true
		}
		return "", false
	}
	env, err = Setup(CommonParams{Config: cfgPath}, lookup, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", env.Store.Path)

	env, err = Setup(CommonParams{Config: cfgPath, Ledger: "from-flag.json"}, lookup, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-flag.json", env.Store.Path)
}

func TestSetup_AtomicWritesReachStore(t *testing.T) {
	cfgPath := writeConfig(t, "atomic_writes: true\n")
	env, err := Setup(CommonParams{Config: cfgPath}, noEnv, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, env.Store.AtomicWrites)
}

func TestSetup_VerboseLogsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	_, err := Setup(CommonParams{Config: writeConfig(t, ""), Verbose: true}, noEnv, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "configuration resolved")

	stderr.Reset()
	_, err = Setup(CommonParams{Config: writeConfig(t, "")}, noEnv, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
}

func TestSetup_Errors(t *testing.T) {
	_, err := Setup(CommonParams{Config: filepath.Join(t.TempDir(), "missing.yaml")}, noEnv, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Setup(CommonParams{Config: writeConfig(t, "time_zone: Nowhere/Special\n")}, noEnv, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	badEnv := func(key string) (string, bool) {
		if key == "LEDGER_ATOMIC_WRITES" {
			return "maybe", true
		}
		return "", false
	}
	_, err = Setup(CommonParams{Config: writeConfig(t, "")}, badEnv, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPresentationOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Locale = "sv_SE.UTF-8"
	cfg.TimeZone = "UTC"
	cfg.Currency = config.AutoCurrency

	opts, err := PresentationOptions(cfg, log.Discard())
	require.NoError(t, err)
	assert.Equal(t, "SEK", opts.Currency.Code)
	assert.Equal(t, "2024-03-31 14:05:09", opts.Locale.FormatTime(time.Date(2024, 3, 31, 14, 5, 9, 0, time.UTC)))

	cfg.Currency = "GBP"
	opts, err = PresentationOptions(cfg, log.Discard())
	require.NoError(t, err)
	assert.Equal(t, "£1.00", opts.Currency.Format(100))

	cfg.Locale = "C"
	_, err = PresentationOptions(cfg, log.Discard())
	assert.Error(t, err)
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ledger.StoreReadError{Path: "l.json", Err: errors.New("boom")}, "StoreReadError"},
		{&ledger.StoreWriteError{Path: "l.json", Err: errors.New("boom")}, "StoreWriteError"},
		{&ledger.InvalidInputError{Field: "amount", Value: "x", Reason: "bad"}, "InvalidInputError"},
		{&summary.InvalidFilterError{Field: "interval", Value: "3w", Reason: "bad"}, "InvalidFilterError"},
		{fmt.Errorf("wrapped: %w", &ledger.StoreReadError{Path: "l.json", Err: errors.New("boom")}), "StoreReadError"},
		{errors.New("plain"), "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	err := &summary.InvalidFilterError{Field: "interval", Value: "3w", Reason: "unit must be d, m or n"}
	Report(&buf, "ledger-summary", err)

	assert.Equal(t,
		"InvalidFilterError: "+err.Error()+"\nledger-summary terminating prematurely\n",
		buf.String())
}
