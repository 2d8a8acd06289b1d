package ledger

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/shopspring/decimal"
)

// CentsPerUnit is the number of minor units in one currency unit.
const CentsPerUnit = 100

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrAmountTooLarge = errors.New("amount is too large")
	ErrAmountFormat   = errors.New("amount must be a non-negative decimal like 12 or 12.50")
)

// amountPattern is the accepted input grammar: digits, optionally a dot and more digits.
// No sign, no exponent, no leading or trailing dot.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// Money is an amount in minor units (cents). All arithmetic stays in integers.
type Money struct {
	Cents int64
}

// ParseAmount parses user input against the strict amount grammar and rounds
// it to the nearest cent.
func ParseAmount(s string) (Money, error) {
	if !amountPattern.MatchString(s) {
		return Money{}, ErrAmountFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrAmountFormat
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal converts a currency-unit decimal to cents, rounding half away
// from zero, which for non-negative values is round(amount * 100).
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return Money{}, ErrAmountTooLarge
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with exactly two fraction digits, e.g. "5.00".
func (m Money) String() string {
	return FormatCents(m.Cents)
}

// FormatCents renders a minor-unit count as units with exactly two fraction digits.
func FormatCents(cents int64) string {
	sign := ""
	u := uint64(cents)
	if cents < 0 {
		sign = "-"
		u = uint64(-(cents + 1)) + 1
	}
	return fmt.Sprintf("%s%d.%02d", sign, u/CentsPerUnit, u%CentsPerUnit)
}
