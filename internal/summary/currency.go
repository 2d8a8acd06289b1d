package summary

import (
	"strings"

	"github.com/gigurra/spending-ledger/internal/ledger"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is used when nothing is configured or detected.
const DefaultCurrency = "USD"

// Currency is the display currency. Amounts are never converted, only labelled.
type Currency struct {
	Code   string // "USD", "EUR", "SEK"
	symbol string
	prefix bool
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// prefixCurrencies place the symbol before the amount.
// golang.org/x/text/currency doesn't expose CLDR symbol placement, so this is kept by hand.
var prefixCurrencies = map[string]bool{
	"USD": true, "GBP": true, "JPY": true, "CAD": true, "AUD": true,
	"MXN": true, "HKD": true, "SGD": true, "NZD": true, "ZAR": true,
}

// GetCurrency returns the Currency for an ISO code. Unknown codes use the code as symbol.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	c := Currency{Code: code, prefix: prefixCurrencies[code]}
	if sym, ok := symbolOverrides[code]; ok {
		c.symbol = sym
		return c
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		c.symbol = code
		return c
	}
	c.symbol = message.NewPrinter(language.English).Sprint(currency.NarrowSymbol(unit))
	return c
}

// IsKnownCurrency reports whether code is a valid ISO 4217 code.
func IsKnownCurrency(code string) bool {
	_, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	return err == nil
}

// CurrencyForLocale picks the currency of the locale's region, e.g. sv-SE -> SEK.
func CurrencyForLocale(tag language.Tag) (string, bool) {
	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", false
	}
	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", false
	}
	return unit.String(), true
}

// Symbol returns the display symbol, e.g. "$" or "kr".
func (c Currency) Symbol() string {
	return c.symbol
}

// Format renders a minor-unit amount with exactly two fraction digits and the symbol.
func (c Currency) Format(cents int64) string {
	amount := ledger.FormatCents(cents)
	if c.prefix {
		return c.symbol + amount
	}
	return amount + " " + c.symbol
}

// FormatMoney is Format for a ledger amount.
func (c Currency) FormatMoney(m ledger.Money) string {
	return c.Format(m.Cents)
}
