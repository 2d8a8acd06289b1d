package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is how timestamps are persisted: UTC ISO 8601 with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is a single transaction entry.
type Record struct {
	Name      string
	Category  string
	Amount    Money
	Timestamp time.Time
}

// recordJSON is the persisted shape. Pointers let us tell missing fields apart
// from empty ones.
type recordJSON struct {
	Name      *string      `json:"name"`
	Category  *string      `json:"category"`
	Amount    *json.Number `json:"amount"`
	Timestamp *string      `json:"timestamp"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	amount := json.Number(r.Amount.String())
	ts := r.Timestamp.UTC().Format(TimestampLayout)
	return json.Marshal(recordJSON{
		Name:      &r.Name,
		Category:  &r.Category,
		Amount:    &amount,
		Timestamp: &ts,
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Name == nil:
		return errors.New(`missing field "name"`)
	case raw.Category == nil:
		return errors.New(`missing field "category"`)
	case raw.Amount == nil:
		return errors.New(`missing field "amount"`)
	case raw.Timestamp == nil:
		return errors.New(`missing field "timestamp"`)
	}

	d, err := decimal.NewFromString(raw.Amount.String())
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", raw.Amount.String(), err)
	}
	amount, err := MoneyFromDecimal(d)
	if err != nil {
		return fmt.Errorf("amount %s: %w", raw.Amount.String(), err)
	}

	ts, err := time.Parse(time.RFC3339Nano, *raw.Timestamp)
	if err != nil {
		return fmt.Errorf("parsing timestamp %q: %w", *raw.Timestamp, err)
	}

	*r = Record{
		Name:      *raw.Name,
		Category:  *raw.Category,
		Amount:    amount,
		Timestamp: ts,
	}
	return nil
}
