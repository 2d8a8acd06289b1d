package summary

import (
	"encoding/json"
	"io"

	"github.com/gigurra/spending-ledger/internal/ledger"
)

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Categories []JSONCategory `json:"categories"`
	Summary    JSONSummary    `json:"summary"`
}

// JSONCategory is one category section. Amounts are decimal strings so no
// precision is lost on the way out.
type JSONCategory struct {
	Category string     `json:"category"`
	Total    string     `json:"total"`
	Items    []JSONItem `json:"items"`
}

// JSONItem is the JSON output format for a single record
type JSONItem struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count    int      `json:"count"`
	Total    string   `json:"total"`
	Currency string   `json:"currency"`
	Filters  []string `json:"filters,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// BuildJSONOutput converts a result into its JSON shape
func BuildJSONOutput(res *Result, f Filter, opts Options) JSONOutput {
	categories := []JSONCategory{}
	for _, acc := range res.Categories() {
		items := make([]JSONItem, 0, len(acc.Items))
		for _, item := range acc.Items {
			items = append(items, JSONItem{
				Name:      item.Name,
				Category:  item.Category,
				Amount:    item.Amount.String(),
				Timestamp: item.Timestamp.UTC().Format(ledger.TimestampLayout),
			})
		}
		categories = append(categories, JSONCategory{
			Category: acc.Category,
			Total:    ledger.FormatCents(acc.TotalCents),
			Items:    items,
		})
	}

	summary := JSONSummary{
		Count:    res.Count(),
		Total:    ledger.FormatCents(res.TotalCents()),
		Currency: opts.Currency.Code,
		Filters:  f.Description(),
	}
	if res.Empty() {
		summary.Message = EmptyMessage(f)
	}

	return JSONOutput{Categories: categories, Summary: summary}
}

// RenderJSON writes the summary as indented JSON
func RenderJSON(w io.Writer, res *Result, f Filter, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONOutput(res, f, opts))
}
