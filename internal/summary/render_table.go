package summary

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable writes the summary as a rounded table: one row per item,
// a subtotal row per category and the grand total in the footer.
func RenderTable(w io.Writer, res *Result, f Filter, opts Options) error {
	if res.Empty() {
		_, err := io.WriteString(w, EmptyMessage(f)+"\n")
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Category", "Name", "Amount", "Timestamp"})

	for _, acc := range res.Categories() {
		for i, item := range acc.Items {
			category := ""
			if i == 0 {
				category = acc.Category
			}
			t.AppendRow(table.Row{category, item.Name, opts.Currency.FormatMoney(item.Amount), opts.Locale.FormatTime(item.Timestamp)})
		}
		t.AppendRow(table.Row{"", text.Bold.Sprint("Subtotal"), opts.Currency.Format(acc.TotalCents), ""})
		t.AppendSeparator()
	}

	t.AppendFooter(table.Row{"", "Total", opts.Currency.Format(res.TotalCents()), ""})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}
