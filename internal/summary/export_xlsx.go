package summary

import (
	"fmt"

	"github.com/gigurra/spending-ledger/internal/ledger"
	"github.com/xuri/excelize/v2"
)

const (
	itemsSheet  = "Transactions"
	totalsSheet = "Totals"

	// builtin number format 2 is "0.00"
	twoDecimalNumFmt = 2
)

// ExportXLSX writes the summary to an Excel workbook with a per-item sheet and
// a per-category totals sheet. Amounts are numeric cells shown with two decimals.
func ExportXLSX(path string, res *Result, f Filter, opts Options) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := wb.NewSheet(totalsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	amountStyle, err := wb.NewStyle(&excelize.Style{NumFmt: twoDecimalNumFmt})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	headerStyle, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeRow(wb, itemsSheet, 1, []any{"Category", "Name", "Amount", "Timestamp"}); err != nil {
		return err
	}
	if err := writeRow(wb, totalsSheet, 1, []any{"Category", "Items", "Total"}); err != nil {
		return err
	}

	if res.Empty() {
		if err := writeRow(wb, itemsSheet, 2, []any{EmptyMessage(f)}); err != nil {
			return err
		}
	}

	row := 2
	for i, acc := range res.Categories() {
		for _, item := range acc.Items {
			values := []any{acc.Category, item.Name, unitsFloat(item.Amount.Cents), opts.Locale.FormatTime(item.Timestamp)}
			if err := writeRow(wb, itemsSheet, row, values); err != nil {
				return err
			}
			row++
		}
		total := []any{acc.Category, len(acc.Items), unitsFloat(acc.TotalCents)}
		if err := writeRow(wb, totalsSheet, i+2, total); err != nil {
			return err
		}
	}
	grandRow := len(res.Categories()) + 2
	if err := writeRow(wb, totalsSheet, grandRow, []any{"Total", res.Count(), unitsFloat(res.TotalCents())}); err != nil {
		return err
	}

	styles := []styleRange{
		{itemsSheet, "A1", "D1", headerStyle},
		{totalsSheet, "A1", "C1", headerStyle},
		{totalsSheet, "C2", fmt.Sprintf("C%d", grandRow), amountStyle},
	}
	if row > 2 {
		styles = append(styles, styleRange{itemsSheet, "C2", fmt.Sprintf("C%d", row-1), amountStyle})
	}
	for _, s := range styles {
		if err := wb.SetCellStyle(s.sheet, s.hCell, s.vCell, s.style); err != nil {
			return fmt.Errorf("styling %s!%s:%s: %w", s.sheet, s.hCell, s.vCell, err)
		}
	}

	if err := wb.SetColWidth(itemsSheet, "A", "B", 20); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := wb.SetColWidth(itemsSheet, "D", "D", 24); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

type styleRange struct {
	sheet        string
	hCell, vCell string
	style        int
}

// unitsFloat is for spreadsheet cells only; totals are computed in cents beforehand.
func unitsFloat(cents int64) float64 {
	return ledger.Money{Cents: cents}.Decimal().InexactFloat64()
}

func writeRow(wb *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell for row %d: %w", row, err)
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
