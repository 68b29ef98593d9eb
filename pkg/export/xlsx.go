package export

import (
	"context"
	"fmt"

	"github.com/chris/money-movements/pkg/movements"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SheetSummary      = "Summary"
	SheetTransactions = "Transactions"
	SheetPending      = "Pending Payments"
)

// XLSXExporter renders reports as an Excel workbook.
type XLSXExporter struct{}

var _ Exporter = (*XLSXExporter)(nil)

func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (XLSXExporter) FileName() string { return "financial_summary.xlsx" }

// Export builds the workbook. The Transactions and Pending Payments sheets are only
// present when the report carries those sections.
func (XLSXExporter) Export(ctx context.Context, r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	rows := [][]interface{}{
		{r.Title},
		{"Generated on", r.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Concept", "Amount"},
	}
	for _, row := range summaryRows(r.Summary) {
		rows = append(rows, []interface{}{row.label, row.value.InexactFloat64()})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Monthly data"}, []interface{}{"Month", "Income", "Expenses"})
	for i, label := range movements.MonthLabels {
		rows = append(rows, []interface{}{label, r.Monthly.Income[i].InexactFloat64(), r.Monthly.Expense[i].InexactFloat64()})
	}
	if err := writeRows(f, SheetSummary, rows, bold, 1, 4, 10); err != nil {
		return nil, err
	}

	if r.Transactions != nil {
		rows = [][]interface{}{{"Date", "Description", "Category", "Type", "Amount"}}
		for _, m := range r.Transactions {
			rows = append(rows, []interface{}{r.date(m.Date), m.Description, m.Category, string(m.Type), m.Amount.InexactFloat64()})
		}
		if err := addSheet(f, SheetTransactions, rows, bold); err != nil {
			return nil, err
		}
	}

	if r.Pending != nil {
		rows = [][]interface{}{{"Due date", "Description", "Category", "Amount", "Status"}}
		for _, m := range r.Pending {
			rows = append(rows, []interface{}{r.date(m.EffectiveDueDate()), m.Description, m.Category, m.Amount.InexactFloat64(), string(m.Status)})
		}
		if err := addSheet(f, SheetPending, rows, bold); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}, bold int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", name, err)
	}
	return writeRows(f, name, rows, bold, 1)
}

// writeRows writes rows from A1 down and bolds the given 1-based header rows.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, bold int, headers ...int) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	for _, h := range headers {
		if h > len(rows) {
			continue
		}
		start, _ := excelize.CoordinatesToCellName(1, h)
		end, _ := excelize.CoordinatesToCellName(5, h)
		if err := f.SetCellStyle(sheet, start, end, bold); err != nil {
			return fmt.Errorf("failed to style %s: %w", sheet, err)
		}
	}
	return f.SetColWidth(sheet, "A", "E", 18)
}
