package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/chris/money-movements/pkg/movements"
)

// CSVExporter renders the summary and monthly series as CSV.
type CSVExporter struct{}

var _ Exporter = (*CSVExporter)(nil)

func (CSVExporter) ContentType() string { return "text/csv" }
func (CSVExporter) FileName() string    { return "financial_summary.csv" }

// csvWidth is the widest section; every record is padded to it so the file
// stays rectangular.
const csvWidth = 3

// Export implements Exporter.
func (CSVExporter) Export(ctx context.Context, r Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{csvRow(r.Title), csvRow(), csvRow("Concept", "Amount")}
	for _, row := range summaryRows(r.Summary) {
		records = append(records, csvRow(row.label, row.value.StringFixed(2)))
	}
	records = append(records, csvRow(), csvRow("Monthly data"), csvRow(), csvRow("Month", "Income", "Expenses"))
	for i, label := range movements.MonthLabels {
		records = append(records, csvRow(label, r.Monthly.Income[i].StringFixed(2), r.Monthly.Expense[i].StringFixed(2)))
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvRow(fields ...string) []string {
	row := make([]string, csvWidth)
	copy(row, fields)
	return row
}
