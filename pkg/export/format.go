package export

import (
	"github.com/chris/money-movements/pkg/movements"
	"github.com/shopspring/decimal"
)

type summaryRow struct {
	label string
	value decimal.Decimal
}

func summaryRows(s movements.Summary) []summaryRow {
	return []summaryRow{
		{label: "Income", value: s.TotalIncome},
		{label: "Expenses", value: s.TotalExpense},
		{label: "Balance", value: s.Balance},
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
