// Package movements derives read-only views from a snapshot of financial movements.
// Nothing in this package performs I/O or mutates its input.
package movements

import (
	"github.com/chris/money-movements/pkg/models"
	"github.com/shopspring/decimal"
)

// Summary holds the realised totals of a set of movements.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// ComputeSummary sums income and expense amounts. Pending payments are excluded
// whatever their status; they only count once settled into an expense.
func ComputeSummary(ms []models.Movement) Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, m := range ms {
		switch m.Type {
		case models.Income:
			income = income.Add(m.Amount)
		case models.Expense:
			expense = expense.Add(m.Amount)
		}
	}
	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}
