package movements

import (
	"time"

	"github.com/chris/money-movements/pkg/models"
	"github.com/shopspring/decimal"
)

// MonthlySeries holds income and expense totals per calendar month, January at index 0.
type MonthlySeries struct {
	Income  [12]decimal.Decimal
	Expense [12]decimal.Decimal
}

// MonthLabels are the short month names matching the series indices.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ComputeMonthlySeries buckets income and expense by the local calendar month of their date.
func ComputeMonthlySeries(ms []models.Movement) MonthlySeries {
	return ComputeMonthlySeriesIn(ms, time.Local)
}

// ComputeMonthlySeriesIn is ComputeMonthlySeries with an explicit location.
func ComputeMonthlySeriesIn(ms []models.Movement, loc *time.Location) MonthlySeries {
	if loc == nil {
		loc = time.Local
	}
	var s MonthlySeries
	for i := range s.Income {
		s.Income[i] = decimal.Zero
		s.Expense[i] = decimal.Zero
	}
	for _, m := range ms {
		idx := MonthIndex(m.Date, loc)
		switch m.Type {
		case models.Income:
			s.Income[idx] = s.Income[idx].Add(m.Amount)
		case models.Expense:
			s.Expense[idx] = s.Expense[idx].Add(m.Amount)
		}
	}
	return s
}

// MonthIndex returns 0 for January through 11 for December, in loc.
func MonthIndex(date any, loc *time.Location) int {
	return int(ToCalendarDate(date).In(loc).Month()) - 1
}

// Floats returns both series as float64 slices, for charting.
func (s MonthlySeries) Floats() (income, expense []float64) {
	income = make([]float64, len(s.Income))
	expense = make([]float64, len(s.Expense))
	for i := range s.Income {
		income[i] = s.Income[i].InexactFloat64()
		expense[i] = s.Expense[i].InexactFloat64()
	}
	return income, expense
}
