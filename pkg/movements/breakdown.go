package movements

import (
	"github.com/chris/money-movements/pkg/models"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed magnitude of all movements sharing a category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Breakdown lists category totals in first-seen order.
type Breakdown []CategoryTotal

// ComputeCategoryBreakdown groups movements by exact category and sums their amounts.
// Every movement type is included, pending payments too.
func ComputeCategoryBreakdown(ms []models.Movement) Breakdown {
	index := make(map[string]int)
	var out Breakdown
	for _, m := range ms {
		i, ok := index[m.Category]
		if !ok {
			i = len(out)
			index[m.Category] = i
			out = append(out, CategoryTotal{Category: m.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(m.Amount.Abs())
	}
	return out
}
