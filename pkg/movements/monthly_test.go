package movements

import (
	"testing"
	"time"

	"github.com/chris/money-movements/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeMonthlySeries(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		s := ComputeMonthlySeries(scenario())

		assertDecimal(t, 100, s.Income[0])
		assertDecimal(t, 40, s.Expense[0])
		for i := 1; i < 12; i++ {
			assertDecimal(t, 0, s.Income[i])
			assertDecimal(t, 0, s.Expense[i])
		}
	})

	t.Run("Always Twelve Buckets", func(t *testing.T) {
		s := ComputeMonthlySeries(nil)
		income, expense := s.Floats()
		assert.Len(t, income, 12)
		assert.Len(t, expense, 12)
		for i := range income {
			assert.Zero(t, income[i])
			assert.Zero(t, expense[i])
		}
	})

	t.Run("Uses Local Calendar Month", func(t *testing.T) {
		// 2024-03-01T02:00 in UTC+5 is still February in UTC.
		plus5 := time.FixedZone("UTC+5", 5*60*60)
		m := movement("a", 10, models.Income, "2024-01-01")
		m.Date = time.Date(2024, time.March, 1, 2, 0, 0, 0, plus5)

		assertDecimal(t, 10, ComputeMonthlySeriesIn([]models.Movement{m}, plus5).Income[2])
		assertDecimal(t, 10, ComputeMonthlySeriesIn([]models.Movement{m}, time.UTC).Income[1])
	})

	t.Run("Years Share Buckets", func(t *testing.T) {
		ms := []models.Movement{
			movement("a", 5, models.Expense, "2023-12-31"),
			movement("b", 7, models.Expense, "2024-12-01"),
		}
		assertDecimal(t, 12, ComputeMonthlySeries(ms).Expense[11])
	})
}
