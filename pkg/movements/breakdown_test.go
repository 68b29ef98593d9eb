package movements

import (
	"testing"

	"github.com/chris/money-movements/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCategoryBreakdown(t *testing.T) {
	t.Run("Same Category Different Types", func(t *testing.T) {
		a := movement("a", 30, models.Income, "2024-01-01")
		a.Category = "food"
		b := movement("b", 12, models.Expense, "2024-01-02")
		b.Category = "food"

		b2 := ComputeCategoryBreakdown([]models.Movement{a, b})

		require.Len(t, b2, 1)
		assert.Equal(t, "food", b2[0].Category)
		assertDecimal(t, 42, b2[0].Total)
	})

	t.Run("Includes Pending Payments", func(t *testing.T) {
		ms := scenario()
		ms[2].Category = "rent"

		got := ComputeCategoryBreakdown(ms)

		require.Len(t, got, 2)
		assert.Equal(t, "general", got[0].Category)
		assertDecimal(t, 140, got[0].Total)
		assert.Equal(t, "rent", got[1].Category)
		assertDecimal(t, 25, got[1].Total)
	})

	t.Run("First Seen Order", func(t *testing.T) {
		var ms []models.Movement
		for i, c := range []string{"transport", "food", "transport", "health", "food"} {
			m := movement(string(rune('a'+i)), 1, models.Expense, "2024-01-01")
			m.Category = c
			ms = append(ms, m)
		}

		got := ComputeCategoryBreakdown(ms)

		require.Len(t, got, 3)
		assert.Equal(t, "transport", got[0].Category)
		assert.Equal(t, "food", got[1].Category)
		assert.Equal(t, "health", got[2].Category)
		assertDecimal(t, 2, got[0].Total)
	})

	t.Run("Exact Match Only", func(t *testing.T) {
		a := movement("a", 1, models.Expense, "2024-01-01")
		a.Category = "Food"
		b := movement("b", 1, models.Expense, "2024-01-01")
		b.Category = "food"

		assert.Len(t, ComputeCategoryBreakdown([]models.Movement{a, b}), 2)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, ComputeCategoryBreakdown(nil))
	})
}
