package movements

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chris/money-movements/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ms []models.Movement) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestPartitionPendingPayments(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		p := PartitionPendingPayments(scenario())

		assert.Equal(t, []string{"pp"}, ids(p.Pending))
		assert.Empty(t, p.Settled)
	})

	t.Run("Strict Partition", func(t *testing.T) {
		settled := pendingPayment("s", 10, "2024-01-01", "2024-01-05")
		settled.Status = models.Settled
		ms := append(scenario(), settled, pendingPayment("p2", 3, "2024-01-01", "2024-01-02"))

		p := PartitionPendingPayments(ms)

		assert.ElementsMatch(t, []string{"pp", "p2"}, ids(p.Pending))
		assert.Equal(t, []string{"s"}, ids(p.Settled))
	})

	t.Run("Sorted By Due Date For Any Permutation", func(t *testing.T) {
		ms := []models.Movement{
			pendingPayment("c", 1, "2024-01-01", "2024-03-01"),
			pendingPayment("a", 1, "2024-01-01", "2024-01-01"),
			pendingPayment("b", 1, "2024-01-01", "2024-02-01"),
			pendingPayment("b2", 1, "2024-01-01", "2024-02-01"),
		}
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 20; i++ {
			shuffled := append([]models.Movement(nil), ms...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			p := PartitionPendingPayments(shuffled)

			assert.Equal(t, []string{"a", "b", "b2", "c"}, ids(p.Pending))
		}
	})

	t.Run("Missing Due Date Falls Back To Date", func(t *testing.T) {
		noDue := pendingPayment("x", 1, "2024-01-03", "2024-01-03")
		noDue.DueDate = nil
		ms := []models.Movement{noDue, pendingPayment("y", 1, "2024-01-01", "2024-01-05")}

		assert.Equal(t, []string{"x", "y"}, ids(PartitionPendingPayments(ms).Pending))
	})
}

func TestMarkPendingPaymentSettled(t *testing.T) {
	now := time.Date(2024, time.February, 9, 12, 0, 0, 0, time.Local)

	t.Run("Success", func(t *testing.T) {
		ms := scenario()

		settled, err := MarkPendingPaymentSettled(ms[2], now)

		require.NoError(t, err)
		assert.Equal(t, models.Expense, settled.Type)
		assert.Equal(t, models.Settled, settled.Status)
		assert.Equal(t, now, settled.Date)
		assert.Equal(t, models.PendingPayment, ms[2].Type, "input must not be mutated")

		ms[2] = settled
		s := ComputeSummary(ms)
		assertDecimal(t, 100, s.TotalIncome)
		assertDecimal(t, 65, s.TotalExpense)
		assertDecimal(t, 35, s.Balance)

		p := PartitionPendingPayments(ms)
		assert.Empty(t, p.Pending)
		assert.Empty(t, p.Settled)
	})

	t.Run("Not Settleable", func(t *testing.T) {
		income := movement("i", 1, models.Income, "2024-01-01")
		_, err := MarkPendingPaymentSettled(income, now)
		assert.ErrorIs(t, err, ErrNotSettleable)

		done := pendingPayment("d", 1, "2024-01-01", "2024-01-02")
		done.Status = models.Settled
		_, err = MarkPendingPaymentSettled(done, now)
		assert.ErrorIs(t, err, ErrNotSettleable)
	})

	t.Run("One Way", func(t *testing.T) {
		settled, err := MarkPendingPaymentSettled(scenario()[2], now)
		require.NoError(t, err)

		_, err = MarkPendingPaymentSettled(settled, now)
		assert.ErrorIs(t, err, ErrNotSettleable)
	})
}

func TestDueWithin(t *testing.T) {
	now := day("2024-02-01")
	reminded := pendingPayment("r", 1, "2024-01-01", "2024-02-02")
	reminded.ReminderSentAt = &now
	ms := []models.Movement{
		pendingPayment("late", 1, "2024-01-01", "2024-02-20"),
		pendingPayment("soon", 1, "2024-01-01", "2024-02-03"),
		pendingPayment("overdue", 1, "2024-01-01", "2024-01-20"),
		reminded,
		movement("e", 1, models.Expense, "2024-02-01"),
	}

	got := DueWithin(ms, now, 72*time.Hour)

	assert.Equal(t, []string{"overdue", "soon"}, ids(got))
}

func TestApplyDefaults(t *testing.T) {
	t.Run("Pending Payment", func(t *testing.T) {
		m := movement("p", 10, models.PendingPayment, "2024-04-01")

		ApplyDefaults(&m)

		assert.Equal(t, models.Pending, m.Status)
		require.NotNil(t, m.DueDate)
		assert.Equal(t, m.Date, *m.DueDate)
	})

	t.Run("Keeps Supplied Due Date", func(t *testing.T) {
		m := pendingPayment("p", 10, "2024-04-01", "2024-04-30")
		m.Status = ""

		ApplyDefaults(&m)

		assert.Equal(t, day("2024-04-30"), *m.DueDate)
	})

	t.Run("Income Drops Payment Fields", func(t *testing.T) {
		m := pendingPayment("p", 10, "2024-04-01", "2024-04-30")
		m.Type = models.Income

		ApplyDefaults(&m)

		assert.Empty(t, m.Status)
		assert.Nil(t, m.DueDate)
	})
}
