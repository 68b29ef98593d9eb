package movements

import (
	"time"

	"github.com/chris/money-movements/pkg/models"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func movement(id string, amount int64, typ models.MovementType, date string) models.Movement {
	return models.Movement{
		ID:          id,
		OwnerID:     "owner-1",
		Amount:      decimal.NewFromInt(amount),
		Description: "movement " + id,
		Category:    "general",
		Type:        typ,
		Date:        day(date),
	}
}

func pendingPayment(id string, amount int64, date, due string) models.Movement {
	m := movement(id, amount, models.PendingPayment, date)
	m.Status = models.Pending
	m.DueDate = dayPtr(due)
	return m
}

// scenario is the reference set: one income, one expense, one pending payment.
func scenario() []models.Movement {
	return []models.Movement{
		movement("inc", 100, models.Income, "2024-01-15"),
		movement("exp", 40, models.Expense, "2024-01-20"),
		pendingPayment("pp", 25, "2024-02-01", "2024-02-10"),
	}
}
