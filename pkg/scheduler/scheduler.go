package scheduler

import (
	"context"
	"time"

	"github.com/chris/money-movements/pkg/models"
)

//go:generate go tool mockery --name ReminderScheduler --output ./mocks --outpkg mocks

// Reminder is the message enqueued when a pending payment is about to fall due.
type Reminder struct {
	MovementID  string    `json:"movement_id"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	DueDate     time.Time `json:"due_date"`
}

// ReminderFor builds the reminder announcing m.
func ReminderFor(m models.Movement) Reminder {
	return Reminder{
		MovementID:  m.ID,
		OwnerID:     m.OwnerID,
		Description: m.Description,
		Category:    m.Category,
		Amount:      m.Amount.String(),
		DueDate:     m.EffectiveDueDate(),
	}
}

// ReminderScheduler defines the interface for a component that schedules payment reminders for delivery.
type ReminderScheduler interface {
	// ScheduleReminder enqueues a reminder, delivered no earlier than delay from now.
	ScheduleReminder(ctx context.Context, reminder Reminder, delay time.Duration) error
}
