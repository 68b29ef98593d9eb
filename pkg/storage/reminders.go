package storage

import (
	"context"
	"time"

	"github.com/chris/money-movements/pkg/models"
)

// ReminderStore defines the cross-owner operations used by the reminder workers.
// It should only be exposed to those workers, never to the API.
type ReminderStore interface {
	// ListDuePendingPayments retrieves pending payments of every owner due on or before cutoff.
	ListDuePendingPayments(ctx context.Context, cutoff time.Time) ([]models.Movement, error)

	// MarkReminderSent records that a reminder went out. It returns ErrReminderAlreadySent
	// if another worker got there first, and ErrMovementNotPending if the payment was settled meanwhile.
	MarkReminderSent(ctx context.Context, movementID string, at time.Time) error
}
