// Package reminders holds the background side of payment reminders: the periodic sweep
// that enqueues due pending payments and the queue consumer that delivers them.
package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/money-movements/pkg/scheduler"
	"github.com/chris/money-movements/pkg/storage"
)

// Sweeper enqueues a reminder for every pending payment falling due within Window.
type Sweeper struct {
	Store     storage.ReminderStore
	Scheduler scheduler.ReminderScheduler
	Window    time.Duration
	Now       func() time.Time
}

// NewSweeper creates a Sweeper.
func NewSweeper(store storage.ReminderStore, sched scheduler.ReminderScheduler, window time.Duration) *Sweeper {
	return &Sweeper{
		Store:     store,
		Scheduler: sched,
		Window:    window,
		Now:       time.Now,
	}
}

// Sweep returns the number of reminders enqueued. A payment that fails to enqueue is
// skipped and picked up by the next run.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.Now().Add(s.Window)
	due, err := s.Store.ListDuePendingPayments(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list due pending payments: %w", err)
	}
	if len(due) == 0 {
		slog.InfoContext(ctx, "no pending payments due", "cutoff", cutoff)
		return 0, nil
	}

	enqueued := 0
	for _, m := range due {
		if err := s.Scheduler.ScheduleReminder(ctx, scheduler.ReminderFor(m), 0); err != nil {
			slog.ErrorContext(ctx, "failed to enqueue payment reminder", "movementId", m.ID, "error", err)
			continue
		}
		enqueued++
	}
	slog.InfoContext(ctx, "reminder sweep finished", "due", len(due), "enqueued", enqueued)
	return enqueued, nil
}
