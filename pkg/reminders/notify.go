package reminders

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/money-movements/pkg/scheduler"
	"github.com/chris/money-movements/pkg/storage"
	"github.com/chris/money-movements/pkg/websockets"
)

// Notifier consumes queued reminders and pushes them to the owner's live clients.
type Notifier struct {
	Store     storage.ReminderStore
	Publisher websockets.Publisher
	Now       func() time.Time
}

// NewNotifier creates a Notifier.
func NewNotifier(store storage.ReminderStore, publisher websockets.Publisher) *Notifier {
	return &Notifier{
		Store:     store,
		Publisher: publisher,
		Now:       time.Now,
	}
}

// HandleSQSEvent delivers every reminder in the batch. Records that fail are reported
// back so SQS retries only those.
func (n *Notifier) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range event.Records {
		if err := n.Deliver(ctx, message.Body); err != nil {
			slog.ErrorContext(ctx, "failed to deliver payment reminder", "messageId", message.MessageId, "error", err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		}
	}
	return resp, nil
}

// Deliver records the reminder as sent, then publishes it. Reminders that were already
// sent, or whose payment was settled in the meantime, are dropped.
func (n *Notifier) Deliver(ctx context.Context, body string) error {
	reminder, err := scheduler.ParseReminder(body)
	if err != nil {
		return err
	}

	err = n.Store.MarkReminderSent(ctx, reminder.MovementID, n.Now().UTC())
	switch {
	case errors.Is(err, storage.ErrReminderAlreadySent), errors.Is(err, storage.ErrMovementNotPending):
		slog.InfoContext(ctx, "skipping payment reminder", "movementId", reminder.MovementID, "reason", err)
		return nil
	case err != nil:
		return err
	}

	return n.Publisher.Publish(ctx, websockets.Message{
		Type:    websockets.MessageTypePaymentReminder,
		OwnerID: reminder.OwnerID,
		Payload: websockets.PaymentReminderPayload{
			MovementID:  reminder.MovementID,
			Description: reminder.Description,
			Category:    reminder.Category,
			Amount:      reminder.Amount,
			DueDate:     reminder.DueDate,
		},
	})
}
