package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// maxSQSDelay is the largest DelaySeconds SQS accepts.
const maxSQSDelay = 15 * time.Minute

// SQSAPI is the subset of the SQS client used by SQSScheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the ReminderScheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ ReminderScheduler = (*SQSScheduler)(nil)

// ScheduleReminder sends the reminder to an SQS queue. Delays beyond what SQS supports are capped.
func (s *SQSScheduler) ScheduleReminder(ctx context.Context, reminder Reminder, delay time.Duration) error {
	body, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: delaySeconds(delay),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

func delaySeconds(d time.Duration) int32 {
	if d <= 0 {
		return 0
	}
	if d > maxSQSDelay {
		d = maxSQSDelay
	}
	return int32(d / time.Second)
}

// ParseReminder decodes an SQS message body produced by ScheduleReminder.
func ParseReminder(body string) (Reminder, error) {
	var r Reminder
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return Reminder{}, fmt.Errorf("failed to unmarshal reminder: %w", err)
	}
	if r.MovementID == "" || r.OwnerID == "" {
		return Reminder{}, fmt.Errorf("reminder is missing movement or owner id")
	}
	return r, nil
}
