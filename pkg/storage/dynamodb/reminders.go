package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/storage"
)

// MarkReminderSent atomically stamps reminder_sent_at on a pending payment.
// This keeps the notify worker idempotent when SQS delivers a message more than once.
func (s *Store) MarkReminderSent(ctx context.Context, movementID string, at time.Time) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.MovementsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: movementID},
		},
		UpdateExpression:    aws.String("SET reminder_sent_at = :at"),
		ConditionExpression: aws.String("#type = :pending_payment AND #status = :pending AND attribute_not_exists(reminder_sent_at)"),
		ExpressionAttributeNames: map[string]string{
			"#type":   "type",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":at":              dateAV(at),
			":pending_payment": &types.AttributeValueMemberS{Value: string(models.PendingPayment)},
			":pending":         &types.AttributeValueMemberS{Value: string(models.Pending)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			if _, ok := condCheckFailed.Item["reminder_sent_at"]; ok {
				return storage.ErrReminderAlreadySent
			}
			return storage.ErrMovementNotPending
		}
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	return nil
}
