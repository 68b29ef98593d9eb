package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/storage"
)

// SettleMovement writes the result of a settlement. The write is conditional on the stored
// record still being a pending payment, so two concurrent settlements cannot both succeed.
func (s *Store) SettleMovement(ctx context.Context, settled *models.Movement) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.MovementsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: settled.ID},
		},
		UpdateExpression:    aws.String("SET #type = :expense, #status = :settled, #date = :date, updated_at = :now"),
		ConditionExpression: aws.String("owner_id = :owner AND #type = :pending_payment AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#type":   "type",
			"#status": "status",
			"#date":   "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expense":         &types.AttributeValueMemberS{Value: string(models.Expense)},
			":settled":         &types.AttributeValueMemberS{Value: string(models.Settled)},
			":pending_payment": &types.AttributeValueMemberS{Value: string(models.PendingPayment)},
			":pending":         &types.AttributeValueMemberS{Value: string(models.Pending)},
			":owner":           &types.AttributeValueMemberS{Value: settled.OwnerID},
			":date":            dateAV(settled.Date),
			":now":             dateAV(settled.UpdatedAt),
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrMovementNotPending
		}
		return fmt.Errorf("failed to settle movement: %w", err)
	}

	return nil
}
