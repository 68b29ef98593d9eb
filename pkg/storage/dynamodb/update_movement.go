package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/chris/money-movements/pkg/storage"
)

const (
	ownerCondition      = "owner_id = :owner"
	dueChangedCondition = "owner_id = :owner AND (attribute_not_exists(due_date) OR due_date <> :due)"
)

// UpdateMovement overwrites amount, description, category, type and date.
// Pending payments also get status and due date; other types lose them.
// Moving a due date clears reminder_sent_at so the new date is reminded again.
func (s *Store) UpdateMovement(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	movements.ApplyDefaults(m)
	m.UpdatedAt = s.now()

	amountAV, err := amountValue(m.Amount).MarshalDynamoDBAttributeValue()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	expr := "SET amount = :amount, description = :description, category = :category, #type = :type, #date = :date, updated_at = :now"
	values := map[string]types.AttributeValue{
		":owner":       &types.AttributeValueMemberS{Value: m.OwnerID},
		":amount":      amountAV,
		":description": &types.AttributeValueMemberS{Value: m.Description},
		":category":    &types.AttributeValueMemberS{Value: m.Category},
		":type":        &types.AttributeValueMemberS{Value: string(m.Type)},
		":date":        dateAV(m.Date),
		":now":         dateAV(m.UpdatedAt),
	}
	names := map[string]string{
		"#type":   "type",
		"#date":   "date",
		"#status": "status",
	}

	if m.Type != models.PendingPayment {
		return s.updateMovement(ctx, m.ID, expr+" REMOVE #status, due_date, reminder_sent_at", ownerCondition, names, values)
	}

	expr += ", #status = :status, due_date = :due"
	values[":status"] = &types.AttributeValueMemberS{Value: string(m.Status)}
	values[":due"] = dateAV(*m.DueDate)

	updated, err := s.updateMovement(ctx, m.ID, expr+" REMOVE reminder_sent_at", dueChangedCondition, names, values)
	if !errors.Is(err, storage.ErrNotFound) {
		return updated, err
	}
	// Same due date, or no such movement: the plain update tells them apart.
	return s.updateMovement(ctx, m.ID, expr, ownerCondition, names, values)
}

func (s *Store) updateMovement(ctx context.Context, id, expr, condition string, names map[string]string, values map[string]types.AttributeValue) (*models.Movement, error) {
	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.MovementsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("movement %s: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}

	updated, err := unmarshalMovement(result.Attributes, s.location())
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated movement: %w", err)
	}
	return &updated, nil
}
