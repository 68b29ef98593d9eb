package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
)

const (
	ownerDateIndex    = "owner_id-date-index"
	ownerDueDateIndex = "owner_id-due_date-index"
	statusDueIndex    = "status-due_date-index"
)

// ListMovements retrieves every movement of an owner, most recent first.
func (s *Store) ListMovements(ctx context.Context, ownerID string) ([]models.Movement, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.MovementsTableName),
		IndexName:              aws.String(ownerDateIndex),
		KeyConditionExpression: aws.String("owner_id = :owner"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
		ScanIndexForward: aws.Bool(false), // Sort by date in descending order
	}

	ms, err := s.queryMovements(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements by owner: %w", err)
	}
	return ms, nil
}

// ListPendingPayments retrieves an owner's pending payments still awaiting settlement, earliest due first.
func (s *Store) ListPendingPayments(ctx context.Context, ownerID string) ([]models.Movement, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.MovementsTableName),
		IndexName:              aws.String(ownerDueDateIndex),
		KeyConditionExpression: aws.String("owner_id = :owner"),
		FilterExpression:       aws.String("#type = :type AND #status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#type":   "type",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner":  &types.AttributeValueMemberS{Value: ownerID},
			":type":   &types.AttributeValueMemberS{Value: string(models.PendingPayment)},
			":status": &types.AttributeValueMemberS{Value: string(models.Pending)},
		},
		ScanIndexForward: aws.Bool(true),
	}

	ms, err := s.queryMovements(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending payments: %w", err)
	}
	return ms, nil
}

// ListDuePendingPayments retrieves pending payments of every owner due on or before cutoff.
func (s *Store) ListDuePendingPayments(ctx context.Context, cutoff time.Time) ([]models.Movement, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.MovementsTableName),
		IndexName:              aws.String(statusDueIndex),
		KeyConditionExpression: aws.String("#status = :status AND due_date <= :cutoff"),
		FilterExpression:       aws.String("#type = :type AND attribute_not_exists(reminder_sent_at)"),
		ExpressionAttributeNames: map[string]string{
			"#type":   "type",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.Pending)},
			":type":   &types.AttributeValueMemberS{Value: string(models.PendingPayment)},
			":cutoff": dateAV(cutoff),
		},
	}

	ms, err := s.queryMovements(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query due pending payments: %w", err)
	}
	return ms, nil
}

// queryMovements follows LastEvaluatedKey until the query is exhausted.
func (s *Store) queryMovements(ctx context.Context, input *dynamodb.QueryInput) ([]models.Movement, error) {
	var out []models.Movement
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		ms, err := unmarshalMovements(result.Items, s.location())
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal movements: %w", err)
		}
		out = append(out, ms...)
		if len(result.LastEvaluatedKey) == 0 {
			return out, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
