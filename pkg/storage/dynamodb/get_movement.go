package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/storage"
)

// GetMovement retrieves a movement by its ID. Movements of other owners are reported as not found.
func (s *Store) GetMovement(ctx context.Context, ownerID, movementID string) (*models.Movement, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.MovementsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: movementID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get movement from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("movement %s: %w", movementID, storage.ErrNotFound)
	}

	m, err := unmarshalMovement(result.Item, s.location())
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal movement: %w", err)
	}

	if m.OwnerID != ownerID {
		return nil, fmt.Errorf("movement %s: %w", movementID, storage.ErrNotFound)
	}

	return &m, nil
}
