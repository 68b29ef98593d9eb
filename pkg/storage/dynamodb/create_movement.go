package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/google/uuid"
)

// CreateMovement assigns server-side fields and writes a new movement record.
func (s *Store) CreateMovement(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	now := s.now()
	m.ID = uuid.New().String()
	m.CreatedAt = now
	m.UpdatedAt = now
	movements.ApplyDefaults(m)

	slog.Log(ctx, slog.LevelDebug, "creating movement", "movement_id", m.ID, "type", m.Type)

	item, err := marshalMovement(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal movement: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.MovementsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put movement: %w", err)
	}

	return m, nil
}
