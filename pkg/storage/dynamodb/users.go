package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/storage"
)

// emailGuard reserves an email address in the users table. It shares the table's key
// so that uniqueness can be enforced in the same transaction as the user record.
type emailGuard struct {
	ID     string `dynamodbav:"id"`
	UserID string `dynamodbav:"user_id"`
}

func emailGuardKey(email string) string {
	return "email#" + strings.ToLower(strings.TrimSpace(email))
}

// CreateUser writes the user and its email guard in one transaction.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	userAV, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	guardAV, err := attributevalue.MarshalMap(emailGuard{ID: emailGuardKey(user.Email), UserID: user.ID})
	if err != nil {
		return fmt.Errorf("failed to marshal email guard: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.UsersTableName),
					Item:                guardAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.UsersTableName),
					Item:                userAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var txCanceled *types.TransactionCanceledException
		if errors.As(err, &txCanceled) {
			for _, reason := range txCanceled.CancellationReasons {
				if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
					return storage.ErrEmailTaken
				}
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.UsersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail resolves the email guard and then loads the user it points to.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.UsersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: emailGuardKey(email)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get email guard from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
	}

	var guard emailGuard
	if err := attributevalue.UnmarshalMap(result.Item, &guard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal email guard: %w", err)
	}

	return s.GetUser(ctx, guard.UserID)
}

// UpdateProfile replaces the first and last name of a user.
func (s *Store) UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error) {
	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.UsersTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:    aws.String("SET first_name = :first, last_name = :last, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":first": &types.AttributeValueMemberS{Value: profile.FirstName},
			":last":  &types.AttributeValueMemberS{Value: profile.LastName},
			":now":   &types.AttributeValueMemberS{Value: s.now().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Attributes, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}
