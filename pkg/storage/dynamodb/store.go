package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/money-movements/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
//
//go:generate mockery --name DynamoDBAPI --output ./mocks --outpkg mocks
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	MovementsTableName   string
	UsersTableName       string
	ConnectionsTableName string

	// Now is the clock used for server-managed timestamps. Defaults to time.Now.
	Now func() time.Time
	// Location is the zone dates are returned in. Defaults to time.Local.
	Location *time.Location
}

// New creates a new Store.
func New(client DynamoDBAPI, movementsTable, usersTable, connectionsTable string) *Store {
	return &Store{
		Client:               client,
		MovementsTableName:   movementsTable,
		UsersTableName:       usersTable,
		ConnectionsTableName: connectionsTable,
		Now:                  time.Now,
		Location:             time.Local,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}
