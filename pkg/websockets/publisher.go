package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// OwnerConnectionsGetter defines an interface for getting the connection IDs of one owner.
type OwnerConnectionsGetter interface {
	GetConnectionsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

// PostToConnectionAPI is the subset of the API Gateway management client used by the publisher.
type PostToConnectionAPI interface {
	PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error)
}

// APIGatewayPublisher pushes messages to the owner's API Gateway websocket connections.
type APIGatewayPublisher struct {
	store       OwnerConnectionsGetter
	connManager ConnectionManager
	apiGwClient PostToConnectionAPI
}

// NewAPIGatewayPublisher creates an APIGatewayPublisher for the given websocket API endpoint.
func NewAPIGatewayPublisher(ctx context.Context, store OwnerConnectionsGetter, connManager ConnectionManager, apiEndpoint string) (*APIGatewayPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return NewAPIGatewayPublisherWithClient(store, connManager, apiGwClient), nil
}

// NewAPIGatewayPublisherWithClient creates an APIGatewayPublisher around an existing client.
func NewAPIGatewayPublisherWithClient(store OwnerConnectionsGetter, connManager ConnectionManager, client PostToConnectionAPI) *APIGatewayPublisher {
	return &APIGatewayPublisher{
		store:       store,
		connManager: connManager,
		apiGwClient: client,
	}
}

var _ Publisher = (*APIGatewayPublisher)(nil)

// Publish sends a message to all connections of message.OwnerID. Stale connections are removed.
func (p *APIGatewayPublisher) Publish(ctx context.Context, message Message) error {
	connectionIDs, err := p.store.GetConnectionsByOwner(ctx, message.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to get owner connections: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})

		if err != nil {
			var goneErr *apigwtypes.GoneException
			if errors.As(err, &goneErr) {
				slog.Info("stale connection found, deleting", "connectionId", connectionID)
				if err := p.connManager.RemoveConnection(ctx, connectionID); err != nil {
					slog.Error("failed to delete stale connection", "error", err)
				}
			} else {
				slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
			}
		}
	}

	return nil
}

// MultiPublisher publishes to several publishers, returning the first error.
type MultiPublisher []Publisher

// Publish implements Publisher.
func (m MultiPublisher) Publish(ctx context.Context, message Message) error {
	var firstErr error
	for _, p := range m {
		if err := p.Publish(ctx, message); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
