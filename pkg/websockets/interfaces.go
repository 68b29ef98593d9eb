package websockets

import (
	"context"

	"github.com/chris/money-movements/pkg/models"
)

// ConnectionManager defines the interface for managing API Gateway websocket connections.
type ConnectionManager interface {
	AddConnection(ctx context.Context, conn models.Connection) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher defines the interface for publishing messages to an owner's websocket clients.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
