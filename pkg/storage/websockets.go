package storage

import (
	"context"

	"github.com/chris/money-movements/pkg/models"
)

// ConnectionStore defines the interface for storing API Gateway websocket connections per owner.
type ConnectionStore interface {
	AddConnection(ctx context.Context, conn models.Connection) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetConnectionsByOwner(ctx context.Context, ownerID string) ([]string, error)
}
