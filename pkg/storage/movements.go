package storage

import (
	"context"

	"github.com/chris/money-movements/pkg/models"
)

// MovementReader defines the owner-scoped read operations on movements.
type MovementReader interface {
	// GetMovement retrieves a single movement. It returns ErrNotFound when the movement
	// does not exist or belongs to another owner.
	GetMovement(ctx context.Context, ownerID, movementID string) (*models.Movement, error)

	// ListMovements retrieves every movement of an owner, most recent date first.
	ListMovements(ctx context.Context, ownerID string) ([]models.Movement, error)

	// ListPendingPayments retrieves the owner's pending payments still awaiting settlement,
	// earliest due date first.
	ListPendingPayments(ctx context.Context, ownerID string) ([]models.Movement, error)
}

// MovementManager defines the write operations on movements.
type MovementManager interface {
	// CreateMovement assigns an ID, applies pending payment defaults and persists the movement.
	CreateMovement(ctx context.Context, m *models.Movement) (*models.Movement, error)

	// UpdateMovement overwrites the editable fields of an existing movement.
	UpdateMovement(ctx context.Context, m *models.Movement) (*models.Movement, error)

	// DeleteMovement removes a movement.
	DeleteMovement(ctx context.Context, ownerID, movementID string) error

	// SettleMovement persists a settled pending payment. It fails with ErrMovementNotPending
	// if the stored movement is no longer pending.
	SettleMovement(ctx context.Context, settled *models.Movement) error
}

// MovementStore combines the reader and manager interfaces.
type MovementStore interface {
	MovementReader
	MovementManager
}
