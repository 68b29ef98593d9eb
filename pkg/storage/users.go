package storage

import (
	"context"

	"github.com/chris/money-movements/pkg/models"
)

// UserStore defines the interface for managing accounts and profiles.
type UserStore interface {
	// CreateUser persists a new user. It returns ErrEmailTaken if the email is registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateProfile replaces the profile fields of a user.
	UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error)
}
