package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

// Service wraps the email and password authentication rules.
type Service struct {
	users    storage.UserStore
	sessions SessionStore
	validate *validator.Validate
	cost     int
	now      func() time.Time
}

// NewService constructs a new Service.
func NewService(users storage.UserStore, sessions SessionStore) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// SignUp registers a new account and opens a session for it.
func (s *Service) SignUp(ctx context.Context, email, password, confirm string) (*models.User, string, error) {
	email, err := s.normaliseEmail(email)
	if err != nil {
		return nil, "", err
	}
	if len(password) < MinPasswordLength {
		return nil, "", ErrWeakPassword
	}
	if password != confirm {
		return nil, "", ErrPasswordsMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, "", ErrEmailAlreadyInUse
		}
		return nil, "", networkError(err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", networkError(err)
	}
	return user, token, nil
}

// SignIn checks the credentials and opens a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	email, err := s.normaliseEmail(email)
	if err != nil {
		return nil, "", err
	}
	if password == "" {
		return nil, "", ErrInvalidCredential
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", networkError(err)
	}
	if user.Disabled {
		return nil, "", ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", networkError(err)
	}
	return user, token, nil
}

// SignOut ends the session identified by token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return networkError(err)
	}
	return nil
}

// CurrentUser resolves a session token to its user.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, networkError(err)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, networkError(err)
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *Service) normaliseEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}
