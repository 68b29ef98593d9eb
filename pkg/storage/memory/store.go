// Package memory provides an in-memory Storage for local development and tests.
// Data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/chris/money-movements/pkg/storage"
	"github.com/google/uuid"
)

// Store is an in-memory implementation of storage.Storage. It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	movements   map[string]models.Movement
	users       map[string]models.User
	emails      map[string]string
	connections map[string]models.Connection

	// Now is the clock used for server-managed timestamps. Defaults to time.Now.
	Now func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		movements:   make(map[string]models.Movement),
		users:       make(map[string]models.User),
		emails:      make(map[string]string),
		connections: make(map[string]models.Connection),
		Now:         time.Now,
	}
}

var _ storage.Storage = (*Store)(nil)

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateMovement implements storage.MovementManager.
func (s *Store) CreateMovement(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	now := s.now()
	m.ID = uuid.New().String()
	m.CreatedAt = now
	m.UpdatedAt = now
	movements.ApplyDefaults(m)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements[m.ID] = copyMovement(*m)
	return m, nil
}

// GetMovement implements storage.MovementReader.
func (s *Store) GetMovement(ctx context.Context, ownerID, movementID string) (*models.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movements[movementID]
	if !ok || m.OwnerID != ownerID {
		return nil, fmt.Errorf("movement %s: %w", movementID, storage.ErrNotFound)
	}
	out := copyMovement(m)
	return &out, nil
}

// ListMovements implements storage.MovementReader.
func (s *Store) ListMovements(ctx context.Context, ownerID string) ([]models.Movement, error) {
	out := s.collect(func(m models.Movement) bool { return m.OwnerID == ownerID })
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListPendingPayments implements storage.MovementReader.
func (s *Store) ListPendingPayments(ctx context.Context, ownerID string) ([]models.Movement, error) {
	out := s.collect(func(m models.Movement) bool { return m.OwnerID == ownerID && m.IsPending() })
	movements.SortByDueDate(out)
	return out, nil
}

// UpdateMovement implements storage.MovementManager.
func (s *Store) UpdateMovement(ctx context.Context, m *models.Movement) (*models.Movement, error) {
	movements.ApplyDefaults(m)

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.movements[m.ID]
	if !ok || stored.OwnerID != m.OwnerID {
		return nil, fmt.Errorf("movement %s: %w", m.ID, storage.ErrNotFound)
	}
	stored.Amount = m.Amount
	stored.Description = m.Description
	stored.Category = m.Category
	stored.Type = m.Type
	stored.Date = m.Date
	stored.Status = m.Status
	if m.Type != models.PendingPayment || !sameTime(stored.DueDate, m.DueDate) {
		stored.ReminderSentAt = nil
	}
	stored.DueDate = m.DueDate
	stored.UpdatedAt = s.now()
	s.movements[m.ID] = copyMovement(stored)

	out := copyMovement(stored)
	return &out, nil
}

// DeleteMovement implements storage.MovementManager.
func (s *Store) DeleteMovement(ctx context.Context, ownerID, movementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movements[movementID]
	if !ok || m.OwnerID != ownerID {
		return fmt.Errorf("movement %s: %w", movementID, storage.ErrNotFound)
	}
	delete(s.movements, movementID)
	return nil
}

// SettleMovement implements storage.MovementManager.
func (s *Store) SettleMovement(ctx context.Context, settled *models.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.movements[settled.ID]
	if !ok || stored.OwnerID != settled.OwnerID || !stored.IsPending() {
		return storage.ErrMovementNotPending
	}
	stored.Type = models.Expense
	stored.Status = models.Settled
	stored.Date = settled.Date
	stored.UpdatedAt = settled.UpdatedAt
	s.movements[settled.ID] = copyMovement(stored)
	return nil
}

// ListDuePendingPayments implements storage.ReminderStore.
func (s *Store) ListDuePendingPayments(ctx context.Context, cutoff time.Time) ([]models.Movement, error) {
	out := s.collect(func(m models.Movement) bool {
		return m.IsPending() && m.ReminderSentAt == nil && !m.EffectiveDueDate().After(cutoff)
	})
	movements.SortByDueDate(out)
	return out, nil
}

// MarkReminderSent implements storage.ReminderStore.
func (s *Store) MarkReminderSent(ctx context.Context, movementID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.movements[movementID]
	if !ok || !m.IsPending() {
		return storage.ErrMovementNotPending
	}
	if m.ReminderSentAt != nil {
		return storage.ErrReminderAlreadySent
	}
	m.ReminderSentAt = &at
	s.movements[movementID] = copyMovement(m)
	return nil
}

// CreateUser implements storage.UserStore.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return storage.ErrEmailTaken
	}
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

// GetUser implements storage.UserStore.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	return &u, nil
}

// GetUserByEmail implements storage.UserStore.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
	}
	return s.GetUser(ctx, id)
}

// UpdateProfile implements storage.UserStore.
func (s *Store) UpdateProfile(ctx context.Context, userID string, profile models.Profile) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	u.FirstName = profile.FirstName
	u.LastName = profile.LastName
	u.UpdatedAt = s.now()
	s.users[userID] = u
	return &u, nil
}

// AddConnection implements storage.ConnectionStore.
func (s *Store) AddConnection(ctx context.Context, conn models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[conn.ConnectionID] = conn
	return nil
}

// RemoveConnection implements storage.ConnectionStore.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, connectionID)
	return nil
}

// GetConnectionsByOwner implements storage.ConnectionStore.
func (s *Store) GetConnectionsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, c := range s.connections {
		if c.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) collect(keep func(models.Movement) bool) []models.Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		if keep(m) {
			out = append(out, copyMovement(m))
		}
	}
	return out
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// copyMovement detaches the pointer fields so callers cannot mutate stored state.
func copyMovement(m models.Movement) models.Movement {
	if m.DueDate != nil {
		due := *m.DueDate
		m.DueDate = &due
	}
	if m.ReminderSentAt != nil {
		at := *m.ReminderSentAt
		m.ReminderSentAt = &at
	}
	return m
}
