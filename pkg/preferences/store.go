package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Store persists the per-owner dark mode flag.
type Store interface {
	// GetDarkMode returns the stored flag and whether one was stored at all.
	GetDarkMode(ctx context.Context, ownerID string) (dark bool, ok bool, err error)
	SetDarkMode(ctx context.Context, ownerID string, dark bool) error
}

// RedisStore keeps preferences in Redis under "preferences:<owner>:dark_mode".
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

// GetDarkMode implements Store.
func (s *RedisStore) GetDarkMode(ctx context.Context, ownerID string) (bool, bool, error) {
	val, err := s.client.Get(ctx, darkModeKey(ownerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to load theme preference: %w", err)
	}
	dark, err := strconv.ParseBool(val)
	if err != nil {
		// An unreadable value counts as unset so the ambient default applies.
		return false, false, nil
	}
	return dark, true, nil
}

// SetDarkMode implements Store.
func (s *RedisStore) SetDarkMode(ctx context.Context, ownerID string, dark bool) error {
	if err := s.client.Set(ctx, darkModeKey(ownerID), strconv.FormatBool(dark), 0).Err(); err != nil {
		return fmt.Errorf("failed to store theme preference: %w", err)
	}
	return nil
}

func darkModeKey(ownerID string) string {
	return "preferences:" + ownerID + ":dark_mode"
}
