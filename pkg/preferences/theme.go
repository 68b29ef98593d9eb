// Package preferences holds the theme preference of each owner.
package preferences

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

// Source tells where a resolved preference came from.
type Source string

const (
	SourceStored  Source = "stored"
	SourceAmbient Source = "ambient"
)

// ThemePreference is the effective theme of one owner.
type ThemePreference struct {
	Dark   bool   `json:"dark"`
	Source Source `json:"source"`
}

// ColorSchemeHeader is the client hint carrying the platform colour scheme.
const ColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

// AmbientDark reports whether the client asks for a dark colour scheme.
func AmbientDark(r *http.Request) bool {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(ColorSchemeHeader)), `"`)
	return strings.EqualFold(v, "dark")
}

// Theme resolves, persists and broadcasts theme preferences.
type Theme struct {
	store Store

	// writeMu orders each write with its broadcast so subscribers end on the stored value.
	writeMu sync.Mutex

	mu   sync.Mutex
	subs map[string]map[*ThemeSubscription]struct{}
}

// NewTheme creates a Theme backed by store.
func NewTheme(store Store) *Theme {
	return &Theme{
		store: store,
		subs:  make(map[string]map[*ThemeSubscription]struct{}),
	}
}

// Resolve returns the stored preference, or the ambient one when nothing is stored.
func (t *Theme) Resolve(ctx context.Context, ownerID string, ambientDark bool) (ThemePreference, error) {
	dark, ok, err := t.store.GetDarkMode(ctx, ownerID)
	if err != nil {
		return ThemePreference{Dark: ambientDark, Source: SourceAmbient}, err
	}
	if !ok {
		return ThemePreference{Dark: ambientDark, Source: SourceAmbient}, nil
	}
	return ThemePreference{Dark: dark, Source: SourceStored}, nil
}

// Set persists the flag and then notifies every subscriber of the owner.
func (t *Theme) Set(ctx context.Context, ownerID string, dark bool) (ThemePreference, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.set(ctx, ownerID, dark)
}

// Toggle flips the effective preference and stores the result.
func (t *Theme) Toggle(ctx context.Context, ownerID string, ambientDark bool) (ThemePreference, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	current, err := t.Resolve(ctx, ownerID, ambientDark)
	if err != nil {
		return ThemePreference{}, err
	}
	return t.set(ctx, ownerID, !current.Dark)
}

func (t *Theme) set(ctx context.Context, ownerID string, dark bool) (ThemePreference, error) {
	if err := t.store.SetDarkMode(ctx, ownerID, dark); err != nil {
		return ThemePreference{}, err
	}
	t.broadcast(ownerID, dark)
	return ThemePreference{Dark: dark, Source: SourceStored}, nil
}

func (t *Theme) broadcast(ownerID string, dark bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for sub := range t.subs[ownerID] {
		select {
		case sub.ch <- dark:
		default:
			// Keep only the newest value for a slow reader.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- dark
		}
	}
}

// ThemeSubscription receives an owner's theme changes until closed.
type ThemeSubscription struct {
	theme   *Theme
	ownerID string
	ch      chan bool
	once    sync.Once
}

// Subscribe registers for theme changes of ownerID. Callers must Close the subscription.
func (t *Theme) Subscribe(ownerID string) *ThemeSubscription {
	sub := &ThemeSubscription{theme: t, ownerID: ownerID, ch: make(chan bool, 1)}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subs[ownerID] == nil {
		t.subs[ownerID] = make(map[*ThemeSubscription]struct{})
	}
	t.subs[ownerID][sub] = struct{}{}
	return sub
}

// C delivers the new dark mode flag after each change.
func (s *ThemeSubscription) C() <-chan bool {
	return s.ch
}

// Close releases the subscription. It is safe to call more than once.
func (s *ThemeSubscription) Close() {
	s.once.Do(func() {
		s.theme.mu.Lock()
		defer s.theme.mu.Unlock()
		if owned, ok := s.theme.subs[s.ownerID]; ok {
			delete(owned, s)
			if len(owned) == 0 {
				delete(s.theme.subs, s.ownerID)
			}
		}
		close(s.ch)
	})
}

// Subscribers returns the number of open subscriptions for ownerID.
func (t *Theme) Subscribers(ownerID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs[ownerID])
}
