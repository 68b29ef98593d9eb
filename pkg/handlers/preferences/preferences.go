package preferences

import (
	"log/slog"
	"net/http"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/handlers/httpx"
	"github.com/chris/money-movements/pkg/mapping"
	"github.com/chris/money-movements/pkg/preferences"
	"github.com/chris/money-movements/pkg/validation"
	"github.com/chris/money-movements/pkg/websockets"
)

// PreferencesHandler serves the theme preference.
type PreferencesHandler struct {
	Theme     *preferences.Theme
	Publisher websockets.Publisher
	Validator *validation.Validator
}

// NewPreferencesHandler creates a new PreferencesHandler. Changes are pushed through
// publisher in addition to the local theme subscribers.
func NewPreferencesHandler(theme *preferences.Theme, publisher websockets.Publisher) *PreferencesHandler {
	return &PreferencesHandler{Theme: theme, Publisher: publisher, Validator: validation.New()}
}

// GetTheme returns the stored preference, or the client's colour scheme when none is stored.
func (h *PreferencesHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	pref, err := h.Theme.Resolve(r.Context(), auth.OwnerID(r.Context()), preferences.AmbientDark(r))
	if err != nil {
		slog.WarnContext(r.Context(), "failed to load theme preference", "error", err)
	}
	w.Header().Add("Vary", preferences.ColorSchemeHeader)
	httpx.JSON(w, http.StatusOK, mapping.ToApiTheme(pref))
}

// SetTheme stores the preference.
func (h *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req api.SetThemeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	if fields := h.Validator.Struct(&req); fields != nil {
		httpx.ValidationFailed(w, fields)
		return
	}

	ownerID := auth.OwnerID(r.Context())
	pref, err := h.Theme.Set(r.Context(), ownerID, *req.Dark)
	h.respond(w, r, ownerID, pref, err)
}

// ToggleTheme flips the effective preference and stores it.
func (h *PreferencesHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())
	pref, err := h.Theme.Toggle(r.Context(), ownerID, preferences.AmbientDark(r))
	h.respond(w, r, ownerID, pref, err)
}

func (h *PreferencesHandler) respond(w http.ResponseWriter, r *http.Request, ownerID string, pref preferences.ThemePreference, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to store theme preference", "error", err)
		httpx.JSON(w, http.StatusServiceUnavailable, api.ErrorResponse{Error: "Failed to store theme preference"})
		return
	}

	if h.Publisher != nil {
		msg := websockets.Message{
			Type:    websockets.MessageTypeThemeChanged,
			OwnerID: ownerID,
			Payload: websockets.ThemeChangedPayload{Dark: pref.Dark},
		}
		if err := h.Publisher.Publish(r.Context(), msg); err != nil {
			slog.ErrorContext(r.Context(), "failed to publish websocket message", "error", err)
		}
	}
	httpx.JSON(w, http.StatusOK, mapping.ToApiTheme(pref))
}
