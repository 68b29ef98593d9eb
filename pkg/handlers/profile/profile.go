package profile

import (
	"net/http"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/handlers/httpx"
	"github.com/chris/money-movements/pkg/mapping"
	"github.com/chris/money-movements/pkg/storage"
	"github.com/chris/money-movements/pkg/validation"
)

// ProfileHandler serves the signed-in user and their profile.
type ProfileHandler struct {
	Store     storage.UserStore
	Validator *validation.Validator
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(store storage.UserStore) *ProfileHandler {
	return &ProfileHandler{Store: store, Validator: validation.New()}
}

// GetMe returns the signed-in user.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, r, auth.ErrInvalidCredential)
		return
	}
	httpx.JSON(w, http.StatusOK, mapping.ToApiUser(user))
}

// GetProfile returns the first and last name of the signed-in user.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUser(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		httpx.StoreError(w, r, "retrieve profile", err)
		return
	}
	httpx.JSON(w, http.StatusOK, api.Profile{FirstName: user.FirstName, LastName: user.LastName})
}

// UpdateProfile replaces the first and last name. Both are required.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in api.Profile
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	profile := mapping.ToDomainProfile(&in)
	in = api.Profile{FirstName: profile.FirstName, LastName: profile.LastName}
	if fields := h.Validator.Struct(&in); fields != nil {
		httpx.ValidationFailed(w, fields)
		return
	}

	user, err := h.Store.UpdateProfile(r.Context(), auth.OwnerID(r.Context()), profile)
	if err != nil {
		httpx.StoreError(w, r, "update profile", err)
		return
	}
	httpx.JSON(w, http.StatusOK, api.Profile{FirstName: user.FirstName, LastName: user.LastName})
}
