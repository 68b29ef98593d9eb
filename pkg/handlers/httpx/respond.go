// Package httpx holds the response helpers shared by the handler packages.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/middleware"
	"github.com/chris/money-movements/pkg/storage"
)

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// DecodeJSON decodes the request body into target, rejecting unknown fields.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// BadRequest answers a body that could not be decoded.
func BadRequest(w http.ResponseWriter, err error) {
	http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
}

// ValidationFailed answers a request whose fields failed validation.
func ValidationFailed(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, api.ValidationErrorResponse{Errors: fields})
}

// StoreError maps a storage failure to a response. action completes "Failed to ...".
func StoreError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		JSON(w, http.StatusNotFound, api.ErrorResponse{Error: "Not found"})
	case errors.Is(err, storage.ErrMovementNotPending):
		JSON(w, http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		middleware.WithOwner(slog.Default(), r).ErrorContext(r.Context(), "storage failure", "action", action, "error", err)
		http.Error(w, fmt.Sprintf("Failed to %s: %v", action, err), http.StatusInternalServerError)
	}
}
