package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/handlers/httpx"
	"github.com/chris/money-movements/pkg/mapping"
	"github.com/chris/money-movements/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// AuthHandler serves sign-up, sign-in and sign-out.
type AuthHandler struct {
	Service      *auth.Service
	Metrics      *metrics.Metrics
	SessionTTL   time.Duration
	SecureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *auth.Service, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{Service: service, SessionTTL: sessionTTL, SecureCookie: secureCookie}
}

// Routes mounts the handlers on r.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/signup", h.SignUp)
	r.Post("/signin", h.SignIn)
	r.Post("/signout", h.SignOut)
}

// SignUp registers an account and starts its session.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req api.SignUpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}

	user, token, err := h.Service.SignUp(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	h.Metrics.AuthAttempt("signup", auth.Code(err))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, h.SessionTTL, h.SecureCookie)
	httpx.JSON(w, http.StatusCreated, mapping.ToApiSession(user, token, time.Now().Add(h.SessionTTL)))
}

// SignIn checks the credentials and starts a session.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req api.SignInRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}

	user, token, err := h.Service.SignIn(r.Context(), req.Email, req.Password)
	h.Metrics.AuthAttempt("signin", auth.Code(err))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, h.SessionTTL, h.SecureCookie)
	httpx.JSON(w, http.StatusOK, mapping.ToApiSession(user, token, time.Now().Add(h.SessionTTL)))
}

// SignOut ends the current session. It succeeds without one.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromRequest(r); token != "" {
		if err := h.Service.SignOut(r.Context(), token); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	auth.ClearSessionCookie(w, h.SecureCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := auth.Code(err)
	if code == "" || code == auth.CodeNetworkRequestFailed {
		slog.ErrorContext(r.Context(), "authentication failed", "error", err)
	}
	httpx.JSON(w, status(code), api.ErrorResponse{Error: auth.Message(err), Code: code})
}

func status(code string) int {
	switch code {
	case auth.CodeInvalidEmail, auth.CodeWeakPassword, auth.CodePasswordsMismatch:
		return http.StatusUnprocessableEntity
	case auth.CodeUserNotFound, auth.CodeWrongPassword, auth.CodeInvalidCredential, auth.CodeUserDisabled:
		return http.StatusUnauthorized
	case auth.CodeEmailAlreadyInUse:
		return http.StatusConflict
	case auth.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case auth.CodeNetworkRequestFailed:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
