package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	authhandler "github.com/chris/money-movements/pkg/handlers/auth"
	"github.com/chris/money-movements/pkg/handlers/httpx"
	"github.com/chris/money-movements/pkg/metrics"
	mw "github.com/chris/money-movements/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// apiTimeout bounds every /api request except the live stream.
const apiTimeout = 60 * time.Second

// RouterConfig carries everything the router mounts.
type RouterConfig struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Auth        *auth.Service
	AuthHandler *authhandler.AuthHandler
	Api         api.ServerInterface
	Live        http.Handler

	// Production enables HSTS and the HTTPS redirect.
	Production             bool
	AuthRateLimitPerMinute int
}

// NewRouter assembles the HTTP surface: /auth, the session-guarded /api, and the ops endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.NewStructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cfg.Metrics.Middleware)
	r.Use(mw.SecureHeaders(cfg.Production))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", cfg.Metrics.Handler())

	authLimit := mw.AuthRateLimit(cfg.AuthRateLimitPerMinute)
	r.Group(func(r chi.Router) {
		r.Use(authLimit)
		cfg.AuthHandler.LoginRoutes(r)
	})
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimit)
		cfg.AuthHandler.Routes(r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.Auth.RequireUser)
		if cfg.Live != nil {
			r.Get("/live", cfg.Live.ServeHTTP)
		}
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(apiTimeout))
			api.HandlerWithOptions(cfg.Api, api.ChiServerOptions{
				BaseRouter: r,
				ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
					httpx.JSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
				},
			})
		})
	})

	return r
}
