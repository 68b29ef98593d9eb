package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	authhandler "github.com/chris/money-movements/pkg/handlers/auth"
	"github.com/chris/money-movements/pkg/handlers/dashboard"
	"github.com/chris/money-movements/pkg/handlers/exports"
	"github.com/chris/money-movements/pkg/handlers/movements"
	"github.com/chris/money-movements/pkg/handlers/preferences"
	"github.com/chris/money-movements/pkg/handlers/profile"
	"github.com/chris/money-movements/pkg/metrics"
	prefs "github.com/chris/money-movements/pkg/preferences"
	"github.com/chris/money-movements/pkg/storage/memory"
	"github.com/chris/money-movements/pkg/websockets"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, authPerMinute int) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := memory.NewStore()
	theme := prefs.NewTheme(prefs.NewRedisStore(client))
	hub := websockets.NewHub(0)
	m := metrics.New()
	authService := auth.NewService(store, auth.NewRedisSessionStore(client, time.Hour))

	movementsHandler := movements.NewMovementsHandler(store, nil, hub)
	movementsHandler.Metrics = m
	exportsHandler := exports.NewExportsHandler(store, "", theme, time.UTC)
	exportsHandler.Metrics = m
	authHandler := authhandler.NewAuthHandler(authService, time.Hour, false)
	authHandler.Metrics = m

	return NewRouter(RouterConfig{
		Metrics:     m,
		Auth:        authService,
		AuthHandler: authHandler,
		Api: NewApiHandler(
			movementsHandler,
			dashboard.NewDashboardHandler(store, theme, time.UTC),
			exportsHandler,
			profile.NewProfileHandler(store),
			preferences.NewPreferencesHandler(theme, hub),
		),
		AuthRateLimitPerMinute: authPerMinute,
	})
}

type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

func (c *client) signUp() {
	c.t.Helper()
	rr := c.do(http.MethodPost, "/auth/signup", `{"email":"ana@example.com","password":"secret1","confirm_password":"secret1"}`)
	require.Equal(c.t, http.StatusCreated, rr.Code, rr.Body.String())
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == auth.SessionCookieName {
			c.cookie = ck
		}
	}
	require.NotNil(c.t, c.cookie)
}

func TestRouterGuardsApi(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, 100)}

	t.Run("Browser Redirect", func(t *testing.T) {
		rr := c.do(http.MethodGet, "/api/movements", "", "Accept", "text/html,application/xhtml+xml")

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, auth.LoginPath, rr.Header().Get("Location"))
	})

	t.Run("API Client", func(t *testing.T) {
		rr := c.do(http.MethodGet, "/api/movements", "", "Accept", "application/json")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, auth.LoginPath, rr.Header().Get("Location"))
		assert.Contains(t, rr.Body.String(), auth.CodeInvalidCredential)
	})

	t.Run("Login Page Is Served", func(t *testing.T) {
		redirect := c.do(http.MethodGet, "/api/movements", "", "Accept", "text/html")
		require.Equal(t, http.StatusSeeOther, redirect.Code)

		rr := c.do(http.MethodGet, redirect.Header().Get("Location"), "", "Accept", "text/html")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), `action="/login"`)
	})

	t.Run("Health", func(t *testing.T) {
		rr := c.do(http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	})
}

func TestRouterMovementLifecycle(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, 100)}
	c.signUp()

	rr := c.do(http.MethodPost, "/api/movements", `{"amount":"100","description":"Salary","category":"Salary","type":"income","date":"2024-01-15"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = c.do(http.MethodPost, "/api/movements", `{"amount":"25","description":"Water","category":"Bills","type":"pending_payment","date":"2024-02-01","due_date":"2024-02-10"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var pending api.Movement
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pending))
	require.NotNil(t, pending.Status)
	assert.Equal(t, api.Pending, *pending.Status)

	rr = c.do(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var before api.Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &before))
	assert.True(t, before.Summary.TotalExpense.IsZero())
	require.Len(t, before.Pending, 1)

	rr = c.do(http.MethodPost, "/api/pending-payments/"+pending.Id+"/settle", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = c.do(http.MethodGet, "/api/dashboard", "")
	var after api.Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.True(t, decimal.NewFromInt(25).Equal(after.Summary.TotalExpense))
	assert.True(t, decimal.NewFromInt(75).Equal(after.Summary.Balance))
	assert.Empty(t, after.Pending)

	rr = c.do(http.MethodPost, "/api/pending-payments/"+pending.Id+"/settle", "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = c.do(http.MethodGet, "/api/movements?type=expense", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var expenses []api.Movement
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, pending.Id, expenses[0].Id)

	rr = c.do(http.MethodGet, "/api/movements/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = c.do(http.MethodGet, "/api/export/csv?transactions=true", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))

	rr = c.do(http.MethodGet, "/metrics", "")
	assert.Contains(t, rr.Body.String(), "money_movements_movement_writes_total")
	assert.Contains(t, rr.Body.String(), "money_movements_http_requests_total")
}

func TestRouterProfileAndTheme(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, 100)}
	c.signUp()

	rr := c.do(http.MethodPut, "/api/profile", `{"first_name":"Ana","last_name":"Silva"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = c.do(http.MethodGet, "/api/me", "")
	assert.Contains(t, rr.Body.String(), `"first_name":"Ana"`)

	rr = c.do(http.MethodGet, "/api/preferences/theme", "", prefs.ColorSchemeHeader, "dark")
	assert.JSONEq(t, `{"dark":true,"source":"ambient"}`, rr.Body.String())

	rr = c.do(http.MethodPost, "/api/preferences/theme/toggle", "", prefs.ColorSchemeHeader, "dark")
	assert.JSONEq(t, `{"dark":false,"source":"stored"}`, rr.Body.String())

	rr = c.do(http.MethodGet, "/api/dashboard/chart.svg", "", prefs.ColorSchemeHeader, "dark")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
}

func TestRouterRateLimitsAuth(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, 2)}

	for i := 0; i < 2; i++ {
		rr := c.do(http.MethodPost, "/auth/signin", `{"email":"ana@example.com","password":"secret1"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}

	rr := c.do(http.MethodPost, "/auth/signin", `{"email":"ana@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), auth.CodeTooManyRequests)
}
