package preferences

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/preferences"
	"github.com/chris/money-movements/pkg/websockets"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerID = "user-1"

type recordingPublisher struct {
	messages []websockets.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, message websockets.Message) error {
	p.messages = append(p.messages, message)
	return nil
}

func newTestHandler(t *testing.T) (*PreferencesHandler, *recordingPublisher, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	publisher := &recordingPublisher{}
	return NewPreferencesHandler(preferences.NewTheme(preferences.NewRedisStore(client)), publisher), publisher, mr
}

func newRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/api/preferences/theme", strings.NewReader(body))
	return req.WithContext(auth.WithUser(req.Context(), &models.User{ID: ownerID}))
}

func TestGetTheme(t *testing.T) {
	t.Run("Ambient", func(t *testing.T) {
		handler, _, _ := newTestHandler(t)
		req := newRequest(http.MethodGet, "")
		req.Header.Set(preferences.ColorSchemeHeader, "dark")

		rr := httptest.NewRecorder()
		handler.GetTheme(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"dark":true,"source":"ambient"}`, rr.Body.String())
	})

	t.Run("Stored", func(t *testing.T) {
		handler, _, mr := newTestHandler(t)
		require.NoError(t, mr.Set("preferences:"+ownerID+":dark_mode", "true"))

		rr := httptest.NewRecorder()
		handler.GetTheme(rr, newRequest(http.MethodGet, ""))

		assert.JSONEq(t, `{"dark":true,"source":"stored"}`, rr.Body.String())
	})
}

func TestSetTheme(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, publisher, mr := newTestHandler(t)
		sub := handler.Theme.Subscribe(ownerID)
		defer sub.Close()

		rr := httptest.NewRecorder()
		handler.SetTheme(rr, newRequest(http.MethodPut, `{"dark":false}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"dark":false,"source":"stored"}`, rr.Body.String())
		v, err := mr.Get("preferences:" + ownerID + ":dark_mode")
		require.NoError(t, err)
		assert.Equal(t, "false", v)
		require.Len(t, publisher.messages, 1)
		assert.Equal(t, websockets.MessageTypeThemeChanged, publisher.messages[0].Type)

		select {
		case dark := <-sub.C():
			assert.False(t, dark)
		case <-time.After(time.Second):
			t.Fatal("subscriber was not notified")
		}
	})

	t.Run("Missing Flag", func(t *testing.T) {
		handler, publisher, _ := newTestHandler(t)

		rr := httptest.NewRecorder()
		handler.SetTheme(rr, newRequest(http.MethodPut, `{}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Empty(t, publisher.messages)
	})

	t.Run("Store Down", func(t *testing.T) {
		handler, publisher, mr := newTestHandler(t)
		mr.Close()

		rr := httptest.NewRecorder()
		handler.SetTheme(rr, newRequest(http.MethodPut, `{"dark":true}`))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Empty(t, publisher.messages)
	})
}

func TestToggleTheme(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ToggleTheme(rr, newRequest(http.MethodPost, ""))
	assert.JSONEq(t, `{"dark":true,"source":"stored"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ToggleTheme(rr, newRequest(http.MethodPost, ""))
	assert.JSONEq(t, `{"dark":false,"source":"stored"}`, rr.Body.String())
}
