package websockets

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/mapping"
	"github.com/chris/money-movements/pkg/metrics"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/chris/money-movements/pkg/preferences"
	"github.com/chris/money-movements/pkg/storage"
	"github.com/chris/money-movements/pkg/websockets"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/singleflight"
)

const (
	writeWait    = 10 * time.Second
	pingPeriod   = 30 * time.Second
	snapshotWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections by default for local development.
		return true
	},
}

// LiveHandler streams an owner's dashboard over a websocket: a fresh snapshot on
// connect and after every change, plus theme changes.
type LiveHandler struct {
	Store    storage.MovementReader
	Hub      *websockets.Hub
	Theme    *preferences.Theme
	Metrics  *metrics.Metrics
	Location *time.Location

	// Connections of the same owner share one snapshot per change.
	snapshots singleflight.Group
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(store storage.MovementReader, hub *websockets.Hub, theme *preferences.Theme, loc *time.Location) *LiveHandler {
	if loc == nil {
		loc = time.Local
	}
	return &LiveHandler{Store: store, Hub: hub, Theme: theme, Location: loc}
}

// ServeHTTP upgrades the request and streams until the client goes away.
// Both subscriptions are released on every exit path.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())
	if ownerID == "" {
		auth.Unauthorized(w, r, auth.ErrInvalidCredential)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	changes := h.Hub.Subscribe(ownerID)
	defer changes.Close()
	themes := h.Theme.Subscribe(ownerID)
	defer themes.Close()
	defer h.Metrics.LiveConnected()()

	slog.Info("Client connected locally", "owner_id", ownerID)
	defer slog.Info("Client disconnected locally", "owner_id", ownerID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		// The server doesn't process incoming messages, but reading is how a close is noticed.
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Error("unexpected close error", "error", err)
				}
				return
			}
		}
	}()

	pref, err := h.Theme.Resolve(ctx, ownerID, preferences.AmbientDark(r))
	if err != nil {
		slog.WarnContext(ctx, "failed to resolve theme preference", "error", err)
	}
	if err := h.send(conn, themeMessage(ownerID, pref.Dark)); err != nil {
		return
	}
	if err := h.sendDashboard(ctx, conn, ownerID); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-changes.C():
			if !ok {
				return
			}
			if msg.Type == websockets.MessageTypeMovementsChanged {
				// A read already in flight may predate this change.
				h.snapshots.Forget(ownerID)
				err = h.sendDashboard(ctx, conn, ownerID)
			} else {
				err = h.send(conn, msg)
			}
		case dark, ok := <-themes.C():
			if !ok {
				return
			}
			err = h.send(conn, themeMessage(ownerID, dark))
		case <-ping.C:
			err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		}
		if err != nil {
			slog.Warn("failed to write to live connection", "owner_id", ownerID, "error", err)
			return
		}
	}
}

// sendDashboard recomputes the dashboard from a fresh snapshot. The shared read is detached
// from ctx so one connection going away does not fail the others waiting on it.
func (h *LiveHandler) sendDashboard(ctx context.Context, conn *websocket.Conn, ownerID string) error {
	dashboard, err, _ := h.snapshots.Do(ownerID, func() (interface{}, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotWait)
		defer cancel()
		ms, err := h.Store.ListMovements(readCtx, ownerID)
		if err != nil {
			return nil, err
		}
		return mapping.ToApiDashboard(movements.BuildDashboard(ms, h.Location)), nil
	})
	if err != nil {
		// A failed refresh is reported and the stream stays open for the next change.
		slog.ErrorContext(ctx, "failed to list movements for live dashboard", "error", err)
		return nil
	}
	return h.send(conn, websockets.Message{
		Type:    websockets.MessageTypeDashboard,
		OwnerID: ownerID,
		Payload: dashboard,
	})
}

func (h *LiveHandler) send(conn *websocket.Conn, msg websockets.Message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func themeMessage(ownerID string, dark bool) websockets.Message {
	return websockets.Message{
		Type:    websockets.MessageTypeThemeChanged,
		OwnerID: ownerID,
		Payload: websockets.ThemeChangedPayload{Dark: dark},
	}
}
