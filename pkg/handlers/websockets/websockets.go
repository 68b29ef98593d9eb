package websockets

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/websockets"
)

// TokenParam is the query string parameter carrying the session token on $connect.
const TokenParam = "token"

// connectionTTL bounds how long a connection record outlives a missed $disconnect.
const connectionTTL = 24 * time.Hour

// UserResolver resolves a session token to its user.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Handler handles API Gateway websocket routes.
type Handler struct {
	connManager websockets.ConnectionManager
	users       UserResolver
	now         func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(connManager websockets.ConnectionManager, users UserResolver) *Handler {
	return &Handler{
		connManager: connManager,
		users:       users,
		now:         time.Now,
	}
}

// HandleConnect binds a new connection to the owner of the session token.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID

	user, err := h.users.CurrentUser(ctx, request.QueryStringParameters[TokenParam])
	if err != nil {
		slog.Warn("rejected websocket connection", "connectionId", connectionID, "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized}, nil
	}
	slog.Info("Client connected", "connectionId", connectionID, "owner_id", user.ID)

	conn := models.Connection{
		ConnectionID: connectionID,
		OwnerID:      user.ID,
		ConnectedAt:  h.now().UTC(),
		TTL:          h.now().Add(connectionTTL).Unix(),
	}
	if err := h.connManager.AddConnection(ctx, conn); err != nil {
		slog.Error("failed to save connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDisconnect handles client disconnections.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Client disconnected", "connectionId", request.RequestContext.ConnectionID)

	if err := h.connManager.RemoveConnection(ctx, request.RequestContext.ConnectionID); err != nil {
		slog.Error("failed to delete connection ID", "error", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDefault handles messages sent from a client.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("Received message", "connectionId", request.RequestContext.ConnectionID, "body", request.Body)
	// Clients only listen; anything they send is ignored.
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// Route dispatches a request on its route key.
func (h *Handler) Route(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return h.HandleConnect(ctx, request)
	case "$disconnect":
		return h.HandleDisconnect(ctx, request)
	default:
		return h.HandleDefault(ctx, request)
	}
}
