package movements

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/handlers/httpx"
	"github.com/chris/money-movements/pkg/mapping"
	"github.com/chris/money-movements/pkg/metrics"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/chris/money-movements/pkg/scheduler"
	"github.com/chris/money-movements/pkg/storage"
	"github.com/chris/money-movements/pkg/validation"
	"github.com/chris/money-movements/pkg/websockets"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"golang.org/x/sync/errgroup"
)

// Actions reported in movementsChanged messages and write metrics.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionSettled = "settled"
)

// DefaultReminderWindow is how long before its due date a pending payment gets a reminder.
const DefaultReminderWindow = 72 * time.Hour

// MovementsHandler holds the dependencies for movement-related handlers.
type MovementsHandler struct {
	Store     storage.MovementStore
	Scheduler scheduler.ReminderScheduler
	Publisher websockets.Publisher
	Metrics   *metrics.Metrics
	Validator *validation.Validator

	Location       *time.Location
	ReminderWindow time.Duration
	Now            func() time.Time
}

// NewMovementsHandler creates a new MovementsHandler.
func NewMovementsHandler(store storage.MovementStore, scheduler scheduler.ReminderScheduler, publisher websockets.Publisher) *MovementsHandler {
	return &MovementsHandler{
		Store:          store,
		Scheduler:      scheduler,
		Publisher:      publisher,
		Validator:      validation.New(),
		Location:       time.Local,
		ReminderWindow: DefaultReminderWindow,
		Now:            time.Now,
	}
}

// ListMovements returns the owner's movements, most recent first, narrowed by the query filters.
func (h *MovementsHandler) ListMovements(w http.ResponseWriter, r *http.Request, params api.ListMovementsParams) {
	ms, err := h.Store.ListMovements(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		httpx.StoreError(w, r, "list movements", err)
		return
	}

	filter := movements.Filter{Location: h.Location}
	if params.Type != nil {
		filter.Type = models.MovementType(*params.Type)
	}
	if params.Category != nil {
		filter.Category = *params.Category
	}
	if params.Year != nil {
		filter.Year = *params.Year
	}

	httpx.JSON(w, http.StatusOK, mapping.ToApiMovements(filter.Apply(ms)))
}

// CreateMovement records a new movement. Pending payments start as pending and
// default their due date to the movement date.
func (h *MovementsHandler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	ownerID := auth.OwnerID(r.Context())

	created, err := h.Store.CreateMovement(r.Context(), mapping.ToDomainNewMovement(in, ownerID, h.Location))
	h.Metrics.MovementWrite(ActionCreated, err)
	if err != nil {
		httpx.StoreError(w, r, "create movement", err)
		return
	}

	h.remindIfDue(r.Context(), created)
	h.publish(r.Context(), ownerID, created.ID, ActionCreated)

	httpx.JSON(w, http.StatusCreated, mapping.ToApiMovement(created))
}

// GetMovement returns one of the owner's movements.
func (h *MovementsHandler) GetMovement(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID) {
	m, err := h.Store.GetMovement(r.Context(), auth.OwnerID(r.Context()), movementId.String())
	if err != nil {
		httpx.StoreError(w, r, "retrieve movement", err)
		return
	}
	httpx.JSON(w, http.StatusOK, mapping.ToApiMovement(m))
}

// UpdateMovement overwrites the editable fields of a movement.
func (h *MovementsHandler) UpdateMovement(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	ownerID := auth.OwnerID(r.Context())

	m := mapping.ToDomainNewMovement(in, ownerID, h.Location)
	m.ID = movementId.String()
	if m.Type == models.PendingPayment {
		// Editing never settles; the explicit transition does.
		m.Status = models.Pending
	}

	updated, err := h.Store.UpdateMovement(r.Context(), m)
	h.Metrics.MovementWrite(ActionUpdated, err)
	if err != nil {
		httpx.StoreError(w, r, "update movement", err)
		return
	}

	h.remindIfDue(r.Context(), updated)
	h.publish(r.Context(), ownerID, updated.ID, ActionUpdated)

	httpx.JSON(w, http.StatusOK, mapping.ToApiMovement(updated))
}

// DeleteMovement removes a movement.
func (h *MovementsHandler) DeleteMovement(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID) {
	ownerID := auth.OwnerID(r.Context())

	err := h.Store.DeleteMovement(r.Context(), ownerID, movementId.String())
	h.Metrics.MovementWrite(ActionDeleted, err)
	if err != nil {
		httpx.StoreError(w, r, "delete movement", err)
		return
	}

	h.publish(r.Context(), ownerID, movementId.String(), ActionDeleted)
	w.WriteHeader(http.StatusNoContent)
}

// ListPendingPayments returns the payments still awaiting settlement, earliest due first,
// along with the settled ones.
func (h *MovementsHandler) ListPendingPayments(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())

	var pending, all []models.Movement
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		pending, err = h.Store.ListPendingPayments(ctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = h.Store.ListMovements(ctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		httpx.StoreError(w, r, "list pending payments", err)
		return
	}

	partition := movements.PartitionPendingPayments(all)
	partition.Pending = pending
	httpx.JSON(w, http.StatusOK, mapping.ToApiPendingPayments(partition))
}

// SettlePendingPayment turns a pending payment into an expense dated now.
func (h *MovementsHandler) SettlePendingPayment(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID) {
	ownerID := auth.OwnerID(r.Context())

	m, err := h.Store.GetMovement(r.Context(), ownerID, movementId.String())
	if err != nil {
		httpx.StoreError(w, r, "retrieve movement", err)
		return
	}

	settled, err := movements.MarkPendingPaymentSettled(*m, h.now())
	if err != nil {
		if errors.Is(err, movements.ErrNotSettleable) {
			httpx.JSON(w, http.StatusConflict, api.ErrorResponse{Error: err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	err = h.Store.SettleMovement(r.Context(), &settled)
	h.Metrics.MovementWrite(ActionSettled, err)
	if err != nil {
		httpx.StoreError(w, r, "settle pending payment", err)
		return
	}

	h.publish(r.Context(), ownerID, settled.ID, ActionSettled)
	httpx.JSON(w, http.StatusOK, mapping.ToApiMovement(&settled))
}

func (h *MovementsHandler) decode(w http.ResponseWriter, r *http.Request) (*api.NewMovement, bool) {
	var in api.NewMovement
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.BadRequest(w, err)
		return nil, false
	}
	if fields := h.Validator.Struct(&in); fields != nil {
		httpx.ValidationFailed(w, fields)
		return nil, false
	}
	return &in, true
}

// remindIfDue enqueues a reminder straight away for a pending payment that is already
// inside the reminder window. Later ones are picked up by the reminder sweep.
func (h *MovementsHandler) remindIfDue(ctx context.Context, m *models.Movement) {
	if h.Scheduler == nil || !m.IsPending() || m.ReminderSentAt != nil {
		return
	}
	if len(movements.DueWithin([]models.Movement{*m}, h.now(), h.ReminderWindow)) == 0 {
		return
	}
	if err := h.Scheduler.ScheduleReminder(ctx, scheduler.ReminderFor(*m), 0); err != nil {
		// The sweep retries it; the write itself succeeded.
		slog.ErrorContext(ctx, "failed to enqueue payment reminder", "movementId", m.ID, "error", err)
	}
}

func (h *MovementsHandler) publish(ctx context.Context, ownerID, movementID, action string) {
	if h.Publisher == nil {
		return
	}
	msg := websockets.Message{
		Type:    websockets.MessageTypeMovementsChanged,
		OwnerID: ownerID,
		Payload: websockets.MovementsChangedPayload{MovementID: movementID, Action: action},
	}
	if err := h.Publisher.Publish(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish websocket message", "error", err)
	}
}

func (h *MovementsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
