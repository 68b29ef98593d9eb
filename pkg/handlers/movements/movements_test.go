package movements

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/scheduler"
	scheduler_mocks "github.com/chris/money-movements/pkg/scheduler/mocks"
	"github.com/chris/money-movements/pkg/storage"
	storage_mocks "github.com/chris/money-movements/pkg/storage/mocks"
	"github.com/chris/money-movements/pkg/websockets"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ownerID = "user-1"

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	messages []websockets.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, message websockets.Message) error {
	p.messages = append(p.messages, message)
	return nil
}

func newHandler(store *storage_mocks.ApiStore, sched scheduler.ReminderScheduler, pub websockets.Publisher) *MovementsHandler {
	h := NewMovementsHandler(store, sched, pub)
	h.Location = time.UTC
	h.Now = func() time.Time { return now }
	return h
}

func newRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	return req.WithContext(auth.WithUser(req.Context(), &models.User{ID: ownerID}))
}

func TestCreateMovement(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// 1. Setup
		mockStorage := new(storage_mocks.ApiStore)
		mockScheduler := new(scheduler_mocks.ReminderScheduler)
		publisher := &recordingPublisher{}
		handler := newHandler(mockStorage, mockScheduler, publisher)

		created := &models.Movement{
			ID:       uuid.New().String(),
			OwnerID:  ownerID,
			Amount:   decimal.NewFromInt(40),
			Category: "Food",
			Type:     models.Expense,
			Date:     now,
		}

		// 2. Mock expectations
		mockStorage.On("CreateMovement", mock.Anything, mock.MatchedBy(func(m *models.Movement) bool {
			return m.OwnerID == ownerID && m.Type == models.Expense && m.Amount.Equal(decimal.NewFromInt(40))
		})).Return(created, nil)

		// 3. Execute
		req := newRequest(http.MethodPost, "/api/movements", `{"amount":"40","description":"Lunch","category":"Food","type":"expense","date":"2024-03-01"}`)
		rr := httptest.NewRecorder()
		handler.CreateMovement(rr, req)

		// 4. Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), created.ID)
		require.Len(t, publisher.messages, 1)
		assert.Equal(t, websockets.MessageTypeMovementsChanged, publisher.messages[0].Type)
		assert.Equal(t, ownerID, publisher.messages[0].OwnerID)
		mockStorage.AssertExpectations(t)
		mockScheduler.AssertNotCalled(t, "ScheduleReminder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Plain Date In Configured Zone", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, new(scheduler_mocks.ReminderScheduler), new(websockets.NoOpPublisher))
		mexico, err := time.LoadLocation("America/Mexico_City")
		require.NoError(t, err)
		handler.Location = mexico

		want := time.Date(2024, 2, 1, 0, 0, 0, 0, mexico)
		mockStorage.On("CreateMovement", mock.Anything, mock.MatchedBy(func(m *models.Movement) bool {
			return m.Date.Equal(want) && m.Date.In(mexico).Month() == time.February
		})).Return(&models.Movement{ID: "m-1", OwnerID: ownerID, Type: models.Income, Date: want}, nil)

		req := newRequest(http.MethodPost, "/api/movements", `{"amount":"100","description":"Pay","category":"Salary","type":"income","date":"2024-02-01"}`)
		rr := httptest.NewRecorder()
		handler.CreateMovement(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Pending Payment Due Soon", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockScheduler := new(scheduler_mocks.ReminderScheduler)
		handler := newHandler(mockStorage, mockScheduler, new(websockets.NoOpPublisher))

		due := now.Add(24 * time.Hour)
		created := &models.Movement{
			ID:       uuid.New().String(),
			OwnerID:  ownerID,
			Amount:   decimal.NewFromInt(950),
			Category: "Housing",
			Type:     models.PendingPayment,
			Status:   models.Pending,
			Date:     now,
			DueDate:  &due,
		}

		mockStorage.On("CreateMovement", mock.Anything, mock.AnythingOfType("*models.Movement")).Return(created, nil)
		mockScheduler.On("ScheduleReminder", mock.Anything, mock.MatchedBy(func(r scheduler.Reminder) bool {
			return r.MovementID == created.ID && r.OwnerID == ownerID && r.Amount == "950" && r.DueDate.Equal(due)
		}), time.Duration(0)).Return(nil)

		req := newRequest(http.MethodPost, "/api/movements", `{"amount":950,"description":"Rent","category":"Housing","type":"pending_payment","date":"2024-03-01","due_date":"2024-03-02"}`)
		rr := httptest.NewRecorder()
		handler.CreateMovement(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"pending"`)
		mockStorage.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Pending Payment Due Later", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockScheduler := new(scheduler_mocks.ReminderScheduler)
		handler := newHandler(mockStorage, mockScheduler, new(websockets.NoOpPublisher))

		due := now.AddDate(0, 1, 0)
		created := &models.Movement{ID: "m-1", OwnerID: ownerID, Type: models.PendingPayment, Status: models.Pending, Date: now, DueDate: &due}
		mockStorage.On("CreateMovement", mock.Anything, mock.AnythingOfType("*models.Movement")).Return(created, nil)

		req := newRequest(http.MethodPost, "/api/movements", `{"amount":950,"description":"Rent","category":"Housing","type":"pending_payment","date":"2024-03-01","due_date":"2024-04-01"}`)
		rr := httptest.NewRecorder()
		handler.CreateMovement(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockScheduler.AssertNotCalled(t, "ScheduleReminder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Validation Error", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, new(websockets.NoOpPublisher))

		req := newRequest(http.MethodPost, "/api/movements", `{"amount":"-3","description":"","category":"Food","type":"expense","date":"not a date"}`)
		rr := httptest.NewRecorder()
		handler.CreateMovement(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), `"amount":"must be greater than 0"`)
		assert.Contains(t, rr.Body.String(), `"description":"is required"`)
		assert.Contains(t, rr.Body.String(), `"date":"must be a valid date"`)
		mockStorage.AssertNotCalled(t, "CreateMovement", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, new(websockets.NoOpPublisher))

		req := newRequest(http.MethodPost, "/api/movements", `{"amount":`)
		rr := httptest.NewRecorder()
		handler.CreateMovement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		publisher := &recordingPublisher{}
		handler := newHandler(mockStorage, nil, publisher)

		mockStorage.On("CreateMovement", mock.Anything, mock.AnythingOfType("*models.Movement")).Return(nil, errors.New("dynamodb error"))

		req := newRequest(http.MethodPost, "/api/movements", `{"amount":"40","description":"Lunch","category":"Food","type":"expense","date":"2024-03-01"}`)
		rr := httptest.NewRecorder()
		handler.CreateMovement(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Body.String(), "Failed to create movement"))
		assert.Empty(t, publisher.messages)
	})
}

func TestListMovements(t *testing.T) {
	ms := []models.Movement{
		{ID: "1", OwnerID: ownerID, Type: models.Income, Category: "Salary", Amount: decimal.NewFromInt(100), Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", OwnerID: ownerID, Type: models.Expense, Category: "Food", Amount: decimal.NewFromInt(20), Date: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)},
		{ID: "3", OwnerID: ownerID, Type: models.Expense, Category: "Food", Amount: decimal.NewFromInt(15), Date: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("ListMovements", mock.Anything, ownerID).Return(ms, nil)

		expense := api.Expense
		year := 2024
		rr := httptest.NewRecorder()
		handler.ListMovements(rr, newRequest(http.MethodGet, "/api/movements", ""), api.ListMovementsParams{Type: &expense, Year: &year})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"3"`)
		assert.NotContains(t, rr.Body.String(), `"id":"1"`)
		assert.NotContains(t, rr.Body.String(), `"id":"2"`)
	})

	t.Run("Empty", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("ListMovements", mock.Anything, ownerID).Return(nil, nil)

		rr := httptest.NewRecorder()
		handler.ListMovements(rr, newRequest(http.MethodGet, "/api/movements", ""), api.ListMovementsParams{})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("ListMovements", mock.Anything, ownerID).Return(nil, errors.New("dynamodb error"))

		rr := httptest.NewRecorder()
		handler.ListMovements(rr, newRequest(http.MethodGet, "/api/movements", ""), api.ListMovementsParams{})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetMovement(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("GetMovement", mock.Anything, ownerID, id.String()).Return(&models.Movement{ID: id.String(), Type: models.Income}, nil)

		rr := httptest.NewRecorder()
		handler.GetMovement(rr, newRequest(http.MethodGet, "/api/movements/"+id.String(), ""), id)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), id.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("GetMovement", mock.Anything, ownerID, id.String()).Return(nil, fmt.Errorf("movement %s: %w", id, storage.ErrNotFound))

		rr := httptest.NewRecorder()
		handler.GetMovement(rr, newRequest(http.MethodGet, "/api/movements/"+id.String(), ""), id)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateMovement(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		publisher := &recordingPublisher{}
		handler := newHandler(mockStorage, nil, publisher)

		mockStorage.On("UpdateMovement", mock.Anything, mock.MatchedBy(func(m *models.Movement) bool {
			return m.ID == id.String() && m.OwnerID == ownerID && m.Description == "Groceries"
		})).Return(&models.Movement{ID: id.String(), OwnerID: ownerID, Type: models.Expense, Description: "Groceries"}, nil)

		req := newRequest(http.MethodPut, "/api/movements/"+id.String(), `{"amount":"55.10","description":"Groceries","category":"Food","type":"expense","date":"2024-02-20"}`)
		rr := httptest.NewRecorder()
		handler.UpdateMovement(rr, req, id)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, publisher.messages, 1)
		assert.Equal(t, ActionUpdated, publisher.messages[0].Payload.(websockets.MovementsChangedPayload).Action)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("UpdateMovement", mock.Anything, mock.AnythingOfType("*models.Movement")).Return(nil, storage.ErrNotFound)

		req := newRequest(http.MethodPut, "/api/movements/"+id.String(), `{"amount":"55.10","description":"Groceries","category":"Food","type":"expense","date":"2024-02-20"}`)
		rr := httptest.NewRecorder()
		handler.UpdateMovement(rr, req, id)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteMovement(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		publisher := &recordingPublisher{}
		handler := newHandler(mockStorage, nil, publisher)
		mockStorage.On("DeleteMovement", mock.Anything, ownerID, id.String()).Return(nil)

		rr := httptest.NewRecorder()
		handler.DeleteMovement(rr, newRequest(http.MethodDelete, "/api/movements/"+id.String(), ""), id)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		require.Len(t, publisher.messages, 1)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("DeleteMovement", mock.Anything, ownerID, id.String()).Return(errors.New("dynamodb error"))

		rr := httptest.NewRecorder()
		handler.DeleteMovement(rr, newRequest(http.MethodDelete, "/api/movements/"+id.String(), ""), id)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestListPendingPayments(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	pending := []models.Movement{{ID: "p-1", OwnerID: ownerID, Type: models.PendingPayment, Status: models.Pending, DueDate: &due}}
	all := append([]models.Movement{
		{ID: "p-0", OwnerID: ownerID, Type: models.PendingPayment, Status: models.Settled},
		{ID: "e-1", OwnerID: ownerID, Type: models.Expense},
	}, pending...)

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("ListPendingPayments", mock.Anything, ownerID).Return(pending, nil)
		mockStorage.On("ListMovements", mock.Anything, ownerID).Return(all, nil)

		rr := httptest.NewRecorder()
		handler.ListPendingPayments(rr, newRequest(http.MethodGet, "/api/pending-payments", ""))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, `"pending":[{"id":"p-1"`)
		assert.Contains(t, body, `"settled":[{"id":"p-0"`)
		assert.NotContains(t, body, `"e-1"`)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("ListPendingPayments", mock.Anything, ownerID).Return(nil, errors.New("dynamodb error"))
		mockStorage.On("ListMovements", mock.Anything, ownerID).Return(all, nil).Maybe()

		rr := httptest.NewRecorder()
		handler.ListPendingPayments(rr, newRequest(http.MethodGet, "/api/pending-payments", ""))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestSettlePendingPayment(t *testing.T) {
	id := uuid.New()
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		publisher := &recordingPublisher{}
		handler := newHandler(mockStorage, nil, publisher)

		stored := &models.Movement{ID: id.String(), OwnerID: ownerID, Type: models.PendingPayment, Status: models.Pending, Amount: decimal.NewFromInt(25), Date: due, DueDate: &due}
		mockStorage.On("GetMovement", mock.Anything, ownerID, id.String()).Return(stored, nil)
		mockStorage.On("SettleMovement", mock.Anything, mock.MatchedBy(func(m *models.Movement) bool {
			return m.Type == models.Expense && m.Status == models.Settled && m.Date.Equal(now)
		})).Return(nil)

		rr := httptest.NewRecorder()
		handler.SettlePendingPayment(rr, newRequest(http.MethodPost, "/api/pending-payments/"+id.String()+"/settle", ""), id)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"type":"expense"`)
		assert.Contains(t, rr.Body.String(), `"status":"settled"`)
		require.Len(t, publisher.messages, 1)
		assert.Equal(t, ActionSettled, publisher.messages[0].Payload.(websockets.MovementsChangedPayload).Action)
		// The stored copy is untouched.
		assert.Equal(t, models.PendingPayment, stored.Type)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Pending", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("GetMovement", mock.Anything, ownerID, id.String()).Return(&models.Movement{ID: id.String(), Type: models.Expense}, nil)

		rr := httptest.NewRecorder()
		handler.SettlePendingPayment(rr, newRequest(http.MethodPost, "/", ""), id)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertNotCalled(t, "SettleMovement", mock.Anything, mock.Anything)
	})

	t.Run("Settled Concurrently", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("GetMovement", mock.Anything, ownerID, id.String()).Return(&models.Movement{ID: id.String(), Type: models.PendingPayment, Status: models.Pending}, nil)
		mockStorage.On("SettleMovement", mock.Anything, mock.AnythingOfType("*models.Movement")).Return(storage.ErrMovementNotPending)

		rr := httptest.NewRecorder()
		handler.SettlePendingPayment(rr, newRequest(http.MethodPost, "/", ""), id)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, nil, nil)
		mockStorage.On("GetMovement", mock.Anything, ownerID, id.String()).Return(nil, storage.ErrNotFound)

		rr := httptest.NewRecorder()
		handler.SettlePendingPayment(rr, newRequest(http.MethodPost, "/", ""), id)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
