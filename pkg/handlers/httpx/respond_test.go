package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/money-movements/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Not Found", fmt.Errorf("movement x: %w", storage.ErrNotFound), http.StatusNotFound},
		{"Not Pending", storage.ErrMovementNotPending, http.StatusConflict},
		{"Storage Error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			StoreError(rr, req, "list movements", tc.err)

			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"dark":true,"extra":1}`))
	var body struct {
		Dark bool `json:"dark"`
	}

	err := DecodeJSON(req, &body)

	assert.Error(t, err)
}

func TestValidationFailed(t *testing.T) {
	rr := httptest.NewRecorder()

	ValidationFailed(rr, map[string]string{"amount": "is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"errors":{"amount":"is required"}}`, rr.Body.String())
}
