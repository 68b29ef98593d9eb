package validation

import (
	"encoding/json"
	"testing"

	"github.com/chris/money-movements/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMovement(t *testing.T, body string) api.NewMovement {
	t.Helper()
	var m api.NewMovement
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestStruct(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		m := decodeMovement(t, `{"amount":"12.50","description":"Lunch","category":"Food","type":"expense","date":"2024-03-10"}`)
		assert.Nil(t, v.Struct(m))
	})

	t.Run("Epoch Dates Are Accepted", func(t *testing.T) {
		m := decodeMovement(t, `{"amount":950,"description":"Rent","category":"Housing","type":"pending_payment","date":1709251200000,"due_date":{"seconds":1709856000}}`)
		assert.Nil(t, v.Struct(m))
		assert.Equal(t, int64(1709856000), m.DueDate.Unix())
	})

	t.Run("Field Errors", func(t *testing.T) {
		m := decodeMovement(t, `{"amount":"-3","description":"","category":"Food","type":"gift","date":"not a date","due_date":"31/31/2024"}`)

		errs := v.Struct(m)

		assert.Equal(t, "must be greater than 0", errs["amount"])
		assert.Equal(t, "is required", errs["description"])
		assert.Equal(t, "must be one of: income, expense, pending_payment", errs["type"])
		assert.Equal(t, "must be a valid date", errs["date"])
		assert.Equal(t, "must be a valid date", errs["due_date"])
		assert.NotContains(t, errs, "category")
	})

	t.Run("Missing Amount And Date", func(t *testing.T) {
		m := decodeMovement(t, `{"description":"x","category":"y","type":"income"}`)

		errs := v.Struct(m)

		assert.Equal(t, "is required", errs["amount"])
		assert.Equal(t, "must be a valid date", errs["date"])
	})

	t.Run("Profile", func(t *testing.T) {
		errs := v.Struct(api.Profile{FirstName: "Ana"})
		assert.Equal(t, map[string]string{"last_name": "is required"}, errs)
	})

	t.Run("Theme", func(t *testing.T) {
		assert.Equal(t, "is required", v.Struct(api.SetThemeRequest{})["dark"])
		dark := false
		assert.Nil(t, v.Struct(api.SetThemeRequest{Dark: &dark}))
	})
}
