package dynamodb

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDate = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	testDue  = time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
)

func testMovement(id string, typ models.MovementType) models.Movement {
	m := models.Movement{
		ID:          id,
		OwnerID:     "owner-1",
		Amount:      decimal.RequireFromString("12.50"),
		Description: "groceries",
		Category:    "food",
		Type:        typ,
		Date:        testDate,
		CreatedAt:   testDate,
		UpdatedAt:   testDate,
	}
	if typ == models.PendingPayment {
		due := testDue
		m.DueDate = &due
		m.Status = models.Pending
	}
	return m
}

func movementAV(t *testing.T, m models.Movement) map[string]types.AttributeValue {
	t.Helper()
	av, err := marshalMovement(&m)
	require.NoError(t, err)
	return av
}

func TestMovementItemRoundTrip(t *testing.T) {
	m := testMovement("m1", models.PendingPayment)

	av := movementAV(t, m)

	assert.Equal(t, &types.AttributeValueMemberN{Value: "12.5"}, av["amount"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-01-15T10:00:00Z"}, av["date"])
	assert.NotContains(t, av, "reminder_sent_at")

	got, err := unmarshalMovement(av, time.UTC)
	require.NoError(t, err)
	assert.True(t, m.Amount.Equal(got.Amount))
	assert.True(t, m.Date.Equal(got.Date))
	require.NotNil(t, got.DueDate)
	assert.True(t, testDue.Equal(*got.DueDate))
	assert.Equal(t, models.Pending, got.Status)
}

func TestMovementItemLegacyDates(t *testing.T) {
	av := movementAV(t, testMovement("m1", models.Expense))

	t.Run("Epoch Millis", func(t *testing.T) {
		av["date"] = &types.AttributeValueMemberN{Value: "1705312800000"}
		got, err := unmarshalMovement(av, time.UTC)
		require.NoError(t, err)
		assert.True(t, testDate.Equal(got.Date))
	})

	t.Run("Timestamp Object", func(t *testing.T) {
		av["date"] = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"seconds":     &types.AttributeValueMemberN{Value: "1705312800"},
			"nanoseconds": &types.AttributeValueMemberN{Value: "0"},
		}}
		got, err := unmarshalMovement(av, time.UTC)
		require.NoError(t, err)
		assert.True(t, testDate.Equal(got.Date))
	})

	t.Run("String Amount", func(t *testing.T) {
		av["amount"] = &types.AttributeValueMemberS{Value: "7.25"}
		got, err := unmarshalMovement(av, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, "7.25", got.Amount.String())
	})
}

func TestMovementItemServiceZone(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	t.Run("Due Date Keeps Its Calendar Day", func(t *testing.T) {
		m := testMovement("m1", models.PendingPayment)
		due := time.Date(2024, time.February, 10, 0, 0, 0, 0, madrid)
		m.DueDate = &due

		av := movementAV(t, m)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-02-09T23:00:00Z"}, av["due_date"])

		got, err := unmarshalMovement(av, madrid)
		require.NoError(t, err)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, "2024-02-10", got.DueDate.Format("2006-01-02"))
		assert.Equal(t, madrid, got.DueDate.Location())
	})

	t.Run("Zone-less Legacy String", func(t *testing.T) {
		av := movementAV(t, testMovement("m1", models.Expense))
		av["date"] = &types.AttributeValueMemberS{Value: "2024-02-01"}

		got, err := unmarshalMovement(av, madrid)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, madrid), got.Date)
	})

	t.Run("Listed Movements", func(t *testing.T) {
		av := movementAV(t, testMovement("m1", models.PendingPayment))

		got, err := unmarshalMovements([]map[string]types.AttributeValue{av}, madrid)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, madrid, got[0].Date.Location())
		assert.True(t, testDate.Equal(got[0].Date))
	})
}
