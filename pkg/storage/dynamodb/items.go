package dynamodb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/shopspring/decimal"
)

const dateLayout = time.RFC3339

// movementItem is the stored shape of a movement.
type movementItem struct {
	ID             string      `dynamodbav:"id"`
	OwnerID        string      `dynamodbav:"owner_id"`
	Amount         amountValue `dynamodbav:"amount"`
	Description    string      `dynamodbav:"description"`
	Category       string      `dynamodbav:"category"`
	Type           string      `dynamodbav:"type"`
	Date           dateValue   `dynamodbav:"date"`
	DueDate        *dateValue  `dynamodbav:"due_date,omitempty"`
	Status         string      `dynamodbav:"status,omitempty"`
	ReminderSentAt *dateValue  `dynamodbav:"reminder_sent_at,omitempty"`
	CreatedAt      dateValue   `dynamodbav:"created_at"`
	UpdatedAt      dateValue   `dynamodbav:"updated_at"`
}

// amountValue stores a decimal as a DynamoDB number without going through float64.
type amountValue decimal.Decimal

func (a amountValue) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: decimal.Decimal(a).String()}, nil
}

func (a *amountValue) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var raw string
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		raw = v.Value
	case *types.AttributeValueMemberS:
		raw = v.Value
	default:
		return fmt.Errorf("unsupported amount attribute %T", av)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("failed to parse amount %q: %w", raw, err)
	}
	*a = amountValue(d)
	return nil
}

// dateValue is written as an RFC3339 UTC string so GSI range keys sort chronologically.
// Any stored representation is accepted on read; the raw value is kept so zone-less
// legacy strings can be read in the store's location.
type dateValue struct {
	t   time.Time
	raw any
}

func (d dateValue) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: formatDate(d.t)}, nil
}

func (d *dateValue) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		d.raw = v.Value
	case *types.AttributeValueMemberN:
		d.raw = v.Value
	case *types.AttributeValueMemberM:
		var m map[string]any
		if err := attributevalue.UnmarshalMap(v.Value, &m); err != nil {
			return fmt.Errorf("failed to unmarshal timestamp object: %w", err)
		}
		d.raw = m
	case *types.AttributeValueMemberNULL:
		d.raw = nil
	default:
		return fmt.Errorf("unsupported date attribute %T", av)
	}
	d.t = movements.ToCalendarDate(d.raw)
	return nil
}

// in returns the date as wall time in loc.
func (d dateValue) in(loc *time.Location) time.Time {
	t := d.t
	if d.raw != nil {
		t = movements.ToCalendarDateIn(d.raw, loc)
	}
	if t.IsZero() {
		return t
	}
	return t.In(loc)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func dateAV(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: formatDate(t)}
}

func datePtr(t *time.Time) *dateValue {
	if t == nil {
		return nil
	}
	return &dateValue{t: *t}
}

func timePtr(d *dateValue, loc *time.Location) *time.Time {
	if d == nil {
		return nil
	}
	t := d.in(loc)
	return &t
}

func toItem(m *models.Movement) movementItem {
	return movementItem{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Amount:         amountValue(m.Amount),
		Description:    m.Description,
		Category:       m.Category,
		Type:           string(m.Type),
		Date:           dateValue{t: m.Date},
		DueDate:        datePtr(m.DueDate),
		Status:         string(m.Status),
		ReminderSentAt: datePtr(m.ReminderSentAt),
		CreatedAt:      dateValue{t: m.CreatedAt},
		UpdatedAt:      dateValue{t: m.UpdatedAt},
	}
}

// toModel converts the item, reading every date in loc.
func (it movementItem) toModel(loc *time.Location) models.Movement {
	if loc == nil {
		loc = time.Local
	}
	return models.Movement{
		ID:             it.ID,
		OwnerID:        it.OwnerID,
		Amount:         decimal.Decimal(it.Amount),
		Description:    it.Description,
		Category:       it.Category,
		Type:           models.MovementType(it.Type),
		Date:           it.Date.in(loc),
		DueDate:        timePtr(it.DueDate, loc),
		Status:         models.PaymentStatus(it.Status),
		ReminderSentAt: timePtr(it.ReminderSentAt, loc),
		CreatedAt:      it.CreatedAt.in(loc),
		UpdatedAt:      it.UpdatedAt.in(loc),
	}
}

func marshalMovement(m *models.Movement) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(toItem(m))
}

func unmarshalMovement(item map[string]types.AttributeValue, loc *time.Location) (models.Movement, error) {
	var it movementItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return models.Movement{}, err
	}
	return it.toModel(loc), nil
}

func unmarshalMovements(items []map[string]types.AttributeValue, loc *time.Location) ([]models.Movement, error) {
	var its []movementItem
	if err := attributevalue.UnmarshalListOfMaps(items, &its); err != nil {
		return nil, err
	}
	out := make([]models.Movement, len(its))
	for i, it := range its {
		out[i] = it.toModel(loc)
	}
	return out, nil
}
