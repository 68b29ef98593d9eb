package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType defines the kind of a financial movement.
type MovementType string

const (
	Income         MovementType = "income"
	Expense        MovementType = "expense"
	PendingPayment MovementType = "pending_payment"
)

// Valid reports whether t is one of the known movement types.
func (t MovementType) Valid() bool {
	switch t {
	case Income, Expense, PendingPayment:
		return true
	}
	return false
}

// PaymentStatus defines the possible states of a pending payment.
type PaymentStatus string

const (
	Pending PaymentStatus = "pending"
	Settled PaymentStatus = "settled"
)

// Movement represents a single ledger entry owned by one user.
type Movement struct {
	ID             string
	OwnerID        string
	Amount         decimal.Decimal
	Description    string
	Category       string
	Type           MovementType
	Date           time.Time
	DueDate        *time.Time
	Status         PaymentStatus
	ReminderSentAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPending reports whether m is a pending payment that still awaits settlement.
func (m Movement) IsPending() bool {
	return m.Type == PendingPayment && m.Status == Pending
}

// EffectiveDueDate returns the due date, falling back to the movement date.
func (m Movement) EffectiveDueDate() time.Time {
	if m.DueDate != nil {
		return *m.DueDate
	}
	return m.Date
}

// User represents a registered account and its profile.
type User struct {
	ID           string    `dynamodbav:"id"`
	Email        string    `dynamodbav:"email"`
	PasswordHash string    `dynamodbav:"password_hash"`
	FirstName    string    `dynamodbav:"first_name,omitempty"`
	LastName     string    `dynamodbav:"last_name,omitempty"`
	Disabled     bool      `dynamodbav:"disabled,omitempty"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
	UpdatedAt    time.Time `dynamodbav:"updated_at"`
}

// Profile holds the user-editable part of a User.
type Profile struct {
	FirstName string
	LastName  string
}

// Connection is an API Gateway websocket connection bound to an owner.
type Connection struct {
	ConnectionID string    `dynamodbav:"connection_id"`
	OwnerID      string    `dynamodbav:"owner_id"`
	ConnectedAt  time.Time `dynamodbav:"connected_at"`
	TTL          int64     `dynamodbav:"ttl,omitempty"`
}
