package websockets

import "time"

// MessageType defines the type of a websocket message.
type MessageType string

const (
	// MessageTypeMovementsChanged tells clients the owner's movements changed.
	MessageTypeMovementsChanged MessageType = "movementsChanged"
	// MessageTypeDashboard carries a freshly computed dashboard.
	MessageTypeDashboard MessageType = "dashboard"
	// MessageTypeThemeChanged carries the new theme preference.
	MessageTypeThemeChanged MessageType = "themeChanged"
	// MessageTypePaymentReminder announces a pending payment that is due soon.
	MessageTypePaymentReminder MessageType = "paymentReminder"
)

// Message represents a generic websocket message. OwnerID routes the message and is not sent.
type Message struct {
	Type    MessageType `json:"type"`
	OwnerID string      `json:"-"`
	Payload interface{} `json:"payload"`
}

// MovementsChangedPayload is the payload for a movementsChanged message.
type MovementsChangedPayload struct {
	MovementID string `json:"movement_id"`
	Action     string `json:"action"`
}

// ThemeChangedPayload is the payload for a themeChanged message.
type ThemeChangedPayload struct {
	Dark bool `json:"dark"`
}

// PaymentReminderPayload is the payload for a paymentReminder message.
type PaymentReminderPayload struct {
	MovementID  string    `json:"movement_id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	DueDate     time.Time `json:"due_date"`
}
