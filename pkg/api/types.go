// Package api holds the request and response types of the HTTP API and its router.
package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/chris/money-movements/pkg/movements"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// MovementType defines model for MovementType.
type MovementType string

const (
	Income         MovementType = "income"
	Expense        MovementType = "expense"
	PendingPayment MovementType = "pending_payment"
)

// PaymentStatus defines model for PaymentStatus.
type PaymentStatus string

const (
	Pending PaymentStatus = "pending"
	Settled PaymentStatus = "settled"
)

// FlexibleDate accepts any date representation the engine understands: RFC3339 or
// plain date strings, epoch milliseconds, or {"seconds": n} objects. A value that
// cannot be read decodes to the zero time and fails validation.
//
// Time holds the value read in time.Local. Use In to read zone-less values in the
// service's own location.
type FlexibleDate struct {
	time.Time

	raw any
}

// In returns the date with zone-less values read as wall time in loc.
func (d FlexibleDate) In(loc *time.Location) time.Time {
	if d.raw == nil {
		return d.Time
	}
	return movements.ToCalendarDateIn(d.raw, loc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *FlexibleDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		d.Time, d.raw = time.Time{}, nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	d.Time, d.raw = movements.ToCalendarDate(raw), raw
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// NewMovement defines model for NewMovement.
type NewMovement struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,max=200"`
	Category    string          `json:"category" validate:"required,max=60"`
	Type        MovementType    `json:"type" validate:"required,oneof=income expense pending_payment"`
	Date        FlexibleDate    `json:"date" validate:"calendar_date"`
	DueDate     *FlexibleDate   `json:"due_date,omitempty" validate:"omitempty,calendar_date"`
}

// Movement defines model for Movement.
type Movement struct {
	Id             string              `json:"id"`
	Amount         decimal.Decimal     `json:"amount"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	Type           MovementType        `json:"type"`
	Date           time.Time           `json:"date"`
	DueDate        *openapi_types.Date `json:"due_date,omitempty"`
	Status         *PaymentStatus      `json:"status,omitempty"`
	ReminderSentAt *time.Time          `json:"reminder_sent_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// PendingPayments defines model for PendingPayments.
type PendingPayments struct {
	Pending []Movement `json:"pending"`
	Settled []Movement `json:"settled"`
}

// Summary defines model for Summary.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CategoryTotal defines model for CategoryTotal.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlySeries defines model for MonthlySeries.
type MonthlySeries struct {
	Labels  []string          `json:"labels"`
	Income  []decimal.Decimal `json:"income"`
	Expense []decimal.Decimal `json:"expense"`
}

// Dashboard defines model for Dashboard.
type Dashboard struct {
	Summary    Summary         `json:"summary"`
	Categories []CategoryTotal `json:"categories"`
	Monthly    MonthlySeries   `json:"monthly"`
	Pending    []Movement      `json:"pending"`
}

// SignUpRequest defines model for SignUpRequest.
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignInRequest defines model for SignInRequest.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User defines model for User.
type User struct {
	Id        string              `json:"id"`
	Email     openapi_types.Email `json:"email"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	CreatedAt time.Time           `json:"created_at"`
}

// Session defines model for Session.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// Profile defines model for Profile.
type Profile struct {
	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name" validate:"required,max=60"`
}

// ThemePreference defines model for ThemePreference.
type ThemePreference struct {
	Dark   bool   `json:"dark"`
	Source string `json:"source"`
}

// SetThemeRequest defines model for SetThemeRequest.
type SetThemeRequest struct {
	Dark *bool `json:"dark" validate:"required"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse defines model for ValidationErrorResponse.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// ListMovementsParams defines parameters for ListMovements.
type ListMovementsParams struct {
	Type     *MovementType `form:"type,omitempty" json:"type,omitempty"`
	Category *string       `form:"category,omitempty" json:"category,omitempty"`
	Year     *int          `form:"year,omitempty" json:"year,omitempty"`
}

// DashboardParams defines parameters for GetDashboard and GetDashboardChart.
type DashboardParams struct {
	Year *int `form:"year,omitempty" json:"year,omitempty"`
}

// ExportParams defines parameters for ExportReport.
type ExportParams struct {
	Transactions *bool `form:"transactions,omitempty" json:"transactions,omitempty"`
	Pending      *bool `form:"pending,omitempty" json:"pending,omitempty"`
	Year         *int  `form:"year,omitempty" json:"year,omitempty"`
}

// ExportFormat defines the path parameter of ExportReport.
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)
