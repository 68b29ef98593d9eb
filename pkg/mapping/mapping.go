package mapping

import (
	"strings"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/chris/money-movements/pkg/preferences"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ToApiMovement converts a domain Movement to an API Movement.
func ToApiMovement(m *models.Movement) api.Movement {
	out := api.Movement{
		Id:             m.ID,
		Amount:         m.Amount,
		Description:    m.Description,
		Category:       m.Category,
		Type:           api.MovementType(m.Type),
		Date:           m.Date,
		ReminderSentAt: m.ReminderSentAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.DueDate != nil {
		out.DueDate = &openapi_types.Date{Time: *m.DueDate}
	}
	if m.Status != "" {
		status := api.PaymentStatus(m.Status)
		out.Status = &status
	}
	return out
}

// ToApiMovements converts a slice of domain movements. It never returns nil.
func ToApiMovements(ms []models.Movement) []api.Movement {
	out := make([]api.Movement, len(ms))
	for i := range ms {
		out[i] = ToApiMovement(&ms[i])
	}
	return out
}

// ToDomainNewMovement converts an API NewMovement to a domain Movement owned by ownerID.
// Plain dates are calendar days in loc. Server-managed fields are left for the store to fill.
func ToDomainNewMovement(in *api.NewMovement, ownerID string, loc *time.Location) *models.Movement {
	if loc == nil {
		loc = time.Local
	}
	m := &models.Movement{
		OwnerID:     ownerID,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Type:        models.MovementType(in.Type),
		Date:        in.Date.In(loc),
	}
	if in.DueDate != nil && !in.DueDate.IsZero() {
		due := in.DueDate.In(loc)
		m.DueDate = &due
	}
	return m
}

// ToApiSummary converts the engine summary.
func ToApiSummary(s movements.Summary) api.Summary {
	return api.Summary{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Balance:      s.Balance,
	}
}

// ToApiBreakdown converts a category breakdown, keeping its order.
func ToApiBreakdown(b movements.Breakdown) []api.CategoryTotal {
	out := make([]api.CategoryTotal, len(b))
	for i, ct := range b {
		out[i] = api.CategoryTotal{Category: ct.Category, Total: ct.Total}
	}
	return out
}

// ToApiMonthly converts a monthly series.
func ToApiMonthly(s movements.MonthlySeries) api.MonthlySeries {
	return api.MonthlySeries{
		Labels:  movements.MonthLabels[:],
		Income:  append([]decimal.Decimal(nil), s.Income[:]...),
		Expense: append([]decimal.Decimal(nil), s.Expense[:]...),
	}
}

// ToApiPendingPayments converts a partition of pending payments.
func ToApiPendingPayments(p movements.PendingPartition) api.PendingPayments {
	return api.PendingPayments{
		Pending: ToApiMovements(p.Pending),
		Settled: ToApiMovements(p.Settled),
	}
}

// ToApiDashboard converts a dashboard.
func ToApiDashboard(d movements.Dashboard) api.Dashboard {
	return api.Dashboard{
		Summary:    ToApiSummary(d.Summary),
		Categories: ToApiBreakdown(d.Breakdown),
		Monthly:    ToApiMonthly(d.Monthly),
		Pending:    ToApiMovements(d.Payments.Pending),
	}
}

// ToApiUser converts a domain User. The password hash never leaves the domain.
func ToApiUser(u *models.User) api.User {
	return api.User{
		Id:        u.ID,
		Email:     openapi_types.Email(u.Email),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// ToApiSession converts a signed-in user and its token.
func ToApiSession(u *models.User, token string, expiresAt time.Time) api.Session {
	return api.Session{Token: token, ExpiresAt: expiresAt, User: ToApiUser(u)}
}

// ToDomainProfile converts an API Profile.
func ToDomainProfile(p *api.Profile) models.Profile {
	return models.Profile{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
	}
}

// ToApiTheme converts a resolved theme preference.
func ToApiTheme(p preferences.ThemePreference) api.ThemePreference {
	return api.ThemePreference{Dark: p.Dark, Source: string(p.Source)}
}
