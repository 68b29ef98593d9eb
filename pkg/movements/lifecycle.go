package movements

import (
	"github.com/chris/money-movements/pkg/models"
)

// ApplyDefaults enforces the per-type field rules before a movement is written.
// Pending payments default to status pending and to a due date equal to their date.
// Income and expense never carry a status, due date or reminder.
func ApplyDefaults(m *models.Movement) {
	if m.Type == models.PendingPayment {
		if m.Status == "" {
			m.Status = models.Pending
		}
		if m.DueDate == nil {
			due := m.Date
			m.DueDate = &due
		}
		return
	}
	m.Status = ""
	m.DueDate = nil
	m.ReminderSentAt = nil
}
