package movements

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chris/money-movements/pkg/models"
)

// ErrNotSettleable is returned when settling a movement that is not a pending payment awaiting settlement.
var ErrNotSettleable = errors.New("movement is not a pending payment awaiting settlement")

// PendingPartition splits pending payments by status.
type PendingPartition struct {
	Pending []models.Movement
	Settled []models.Movement
}

// PartitionPendingPayments separates pending payments still due from settled ones.
// Pending entries are ordered by ascending due date; ties fall back to date and then id
// so the order does not depend on the input order.
func PartitionPendingPayments(ms []models.Movement) PendingPartition {
	var p PendingPartition
	for _, m := range ms {
		if m.Type != models.PendingPayment {
			continue
		}
		if m.Status == models.Settled {
			p.Settled = append(p.Settled, m)
		} else {
			p.Pending = append(p.Pending, m)
		}
	}
	SortByDueDate(p.Pending)
	return p
}

// SortByDueDate orders movements by ascending effective due date.
func SortByDueDate(ms []models.Movement) {
	sort.SliceStable(ms, func(i, j int) bool {
		di, dj := ms[i].EffectiveDueDate(), ms[j].EffectiveDueDate()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if !ms[i].Date.Equal(ms[j].Date) {
			return ms[i].Date.Before(ms[j].Date)
		}
		return ms[i].ID < ms[j].ID
	})
}

// MarkPendingPaymentSettled turns a pending payment into a realised expense dated now.
// The returned copy keeps its due date and carries status settled; m itself is untouched.
func MarkPendingPaymentSettled(m models.Movement, now time.Time) (models.Movement, error) {
	if !m.IsPending() {
		return m, fmt.Errorf("%w: type=%s status=%s", ErrNotSettleable, m.Type, m.Status)
	}
	settled := m
	settled.Type = models.Expense
	settled.Status = models.Settled
	settled.Date = now
	settled.UpdatedAt = now
	return settled, nil
}

// DueWithin returns the pending payments due on or before now+window, soonest first.
// Payments that already had a reminder are skipped.
func DueWithin(ms []models.Movement, now time.Time, window time.Duration) []models.Movement {
	cutoff := now.Add(window)
	var out []models.Movement
	for _, m := range ms {
		if !m.IsPending() || m.ReminderSentAt != nil {
			continue
		}
		if m.EffectiveDueDate().After(cutoff) {
			continue
		}
		out = append(out, m)
	}
	SortByDueDate(out)
	return out
}
