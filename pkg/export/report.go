// Package export renders financial reports as PDF, XLSX and CSV documents.
package export

import (
	"context"
	"sort"
	"time"

	"github.com/chris/money-movements/pkg/models"
	"github.com/chris/money-movements/pkg/movements"
)

// ReportTitle heads every exported document.
const ReportTitle = "Financial summary"

// Options selects the optional sections of a report. Year is the calendar year the
// movements were filtered to, 0 for all years.
type Options struct {
	Transactions bool
	Pending      bool
	Year         int
	Location     *time.Location
	Dark         bool
}

// Report is everything an exporter needs. All figures come from the movements package.
type Report struct {
	Title        string
	Year         int
	GeneratedAt  time.Time
	Summary      movements.Summary
	Monthly      movements.MonthlySeries
	Transactions []models.Movement
	Pending      []models.Movement
	Location     *time.Location
	Dark         bool
}

// BuildReport derives a report from a snapshot of movements. A requested section is
// never nil, so it is rendered even when empty.
func BuildReport(ms []models.Movement, now time.Time, opts Options) Report {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	r := Report{
		Title:       ReportTitle,
		Year:        opts.Year,
		GeneratedAt: now.In(loc),
		Summary:     movements.ComputeSummary(ms),
		Monthly:     movements.ComputeMonthlySeriesIn(ms, loc),
		Location:    loc,
		Dark:        opts.Dark,
	}
	if opts.Transactions {
		r.Transactions = []models.Movement{}
		for _, m := range ms {
			if m.Type == models.Income || m.Type == models.Expense {
				r.Transactions = append(r.Transactions, m)
			}
		}
		sort.SliceStable(r.Transactions, func(i, j int) bool {
			return r.Transactions[i].Date.After(r.Transactions[j].Date)
		})
	}
	if opts.Pending {
		r.Pending = append([]models.Movement{}, movements.PartitionPendingPayments(ms).Pending...)
	}
	return r
}

// Exporter renders a report into a document.
type Exporter interface {
	Export(ctx context.Context, r Report) ([]byte, error)
	ContentType() string
	FileName() string
}

func (r Report) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(r.Location).Format("2006-01-02")
}
