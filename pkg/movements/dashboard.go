package movements

import (
	"time"

	"github.com/chris/money-movements/pkg/models"
)

// Dashboard bundles every derived view of one snapshot.
type Dashboard struct {
	Summary   Summary
	Breakdown Breakdown
	Monthly   MonthlySeries
	Payments  PendingPartition
}

// BuildDashboard recomputes all views from scratch.
func BuildDashboard(ms []models.Movement, loc *time.Location) Dashboard {
	return Dashboard{
		Summary:   ComputeSummary(ms),
		Breakdown: ComputeCategoryBreakdown(ms),
		Monthly:   ComputeMonthlySeriesIn(ms, loc),
		Payments:  PartitionPendingPayments(ms),
	}
}
