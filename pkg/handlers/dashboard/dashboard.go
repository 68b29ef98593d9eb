package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/charts"
	"github.com/chris/money-movements/pkg/handlers/httpx"
	"github.com/chris/money-movements/pkg/mapping"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/chris/money-movements/pkg/preferences"
	"github.com/chris/money-movements/pkg/storage"
)

// DashboardHandler serves the aggregated views of an owner's movements.
type DashboardHandler struct {
	Store    storage.MovementReader
	Theme    *preferences.Theme
	Location *time.Location
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store storage.MovementReader, theme *preferences.Theme, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{Store: store, Theme: theme, Location: loc}
}

// GetDashboard returns the summary, category breakdown, monthly series and pending payments.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request, params api.DashboardParams) {
	d, ok := h.build(w, r, params)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, mapping.ToApiDashboard(d))
}

// GetDashboardChart renders the monthly series as SVG in the owner's theme.
func (h *DashboardHandler) GetDashboardChart(w http.ResponseWriter, r *http.Request, params api.DashboardParams) {
	d, ok := h.build(w, r, params)
	if !ok {
		return
	}

	year := 0
	if params.Year != nil {
		year = *params.Year
	}
	svg, err := charts.MonthlyChart(d.Monthly, year, h.dark(r))
	if err != nil {
		http.Error(w, "Failed to render chart: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Add("Vary", preferences.ColorSchemeHeader)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

func (h *DashboardHandler) build(w http.ResponseWriter, r *http.Request, params api.DashboardParams) (movements.Dashboard, bool) {
	ms, err := h.Store.ListMovements(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		httpx.StoreError(w, r, "list movements", err)
		return movements.Dashboard{}, false
	}
	if params.Year != nil {
		ms = movements.Filter{Year: *params.Year, Location: h.Location}.Apply(ms)
	}
	return movements.BuildDashboard(ms, h.Location), true
}

func (h *DashboardHandler) dark(r *http.Request) bool {
	ambient := preferences.AmbientDark(r)
	if h.Theme == nil {
		return ambient
	}
	pref, err := h.Theme.Resolve(r.Context(), auth.OwnerID(r.Context()), ambient)
	if err != nil {
		// The chart still renders, in the ambient theme.
		slog.WarnContext(r.Context(), "failed to resolve theme preference", "error", err)
	}
	return pref.Dark
}
