package exports

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/export"
	"github.com/chris/money-movements/pkg/handlers/httpx"
	"github.com/chris/money-movements/pkg/metrics"
	"github.com/chris/money-movements/pkg/movements"
	"github.com/chris/money-movements/pkg/preferences"
	"github.com/chris/money-movements/pkg/storage"
)

// ExportsHandler renders downloadable reports of an owner's movements.
type ExportsHandler struct {
	Store     storage.MovementReader
	Exporters map[api.ExportFormat]export.Exporter
	Theme     *preferences.Theme
	Metrics   *metrics.Metrics
	Location  *time.Location
	Now       func() time.Time
}

// NewExportsHandler creates an ExportsHandler with the PDF, XLSX and CSV exporters.
// PDFs are rendered by the Gotenberg instance at gotenbergURL.
func NewExportsHandler(store storage.MovementReader, gotenbergURL string, theme *preferences.Theme, loc *time.Location) *ExportsHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ExportsHandler{
		Store: store,
		Exporters: map[api.ExportFormat]export.Exporter{
			api.ExportPDF:  export.NewPDFExporter(gotenbergURL),
			api.ExportXLSX: export.XLSXExporter{},
			api.ExportCSV:  export.CSVExporter{},
		},
		Theme:    theme,
		Location: loc,
		Now:      time.Now,
	}
}

// ExportReport renders the report in the requested format as an attachment.
func (h *ExportsHandler) ExportReport(w http.ResponseWriter, r *http.Request, format api.ExportFormat, params api.ExportParams) {
	exporter, ok := h.Exporters[format]
	if !ok {
		httpx.JSON(w, http.StatusNotFound, api.ErrorResponse{Error: fmt.Sprintf("Unknown export format %q", format)})
		return
	}
	ownerID := auth.OwnerID(r.Context())

	ms, err := h.Store.ListMovements(r.Context(), ownerID)
	if err != nil {
		httpx.StoreError(w, r, "list movements", err)
		return
	}

	opts := export.Options{
		Transactions: params.Transactions != nil && *params.Transactions,
		Pending:      params.Pending != nil && *params.Pending,
		Location:     h.Location,
		Dark:         h.dark(r, ownerID),
	}
	if params.Year != nil {
		opts.Year = *params.Year
		ms = movements.Filter{Year: opts.Year, Location: h.Location}.Apply(ms)
	}

	report := export.BuildReport(ms, h.now(), opts)
	body, err := exporter.Export(r.Context(), report)
	h.Metrics.Export(string(format), err)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to render report", "format", format, "error", err)
		http.Error(w, fmt.Sprintf("Failed to render %s report: %v", format, err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *ExportsHandler) dark(r *http.Request, ownerID string) bool {
	ambient := preferences.AmbientDark(r)
	if h.Theme == nil {
		return ambient
	}
	pref, err := h.Theme.Resolve(r.Context(), ownerID, ambient)
	if err != nil {
		slog.WarnContext(r.Context(), "failed to resolve theme preference", "error", err)
	}
	return pref.Dark
}

func (h *ExportsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
