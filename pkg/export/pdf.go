package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/chris/money-movements/pkg/charts"
	"github.com/chris/money-movements/pkg/movements"
)

// PDFExporter renders reports to PDF through a Gotenberg service.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
}

// NewPDFExporter constructs a PDFExporter for the Gotenberg base URL.
func NewPDFExporter(endpoint string) *PDFExporter {
	return &PDFExporter{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Exporter = (*PDFExporter)(nil)

func (p *PDFExporter) ContentType() string { return "application/pdf" }
func (p *PDFExporter) FileName() string    { return "financial_summary.pdf" }

// Export sends the report HTML to Gotenberg and returns the PDF bytes.
func (p *PDFExporter) Export(ctx context.Context, r Report) ([]byte, error) {
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := RenderHTML(r)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build gotenberg request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gotenberg: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}
	return io.ReadAll(resp.Body)
}

type htmlRow struct {
	Cells []string
}

type htmlView struct {
	Title        string
	GeneratedAt  string
	Dark         bool
	Totals       []htmlRow
	Monthly      []htmlRow
	Chart        template.HTML
	Transactions []htmlRow
	Pending      []htmlRow
	ShowTx       bool
	ShowPending  bool
}

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body{font-family:Helvetica,Arial,sans-serif;margin:32px;{{if .Dark}}background:#0f172a;color:#e2e8f0{{else}}color:#0f172a{{end}}}
h1{font-size:20px;margin:0}
.meta{font-size:10px;margin:6px 0 20px}
table{border-collapse:collapse;width:100%;margin-bottom:20px;font-size:12px}
th{background:#6366f1;color:#fff;text-align:left;padding:6px}
td{padding:6px;border-bottom:1px solid #cbd5e1}
td.num{text-align:right}
</style></head><body>
<h1>{{.Title}}</h1>
<p class="meta">Generated on: {{.GeneratedAt}}</p>
<table><thead><tr><th>Concept</th><th>Amount</th></tr></thead><tbody>
{{range .Totals}}<tr>{{range $i, $c := .Cells}}<td{{if $i}} class="num"{{end}}>{{$c}}</td>{{end}}</tr>
{{end}}</tbody></table>
{{.Chart}}
<table><thead><tr><th>Month</th><th>Income</th><th>Expenses</th></tr></thead><tbody>
{{range .Monthly}}<tr>{{range $i, $c := .Cells}}<td{{if $i}} class="num"{{end}}>{{$c}}</td>{{end}}</tr>
{{end}}</tbody></table>
{{if .ShowTx}}<h2>Transactions</h2>
<table><thead><tr><th>Date</th><th>Description</th><th>Category</th><th>Type</th><th>Amount</th></tr></thead><tbody>
{{range .Transactions}}<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody></table>{{end}}
{{if .ShowPending}}<h2>Pending Payments</h2>
<table><thead><tr><th>Due date</th><th>Description</th><th>Category</th><th>Amount</th><th>Status</th></tr></thead><tbody>
{{range .Pending}}<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody></table>{{end}}
</body></html>`))

// RenderHTML renders the printable HTML form of a report.
func RenderHTML(r Report) ([]byte, error) {
	chart, err := charts.MonthlyChart(r.Monthly, r.Year, r.Dark)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	view := htmlView{
		Title:       r.Title,
		GeneratedAt: r.GeneratedAt.Format("2006-01-02 15:04"),
		Dark:        r.Dark,
		Chart:       chart,
		ShowTx:      r.Transactions != nil,
		ShowPending: r.Pending != nil,
	}
	for _, row := range summaryRows(r.Summary) {
		view.Totals = append(view.Totals, htmlRow{Cells: []string{row.label, money(row.value)}})
	}
	for i, label := range movements.MonthLabels {
		view.Monthly = append(view.Monthly, htmlRow{Cells: []string{label, money(r.Monthly.Income[i]), money(r.Monthly.Expense[i])}})
	}
	for _, m := range r.Transactions {
		view.Transactions = append(view.Transactions, htmlRow{Cells: []string{r.date(m.Date), m.Description, m.Category, string(m.Type), money(m.Amount)}})
	}
	for _, m := range r.Pending {
		view.Pending = append(view.Pending, htmlRow{Cells: []string{r.date(m.EffectiveDueDate()), m.Description, m.Category, money(m.Amount), string(m.Status)}})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render report html: %w", err)
	}
	return buf.Bytes(), nil
}
