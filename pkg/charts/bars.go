// Package charts renders dashboard charts as standalone SVG.
package charts

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/chris/money-movements/pkg/movements"
)

const (
	DefaultWidth   = 640
	DefaultHeight  = 280
	DefaultPadding = 40.0
	DefaultTicks   = 4
)

// BarOpts configures a grouped bar chart.
type BarOpts struct {
	Title       string
	Description string
	LabelA      string
	LabelB      string
	Palette     Palette
	TickCount   int
}

// Bars renders two series side by side per label.
func Bars(width, height int, seriesA, seriesB []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("charts: labels required")
	}
	if len(seriesA) != len(labels) || len(seriesB) != len(labels) {
		return "", fmt.Errorf("charts: series length must match labels")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	ticks := opts.TickCount
	if ticks <= 0 {
		ticks = DefaultTicks
	}
	p := opts.Palette
	if p == (Palette{}) {
		p = LightPalette
	}

	padding := DefaultPadding
	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("charts: viewport too small")
	}

	maxVal := 0.0
	for i := range labels {
		maxVal = math.Max(maxVal, math.Max(seriesA[i], seriesB[i]))
	}
	if maxVal == 0 {
		maxVal = 1
	}
	scale := chartHeight / maxVal
	bottom := padding + chartHeight
	group := chartWidth / float64(len(labels))
	bar := group / 3

	esc := template.HTMLEscapeString
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-labelledby="chart-title chart-desc">`, width, height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"></rect>`, p.Background)
	fmt.Fprintf(&b, `<title id="chart-title">%s</title>`, esc(fallback(opts.Title, "Bar chart")))
	fmt.Fprintf(&b, `<desc id="chart-desc">%s</desc>`, esc(fallback(opts.Description, "Grouped bar comparison")))

	for i := 0; i <= ticks; i++ {
		ratio := float64(i) / float64(ticks)
		y := bottom - ratio*chartHeight
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"></line>`, padding, y, padding+chartWidth, y, p.Grid)
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="end">%s</text>`, padding-6, y+4, p.Text, esc(formatTick(maxVal*ratio)))
	}

	labelA := fallback(opts.LabelA, "Series A")
	labelB := fallback(opts.LabelB, "Series B")
	for i, label := range labels {
		x := padding + float64(i)*group
		hA := math.Max(seriesA[i], 0) * scale
		hB := math.Max(seriesB[i], 0) * scale
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" aria-label="%s %s"></rect>`, x+bar*0.4, bottom-hA, bar, hA, p.Income, esc(labelA), esc(label))
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" aria-label="%s %s"></rect>`, x+bar*1.6, bottom-hB, bar, hB, p.Expense, esc(labelB), esc(label))
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="middle">%s</text>`, x+group/2, bottom+14, p.Text, esc(label))
	}

	legendY := padding - 14
	fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="10" height="10" fill="%s"></rect>`, padding, legendY-8, p.Income)
	fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10">%s</text>`, padding+14, legendY, p.Text, esc(labelA))
	fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="10" height="10" fill="%s"></rect>`, padding+90, legendY-8, p.Expense)
	fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10">%s</text>`, padding+104, legendY, p.Text, esc(labelB))

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// MonthlyChart renders the income and expense bars of a monthly series. A zero year is left out of the title.
func MonthlyChart(series movements.MonthlySeries, year int, dark bool) (template.HTML, error) {
	income, expense := series.Floats()
	title := "Monthly income and expenses"
	if year > 0 {
		title += " " + strconv.Itoa(year)
	}
	return Bars(DefaultWidth, DefaultHeight, income, expense, movements.MonthLabels[:], BarOpts{
		Title:       title,
		Description: "Income and expense totals per month",
		LabelA:      "Income",
		LabelB:      "Expenses",
		Palette:     PaletteFor(dark),
	})
}

func formatTick(v float64) string {
	switch {
	case v >= 1_000_000:
		return strconv.FormatFloat(v/1_000_000, 'f', 1, 64) + "M"
	case v >= 1_000:
		return strconv.FormatFloat(v/1_000, 'f', 1, 64) + "k"
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
