package charts

// Palette is the set of colours a chart is drawn with.
type Palette struct {
	Background string
	Text       string
	Grid       string
	Income     string
	Expense    string
}

var (
	LightPalette = Palette{
		Background: "#ffffff",
		Text:       "#334155",
		Grid:       "rgba(148, 163, 184, 0.2)",
		Income:     "#10b981",
		Expense:    "#ef4444",
	}
	DarkPalette = Palette{
		Background: "#0f172a",
		Text:       "#e2e8f0",
		Grid:       "rgba(148, 163, 184, 0.2)",
		Income:     "#34d399",
		Expense:    "#f87171",
	}
)

// PaletteFor returns the palette matching the theme.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}
