package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/greenops"
	"github.com/rshade/feedprint/internal/ranking"
)

// Layout constants for table output.
const (
	tabwriterPadding = 2
	defaultWidth     = 80
	minBarWidth      = 10
	maxBarWidth      = 40
	barChar          = "█"
	factorPrecision  = 2
	coordPrecision   = 4
	percentScale     = 100
)

// printer carries styling and number precision for table output.
type printer struct {
	styled    bool
	precision int
	barWidth  int

	title     lipgloss.Style
	section   lipgloss.Style
	bar       lipgloss.Style
	highlight lipgloss.Style
	baseline  lipgloss.Style
	muted     lipgloss.Style
	warn      lipgloss.Style
}

// newPrinter builds a printer for a terminal of the given width. Bars take
// half the width, clamped to [minBarWidth, maxBarWidth].
func newPrinter(styled bool, precision, width int) *printer {
	return &printer{
		styled:    styled,
		precision: precision,
		barWidth:  min(maxBarWidth, max(minBarWidth, width/2)),
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		baseline:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) num(v float64) string {
	return greenops.FormatFloat(v, p.precision)
}

// bar is one row of a horizontal bar chart.
type bar struct {
	label     string
	value     float64
	highlight bool
	baseline  bool
}

// barChart writes a horizontal bar chart sorted ascending by value, bars
// scaled to the largest value.
func (p *printer) barChart(sb *strings.Builder, title string, bars []bar) {
	sorted := slices.Clone(bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].value < sorted[j].value })
	p.barChartInOrder(sb, title, sorted)
}

// barChartInOrder writes a horizontal bar chart in the given row order.
func (p *printer) barChartInOrder(sb *strings.Builder, title string, bars []bar) {
	if len(bars) == 0 {
		return
	}

	var peak float64
	labelWidth := 0
	for _, b := range bars {
		peak = max(peak, b.value)
		labelWidth = max(labelWidth, len([]rune(b.label)))
	}

	sb.WriteString(p.style(p.section, title))
	sb.WriteString("\n")
	for _, b := range bars {
		n := 0
		if peak > 0 && b.value > 0 {
			n = max(1, int(math.Round(b.value/peak*float64(p.barWidth))))
		}
		style := p.bar
		switch {
		case b.highlight:
			style = p.highlight
		case b.baseline:
			style = p.baseline
		}
		pad := labelWidth - len([]rune(b.label))
		fmt.Fprintf(sb, "  %s%s %s %s\n",
			b.label, strings.Repeat(" ", pad),
			p.style(style, strings.Repeat(barChar, n)),
			p.num(b.value))
	}
}

func (p *printer) warnings(sb *strings.Builder, messages []string) {
	if len(messages) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(p.style(p.warn, "Warnings:"))
	sb.WriteString("\n")
	for _, m := range messages {
		sb.WriteString("  ! ")
		sb.WriteString(m)
		sb.WriteString("\n")
	}
}

func flush(w io.Writer, sb *strings.Builder) error {
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func newTabWriter(sb *strings.Builder) *tabwriter.Writer {
	return tabwriter.NewWriter(sb, 0, 0, tabwriterPadding, ' ', 0)
}

func (r *IngredientsReport) writeTable(w io.Writer, p *printer) error {
	var sb strings.Builder
	sb.WriteString(p.style(p.title, "Feed ingredients"))
	sb.WriteString("\n\n")

	tw := newTabWriter(&sb)
	fmt.Fprintln(tw, "NAME\tORIGIN\tCO2E KG/KG\tLAND M²/KG\tLAT\tLON")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ing.Name, ing.Origin,
			greenops.FormatFloat(ing.CO2PerKg, factorPrecision),
			greenops.FormatFloat(ing.LandPerKg, factorPrecision),
			greenops.FormatFloat(ing.Coordinates.Lat, coordPrecision),
			greenops.FormatFloat(ing.Coordinates.Lon, coordPrecision))
	}
	_ = tw.Flush()

	return flush(w, &sb)
}

func (r *FootprintReport) writeTable(w io.Writer, p *printer) error {
	var sb strings.Builder
	title := "Footprint per tonne of salmon"
	if r.Totals.Scenario != "" {
		title += " (" + r.Totals.Scenario + ")"
	}
	sb.WriteString(p.style(p.title, title))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Feed mass: %s kg\n\n", p.num(r.FeedMassKg))

	tw := newTabWriter(&sb)
	fmt.Fprintln(tw, "KEY\tINGREDIENT\tFRACTION\tCO2E KG\tLAND M²")
	for _, c := range r.Contributions {
		fmt.Fprintf(tw, "%s\t%s\t%s%%\t%s\t%s\n",
			c.Key, c.Ingredient,
			greenops.FormatFloat(c.Fraction*percentScale, 1),
			p.num(c.CO2Kg), p.num(c.LandM2))
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%s\t%s\n", p.num(r.Totals.CO2Kg), p.num(r.Totals.LandM2))
	_ = tw.Flush()

	sb.WriteString("\n")
	p.equivalencies(&sb, greenops.FormatMass(r.Totals.CO2Kg), greenops.FormatArea(r.Totals.LandM2), r.Equivalencies)

	co2Bars := make([]bar, 0, len(r.Contributions))
	landBars := make([]bar, 0, len(r.Contributions))
	for _, c := range r.Contributions {
		co2Bars = append(co2Bars, bar{label: c.Ingredient, value: c.CO2Kg})
		landBars = append(landBars, bar{label: c.Ingredient, value: c.LandM2})
	}
	sb.WriteString("\n")
	p.barChart(&sb, "CO2e by ingredient (kg per tonne)", co2Bars)
	sb.WriteString("\n")
	p.barChart(&sb, "Land by ingredient (m² per tonne)", landBars)

	p.warnings(&sb, warningMessages(r.Warnings))
	return flush(w, &sb)
}

func (p *printer) equivalencies(sb *strings.Builder, mass, area string, s greenops.Summary) {
	fmt.Fprintf(sb, "CO2e: %s\n", mass)
	if !s.Carbon.IsEmpty {
		sb.WriteString("  " + p.style(p.muted, s.Carbon.DisplayText) + "\n")
	}
	fmt.Fprintf(sb, "Land: %s\n", area)
	if !s.Land.IsEmpty {
		sb.WriteString("  " + p.style(p.muted, s.Land.DisplayText) + "\n")
	}
}

func (r *NationalReport) writeTable(w io.Writer, p *printer) error {
	var sb strings.Builder
	title := "National footprint"
	if r.National.Scenario != "" {
		title += " (" + r.National.Scenario + ")"
	}
	sb.WriteString(p.style(p.title, title))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Production: %s tonnes\n\n", greenops.FormatFloat(r.National.ProductionTonnes, 0))

	p.equivalencies(&sb, greenops.FormatMass(r.National.CO2Kg), greenops.FormatArea(r.National.LandM2), r.Equivalencies)

	if len(r.SimilarCountries) > 0 {
		names := make([]string, 0, len(r.SimilarCountries))
		for _, c := range r.SimilarCountries {
			names = append(names, fmt.Sprintf("%s (%s km²)", c.Label, greenops.FormatFloat(c.Value, 0)))
		}
		fmt.Fprintf(&sb, "  Comparable in area to %s\n", strings.Join(names, ", "))
	}

	p.warnings(&sb, warningMessages(r.Warnings))
	return flush(w, &sb)
}

func (r *CompareReport) writeTable(w io.Writer, p *printer) error {
	var sb strings.Builder
	sb.WriteString(p.style(p.title, "Impact per tonne of protein"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Sorted by %s %s\n\n", r.Metric, r.Order)

	tw := newTabWriter(&sb)
	fmt.Fprintln(tw, "#\tPROTEIN\tCO2E KG/T\tLAND M²/T")
	bars := make([]bar, 0, len(r.Rows))
	for i, row := range r.Rows {
		label := row.Label
		if row.Computed {
			label += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, label, p.num(row.CO2eKgPerTonne), p.num(row.LandM2PerTonne))
		bars = append(bars, bar{label: row.Label, value: row.Value(r.Metric), highlight: row.Computed})
	}
	_ = tw.Flush()

	chartTitle := "CO2e (kg per tonne)"
	if r.Metric == ranking.MetricLand {
		chartTitle = "Land use (m² per tonne)"
	}
	sb.WriteString("\n")
	p.barChart(&sb, chartTitle, bars)
	sb.WriteString(p.style(p.muted, "* computed from the feed blend"))
	sb.WriteString("\n")

	p.warnings(&sb, warningMessages(r.Warnings))
	return flush(w, &sb)
}

func (r *OriginsReport) writeTable(w io.Writer, p *printer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", p.style(p.title, "Ingredient origins to "+r.Destination.Name))
	fmt.Fprintf(&sb, "Destination: %s, %s\n\n",
		greenops.FormatFloat(r.Destination.Coordinates.Lat, coordPrecision),
		greenops.FormatFloat(r.Destination.Coordinates.Lon, coordPrecision))

	unit := "CO2E KG/KG"
	if r.Metric == ranking.MetricLand {
		unit = "LAND M²/KG"
	}

	tw := newTabWriter(&sb)
	fmt.Fprintf(tw, "INGREDIENT\tORIGIN\tLAT\tLON\t%s\tINTENSITY\n", unit)
	for _, f := range r.Flows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			f.Ingredient, f.Origin,
			greenops.FormatFloat(f.From.Lat, coordPrecision),
			greenops.FormatFloat(f.From.Lon, coordPrecision),
			greenops.FormatFloat(f.Value, factorPrecision),
			greenops.FormatFloat(f.Intensity, factorPrecision))
	}
	_ = tw.Flush()

	return flush(w, &sb)
}

func (r *PollutionReport) writeTable(w io.Writer, p *printer) error {
	var sb strings.Builder
	sb.WriteString(p.style(p.title, "Fish farm sewage as population equivalent"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s: %s million people\n", r.Equivalent.Label, greenops.FormatFloat(r.Equivalent.Value, 1))
	fmt.Fprintf(&sb, "  ~%s times the %s (%s million)\n",
		greenops.FormatFloat(r.Ratio, 1), r.Baseline.Label, greenops.FormatFloat(r.Baseline.Value, 1))

	if len(r.SimilarCountries) > 0 {
		names := make([]string, 0, len(r.SimilarCountries))
		for _, c := range r.SimilarCountries {
			names = append(names, fmt.Sprintf("%s (%s million)", c.Label, greenops.FormatFloat(c.Value, 1)))
		}
		fmt.Fprintf(&sb, "  Comparable to the population of %s\n", strings.Join(names, ", "))
	}

	bars := make([]bar, 0, len(r.Comparisons))
	for _, c := range r.Comparisons {
		bars = append(bars, bar{
			label:     c.Label,
			value:     c.Value,
			highlight: c.Kind == comparisonEquivalent,
			baseline:  c.Kind == comparisonBaseline,
		})
	}
	sb.WriteString("\n")
	p.barChartInOrder(&sb, "Population (millions)", bars)

	return flush(w, &sb)
}

func warningMessages(ws []footprint.Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Error())
	}
	return out
}
