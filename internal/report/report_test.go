package report_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedprint/internal/dataset"
	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/origins"
	"github.com/rshade/feedprint/internal/ranking"
	"github.com/rshade/feedprint/internal/report"
)

var fixedTime = time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)

func newBuilder() *report.Builder {
	return report.NewBuilder(clockwork.NewFakeClockAt(fixedTime), "01HTRACE", "norwegian-salmon-feed")
}

func evaluateDefault(t *testing.T) (*dataset.Dataset, dataset.Evaluation) {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	sc, err := ds.Scenario("")
	require.NoError(t, err)
	ev, err := ds.Evaluate(sc)
	require.NoError(t, err)
	return ds, ev
}

func render(t *testing.T, r report.Report, format string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, r, report.Options{Format: format}))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: report.FormatTable},
		{in: "JSON", want: report.FormatJSON},
		{in: " ndjson ", want: report.FormatNDJSON},
		{in: "table", want: report.FormatTable},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, report.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFootprint_Table(t *testing.T) {
	_, ev := evaluateDefault(t)
	out := render(t, newBuilder().Footprint(ev), report.FormatTable)

	assert.Contains(t, out, "Footprint per tonne of salmon (norway-2024)")
	assert.Contains(t, out, "Feed mass: 7,200 kg")
	assert.Contains(t, out, "15,372")
	assert.Contains(t, out, "26,568")
	assert.Contains(t, out, "10,440")
	assert.Contains(t, out, "CO2e by ingredient (kg per tonne)")
	assert.NotContains(t, out, "Warnings:")
	assert.NotContains(t, out, "\x1b[", "unstyled output has no escape codes")
}

func TestFootprint_BarChartAscending(t *testing.T) {
	_, ev := evaluateDefault(t)
	out := render(t, newBuilder().Footprint(ev), report.FormatTable)

	chart := out[strings.Index(out, "CO2e by ingredient"):strings.Index(out, "Land by ingredient")]
	var order []string
	for _, line := range strings.Split(chart, "\n")[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			order = append(order, fields[0])
		}
	}
	// Rapeseed 1,656 < Wheat 2,016 < Fish Oil 2,304 < Fish Meal 5,220 < Soy 15,372.
	assert.Equal(t, []string{"Rapeseed", "Wheat", "Fish", "Fish", "Soy"}, order)
	assert.Contains(t, chart, strings.Repeat("█", 40)+" 15,372")
}

func TestFootprint_TableShowsWarnings(t *testing.T) {
	ds, _ := evaluateDefault(t)
	ev, err := ds.Evaluate(dataset.Scenario{
		Name:             "typo",
		TotalFeedMassKg:  7200,
		ProductionTonnes: 1,
		Blend:            footprint.Blend{{Key: "Soybean", Fraction: 0.35}, {Key: "Wheat", Fraction: 0.2}},
	})
	require.NoError(t, err)

	out := render(t, newBuilder().Footprint(ev), report.FormatTable)
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, `"Soybean"`)
}

func TestFootprint_JSON(t *testing.T) {
	_, ev := evaluateDefault(t)
	out := render(t, newBuilder().Footprint(ev), report.FormatJSON)

	var decoded struct {
		Metadata      report.Metadata          `json:"metadata"`
		Totals        footprint.Totals         `json:"totals"`
		Contributions []footprint.Contribution `json:"contributions"`
		Warnings      []json.RawMessage        `json:"warnings"`
		Equivalencies struct {
			Carbon struct {
				DisplayText string `json:"display_text"`
			} `json:"carbon"`
		} `json:"equivalencies"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, report.KindFootprint, decoded.Metadata.Kind)
	assert.Equal(t, fixedTime, decoded.Metadata.GeneratedAt)
	assert.Equal(t, "01HTRACE", decoded.Metadata.TraceID)
	assert.Equal(t, "norway-2024", decoded.Metadata.Scenario)
	assert.InDelta(t, 26568, decoded.Totals.CO2Kg, 1e-6)
	assert.Len(t, decoded.Contributions, 5)
	assert.NotNil(t, decoded.Warnings)
	assert.Empty(t, decoded.Warnings)
	assert.Contains(t, decoded.Equivalencies.Carbon.DisplayText, "~27 round-trip")
	assert.Contains(t, out, `"warnings": []`)
}

func TestFootprint_NDJSON(t *testing.T) {
	_, ev := evaluateDefault(t)
	out := render(t, newBuilder().Footprint(ev), report.FormatNDJSON)

	scanner := bufio.NewScanner(strings.NewReader(out))
	var keys []string
	for scanner.Scan() {
		var c footprint.Contribution
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &c))
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"Soy", "Fish Oil", "Wheat", "Fish Meal", "Rapeseed"}, keys)
}

func TestNational_Table(t *testing.T) {
	ds, ev := evaluateDefault(t)
	out := render(t, newBuilder().National(ev, ds.AreaComparisons), report.FormatTable)

	assert.Contains(t, out, "Production: 1,500,000 tonnes")
	assert.Contains(t, out, "39,852,000,000 kg (~39.9 million tonnes)")
	assert.Contains(t, out, "15,660,000,000 m² (15,660.0 km²)")
	assert.Contains(t, out, "Comparable in area to East Timor (14,874 km²), The Bahamas (13,943 km²), Montenegro (13,812 km²)")
}

func TestNational_NDJSONSingleRecord(t *testing.T) {
	ds, ev := evaluateDefault(t)
	out := render(t, newBuilder().National(ev, ds.AreaComparisons), report.FormatNDJSON)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	var n footprint.NationalImpact
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &n))
	assert.InDelta(t, 39_852_000_000, n.CO2Kg, 1)
}

func TestCompare_Table(t *testing.T) {
	ds, ev := evaluateDefault(t)
	rows := ds.Ranking(ev, ranking.MetricCO2e, ranking.OrderAsc)
	out := render(t, newBuilder().Compare(ev, rows, ranking.MetricCO2e, ranking.OrderAsc), report.FormatTable)

	assert.Contains(t, out, "Sorted by co2 asc")
	assert.Contains(t, out, "Salmon (farmed) *")
	assert.Less(t, strings.Index(out, "Poultry"), strings.Index(out, "Pork"))
	assert.Less(t, strings.Index(out, "Pork"), strings.Index(out, "Salmon"))
	assert.Less(t, strings.Index(out, "Salmon"), strings.Index(out, "Beef"))
}

func TestCompare_LandChartTitle(t *testing.T) {
	ds, ev := evaluateDefault(t)
	rows := ds.Ranking(ev, ranking.MetricLand, ranking.OrderDesc)
	out := render(t, newBuilder().Compare(ev, rows, ranking.MetricLand, ranking.OrderDesc), report.FormatTable)

	assert.Contains(t, out, "Land use (m² per tonne)")
	assert.Contains(t, out, "Sorted by land desc")
}

func TestOrigins_Table(t *testing.T) {
	ds, _ := evaluateDefault(t)
	flows := origins.Flows(ds.Ingredients, ds.Destination, ranking.MetricCO2e)
	out := render(t, newBuilder().Origins(ds.Destination, ranking.MetricCO2e, flows), report.FormatTable)

	assert.Contains(t, out, "Ingredient origins to Norway")
	assert.Contains(t, out, "Destination: 60.4720, 8.4689")
	assert.Contains(t, out, "Mato Grosso, Brazil")
	assert.Contains(t, out, "CO2E KG/KG")
}

func TestPollution(t *testing.T) {
	ds, _ := evaluateDefault(t)
	rep, err := newBuilder().Pollution(ds.PopulationComparisons)
	require.NoError(t, err)

	assert.Equal(t, "Norway population", rep.Baseline.Label)
	assert.InDelta(t, 50.0/5.5, rep.Ratio, 1e-9)
	require.Len(t, rep.SimilarCountries, 3)
	assert.Equal(t, "South Korea", rep.SimilarCountries[0].Label)
	assert.Equal(t, "Spain", rep.SimilarCountries[1].Label)

	out := render(t, rep, report.FormatTable)
	assert.Contains(t, out, "~9.1 times the Norway population (5.5 million)")
	assert.Contains(t, out, "Population (millions)")
}

func TestPollution_ChartKeepsDeclaredOrder(t *testing.T) {
	ds, _ := evaluateDefault(t)
	rep, err := newBuilder().Pollution(ds.PopulationComparisons)
	require.NoError(t, err)

	out := render(t, rep, report.FormatTable)
	chart := out[strings.Index(out, "Population (millions)"):]

	var labels []string
	for _, line := range strings.Split(strings.TrimSpace(chart), "\n")[1:] {
		labels = append(labels, strings.TrimSpace(strings.SplitN(line, "█", 2)[0]))
	}
	assert.Equal(t, []string{"Norway population", "Fish farm sewage", "Spain", "South Korea", "Kenya"}, labels)
}

func TestPollution_MissingBaseline(t *testing.T) {
	ds, _ := evaluateDefault(t)
	_, err := newBuilder().Pollution(ds.PopulationComparisons[1:])
	require.ErrorIs(t, err, report.ErrMissingComparison)
}

func TestIngredients_NDJSON(t *testing.T) {
	ds, _ := evaluateDefault(t)
	out := render(t, newBuilder().Ingredients(ds.Ingredients), report.FormatNDJSON)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), len(ds.Ingredients))
	assert.Contains(t, out, `"co2e_kg_per_kg":6.1`)
}

func TestRender_UnknownFormat(t *testing.T) {
	ds, _ := evaluateDefault(t)
	err := report.Render(&bytes.Buffer{}, newBuilder().Ingredients(ds.Ingredients), report.Options{Format: "csv"})
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestRender_WidthSizesBars(t *testing.T) {
	_, ev := evaluateDefault(t)

	longestBar := func(out string) int {
		longest := 0
		for _, line := range strings.Split(out, "\n") {
			longest = max(longest, strings.Count(line, "█"))
		}
		return longest
	}

	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "detected from non-terminal writer", width: 0, want: 40},
		{name: "narrow terminal", width: 30, want: 15},
		{name: "very narrow terminal", width: 8, want: 10},
		{name: "wide terminal", width: 200, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, report.Render(&buf, newBuilder().Footprint(ev), report.Options{
				Format: report.FormatTable,
				Width:  tt.width,
			}))
			assert.Equal(t, tt.want, longestBar(buf.String()))
		})
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, report.IsTerminal(&bytes.Buffer{}))
	assert.Equal(t, 80, report.TerminalWidth(&bytes.Buffer{}, 80))
}
