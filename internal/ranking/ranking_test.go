package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedprint/internal/footprint"
)

func referenceRows() []Row {
	return []Row{
		{Label: "Poultry", CO2eKgPerTonne: 6_000, LandM2PerTonne: 4_500},
		{Label: "Pork", CO2eKgPerTonne: 12_000, LandM2PerTonne: 8_000},
		{Label: "Beef", CO2eKgPerTonne: 60_000, LandM2PerTonne: 160_000},
	}
}

func labels(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Label)
	}
	return out
}

func TestRank(t *testing.T) {
	salmon := SalmonRow(footprint.Totals{CO2Kg: 26_568, LandM2: 10_440}, "")

	tests := []struct {
		name   string
		metric Metric
		order  Order
		want   []string
	}{
		{name: "co2 ascending", metric: MetricCO2e, order: OrderAsc, want: []string{"Poultry", "Pork", "Salmon (farmed)", "Beef"}},
		{name: "co2 descending", metric: MetricCO2e, order: OrderDesc, want: []string{"Beef", "Salmon (farmed)", "Pork", "Poultry"}},
		{name: "land ascending", metric: MetricLand, order: OrderAsc, want: []string{"Poultry", "Pork", "Salmon (farmed)", "Beef"}},
		{name: "unknown order falls back to ascending", metric: MetricCO2e, order: "sideways", want: []string{"Poultry", "Pork", "Salmon (farmed)", "Beef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(salmon, referenceRows(), tt.metric, tt.order)
			assert.Equal(t, tt.want, labels(got))
		})
	}
}

func TestRank_LandSeparatesFromCO2(t *testing.T) {
	salmon := SalmonRow(footprint.Totals{CO2Kg: 5_000, LandM2: 9_000}, "Salmon")
	assert.Equal(t, []string{"Salmon", "Poultry", "Pork", "Beef"}, labels(Rank(salmon, referenceRows(), MetricCO2e, OrderAsc)))
	assert.Equal(t, []string{"Poultry", "Pork", "Salmon", "Beef"}, labels(Rank(salmon, referenceRows(), MetricLand, OrderAsc)))
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	computed := Row{Label: "Salmon", CO2eKgPerTonne: 12_000, Computed: true}
	refs := []Row{
		{Label: "A", CO2eKgPerTonne: 12_000},
		{Label: "B", CO2eKgPerTonne: 1_000},
		{Label: "C", CO2eKgPerTonne: 12_000},
	}

	assert.Equal(t, []string{"B", "Salmon", "A", "C"}, labels(Rank(computed, refs, MetricCO2e, OrderAsc)))
	assert.Equal(t, []string{"Salmon", "A", "C", "B"}, labels(Rank(computed, refs, MetricCO2e, OrderDesc)))
}

func TestRank_Deterministic(t *testing.T) {
	salmon := SalmonRow(footprint.Totals{CO2Kg: 12_000, LandM2: 4_500}, "")
	first := Rank(salmon, referenceRows(), MetricLand, OrderAsc)
	second := Rank(salmon, referenceRows(), MetricLand, OrderAsc)
	assert.Equal(t, first, second)
}

func TestRank_DoesNotMutateInputs(t *testing.T) {
	refs := referenceRows()
	_ = Rank(Row{Label: "Salmon", CO2eKgPerTonne: 1}, refs, MetricCO2e, OrderDesc)
	assert.Equal(t, referenceRows(), refs)
}

func TestRank_NoReferences(t *testing.T) {
	salmon := SalmonRow(footprint.Totals{CO2Kg: 1}, "")
	got := Rank(salmon, nil, MetricCO2e, OrderAsc)
	require.Len(t, got, 1)
	assert.True(t, got[0].Computed)
}

func TestSalmonRow(t *testing.T) {
	row := SalmonRow(footprint.Totals{CO2Kg: 20_592, LandM2: 7_416}, "")
	assert.Equal(t, DefaultSalmonLabel, row.Label)
	assert.Equal(t, 20_592.0, row.Value(MetricCO2e))
	assert.Equal(t, 7_416.0, row.Value(MetricLand))
	assert.True(t, row.Computed)
}

func TestParseSortExpression(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		wantMetric Metric
		wantOrder  Order
		wantErr    bool
		errMsg     string
	}{
		{name: "empty defaults", expr: "", wantMetric: MetricCO2e, wantOrder: OrderAsc},
		{name: "metric only", expr: "land", wantMetric: MetricLand, wantOrder: OrderAsc},
		{name: "explicit desc", expr: "co2:desc", wantMetric: MetricCO2e, wantOrder: OrderDesc},
		{name: "co2e alias upper case", expr: "CO2E:ASC", wantMetric: MetricCO2e, wantOrder: OrderAsc},
		{name: "unknown metric", expr: "water", wantErr: true, errMsg: "unknown ranking metric"},
		{name: "bad order", expr: "co2:up", wantErr: true, errMsg: "invalid sort order"},
		{name: "too many colons", expr: "co2:asc:x", wantErr: true, errMsg: "too many colons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric, order, err := ParseSortExpression(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMetric, metric)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}
