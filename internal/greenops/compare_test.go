package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sewageComparisons() []Comparison {
	return []Comparison{
		{Label: "Norway population", Value: 5.5, Kind: "baseline"},
		{Label: "Fish farm sewage", Value: 50, Kind: "equivalent"},
		{Label: "Spain", Value: 47.6, Kind: "country"},
		{Label: "South Korea", Value: 51.7, Kind: "country"},
		{Label: "Kenya", Value: 54.4, Kind: "country"},
	}
}

func TestNearest(t *testing.T) {
	got := Nearest(sewageComparisons(), 50, "country", 0)
	assert.Equal(t, []string{"South Korea", "Spain", "Kenya"}, comparisonLabels(got))

	got = Nearest(sewageComparisons(), 50, "country", 2)
	assert.Equal(t, []string{"South Korea", "Spain"}, comparisonLabels(got))

	got = Nearest(sewageComparisons(), 5, "", 1)
	assert.Equal(t, []string{"Norway population"}, comparisonLabels(got))
}

func TestNearest_TiesKeepInputOrder(t *testing.T) {
	in := []Comparison{{Label: "A", Value: 9}, {Label: "B", Value: 11}}
	assert.Equal(t, []string{"A", "B"}, comparisonLabels(Nearest(in, 10, "", 0)))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 9.0909, Ratio(50, 5.5), 1e-4)
	assert.Zero(t, Ratio(50, 0))
}

func comparisonLabels(cs []Comparison) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Label)
	}
	return out
}
