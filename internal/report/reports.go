package report

import (
	"errors"

	"github.com/rshade/feedprint/internal/dataset"
	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/greenops"
	"github.com/rshade/feedprint/internal/origins"
	"github.com/rshade/feedprint/internal/ranking"
)

// Report kinds.
const (
	KindIngredients = "ingredients"
	KindFootprint   = "footprint"
	KindNational    = "national"
	KindCompare     = "compare"
	KindOrigins     = "origins"
	KindPollution   = "pollution"
)

// nearestCountries is how many reference countries a report lists.
const nearestCountries = 3

// Comparison kinds used in population tables.
const (
	comparisonBaseline   = "baseline"
	comparisonEquivalent = "equivalent"
	comparisonCountry    = "country"
)

// ErrMissingComparison indicates a population table without a baseline or
// equivalent row.
var ErrMissingComparison = errors.New("population comparisons need a baseline and an equivalent row")

// IngredientsReport lists the ingredient table.
type IngredientsReport struct {
	Metadata    Metadata        `json:"metadata"`
	Ingredients footprint.Table `json:"ingredients"`
}

// Meta implements Report.
func (r *IngredientsReport) Meta() Metadata { return r.Metadata }

func (r *IngredientsReport) records() []any {
	out := make([]any, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		out = append(out, ing)
	}
	return out
}

// Ingredients builds an IngredientsReport.
func (b *Builder) Ingredients(table footprint.Table) *IngredientsReport {
	return &IngredientsReport{Metadata: b.meta(KindIngredients, ""), Ingredients: table}
}

// FootprintReport is the per-tonne footprint of a scenario.
type FootprintReport struct {
	Metadata      Metadata                 `json:"metadata"`
	FeedMassKg    float64                  `json:"total_feed_mass_kg"`
	Totals        footprint.Totals         `json:"totals"`
	Contributions []footprint.Contribution `json:"contributions"`
	Warnings      []footprint.Warning      `json:"warnings"`
	Equivalencies greenops.Summary         `json:"equivalencies"`
}

// Meta implements Report.
func (r *FootprintReport) Meta() Metadata { return r.Metadata }

func (r *FootprintReport) records() []any {
	out := make([]any, 0, len(r.Contributions))
	for _, c := range r.Contributions {
		out = append(out, c)
	}
	return out
}

// Footprint builds a FootprintReport from an evaluation.
func (b *Builder) Footprint(ev dataset.Evaluation) *FootprintReport {
	totals := ev.PerTonne.Totals
	return &FootprintReport{
		Metadata:      b.meta(KindFootprint, ev.Scenario),
		FeedMassKg:    ev.FeedMassKg,
		Totals:        totals,
		Contributions: nonNil(ev.PerTonne.Contributions),
		Warnings:      nonNil(ev.PerTonne.Warnings),
		Equivalencies: greenops.Summarize(totals.CO2Kg, totals.LandM2),
	}
}

// NationalReport is a scenario scaled to national production.
type NationalReport struct {
	Metadata         Metadata                 `json:"metadata"`
	National         footprint.NationalImpact `json:"national"`
	Equivalencies    greenops.Summary         `json:"equivalencies"`
	SimilarCountries []greenops.Comparison    `json:"similar_countries"`
	Warnings         []footprint.Warning      `json:"warnings"`
}

// Meta implements Report.
func (r *NationalReport) Meta() Metadata { return r.Metadata }

func (r *NationalReport) records() []any { return []any{r.National} }

// National builds a NationalReport. areas are country areas in km²; the
// ones closest to the national land use are listed.
func (b *Builder) National(ev dataset.Evaluation, areas []greenops.Comparison) *NationalReport {
	n := ev.National
	km2 := n.LandM2 / greenops.Km2ToM2
	return &NationalReport{
		Metadata:         b.meta(KindNational, ev.Scenario),
		National:         n,
		Equivalencies:    greenops.Summarize(n.CO2Kg, n.LandM2),
		SimilarCountries: nonNil(greenops.Nearest(areas, km2, "", nearestCountries)),
		Warnings:         nonNil(ev.PerTonne.Warnings),
	}
}

// CompareReport ranks the salmon footprint against reference proteins.
type CompareReport struct {
	Metadata Metadata            `json:"metadata"`
	Metric   ranking.Metric      `json:"metric"`
	Order    ranking.Order       `json:"order"`
	Rows     []ranking.Row       `json:"rows"`
	Warnings []footprint.Warning `json:"warnings"`
}

// Meta implements Report.
func (r *CompareReport) Meta() Metadata { return r.Metadata }

func (r *CompareReport) records() []any {
	out := make([]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row)
	}
	return out
}

// Compare builds a CompareReport from already ranked rows.
func (b *Builder) Compare(ev dataset.Evaluation, rows []ranking.Row, metric ranking.Metric, order ranking.Order) *CompareReport {
	return &CompareReport{
		Metadata: b.meta(KindCompare, ev.Scenario),
		Metric:   metric,
		Order:    order,
		Rows:     nonNil(rows),
		Warnings: nonNil(ev.PerTonne.Warnings),
	}
}

// OriginsReport lists ingredient flows to the destination.
type OriginsReport struct {
	Metadata    Metadata            `json:"metadata"`
	Destination origins.Destination `json:"destination"`
	Metric      ranking.Metric      `json:"metric"`
	Flows       []origins.Flow      `json:"flows"`
}

// Meta implements Report.
func (r *OriginsReport) Meta() Metadata { return r.Metadata }

func (r *OriginsReport) records() []any {
	out := make([]any, 0, len(r.Flows))
	for _, f := range r.Flows {
		out = append(out, f)
	}
	return out
}

// Origins builds an OriginsReport.
func (b *Builder) Origins(dest origins.Destination, metric ranking.Metric, flows []origins.Flow) *OriginsReport {
	return &OriginsReport{
		Metadata:    b.meta(KindOrigins, ""),
		Destination: dest,
		Metric:      metric,
		Flows:       nonNil(flows),
	}
}

// PollutionReport expresses fish-farm sewage as a human population.
type PollutionReport struct {
	Metadata Metadata `json:"metadata"`

	// Baseline is the reference population, e.g. Norway.
	Baseline greenops.Comparison `json:"baseline"`

	// Equivalent is the population the sewage corresponds to.
	Equivalent greenops.Comparison `json:"equivalent"`

	// Ratio is Equivalent.Value / Baseline.Value.
	Ratio float64 `json:"ratio"`

	// SimilarCountries are the countries whose population is closest to Equivalent.
	SimilarCountries []greenops.Comparison `json:"similar_countries"`

	Comparisons []greenops.Comparison `json:"comparisons"`
}

// Meta implements Report.
func (r *PollutionReport) Meta() Metadata { return r.Metadata }

func (r *PollutionReport) records() []any {
	out := make([]any, 0, len(r.Comparisons))
	for _, c := range r.Comparisons {
		out = append(out, c)
	}
	return out
}

// Pollution builds a PollutionReport. The first rows of kind "baseline"
// and "equivalent" are used.
func (b *Builder) Pollution(comparisons []greenops.Comparison) (*PollutionReport, error) {
	var baseline, equivalent *greenops.Comparison
	for i := range comparisons {
		switch comparisons[i].Kind {
		case comparisonBaseline:
			if baseline == nil {
				baseline = &comparisons[i]
			}
		case comparisonEquivalent:
			if equivalent == nil {
				equivalent = &comparisons[i]
			}
		}
	}
	if baseline == nil || equivalent == nil {
		return nil, ErrMissingComparison
	}

	return &PollutionReport{
		Metadata:         b.meta(KindPollution, ""),
		Baseline:         *baseline,
		Equivalent:       *equivalent,
		Ratio:            greenops.Ratio(equivalent.Value, baseline.Value),
		SimilarCountries: nonNil(greenops.Nearest(comparisons, equivalent.Value, comparisonCountry, nearestCountries)),
		Comparisons:      comparisons,
	}, nil
}

// nonNil returns s, or an empty slice so JSON output has [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
