package dataset

import (
	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/ranking"
)

// Evaluation is a scenario run through the footprint aggregator.
type Evaluation struct {
	Scenario   string                   `json:"scenario"`
	FeedMassKg float64                  `json:"total_feed_mass_kg"`
	PerTonne   footprint.Result         `json:"per_tonne"`
	National   footprint.NationalImpact `json:"national"`
}

// Evaluate computes the per-tonne footprint of s against the dataset's
// ingredient table and scales it to the scenario's production volume.
func (d *Dataset) Evaluate(s Scenario) (Evaluation, error) {
	mass, err := s.FeedMassKg()
	if err != nil {
		return Evaluation{}, err
	}

	res, err := footprint.ComputePerTonne(d.Ingredients, s.Blend, mass)
	if err != nil {
		return Evaluation{}, err
	}
	res.Totals.Scenario = s.Name

	national, err := footprint.ScaleToNationalImpact(res.Totals, s.ProductionTonnes)
	if err != nil {
		return Evaluation{}, err
	}

	return Evaluation{
		Scenario:   s.Name,
		FeedMassKg: mass,
		PerTonne:   res,
		National:   national,
	}, nil
}

// Ranking merges the evaluated salmon row with the reference proteins.
func (d *Dataset) Ranking(ev Evaluation, metric ranking.Metric, order ranking.Order) []ranking.Row {
	salmon := ranking.SalmonRow(ev.PerTonne.Totals, d.SalmonLabel)
	return ranking.Rank(salmon, d.ReferenceProteins, metric, order)
}
