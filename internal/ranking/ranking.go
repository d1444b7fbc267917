package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/feedprint/internal/footprint"
)

// DefaultSalmonLabel is the label used for the computed row.
const DefaultSalmonLabel = "Salmon (farmed)"

// Sort orders accepted by Rank and ParseSortExpression.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const sortPartsMax = 2

// Order is the direction of a ranking.
type Order string

// Metric selects the value rows are ranked by.
type Metric string

const (
	// MetricCO2e ranks by kg CO2e per tonne.
	MetricCO2e Metric = "co2"

	// MetricLand ranks by m² of land per tonne.
	MetricLand Metric = "land"
)

// ErrUnknownMetric indicates an unrecognised metric name.
var ErrUnknownMetric = errors.New("unknown ranking metric")

// Row is the impact of producing one tonne of a protein source.
type Row struct {
	Label          string  `json:"label" yaml:"label"`
	CO2eKgPerTonne float64 `json:"co2e_kg_per_tonne" yaml:"co2e_kg_per_tonne"`
	LandM2PerTonne float64 `json:"land_m2_per_tonne" yaml:"land_m2_per_tonne"`

	// Computed is true for the row derived from the footprint aggregator.
	Computed bool `json:"computed" yaml:"-"`
}

// Value returns the row's value for metric.
func (r Row) Value(metric Metric) float64 {
	if metric == MetricLand {
		return r.LandM2PerTonne
	}
	return r.CO2eKgPerTonne
}

// SalmonRow builds the computed row from per-tonne footprint totals.
// An empty label falls back to DefaultSalmonLabel.
func SalmonRow(totals footprint.Totals, label string) Row {
	if label == "" {
		label = DefaultSalmonLabel
	}
	return Row{
		Label:          label,
		CO2eKgPerTonne: totals.CO2Kg,
		LandM2PerTonne: totals.LandM2,
		Computed:       true,
	}
}

// Rank merges the computed row with the reference rows and sorts the result
// by metric. The computed row is placed before the references prior to
// sorting, so on ties it precedes them.
//
// Sorting is stable in both directions: rows with equal values keep their
// input order. Inputs are not modified. An unrecognised metric falls back to
// MetricCO2e and an unrecognised order to OrderAsc.
func Rank(computed Row, refs []Row, metric Metric, order Order) []Row {
	rows := make([]Row, 0, len(refs)+1)
	rows = append(rows, computed)
	rows = append(rows, refs...)

	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := rows[i].Value(metric), rows[j].Value(metric)
		if order == OrderDesc {
			return vi > vj
		}
		return vi < vj
	})

	return rows
}

// ParseMetric converts a metric name to a Metric. It accepts "co2", "co2e"
// and "land", case-insensitively.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "co2", "co2e", "":
		return MetricCO2e, nil
	case "land":
		return MetricLand, nil
	default:
		return "", fmt.Errorf("%w: %q (must be co2 or land)", ErrUnknownMetric, s)
	}
}

// ParseSortExpression parses a sort expression in "metric:order" format.
// Supports:
//   - "metric" - defaults to asc order
//   - "metric:asc" - explicit ascending order
//   - "metric:desc" - explicit descending order
//
// An empty expression selects co2 ascending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSortExpression(expr string) (metric Metric, order Order, err error) {
	if strings.TrimSpace(expr) == "" {
		return MetricCO2e, OrderAsc, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	metric, err = ParseMetric(parts[0])
	if err != nil {
		return "", "", err
	}

	order = OrderAsc
	if len(parts) == sortPartsMax {
		order = Order(strings.ToLower(strings.TrimSpace(parts[1])))
	}
	if order != OrderAsc && order != OrderDesc {
		return "", "", fmt.Errorf("invalid sort order: %q (must be asc or desc)", order)
	}

	return metric, order, nil
}
