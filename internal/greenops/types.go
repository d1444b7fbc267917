// Package greenops turns feed footprint figures into relatable equivalencies.
//
// Carbon values are expressed as long-haul round-trip flights, land values as
// football fields and square kilometres, and population-equivalent figures
// are matched against countries of similar size. The package also owns the
// locale-aware number formatting shared by the CLI and the HTTP API.
package greenops

import (
	"fmt"

	"github.com/rshade/feedprint/internal/footprint"
)

// EquivalencyType represents a category of footprint equivalency.
type EquivalencyType int

const (
	// EquivalencyFlightsEuropeAsia converts CO2e to Europe-Asia round trips.
	EquivalencyFlightsEuropeAsia EquivalencyType = iota

	// EquivalencyFlightsEuropeAustralia converts CO2e to Europe-Australia round trips.
	EquivalencyFlightsEuropeAustralia

	// EquivalencyFootballFields converts land use to football fields.
	EquivalencyFootballFields

	// EquivalencySquareKilometres converts land use to km².
	EquivalencySquareKilometres
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyFlightsEuropeAsia:
		return "FlightsEuropeAsia"
	case EquivalencyFlightsEuropeAustralia:
		return "FlightsEuropeAustralia"
	case EquivalencyFootballFields:
		return "FootballFields"
	case EquivalencySquareKilometres:
		return "SquareKilometres"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText encodes the type by name.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// CarbonInput represents carbon emission data for equivalency calculation.
type CarbonInput struct {
	// Value is the numeric carbon emission amount.
	Value float64 `json:"value"`

	// Unit is the measurement unit (g, kg, t, gCO2e, kgCO2e, tCO2e, lb, lbCO2e).
	Unit string `json:"unit"`
}

// LandInput represents land use data for equivalency calculation.
type LandInput struct {
	// Value is the numeric area.
	Value float64 `json:"value"`

	// Unit is the measurement unit (m2, ha, km2).
	Unit string `json:"unit"`
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// Input is the normalized input value (kg CO2e or m²).
	Input float64 `json:"input"`

	// Results contains calculated equivalencies in priority order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the full prose format for CLI output.
	// Example: "Equivalent to ~27 round-trip flights from Europe to Asia"
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated format for constrained outputs.
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}

// Summary bundles carbon and land equivalencies for one footprint figure.
type Summary struct {
	Carbon EquivalencyOutput `json:"carbon"`
	Land   EquivalencyOutput `json:"land"`
}

// Comparison is a labelled reference quantity, such as a country's
// population in millions or its area in km².
type Comparison struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`

	// Kind groups comparisons for display, e.g. "baseline", "equivalent" or "country".
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Coordinates place the comparison on a map. Nil for figures with no
	// location, such as the sewage equivalent.
	Coordinates *footprint.Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}
