// Package origins describes where feed ingredients travel from.
//
// Each ingredient becomes a flow from its sourcing coordinates to a
// destination (by default the centre of Norway) carrying the selected impact
// metric and its min-max normalised intensity. Map front-ends decide colours
// and line widths from the intensity.
package origins

import (
	"encoding/json"

	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/ranking"
)

// Norway is the default flow destination (centre of Norway).
//
//nolint:gochecknoglobals // Immutable reference coordinate.
var Norway = Destination{Name: "Norway", Coordinates: footprint.Coordinates{Lat: 60.4720, Lon: 8.4689}}

// Destination is where ingredients are shipped to.
type Destination struct {
	Name        string                `json:"name" yaml:"name"`
	Coordinates footprint.Coordinates `json:"coordinates" yaml:"coordinates"`
}

// Flow is one ingredient's path from origin to destination.
type Flow struct {
	Ingredient  string                `json:"ingredient"`
	Origin      string                `json:"origin"`
	From        footprint.Coordinates `json:"from"`
	To          footprint.Coordinates `json:"to"`
	Metric      ranking.Metric        `json:"metric"`
	Value       float64               `json:"value"`
	CO2PerKg    float64               `json:"co2e_kg_per_kg"`
	LandPerKg   float64               `json:"land_m2_per_kg"`
	Intensity   float64               `json:"intensity"`
	Destination string                `json:"destination"`
}

// Flows builds one flow per ingredient in table order.
//
// Intensity is (value - min) / (max - min) over the table for the chosen
// metric, and 0 for every flow when all values are equal.
func Flows(table footprint.Table, dest Destination, metric ranking.Metric) []Flow {
	if len(table) == 0 {
		return nil
	}

	value := func(ing footprint.Ingredient) float64 {
		if metric == ranking.MetricLand {
			return ing.LandPerKg
		}
		return ing.CO2PerKg
	}

	lo, hi := value(table[0]), value(table[0])
	for _, ing := range table[1:] {
		v := value(ing)
		lo = min(lo, v)
		hi = max(hi, v)
	}

	flows := make([]Flow, 0, len(table))
	for _, ing := range table {
		v := value(ing)
		var intensity float64
		if hi > lo {
			intensity = (v - lo) / (hi - lo)
		}
		flows = append(flows, Flow{
			Ingredient:  ing.Name,
			Origin:      ing.Origin,
			From:        ing.Coordinates,
			To:          dest.Coordinates,
			Metric:      metric,
			Value:       v,
			CO2PerKg:    ing.CO2PerKg,
			LandPerKg:   ing.LandPerKg,
			Intensity:   intensity,
			Destination: dest.Name,
		})
	}
	return flows
}

// FeatureCollection is a GeoJSON FeatureCollection of flow lines.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON Feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON LineString geometry. Positions are [lon, lat].
type Geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// ToGeoJSON converts flows into a FeatureCollection of LineStrings.
func ToGeoJSON(flows []Flow) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(flows))}
	for _, f := range flows {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type: "LineString",
				Coordinates: [][2]float64{
					{f.From.Lon, f.From.Lat},
					{f.To.Lon, f.To.Lat},
				},
			},
			Properties: map[string]any{
				"ingredient":     f.Ingredient,
				"origin":         f.Origin,
				"destination":    f.Destination,
				"metric":         string(f.Metric),
				"value":          f.Value,
				"co2e_kg_per_kg": f.CO2PerKg,
				"land_m2_per_kg": f.LandPerKg,
				"intensity":      f.Intensity,
			},
		})
	}
	return fc
}

// MarshalGeoJSON encodes flows as indented GeoJSON.
func MarshalGeoJSON(flows []Flow) ([]byte, error) {
	return json.MarshalIndent(ToGeoJSON(flows), "", "  ")
}
