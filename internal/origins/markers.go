package origins

import (
	"encoding/json"

	"github.com/rshade/feedprint/internal/greenops"
)

// MarkerCollection is a GeoJSON FeatureCollection of point markers.
type MarkerCollection struct {
	Type     string          `json:"type"`
	Features []MarkerFeature `json:"features"`
}

// MarkerFeature is a GeoJSON Feature with a Point geometry.
type MarkerFeature struct {
	Type       string         `json:"type"`
	Geometry   Point          `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Point is a GeoJSON Point geometry. The position is [lon, lat].
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Markers converts located comparisons into point markers, in input order.
// Comparisons without coordinates are skipped.
func Markers(comparisons []greenops.Comparison) MarkerCollection {
	mc := MarkerCollection{Type: "FeatureCollection", Features: make([]MarkerFeature, 0, len(comparisons))}
	for _, c := range comparisons {
		if c.Coordinates == nil {
			continue
		}
		mc.Features = append(mc.Features, MarkerFeature{
			Type: "Feature",
			Geometry: Point{
				Type:        "Point",
				Coordinates: [2]float64{c.Coordinates.Lon, c.Coordinates.Lat},
			},
			Properties: map[string]any{
				"label": c.Label,
				"value": c.Value,
				"kind":  c.Kind,
			},
		})
	}
	return mc
}

// MarshalMarkers encodes located comparisons as indented GeoJSON.
func MarshalMarkers(comparisons []greenops.Comparison) ([]byte, error) {
	return json.MarshalIndent(Markers(comparisons), "", "  ")
}
