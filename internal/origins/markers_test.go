package origins

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/greenops"
)

func TestMarkers(t *testing.T) {
	comparisons := []greenops.Comparison{
		{Label: "Norway population", Value: 5.5, Kind: "baseline", Coordinates: &footprint.Coordinates{Lat: 60.5, Lon: 8.5}},
		{Label: "Fish farm sewage", Value: 50, Kind: "equivalent"},
		{Label: "Kenya", Value: 54.4, Kind: "country", Coordinates: &footprint.Coordinates{Lat: 1.3, Lon: 38.0}},
	}

	mc := Markers(comparisons)
	assert.Equal(t, "FeatureCollection", mc.Type)
	require.Len(t, mc.Features, 2, "comparisons without coordinates are skipped")

	first := mc.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	assert.Equal(t, [2]float64{8.5, 60.5}, first.Geometry.Coordinates, "positions are lon, lat")
	assert.Equal(t, "Norway population", first.Properties["label"])
	assert.Equal(t, "baseline", first.Properties["kind"])
	assert.Equal(t, "Kenya", mc.Features[1].Properties["label"])
}

func TestMarkers_Empty(t *testing.T) {
	data, err := MarshalMarkers(nil)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["features"])
}
