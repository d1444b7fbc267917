package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/ranking"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", ds.SchemaVersion)
	assert.Len(t, ds.Ingredients, 5)
	assert.Equal(t, "Soy", ds.Ingredients[0].Name)
	assert.Equal(t, "Norway", ds.Destination.Name)
	assert.Equal(t, []string{"norway-2024"}, ds.ScenarioNames())
	assert.Len(t, ds.ReferenceProteins, 3)
	assert.Len(t, ds.PopulationComparisons, 5)
	assert.Len(t, ds.AreaComparisons, 4)

	s, err := ds.Scenario("")
	require.NoError(t, err)
	assert.Equal(t, "norway-2024", s.Name)
	require.Len(t, s.Blend, 5)
	assert.Equal(t, footprint.BlendComponent{Key: "Fish Oil", Fraction: 0.10}, s.Blend[1])
}

func TestEvaluate_DefaultScenario(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	s, err := ds.Scenario("NORWAY-2024")
	require.NoError(t, err)

	ev, err := ds.Evaluate(s)
	require.NoError(t, err)

	assert.Equal(t, "norway-2024", ev.Scenario)
	assert.Equal(t, 7200.0, ev.FeedMassKg)
	assert.Equal(t, "norway-2024", ev.PerTonne.Totals.Scenario)
	assert.InDelta(t, 26_568.0, ev.PerTonne.Totals.CO2Kg, 1e-6)
	assert.InDelta(t, 10_440.0, ev.PerTonne.Totals.LandM2, 1e-6)
	assert.InDelta(t, 39_852_000_000.0, ev.National.CO2Kg, 1)
	assert.InDelta(t, 15_660_000_000.0, ev.National.LandM2, 1)
	assert.Empty(t, ev.PerTonne.Warnings)

	rows := ds.Ranking(ev, ranking.MetricCO2e, ranking.OrderAsc)
	require.Len(t, rows, 4)
	assert.Equal(t, "Salmon (farmed)", rows[2].Label)
	assert.True(t, rows[2].Computed)
}

func TestScenario_NotFound(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	_, err = ds.Scenario("chile-2030")
	require.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestScenario_FeedMassFromFCR(t *testing.T) {
	s := Scenario{Name: "fcr", FCR: 1.2}
	mass, err := s.FeedMassKg()
	require.NoError(t, err)
	assert.InDelta(t, 1200.0, mass, 1e-9)

	s = Scenario{Name: "fcr", FCR: 1.2, OutputKg: 6000}
	mass, err = s.FeedMassKg()
	require.NoError(t, err)
	assert.InDelta(t, 7200.0, mass, 1e-9)

	s = Scenario{Name: "explicit", TotalFeedMassKg: 7200, FCR: 1.2}
	mass, err = s.FeedMassKg()
	require.NoError(t, err)
	assert.Equal(t, 7200.0, mass, "explicit feed mass wins")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "missing schema",
			doc:     "ingredients: [{name: Soy, co2e_kg_per_kg: 1, land_m2_per_kg: 1}]",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "future major schema",
			doc:     "schema_version: 2.0.0\ningredients: [{name: Soy}]",
			wantErr: ErrUnsupportedSchema,
		},
		{
			name:    "empty ingredients",
			doc:     "schema_version: 1.0.0\ningredients: []",
			wantErr: footprint.ErrEmptyIngredientTable,
		},
		{
			name:    "negative factor",
			doc:     "schema_version: 1.0.0\ningredients: [{name: Soy, co2e_kg_per_kg: -1}]",
			wantErr: footprint.ErrInvalidIngredient,
		},
		{
			name: "scenario without feed mass",
			doc: `schema_version: 1.0.0
ingredients: [{name: Soy, co2e_kg_per_kg: 1, land_m2_per_kg: 1}]
scenarios: [{name: s, production_tonnes: 1, blend: [{key: Soy, fraction: 1}]}]`,
			wantErr: ErrInvalidDataset,
		},
		{
			name: "duplicate scenario",
			doc: `schema_version: 1.0.0
ingredients: [{name: Soy, co2e_kg_per_kg: 1, land_m2_per_kg: 1}]
scenarios:
  - {name: s, total_feed_mass_kg: 1, production_tonnes: 1}
  - {name: s, total_feed_mass_kg: 1, production_tonnes: 1}`,
			wantErr: ErrInvalidDataset,
		},
		{
			name: "duplicate blend key",
			doc: `schema_version: 1.0.0
ingredients: [{name: Soy, co2e_kg_per_kg: 1, land_m2_per_kg: 1}]
scenarios:
  - name: s
    total_feed_mass_kg: 1
    production_tonnes: 1
    blend: [{key: Soy, fraction: 0.35}, {key: " soy ", fraction: 0.35}]`,
			wantErr: footprint.ErrDuplicateBlendKey,
		},
		{
			name: "blend fraction above one",
			doc: `schema_version: 1.0.0
ingredients: [{name: Soy, co2e_kg_per_kg: 1, land_m2_per_kg: 1}]
scenarios: [{name: s, total_feed_mass_kg: 1, production_tonnes: 1, blend: [{key: Soy, fraction: 2}]}]`,
			wantErr: footprint.ErrInvalidScalar,
		},
		{
			name: "bad reference protein",
			doc: `schema_version: 1.0.0
ingredients: [{name: Soy, co2e_kg_per_kg: 1, land_m2_per_kg: 1}]
reference_proteins: [{label: Beef, co2e_kg_per_tonne: -5}]`,
			wantErr: ErrInvalidDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_DefaultsDestination(t *testing.T) {
	ds, err := Parse([]byte("schema_version: 1.2.0\ningredients: [{name: Soy, co2e_kg_per_kg: 1, land_m2_per_kg: 1}]"))
	require.NoError(t, err)
	assert.Equal(t, "Norway", ds.Destination.Name)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0o600))

	ds, err := Open(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Len(t, ds.Ingredients, 5)

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_Builtin(t *testing.T) {
	for _, src := range []string{"", SourceBuiltin} {
		ds, err := Open(context.Background(), src, 0)
		require.NoError(t, err)
		assert.Equal(t, "norwegian-salmon-feed", ds.Name)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.yaml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(defaultYAML)
	}))
	t.Cleanup(srv.Close)

	ds, err := Open(context.Background(), srv.URL+"/data.yaml", time.Second)
	require.NoError(t, err)
	assert.Len(t, ds.Scenarios, 1)

	_, err = Fetch(context.Background(), srv.URL+"/missing", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
