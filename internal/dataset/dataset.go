// Package dataset loads and validates the reference data feedprint computes
// over: the ingredient table, feed scenarios, reference protein rows and the
// comparison tables used for narrative equivalencies.
//
// Data is read once, validated, and then treated as immutable. The built-in
// dataset is embedded in the binary; alternatives can be loaded from a YAML
// file or fetched over HTTP.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/greenops"
	"github.com/rshade/feedprint/internal/origins"
	"github.com/rshade/feedprint/internal/ranking"
)

// SupportedSchema is the semver constraint a dataset's schema_version must satisfy.
const SupportedSchema = "^1.0.0"

// DefaultOutputKg is the output mass a feed-conversion ratio is applied to
// when a scenario gives fcr without output_kg: one metric tonne.
const DefaultOutputKg = 1000.0

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrScenarioNotFound indicates an unknown scenario name.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrUnsupportedSchema indicates a schema_version outside SupportedSchema.
	ErrUnsupportedSchema = errors.New("unsupported dataset schema version")

	// ErrInvalidDataset indicates a structurally invalid dataset.
	ErrInvalidDataset = errors.New("invalid dataset")
)

// Scenario is a feed blend plus the scalars needed to evaluate it.
type Scenario struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TotalFeedMassKg is the feed needed for one tonne of output. When zero,
	// it is derived from FCR and OutputKg.
	TotalFeedMassKg float64 `json:"total_feed_mass_kg,omitempty" yaml:"total_feed_mass_kg,omitempty"`
	FCR             float64 `json:"fcr,omitempty" yaml:"fcr,omitempty"`
	OutputKg        float64 `json:"output_kg,omitempty" yaml:"output_kg,omitempty"`

	ProductionTonnes float64         `json:"production_tonnes" yaml:"production_tonnes"`
	Blend            footprint.Blend `json:"blend" yaml:"blend"`
}

// FeedMassKg returns the feed mass used for the per-tonne footprint.
func (s Scenario) FeedMassKg() (float64, error) {
	if s.TotalFeedMassKg != 0 || s.FCR == 0 {
		return s.TotalFeedMassKg, nil
	}
	output := s.OutputKg
	if output == 0 {
		output = DefaultOutputKg
	}
	return footprint.FeedMassForOutput(s.FCR, output)
}

// Dataset is the complete reference data set.
type Dataset struct {
	SchemaVersion         string                `json:"schema_version" yaml:"schema_version"`
	Name                  string                `json:"name" yaml:"name"`
	Destination           origins.Destination   `json:"destination" yaml:"destination"`
	Ingredients           footprint.Table       `json:"ingredients" yaml:"ingredients"`
	Scenarios             []Scenario            `json:"scenarios" yaml:"scenarios"`
	SalmonLabel           string                `json:"salmon_label,omitempty" yaml:"salmon_label,omitempty"`
	ReferenceProteins     []ranking.Row         `json:"reference_proteins" yaml:"reference_proteins"`
	PopulationComparisons []greenops.Comparison `json:"population_comparisons,omitempty" yaml:"population_comparisons,omitempty"`
	AreaComparisons       []greenops.Comparison `json:"area_comparisons,omitempty" yaml:"area_comparisons,omitempty"`
}

// Default returns the embedded built-in dataset.
func Default() (*Dataset, error) {
	return Parse(defaultYAML)
}

// Parse decodes and validates a YAML (or JSON) dataset document.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if ds.Destination.Name == "" && ds.Destination.Coordinates == (footprint.Coordinates{}) {
		ds.Destination = origins.Norway
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks the schema version, the ingredient table, every scenario
// and the reference protein rows.
func (d *Dataset) Validate() error {
	if err := checkSchema(d.SchemaVersion); err != nil {
		return err
	}
	if err := d.Ingredients.Validate(); err != nil {
		return fmt.Errorf("%w: ingredients: %w", ErrInvalidDataset, err)
	}

	seen := make(map[string]struct{}, len(d.Scenarios))
	for _, s := range d.Scenarios {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: scenario name is required", ErrInvalidDataset)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: duplicate scenario %q", ErrInvalidDataset, s.Name)
		}
		seen[s.Name] = struct{}{}

		mass, err := s.FeedMassKg()
		if err != nil {
			return fmt.Errorf("%w: scenario %q: %w", ErrInvalidDataset, s.Name, err)
		}
		if mass <= 0 {
			return fmt.Errorf("%w: scenario %q: total_feed_mass_kg or fcr is required", ErrInvalidDataset, s.Name)
		}
		if s.ProductionTonnes <= 0 {
			return fmt.Errorf("%w: scenario %q: production_tonnes must be positive", ErrInvalidDataset, s.Name)
		}
		if err = s.Blend.Validate(); err != nil {
			return fmt.Errorf("%w: scenario %q: blend: %w", ErrInvalidDataset, s.Name, err)
		}
	}

	for _, row := range d.ReferenceProteins {
		if row.Label == "" || row.CO2eKgPerTonne < 0 || row.LandM2PerTonne < 0 {
			return fmt.Errorf("%w: reference protein %q", ErrInvalidDataset, row.Label)
		}
	}
	return nil
}

// Scenario returns the named scenario. An empty name selects the first one.
func (d *Dataset) Scenario(name string) (Scenario, error) {
	if name == "" && len(d.Scenarios) > 0 {
		return d.Scenarios[0], nil
	}
	for _, s := range d.Scenarios {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
}

// ScenarioNames lists scenario names in declaration order.
func (d *Dataset) ScenarioNames() []string {
	names := make([]string, 0, len(d.Scenarios))
	for _, s := range d.Scenarios {
		names = append(names, s.Name)
	}
	return names
}

func checkSchema(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	c, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("invalid schema constraint %q: %w", SupportedSchema, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, SupportedSchema)
	}
	return nil
}
