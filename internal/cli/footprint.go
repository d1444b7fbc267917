package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/feedprint/internal/dataset"
	"github.com/rshade/feedprint/internal/origins"
)

// footprintParams holds the parameters for the footprint and national commands.
type footprintParams struct {
	feedMass         float64
	fcr              float64
	outputKg         float64
	productionTonnes float64
}

// apply overlays explicitly set flags onto the scenario.
func (p footprintParams) apply(cmd *cobra.Command, sc dataset.Scenario) dataset.Scenario {
	flags := cmd.Flags()
	if flags.Changed("fcr") {
		sc.FCR = p.fcr
		sc.TotalFeedMassKg = 0
	}
	if flags.Changed("output-kg") {
		sc.OutputKg = p.outputKg
	}
	if flags.Changed("feed-mass") {
		sc.TotalFeedMassKg = p.feedMass
	}
	if flags.Changed("production-tonnes") {
		sc.ProductionTonnes = p.productionTonnes
	}
	return sc
}

func (p *footprintParams) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&p.feedMass, "feed-mass", 0,
		"feed mass in kg per tonne of salmon (overrides the scenario)")
	cmd.Flags().Float64Var(&p.fcr, "fcr", 0,
		"feed-conversion ratio; feed mass becomes fcr × output-kg")
	cmd.Flags().Float64Var(&p.outputKg, "output-kg", dataset.DefaultOutputKg,
		"output mass the feed-conversion ratio applies to")
	cmd.MarkFlagsMutuallyExclusive("feed-mass", "fcr")
}

// NewFootprintCmd creates the "footprint" command, which prints the
// per-tonne footprint of the selected scenario.
func NewFootprintCmd() *cobra.Command {
	var params footprintParams

	cmd := &cobra.Command{
		Use:   "footprint",
		Short: "Carbon and land footprint of one tonne of farmed salmon",
		Long: `Computes the kg CO2e and m² of land attributable to the feed needed for
one tonne of farmed salmon, ingredient by ingredient.

Blend keys that match no ingredient are skipped and reported as warnings.
With --strict the report is still written, then the command exits with
code 2 when any warning was raised.`,
		Example: `  # Default scenario
  feedprint footprint

  # Override the feed mass
  feedprint footprint --feed-mass 6500

  # Derive feed mass from a feed-conversion ratio
  feedprint footprint --fcr 1.2 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeFootprint(cmd, params)
		},
	}
	params.register(cmd)
	return cmd
}

func executeFootprint(cmd *cobra.Command, params footprintParams) error {
	ds, sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sc = params.apply(cmd, sc)
	checkBlendSum(cmd, sc)

	ev, err := ds.Evaluate(sc)
	if err != nil {
		return err
	}

	if err = render(cmd, newBuilder(cmd, ds).Footprint(ev)); err != nil {
		return err
	}
	return handleWarnings(cmd, ev.PerTonne.Warnings)
}

// NewNationalCmd creates the "national" command, which scales the
// per-tonne footprint to a national production volume.
func NewNationalCmd() *cobra.Command {
	var params footprintParams

	cmd := &cobra.Command{
		Use:   "national",
		Short: "Footprint of a national salmon production volume",
		Example: `  # Norway's production from the default scenario
  feedprint national

  # A different production volume
  feedprint national --production-tonnes 1000000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeNational(cmd, params)
		},
	}
	params.register(cmd)
	cmd.Flags().Float64Var(&params.productionTonnes, "production-tonnes", 0,
		"tonnes of salmon produced (overrides the scenario)")
	return cmd
}

func executeNational(cmd *cobra.Command, params footprintParams) error {
	ds, sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sc = params.apply(cmd, sc)
	checkBlendSum(cmd, sc)

	ev, err := ds.Evaluate(sc)
	if err != nil {
		return err
	}

	if err = render(cmd, newBuilder(cmd, ds).National(ev, ds.AreaComparisons)); err != nil {
		return err
	}
	return handleWarnings(cmd, ev.PerTonne.Warnings)
}

// errNoComparisons is returned when the dataset lacks a comparison table.
var errNoComparisons = errors.New("dataset has no population comparisons")

// NewPollutionCmd creates the "pollution" command, which expresses fish
// farm sewage as a human population equivalent.
func NewPollutionCmd() *cobra.Command {
	var geoJSON bool

	cmd := &cobra.Command{
		Use:   "pollution",
		Short: "Fish farm sewage expressed as a population equivalent",
		Example: `  # Bar chart of sewage against country populations
  feedprint pollution

  # Country markers for a map front-end
  feedprint pollution --geojson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			if len(ds.PopulationComparisons) == 0 {
				return errNoComparisons
			}
			if geoJSON {
				data, marshalErr := origins.MarshalMarkers(ds.PopulationComparisons)
				if marshalErr != nil {
					return fmt.Errorf("encoding GeoJSON: %w", marshalErr)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			rep, err := newBuilder(cmd, ds).Pollution(ds.PopulationComparisons)
			if err != nil {
				return err
			}
			return render(cmd, rep)
		},
	}

	cmd.Flags().BoolVar(&geoJSON, "geojson", false, "write country markers as a GeoJSON FeatureCollection")
	return cmd
}

// NewIngredientsCmd creates the "ingredients" command, which lists the
// dataset's ingredient table.
func NewIngredientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingredients",
		Short: "List feed ingredients and their per-kg footprint factors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}
			return render(cmd, newBuilder(cmd, ds).Ingredients(ds.Ingredients))
		},
	}
}
