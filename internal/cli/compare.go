package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/feedprint/internal/origins"
	"github.com/rshade/feedprint/internal/ranking"
)

// NewCompareCmd creates the "compare" command, which ranks the salmon
// footprint against the dataset's reference proteins.
func NewCompareCmd() *cobra.Command {
	var sortExpr string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank farmed salmon against other proteins",
		Long: `Ranks the computed salmon footprint together with the reference proteins
(poultry, pork, beef) by kg CO2e or m² of land per tonne.

Ties keep their input order, with the computed row first.`,
		Example: `  # Lowest carbon first
  feedprint compare

  # Highest land use first
  feedprint compare --sort land:desc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			metric, order, err := ranking.ParseSortExpression(sortExpr)
			if err != nil {
				return fmt.Errorf("invalid --sort: %w", err)
			}

			ds, sc, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			ev, err := ds.Evaluate(sc)
			if err != nil {
				return err
			}

			rows := ds.Ranking(ev, metric, order)
			if err = render(cmd, newBuilder(cmd, ds).Compare(ev, rows, metric, order)); err != nil {
				return err
			}
			return handleWarnings(cmd, ev.PerTonne.Warnings)
		},
	}

	cmd.Flags().StringVar(&sortExpr, "sort", "co2:asc", "sort expression metric[:order]; metric co2|land, order asc|desc")
	return cmd
}

// NewOriginsCmd creates the "origins" command, which lists where each
// ingredient is sourced and its flow to the destination.
func NewOriginsCmd() *cobra.Command {
	var (
		metricName string
		geoJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "origins",
		Short: "Ingredient origins and flows to the destination",
		Example: `  # Table of origins coloured by carbon intensity
  feedprint origins

  # GeoJSON for a map front-end, intensity by land use
  feedprint origins --metric land --geojson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			metric, err := ranking.ParseMetric(metricName)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd)
			if err != nil {
				return err
			}

			flows := origins.Flows(ds.Ingredients, ds.Destination, metric)
			if geoJSON {
				data, marshalErr := origins.MarshalGeoJSON(flows)
				if marshalErr != nil {
					return fmt.Errorf("encoding GeoJSON: %w", marshalErr)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return render(cmd, newBuilder(cmd, ds).Origins(ds.Destination, metric, flows))
		},
	}

	cmd.Flags().StringVar(&metricName, "metric", "co2", "flow intensity metric: co2 or land")
	cmd.Flags().BoolVar(&geoJSON, "geojson", false, "write a GeoJSON FeatureCollection instead of a report")
	return cmd
}
