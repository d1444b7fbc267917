package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/rshade/feedprint/internal/config"
	"github.com/rshade/feedprint/internal/dataset"
	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/logging"
	"github.com/rshade/feedprint/internal/report"
)

// clock is the time source for report metadata so tests can freeze time
// via SetClock.
var clock clockwork.Clock = clockwork.NewRealClock() //nolint:gochecknoglobals // Swappable time source.

// SetClock swaps the report time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// loadConfig loads the .env file, the user config and an optional overlay,
// applies persistent flag overrides and installs the result globally.
func loadConfig(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	overlay, _ := cmd.Flags().GetString("config")
	base, err := config.LoadWithOverlay(filepath.Join(config.HomeDir(), "config.yaml"), overlay)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("data") {
		base.Data.Source, _ = cmd.Flags().GetString("data")
	}
	if cmd.Flags().Changed("scenario") {
		base.Data.Scenario, _ = cmd.Flags().GetString("scenario")
	}
	if cmd.Flags().Changed("output") {
		base.Output.DefaultFormat, _ = cmd.Flags().GetString("output")
	}

	config.SetGlobalConfig(base)
	return nil
}

// loadDataset opens the configured dataset source.
func loadDataset(cmd *cobra.Command) (*dataset.Dataset, error) {
	cfg := config.GetGlobalConfig()
	ds, err := dataset.Open(cmd.Context(), cfg.Data.Source, cfg.Data.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	logger.Debug().Ctx(cmd.Context()).
		Str("source", cfg.Data.Source).
		Str("dataset", ds.Name).
		Int("ingredients", len(ds.Ingredients)).
		Msg("dataset loaded")
	return ds, nil
}

// loadScenario opens the dataset and selects the configured scenario.
func loadScenario(cmd *cobra.Command) (*dataset.Dataset, dataset.Scenario, error) {
	ds, err := loadDataset(cmd)
	if err != nil {
		return nil, dataset.Scenario{}, err
	}
	sc, err := ds.Scenario(config.GetGlobalConfig().Data.Scenario)
	if errors.Is(err, dataset.ErrScenarioNotFound) {
		return nil, dataset.Scenario{}, fmt.Errorf("%w (available: %v)", err, ds.ScenarioNames())
	}
	return ds, sc, err
}

func newBuilder(cmd *cobra.Command, ds *dataset.Dataset) *report.Builder {
	return report.NewBuilder(clock, logging.TraceIDFromContext(cmd.Context()), ds.Name)
}

// render writes rep to the command's output in the configured format.
func render(cmd *cobra.Command, rep report.Report) error {
	cfg := config.GetGlobalConfig()
	out := cmd.OutOrStdout()
	return report.Render(out, rep, report.Options{
		Format:    cfg.Output.DefaultFormat,
		Styled:    report.IsTerminal(out),
		Precision: cfg.Output.Precision,
	})
}

// handleWarnings logs aggregation warnings and, with --strict, turns them
// into a WarningsExitError. Table output already lists them; other formats
// carry them in the payload.
func handleWarnings(cmd *cobra.Command, warnings []footprint.Warning) error {
	for _, w := range warnings {
		logger.Warn().Ctx(cmd.Context()).
			Str("kind", w.Kind.String()).
			Str("key", w.Key).
			Msg(w.Message)
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && len(warnings) > 0 {
		return &ExitError{
			Code:   ExitCodeWarnings,
			Reason: fmt.Sprintf("%d blend warning(s) in strict mode", len(warnings)),
		}
	}
	return nil
}

// checkBlendSum logs when a scenario's fractions do not add up to one.
func checkBlendSum(cmd *cobra.Command, sc dataset.Scenario) {
	if sum, ok := footprint.CheckBlendSum(sc.Blend, blendSumTolerance); !ok {
		logger.Warn().Ctx(cmd.Context()).
			Str("scenario", sc.Name).
			Float64("sum", sum).
			Msg("blend fractions do not sum to 1; results are not normalised")
	}
}

// blendSumTolerance is the accepted deviation of a blend's fraction sum from 1.
const blendSumTolerance = 1e-6
