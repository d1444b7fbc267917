package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/feedprint/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// activeLog is the log output of the running command. closeActiveLog
// releases it.
var activeLog *logging.LogPathResult //nolint:gochecknoglobals // One command runs per process.

// NewRootCmd creates the root Cobra command for the feedprint CLI.
// It loads configuration, wires up logging and tracing, and registers the
// footprint, ranking, map, pollution, server and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "feedprint",
		Short:   "Salmon feed footprint calculator",
		Long:    "feedprint: Compute the carbon and land footprint of farmed salmon feed and compare it with other proteins",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			activeLog = &result
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.Bool("debug", false, "enable debug logging")
	pf.String("data", "", "dataset source: builtin, a YAML file path, or an http(s) URL (overrides config)")
	pf.String("scenario", "", "scenario name from the dataset (overrides config)")
	pf.String("output", "", "output format: table, json, or ndjson (overrides config)")
	pf.Bool("strict", false, "exit with a non-zero code when blend keys are unresolved or ambiguous")
	pf.String("config", "", "YAML file whose sections override the user configuration")
	pf.String("env-file", "", "load environment variables from this file (default ./.env)")

	cmd.AddCommand(
		NewIngredientsCmd(),
		NewFootprintCmd(),
		NewNationalCmd(),
		NewCompareCmd(),
		NewOriginsCmd(),
		NewPollutionCmd(),
		NewServeCmd(),
		newConfigCmd(),
	)
	closeLogAfterRun(cmd)

	return cmd
}

// closeLogAfterRun wraps the RunE of cmd and all its subcommands so the log
// file is closed when the command returns, whether or not it failed.
func closeLogAfterRun(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		closeLogAfterRun(sub)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(c *cobra.Command, args []string) (err error) {
		defer func() {
			if closeErr := closeActiveLog(); err == nil {
				err = closeErr
			}
		}()
		return run(c, args)
	}
}

const rootCmdExample = `  # Footprint of one tonne of farmed salmon
  feedprint footprint

  # Same blend with a feed-conversion ratio instead of a fixed feed mass
  feedprint footprint --fcr 1.2

  # Scale to national production
  feedprint national --production-tonnes 1500000

  # Rank salmon against poultry, pork and beef by land use
  feedprint compare --sort land:asc

  # Export ingredient flows as GeoJSON
  feedprint origins --geojson > flows.geojson

  # Serve the HTTP API
  feedprint serve --addr :8080

  # Use a custom dataset
  feedprint footprint --data ./my-feed.yaml --scenario chile-2025 --output json`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
