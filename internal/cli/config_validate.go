package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/feedprint/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and dataset",
		Long: `Validates the configuration file at ~/.feedprint/config.yaml for syntax and semantic correctness.

This includes:
- Output format and precision
- Logging level and format
- Server address and shutdown timeout
- Loading and validating the configured dataset and scenario`,
		Example: `  # Validate current configuration
  feedprint config validate

  # Validate and show detailed information
  feedprint config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	ds, sc, err := loadScenario(cmd)
	if err != nil {
		return fmt.Errorf("dataset validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		cmd.Println()
		cmd.Println("Configuration details:")
		cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
		cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
		cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
		cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
		cmd.Printf("  Dataset: %s (schema %s, %d ingredients, %d scenarios)\n",
			ds.Name, ds.SchemaVersion, len(ds.Ingredients), len(ds.Scenarios))
		cmd.Printf("  Scenario: %s\n", sc.Name)
	}

	return nil
}
