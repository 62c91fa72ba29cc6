// =============================================================================
// Tributos - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (tributos)
//   ├── processCmd (tributos process)
//   ├── exportCmd  (tributos export)
//   ├── inspectCmd (tributos inspect)
//   └── versionCmd (tributos version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fazenda-digital/tributos/internal/config"
)

// cfgFile holds the path to the configuration file, overridable with
// --config.
var cfgFile string

// verbose forces debug-level diagnostics when set.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tributos",
	Short: "Tributos - municipal tax-revenue spreadsheet pipeline",
	Long: `Tributos ingests municipal tax-revenue workbooks, normalizes their
irregular headers, reshapes the wide per-tributo/month layout into long-form
observations, derives surplus/deficit metrics and exports display-formatted
consolidated tables.

Every run is a stateless pass over the configured sources: nothing is
persisted beyond the source spreadsheets and the exported files. Failures are
local — a missing workbook disables one source, a missing column skips one
sheet, a bad row skips one row — and are reported as diagnostics, never as a
process fault.

Example Usage:
  tributos process                         # Run the pipeline over all sources
  tributos process --years 2023,2024       # Restrict to specific years
  tributos export --source evolucao-arrecadacao --format xlsx
  tributos inspect                         # List sheets, years and categories`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig reads the configuration and builds the diagnostic logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}
