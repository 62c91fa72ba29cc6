// =============================================================================
// Tributos - Process Command
// =============================================================================
//
// The 'process' command runs the full pipeline over every configured source:
//
//   1. Load the source catalog configuration
//   2. For each source: load -> normalize -> reshape -> derive -> filter
//   3. Print per-source statistics, diagnostics and summary metrics
//   4. Write consolidated exports to the output directory
//
// Sources are processed sequentially: each run is a synchronous, stateless
// pass, and errors in one source do not affect the processing of others.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fazenda-digital/tributos/internal/cache"
	"github.com/fazenda-digital/tributos/internal/config"
	"github.com/fazenda-digital/tributos/internal/export"
	"github.com/fazenda-digital/tributos/internal/pipeline"
	"github.com/fazenda-digital/tributos/pkg/utils"
)

// dryRun skips writing export files.
var dryRun bool

// onlySource restricts processing to a single source by name.
var onlySource string

var processFilters filterFlags

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the pipeline over the configured sources",
	Long: `The process command loads every configured workbook, normalizes and
reshapes its sheets, derives the surplus/deficit metrics and writes the
consolidated exports.

Failures never abort the run: a missing workbook disables its source, a sheet
without the required columns is skipped, and a row that cannot be read is
recorded as a diagnostic. The first five diagnostics are shown in full; the
remainder is counted.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing export files",
	)
	processCmd.Flags().StringVar(
		&onlySource,
		"source",
		"",
		"Process only the named source",
	)
	processFilters.register(processCmd)
}

func runProcess() error {
	startTime := time.Now()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	filter, err := processFilters.spec()
	if err != nil {
		return err
	}

	sources := cfg.Sources
	if onlySource != "" {
		src, ok := cfg.SourceByName(onlySource)
		if !ok {
			return fmt.Errorf("unknown source: %q", onlySource)
		}
		sources = []config.Source{src}
	}

	fmt.Println("=== Tributos ===")
	fmt.Printf("Processing %d source(s)...\n", len(sources))

	runner := pipeline.NewRunner(cfg, cache.New(), logger)

	var okCount, failCount int
	for _, src := range sources {
		result := runner.RunSource(src, filter)
		printSourceResult(result)

		if result.Err != nil {
			failCount++
			continue
		}
		okCount++

		if !dryRun {
			if path, err := writeExports(cfg, result); err != nil {
				fmt.Printf("  ✗ export failed: %v\n", err)
			} else if path != "" {
				fmt.Printf("  exported: %s\n", path)
			}
		}
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Sources:      %d\n", len(sources))
	fmt.Printf("Successful:   %d\n", okCount)
	fmt.Printf("Failed:       %d\n", failCount)
	fmt.Printf("Time elapsed: %s\n", time.Since(startTime))

	return nil
}

// printSourceResult renders one source's outcome: stats, advisories,
// diagnostics and the summary metrics of the dashboard header cards.
func printSourceResult(result pipeline.SourceResult) {
	fmt.Printf("\n--- %s (%s) ---\n", result.Source, result.Kind)

	if result.Err != nil {
		fmt.Printf("  ✗ %v\n", result.Err)
		return
	}

	fmt.Printf("  sheets: %d processed, %d skipped; rows: %d\n",
		result.Stats.SheetsProcessed, result.Stats.SheetsSkipped, result.Stats.RowsProcessed)

	for _, adv := range result.Advisories {
		fmt.Printf("  ⚠ %s\n", adv.String())
	}

	if result.Kind == config.KindMonthly {
		fmt.Printf("  observations: %d (monthly total %s)\n",
			result.Stats.Observations, export.FormatCurrency(result.MonthlyTotal))

		totals := result.Totals
		fmt.Printf("  arrecadado: %s  orçado: %s\n",
			export.FormatCurrency(totals.Collected), export.FormatCurrency(totals.Budgeted))
		fmt.Printf("  superávit: %s (%d)  déficit: %s (%d)  saldo geral: %s\n",
			export.FormatCurrency(totals.Surplus), totals.SurplusCount,
			export.FormatCurrency(totals.Deficit), totals.DeficitCount,
			export.FormatCurrency(totals.Net))
	}

	if result.Kind == config.KindAnnual && result.Annual != nil {
		for i, year := range result.Annual.Years {
			fmt.Printf("  %s: total %s\n", year, export.FormatCurrency(result.Annual.Total(i)))
		}
	}

	if result.Diagnostics.Count() > 0 {
		fmt.Printf("  ⚠ %s\n", result.Diagnostics.Summary())
	}
}

// writeExports writes the display-formatted export for one source result.
// Monthly sources export the consolidated table; annual sources export the
// filtered table itself.
func writeExports(cfg *config.Config, result pipeline.SourceResult) (string, error) {
	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return "", err
	}

	name := utils.ExpandNamePattern(cfg.ExportName, result.Source)
	path := filepath.Join(cfg.OutputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch result.Kind {
	case config.KindMonthly:
		err = export.WriteConsolidatedCSV(f, result.Consolidated)
	case config.KindAnnual:
		err = export.WriteTableCSV(f, result.Table, cfg.Columns.Year)
	}
	if err != nil {
		return "", err
	}

	return path, nil
}
