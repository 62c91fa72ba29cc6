// =============================================================================
// Tributos - Export Command
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fazenda-digital/tributos/internal/cache"
	"github.com/fazenda-digital/tributos/internal/config"
	"github.com/fazenda-digital/tributos/internal/export"
	"github.com/fazenda-digital/tributos/internal/pipeline"
	"github.com/fazenda-digital/tributos/pkg/utils"
)

var (
	exportSource string
	exportFormat string
	exportOut    string

	exportFilters filterFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the consolidated table for one source",
	Long: `The export command runs the pipeline for a single source and writes its
display-formatted table: CSV (UTF-8 with BOM) or XLSX. Monetary fields are
rendered as localized currency strings ("R$ 1.234,50") and percentage fields
as "N.N%" strings — the export carries display text, not raw numbers.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportSource, "source", "",
		"Source to export (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv",
		"Export format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "",
		"Output file path (default: pattern from config in the output directory)")
	exportCmd.MarkFlagRequired("source")

	exportFilters.register(exportCmd)
}

func runExport() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	src, ok := cfg.SourceByName(exportSource)
	if !ok {
		return fmt.Errorf("unknown source: %q", exportSource)
	}

	if exportFormat != "csv" && exportFormat != "xlsx" {
		return fmt.Errorf("unknown format: %q (expected csv or xlsx)", exportFormat)
	}
	if exportFormat == "xlsx" && src.Kind != config.KindMonthly {
		return fmt.Errorf("xlsx export supports monthly sources only")
	}

	filter, err := exportFilters.spec()
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(cfg, cache.New(), logger)
	result := runner.RunSource(src, filter)
	if result.Err != nil {
		return fmt.Errorf("source %q: %w", src.Name, result.Err)
	}

	for _, adv := range result.Advisories {
		fmt.Printf("⚠ %s\n", adv.String())
	}
	if result.Diagnostics.Count() > 0 {
		fmt.Println("⚠ " + result.Diagnostics.Summary())
	}

	path := exportOut
	if path == "" {
		if err := utils.EnsureDir(cfg.OutputDir); err != nil {
			return err
		}
		name := utils.ExpandNamePattern(cfg.ExportName, src.Name)
		name = utils.WithExtension(name, exportFormat)
		path = filepath.Join(cfg.OutputDir, name)
	}

	if exportFormat == "xlsx" {
		if err := export.WriteConsolidatedXLSX(path, result.Consolidated); err != nil {
			return err
		}
		fmt.Printf("exported %d row(s) to %s\n", len(result.Consolidated), path)
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch src.Kind {
	case config.KindMonthly:
		err = export.WriteConsolidatedCSV(f, result.Consolidated)
		if err == nil {
			fmt.Printf("exported %d row(s) to %s\n", len(result.Consolidated), path)
		}
	case config.KindAnnual:
		err = export.WriteTableCSV(f, result.Table, cfg.Columns.Year)
		if err == nil {
			fmt.Printf("exported %d row(s) to %s\n", result.Table.RowCount(), path)
		}
	}
	return err
}
