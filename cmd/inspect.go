// =============================================================================
// Tributos - Inspect Command
// =============================================================================
//
// The inspect command is the discovery pass the dashboard sidebar performs:
// it lists each configured workbook with its on-disk metadata, sheets, and
// the years and categories available for filtering, plus the union of years
// across all sources.
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fazenda-digital/tributos/internal/config"
	"github.com/fazenda-digital/tributos/internal/pipeline"
	"github.com/fazenda-digital/tributos/internal/workbook"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List sheets, years and categories per workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	allYears := make(map[string]bool)

	for _, src := range cfg.Sources {
		fmt.Printf("--- %s (%s) ---\n", src.Name, src.Kind)

		info := workbook.Stat(src.Path)
		if !info.Exists {
			fmt.Printf("  ✗ workbook not found: %s\n\n", src.Path)
			continue
		}
		fmt.Printf("  path: %s (%.2f MB, modified %s)\n",
			info.Path, float64(info.Size)/(1024*1024), info.ModTime.Format("02/01/2006 15:04"))

		years, categories, err := describeSource(cfg, src)
		if err != nil {
			fmt.Printf("  ✗ %v\n\n", err)
			continue
		}

		for _, y := range years {
			allYears[y] = true
		}

		fmt.Printf("  years: %s\n", strings.Join(years, ", "))
		if len(categories) > 0 {
			fmt.Printf("  categories: %s\n", strings.Join(categories, ", "))
		}
		fmt.Println()
	}

	union := make([]string, 0, len(allYears))
	for y := range allYears {
		union = append(union, y)
	}
	sort.Strings(union)
	fmt.Printf("years across all sources: %s\n", strings.Join(union, ", "))

	return nil
}

// describeSource opens a workbook and reports its available years and
// categories. Monthly workbooks carry years as sheet names and categories in
// the category column of the first sheet; annual tables carry years in the
// year column and categories as columns.
func describeSource(cfg *config.Config, src config.Source) (years, categories []string, err error) {
	wb, err := workbook.Open(src.Path)
	if err != nil {
		return nil, nil, err
	}
	defer wb.Close()

	switch src.Kind {
	case config.KindMonthly:
		years = wb.SheetNames()
		if len(years) == 0 {
			return nil, nil, fmt.Errorf("workbook %s has no sheets", src.Path)
		}
		raw, err := wb.Sheet(years[0])
		if err != nil {
			return nil, nil, err
		}
		table, err := pipeline.Normalize(raw, pipeline.NormalizeOptions{HeaderRow: src.EffectiveHeaderRow()})
		if err != nil {
			return nil, nil, err
		}
		if col, ok := pipeline.ResolveCategoryColumn(table, cfg.Columns.CategoryCandidates); ok {
			categories = distinctSorted(table.ColumnValues(col))
		}

	case config.KindAnnual:
		raw, err := wb.FirstSheet()
		if err != nil {
			return nil, nil, err
		}
		table, err := pipeline.Normalize(raw, pipeline.NormalizeOptions{
			HeaderRow:  src.EffectiveHeaderRow(),
			YearColumn: cfg.Columns.Year,
		})
		if err != nil {
			return nil, nil, err
		}
		years = distinctSorted(table.ColumnValues(cfg.Columns.Year))

		series, err := pipeline.BuildAnnualSeries(table, cfg.Columns.Year, cfg.Columns.Exclude)
		if err != nil {
			return nil, nil, err
		}
		categories = series.Categories
	}

	return years, categories, nil
}

func distinctSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
