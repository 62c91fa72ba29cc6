// =============================================================================
// Tributos - Pipeline Runner
// =============================================================================
//
// The runner orchestrates one pipeline pass per data source:
//
//   load -> normalize -> reshape -> consolidate -> totals     (monthly kind)
//   load -> normalize -> filter  -> annual series             (annual kind)
//
// Execution is synchronous and stateless between runs; the only carried state
// is the read-through table cache. No failure aborts a run: missing files
// disable one source, missing columns skip one sheet, bad rows skip one row,
// and everything surfaces as diagnostics on the SourceResult.
//
// =============================================================================

package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fazenda-digital/tributos/internal/cache"
	"github.com/fazenda-digital/tributos/internal/config"
	"github.com/fazenda-digital/tributos/internal/types"
	"github.com/fazenda-digital/tributos/internal/workbook"
)

// Runner executes the pipeline over configured sources.
type Runner struct {
	cfg    *config.Config
	tables *cache.TableCache
	log    *slog.Logger
}

// NewRunner builds a runner. The cache may be shared across runs; the logger
// receives per-sheet debug and per-failure warn records.
func NewRunner(cfg *config.Config, tables *cache.TableCache, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{cfg: cfg, tables: tables, log: log}
}

// Stats counts what one source run touched.
type Stats struct {
	SheetsProcessed int
	SheetsSkipped   int
	RowsProcessed   int
	Observations    int
	Duration        time.Duration
}

// SourceResult is the outcome of running one source.
type SourceResult struct {
	Source string
	Kind   string

	// Monthly kind outputs.
	Observations []types.Observation
	Consolidated []types.ConsolidatedRow
	Totals       types.Totals
	MonthlyTotal float64

	// Annual kind outputs.
	Table  *types.Table
	Annual *AnnualSeries

	Advisories  []types.Advisory
	Diagnostics *Diagnostics
	Stats       Stats

	// Err is the source-level failure (typically a missing workbook). When
	// set, the source produced nothing; the run as a whole continues.
	Err error
}

// RunAll executes every configured source in catalog order.
func (r *Runner) RunAll(filter types.FilterSpec) []SourceResult {
	results := make([]SourceResult, 0, len(r.cfg.Sources))
	for _, src := range r.cfg.Sources {
		results = append(results, r.RunSource(src, filter))
	}
	return results
}

// RunSource executes the pipeline for one source.
func (r *Runner) RunSource(src config.Source, filter types.FilterSpec) SourceResult {
	start := time.Now()

	result := SourceResult{
		Source:      src.Name,
		Kind:        src.Kind,
		Diagnostics: &Diagnostics{},
	}

	switch src.Kind {
	case config.KindMonthly:
		r.runMonthly(src, filter, &result)
	case config.KindAnnual:
		r.runAnnual(src, filter, &result)
	default:
		result.Err = fmt.Errorf("source %q: unknown kind %q", src.Name, src.Kind)
	}

	result.Stats.Duration = time.Since(start)
	return result
}

// runMonthly processes a multi-sheet workbook: one sheet per year, wide
// category rows melted into observations, then consolidated.
func (r *Runner) runMonthly(src config.Source, filter types.FilterSpec, result *SourceResult) {
	wb, err := workbook.Open(src.Path)
	if err != nil {
		result.Err = err
		r.warnSourceError(src, err)
		return
	}
	defer wb.Close()

	sheets := wb.SheetNames()
	if len(sheets) == 0 {
		result.Err = fmt.Errorf("workbook %s has no sheets", src.Path)
		return
	}

	// The sheet names are the available years; resolve the year filter
	// against them once for the whole workbook.
	years, adv := EffectiveValues(filter.Years, sheets, "years", src.Name)
	if adv != nil {
		result.Advisories = append(result.Advisories, *adv)
	}
	if len(years) == 0 {
		years = sheets
	}

	modTime := workbook.Stat(src.Path).ModTime
	columns := r.cfg.Columns

	for _, year := range years {
		table, err := r.tables.Get(src.Path, year, modTime, func() (*types.Table, error) {
			raw, err := wb.Sheet(year)
			if err != nil {
				return nil, err
			}
			return Normalize(raw, NormalizeOptions{HeaderRow: src.EffectiveHeaderRow()})
		})
		if err != nil {
			result.Stats.SheetsSkipped++
			result.Diagnostics.Add(Diagnostic{Source: src.Path, Sheet: year, Err: err})
			r.log.Warn("sheet skipped", "source", src.Name, "sheet", year, "error", err)
			continue
		}

		// Per-sheet effective category filter: requested categories that do
		// not occur in this sheet are dropped here, with an advisory.
		var categories []string
		if categoryCol, ok := ResolveCategoryColumn(table, columns.CategoryCandidates); ok {
			available := distinct(table.ColumnValues(categoryCol))
			var adv *types.Advisory
			categories, adv = EffectiveValues(filter.Categories, available, "categories", year)
			if adv != nil {
				result.Advisories = append(result.Advisories, *adv)
			}
		}

		observations, diags, err := Reshape(table, ReshapeOptions{
			Year:               year,
			CategoryCandidates: columns.CategoryCandidates,
			BudgetedColumn:     columns.Budgeted,
			CollectedColumn:    columns.Collected,
			TargetColumn:       columns.Target,
			MonthOffset:        r.cfg.MonthOffsetFor(src),
			Categories:         categories,
			Months:             filter.Months,
		})
		result.Diagnostics.AddAll(diags)
		if err != nil {
			result.Stats.SheetsSkipped++
			result.Diagnostics.Add(Diagnostic{Source: src.Path, Sheet: year, Err: err})

			var missing *types.MissingColumnError
			if errors.As(err, &missing) {
				r.log.Warn("required column missing, sheet skipped",
					"source", src.Name, "sheet", year, "column", missing.Column)
			} else {
				r.log.Warn("sheet skipped", "source", src.Name, "sheet", year, "error", err)
			}
			continue
		}

		result.Stats.SheetsProcessed++
		result.Stats.RowsProcessed += table.RowCount()
		result.Observations = append(result.Observations, observations...)
		r.log.Debug("sheet reshaped",
			"source", src.Name, "sheet", year, "observations", len(observations))
	}

	if result.Stats.SheetsProcessed == 0 {
		result.Err = fmt.Errorf("source %q: no usable sheets in %s", src.Name, src.Path)
		return
	}

	result.Stats.Observations = len(result.Observations)
	result.Consolidated = Consolidate(result.Observations)
	result.Totals = ComputeTotals(result.Consolidated)
	result.MonthlyTotal = SumMonthly(result.Observations)
}

// runAnnual processes a single-sheet annual table: normalize with the year
// column required, apply the filter, build the series.
func (r *Runner) runAnnual(src config.Source, filter types.FilterSpec, result *SourceResult) {
	wb, err := workbook.Open(src.Path)
	if err != nil {
		result.Err = err
		r.warnSourceError(src, err)
		return
	}
	defer wb.Close()

	modTime := workbook.Stat(src.Path).ModTime
	columns := r.cfg.Columns

	// Annual sources are single-sheet; the cache key uses the first sheet.
	var sheetName string
	table, err := r.tables.Get(src.Path, "", modTime, func() (*types.Table, error) {
		raw, err := wb.FirstSheet()
		if err != nil {
			return nil, err
		}
		sheetName = raw.Name
		return Normalize(raw, NormalizeOptions{
			HeaderRow:  src.EffectiveHeaderRow(),
			YearColumn: columns.Year,
		})
	})
	if err != nil {
		result.Err = err
		result.Diagnostics.Add(Diagnostic{Source: src.Path, Sheet: sheetName, Err: err})
		r.warnSourceError(src, err)
		return
	}

	filtered, advisories := FilterTable(table, filter, columns.Year, columns.Exclude)
	result.Advisories = append(result.Advisories, advisories...)
	result.Table = filtered
	result.Stats.SheetsProcessed = 1
	result.Stats.RowsProcessed = filtered.RowCount()

	series, err := BuildAnnualSeries(filtered, columns.Year, columns.Exclude)
	if err != nil {
		result.Err = err
		return
	}
	result.Annual = series
}

func (r *Runner) warnSourceError(src config.Source, err error) {
	var missing *types.MissingFileError
	if errors.As(err, &missing) {
		r.log.Warn("workbook not found, source skipped", "source", src.Name, "path", missing.Path)
		return
	}
	r.log.Warn("source failed", "source", src.Name, "error", err)
}

// distinct returns the unique non-empty values in first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
