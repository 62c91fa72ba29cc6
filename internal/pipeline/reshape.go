// =============================================================================
// Tributos - Wide-to-Long Reshaper
// =============================================================================
//
// The evolution and debt-collection sheets are wide: one row per tributo with
// a category label, annual budgeted/collected/target amounts and twelve month
// columns addressed by position. The reshaper melts each accepted row into at
// most twelve long-form observations, one per month cell that is present and
// non-zero. Zero and missing months are deliberately indistinguishable: the
// source data does not separate "no activity" from "not reported", and the
// reshape erases the distinction rather than inventing one.
//
// =============================================================================

package pipeline

import (
	"fmt"

	"github.com/fazenda-digital/tributos/internal/types"
)

// ReshapeOptions parameterizes a single reshape invocation.
type ReshapeOptions struct {
	// Year labels every produced observation. For multi-sheet workbooks it
	// is the sheet name.
	Year string

	// CategoryCandidates are the recognized category-label column names,
	// checked in order. Resolution order is a contract: the composite
	// "TRIBUTO/MÊS/ANO" label must win over the plain "TRIBUTO" label
	// whenever both exist.
	CategoryCandidates []string

	// BudgetedColumn, CollectedColumn and TargetColumn name the annual
	// amount columns. Their values repeat identically on every observation
	// of a row; per-month granularity exists only for the month cells.
	BudgetedColumn  string
	CollectedColumn string
	TargetColumn    string

	// MonthOffset is the position of the January column; months occupy
	// MonthOffset..MonthOffset+11. Positions beyond the last column produce
	// no observations.
	MonthOffset int

	// Categories restricts which rows are melted. Empty means all rows: an
	// empty set is "no filter", never "exclude all".
	Categories []string

	// Months restricts which month positions are read (1-12). Empty means
	// all twelve.
	Months []int
}

// ResolveCategoryColumn finds the category-label column of a monthly sheet,
// checking the candidates in order. The order is significant: the composite
// label is preferred whenever both it and the plain label exist.
func ResolveCategoryColumn(t *types.Table, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if t.HasColumn(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Reshape melts a normalized wide table into long-form observations.
//
// Per-row failures (unparseable amounts) are recorded as diagnostics and the
// row is skipped; the batch continues. A missing category or amount column is
// a *types.MissingColumnError and skips the whole sheet.
func Reshape(t *types.Table, opts ReshapeOptions) ([]types.Observation, []Diagnostic, error) {
	categoryCol, ok := ResolveCategoryColumn(t, opts.CategoryCandidates)
	if !ok {
		missing := ""
		if len(opts.CategoryCandidates) > 0 {
			missing = opts.CategoryCandidates[len(opts.CategoryCandidates)-1]
		}
		return nil, nil, &types.MissingColumnError{Column: missing, Sheet: t.Sheet, Source: t.Source}
	}

	for _, col := range []string{opts.BudgetedColumn, opts.CollectedColumn, opts.TargetColumn} {
		if !t.HasColumn(col) {
			return nil, nil, &types.MissingColumnError{Column: col, Sheet: t.Sheet, Source: t.Source}
		}
	}

	months := opts.Months
	if len(months) == 0 {
		months = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	}

	wanted := make(map[string]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		wanted[c] = true
	}

	var (
		observations []types.Observation
		diagnostics  []Diagnostic
	)

	for row := 0; row < t.RowCount(); row++ {
		category := t.Cell(categoryCol, row)
		if category == "" {
			continue
		}
		if len(wanted) > 0 && !wanted[category] {
			continue
		}

		budgeted, ok := ParseAmount(t.Cell(opts.BudgetedColumn, row))
		if !ok {
			diagnostics = append(diagnostics, Diagnostic{
				Source: t.Source, Sheet: t.Sheet, Category: category,
				Err: &types.RowError{Sheet: t.Sheet, Category: category,
					Err: fmt.Errorf("unparseable %s value %q", opts.BudgetedColumn, t.Cell(opts.BudgetedColumn, row))},
			})
			continue
		}
		collected, ok := ParseAmount(t.Cell(opts.CollectedColumn, row))
		if !ok {
			diagnostics = append(diagnostics, Diagnostic{
				Source: t.Source, Sheet: t.Sheet, Category: category,
				Err: &types.RowError{Sheet: t.Sheet, Category: category,
					Err: fmt.Errorf("unparseable %s value %q", opts.CollectedColumn, t.Cell(opts.CollectedColumn, row))},
			})
			continue
		}
		// A blank target is tolerated as zero; the amount columns are not.
		target, _ := ParseAmount(t.Cell(opts.TargetColumn, row))

		balance := collected - budgeted
		surplus, deficit := 0.0, 0.0
		if balance > 0 {
			surplus = balance
		} else if balance < 0 {
			deficit = -balance
		}

		for _, month := range months {
			pos := opts.MonthOffset + month - 1
			col := t.ColumnAt(pos)
			if col == "" {
				continue
			}
			cell := t.Cell(col, row)
			if cell == "" {
				// Missing month: no observation.
				continue
			}
			value, ok := ParseAmount(cell)
			if !ok {
				diagnostics = append(diagnostics, Diagnostic{
					Source: t.Source, Sheet: t.Sheet, Category: category,
					Err: &types.RowError{Sheet: t.Sheet, Category: category,
						Err: fmt.Errorf("unparseable month value %q in column %q", cell, col)},
				})
				continue
			}
			if value == 0 {
				// Zero month: no observation, same as missing.
				continue
			}

			observations = append(observations, types.Observation{
				Year:      opts.Year,
				Category:  category,
				Month:     month,
				MonthName: types.MonthName(month),
				Value:     value,
				Budgeted:  budgeted,
				Collected: collected,
				Target:    target,
				Balance:   balance,
				Surplus:   surplus,
				Deficit:   deficit,
			})
		}
	}

	return observations, diagnostics, nil
}
