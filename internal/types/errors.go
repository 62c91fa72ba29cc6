// =============================================================================
// Tributos - Error Taxonomy
// =============================================================================
//
// Every failure in the pipeline is local: a missing workbook disables one
// source, a missing column skips one sheet, a bad row skips one row. None of
// these aborts the run. The types below carry enough context to report the
// failure next to the sheet and file it came from.
//
// =============================================================================

package types

import "fmt"

// MissingFileError indicates a named workbook does not exist on disk.
// The dependent source produces nothing further; other sources continue.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("workbook not found: %s", e.Path)
}

func (e *MissingFileError) Unwrap() error { return e.Err }

// MissingColumnError indicates a required column (year, category label,
// budgeted/collected/target) is absent after normalization. The sheet is
// skipped; processing continues with the remaining sheets.
type MissingColumnError struct {
	Column string
	Sheet  string
	Source string
}

func (e *MissingColumnError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("required column %q not found in sheet %q of %s", e.Column, e.Sheet, e.Source)
	}
	return fmt.Sprintf("required column %q not found in %s", e.Column, e.Source)
}

// RowError indicates a failure while deriving observations from one category
// row. The row is skipped; the batch continues.
type RowError struct {
	Sheet    string
	Category string
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row for category %q in sheet %q: %v", e.Category, e.Sheet, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
