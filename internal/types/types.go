// =============================================================================
// Tributos - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - workbook
//   - pipeline
//   - export
//   - cache
//
// =============================================================================

package types

import "strings"

// =============================================================================
// NORMALIZED TABLE
// =============================================================================

// Table is a normalized tabular sheet: trimmed, upper-cased, unique column
// names mapped to ordered cell values, one slice entry per row. All cells are
// text; numeric interpretation happens at the point of use.
type Table struct {
	// Source is the path of the workbook the table came from.
	Source string

	// Sheet is the worksheet name within the workbook.
	Sheet string

	// Columns holds the normalized column names in sheet order.
	Columns []string

	// Data maps a column name to its cell values. Every slice has the same
	// length (the row count); short source rows are padded with "".
	Data map[string][]string
}

// RowCount returns the number of data rows in the table.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Data[t.Columns[0]])
}

// HasColumn reports whether a column with the given normalized name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Data[name]
	return ok
}

// Cell returns the value at (column, row), or "" when the column does not
// exist or the row index is out of range.
func (t *Table) Cell(column string, row int) string {
	values, ok := t.Data[column]
	if !ok || row < 0 || row >= len(values) {
		return ""
	}
	return values[row]
}

// ColumnAt returns the column name at the given position, or "" when the
// position is out of range. Positional access is how the month columns of the
// evolution sheets are addressed.
func (t *Table) ColumnAt(pos int) string {
	if pos < 0 || pos >= len(t.Columns) {
		return ""
	}
	return t.Columns[pos]
}

// ColumnValues returns the ordered cell values for a column.
func (t *Table) ColumnValues(column string) []string {
	return t.Data[column]
}

// =============================================================================
// LONG-FORM OBSERVATION
// =============================================================================

// Observation is one long-form record derived from a wide category row:
// a single (year, category, month) cell that was present and non-zero.
// Budgeted, collected and target are annual quantities in the source and are
// broadcast identically across the twelve observations of their row.
type Observation struct {
	Year      string
	Category  string
	Month     int // 1-12
	MonthName string

	// Value is the monthly collected amount for this cell.
	Value float64

	// Annual row-level quantities, repeated on every observation of the row.
	Budgeted  float64
	Collected float64
	Target    float64

	// Balance is collected minus budgeted. Surplus and Deficit are its
	// positive and negative parts; at most one of them is non-zero.
	Balance float64
	Surplus float64
	Deficit float64
}

// =============================================================================
// CONSOLIDATED ROW
// =============================================================================

// Status labels for a consolidated row, as they appear in the source reports.
const (
	StatusSurplus = "SUPERÁVIT"
	StatusDeficit = "DÉFICIT"
)

// ConsolidatedRow is the per (year, category) aggregate of a group of
// observations. Budgeted, collected and target are taken from the first
// observation of the group, never summed: the values are annual and broadcast
// across months, so summing would multiply them by the month count.
type ConsolidatedRow struct {
	Year     string
	Category string

	Budgeted  float64
	Collected float64
	Target    float64
	Balance   float64

	// Status is StatusSurplus when Balance > 0 strictly, StatusDeficit
	// otherwise. A balance of exactly zero is a deficit.
	Status string

	// Realization is collected/budgeted × 100, rounded to one decimal.
	// RealizationOK is false when budgeted is zero, in which case the
	// percentage is undefined and Realization holds 0.
	Realization   float64
	RealizationOK bool
}

// Totals holds cross-group summary metrics for a set of consolidated rows.
// Net is always Surplus - Deficit.
type Totals struct {
	Budgeted  float64
	Collected float64

	Surplus float64 // sum of positive balances
	Deficit float64 // sum of absolute negative balances
	Net     float64 // signed sum of all balances

	SurplusCount int
	DeficitCount int
}

// =============================================================================
// FILTERS AND ADVISORIES
// =============================================================================

// FilterSpec is the caller-supplied restriction over years, categories and
// months. An empty slice for any dimension means "pass all" for that
// dimension, never "exclude all".
type FilterSpec struct {
	Years      []string
	Categories []string
	Months     []int // 1-12
}

// IsZero reports whether no dimension is restricted.
func (f FilterSpec) IsZero() bool {
	return len(f.Years) == 0 && len(f.Categories) == 0 && len(f.Months) == 0
}

// Advisory reports that requested filter values were absent from a specific
// sheet and were dropped from the effective filter for that sheet only.
// It is informational, not an error.
type Advisory struct {
	// Dimension names the filter dimension ("years", "categories", "months").
	Dimension string

	// Sheet identifies where the values were missing.
	Sheet string

	// Dropped lists the requested values absent from the sheet.
	Dropped []string

	// PassAll is true when dropping left the effective filter empty and the
	// applicator fell back to passing every row.
	PassAll bool
}

// String renders the advisory for user-facing output.
func (a Advisory) String() string {
	s := "filter " + a.Dimension + " not present in " + a.Sheet + ": " + strings.Join(a.Dropped, ", ")
	if a.PassAll {
		s += " (all requested values missing, passing all rows)"
	}
	return s
}

// =============================================================================
// MONTHS
// =============================================================================

// MonthNames holds the calendar month names in the order the source sheets
// lay out their twelve month columns.
var MonthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the name for a 1-based month number, or "" when out of
// range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// MonthNumber resolves a month name (case-insensitive) to its 1-based number.
func MonthNumber(name string) (int, bool) {
	for i, n := range MonthNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return i + 1, true
		}
	}
	return 0, false
}
