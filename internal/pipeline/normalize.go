// =============================================================================
// Tributos - Column Normalizer
// =============================================================================
//
// The source spreadsheets come out of office tooling with banner rows above
// the real header, auto-generated placeholder labels over spill-over columns
// and years typed as numbers. Normalization turns a raw cell grid into a
// Table with trimmed upper-case unique column names and the year column
// coerced to text, so every later stage can filter and group on plain
// strings.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fazenda-digital/tributos/internal/types"
	"github.com/fazenda-digital/tributos/internal/workbook"
)

// placeholderRe matches auto-generated labels of columns that had no explicit
// header in the source sheet.
var placeholderRe = regexp.MustCompile(`(?i)^unnamed`)

// NormalizeOptions parameterizes normalization per source layout.
type NormalizeOptions struct {
	// HeaderRow is the 0-based index of the real header row; rows above it
	// are discarded. The caller must supply the correct offset: beyond
	// dropping placeholder columns, nothing validates that the chosen row
	// actually is a header.
	HeaderRow int

	// YearColumn, when non-empty, names a column whose values are coerced to
	// text after normalization. Its absence is a *types.MissingColumnError.
	// Monthly sheets carry their year in the sheet name and leave this empty.
	YearColumn string
}

// Normalize produces a Table from a raw sheet: placeholder columns dropped,
// remaining labels trimmed and upper-cased, duplicate labels collapsed onto
// the first occurrence, year values rendered as text. The raw sheet is not
// modified.
func Normalize(raw *workbook.RawSheet, opts NormalizeOptions) (*types.Table, error) {
	if opts.HeaderRow >= len(raw.Rows) {
		return nil, fmt.Errorf("sheet %q of %s: header row %d beyond last row %d",
			raw.Name, raw.Source, opts.HeaderRow, len(raw.Rows)-1)
	}

	header := raw.Rows[opts.HeaderRow]
	dataRows := raw.Rows[opts.HeaderRow+1:]

	table := &types.Table{
		Source: raw.Source,
		Sheet:  raw.Name,
		Data:   make(map[string][]string),
	}

	// Column positions that survive normalization, in sheet order.
	kept := make([]int, 0, len(header))
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" || placeholderRe.MatchString(label) {
			continue
		}
		name := strings.ToUpper(label)
		if table.HasColumn(name) {
			// Duplicate label after normalization; first occurrence wins.
			continue
		}
		table.Columns = append(table.Columns, name)
		table.Data[name] = make([]string, 0, len(dataRows))
		kept = append(kept, i)
	}

	for _, row := range dataRows {
		for k, pos := range kept {
			var cell string
			if pos < len(row) {
				cell = strings.TrimSpace(row[pos])
			}
			name := table.Columns[k]
			table.Data[name] = append(table.Data[name], cell)
		}
	}

	if opts.YearColumn != "" {
		if err := coerceYearText(table, opts.YearColumn); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// coerceYearText rewrites every value of the year column as a plain text
// year. Spreadsheet tooling stores years as numbers, which can surface as
// "2023.0"; filtering and display rely on the text form "2023".
func coerceYearText(t *types.Table, column string) error {
	values, ok := t.Data[column]
	if !ok {
		return &types.MissingColumnError{Column: column, Sheet: t.Sheet, Source: t.Source}
	}
	for i, v := range values {
		values[i] = yearText(v)
	}
	return nil
}

// yearText renders a cell as a text year. Integer-valued numerics lose their
// fraction; anything non-numeric passes through trimmed.
func yearText(v string) string {
	v = strings.TrimSpace(v)
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return v
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return v
}
