// =============================================================================
// Tributos - CSV Export
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fazenda-digital/tributos/internal/pipeline"
	"github.com/fazenda-digital/tributos/internal/types"
)

// utf8BOM is prepended to every CSV export so spreadsheet tooling detects
// the encoding (the downloads open directly in Excel).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// consolidatedHeader matches the column layout of the dashboard's
// consolidated table.
var consolidatedHeader = []string{
	"ANO", "TRIBUTO", "ORCADO", "ARRECADADO", "PERCENTUAL_REALIZACAO", "META", "SALDO", "STATUS",
}

// WriteConsolidatedCSV writes the consolidated rows as display-formatted
// UTF-8 CSV with a BOM. An undefined realization percentage renders as an
// empty cell.
func WriteConsolidatedCSV(w io.Writer, rows []types.ConsolidatedRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(consolidatedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		realization := ""
		if row.RealizationOK {
			realization = FormatPercent(row.Realization)
		}
		record := []string{
			row.Year,
			row.Category,
			FormatCurrency(row.Budgeted),
			FormatCurrency(row.Collected),
			realization,
			FormatPercent(row.Target),
			FormatCurrency(row.Balance),
			row.Status,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTableCSV writes a normalized annual table as display-formatted CSV.
// Every column except the year column is treated as monetary; cells that do
// not parse as numbers pass through unchanged.
func WriteTableCSV(w io.Writer, t *types.Table, yearColumn string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for row := 0; row < t.RowCount(); row++ {
		record := make([]string, len(t.Columns))
		for i, name := range t.Columns {
			cell := t.Cell(name, row)
			if name != yearColumn {
				if v, ok := pipeline.ParseAmount(cell); ok {
					cell = FormatCurrency(v)
				}
			}
			record[i] = cell
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
