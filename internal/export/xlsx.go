// =============================================================================
// Tributos - XLSX Export
// =============================================================================

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fazenda-digital/tributos/internal/types"
)

// consolidatedSheet is the worksheet name of the XLSX export.
const consolidatedSheet = "Consolidado"

// WriteConsolidatedXLSX writes the consolidated rows as an XLSX workbook at
// the given path, with the same display formatting as the CSV export.
func WriteConsolidatedXLSX(path string, rows []types.ConsolidatedRow) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet is renamed rather than adding a second one.
	if err := f.SetSheetName(f.GetSheetName(0), consolidatedSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, name := range consolidatedHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(consolidatedSheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for r, row := range rows {
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
		for c, value := range record {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(consolidatedSheet, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
