package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazenda-digital/tributos/internal/types"
	"github.com/fazenda-digital/tributos/internal/workbook"
)

func rawSheet(rows [][]string) *workbook.RawSheet {
	return &workbook.RawSheet{Source: "test.xlsx", Name: "Planilha1", Rows: rows}
}

func TestNormalizeDropsPlaceholderColumns(t *testing.T) {
	raw := rawSheet([][]string{
		{"  ano ", "Unnamed: 1", "IPTU", ""},
		{"2023", "x", "100", "y"},
	})

	table, err := Normalize(raw, NormalizeOptions{HeaderRow: 0, YearColumn: "ANO"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ANO", "IPTU"}, table.Columns)
	assert.Equal(t, 1, table.RowCount())
	assert.Equal(t, "100", table.Cell("IPTU", 0))
}

func TestNormalizeSkipsRowsAboveHeader(t *testing.T) {
	raw := rawSheet([][]string{
		{"Prefeitura Municipal"},
		{"Arrecadação Consolidada"},
		{"ANO", "IPTU", "ISS"},
		{"2023", "100", "200"},
		{"2024", "150", "250"},
	})

	table, err := Normalize(raw, NormalizeOptions{HeaderRow: 2, YearColumn: "ANO"})
	require.NoError(t, err)

	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, "2024", table.Cell("ANO", 1))
}

func TestNormalizeYearCoercedToText(t *testing.T) {
	raw := rawSheet([][]string{
		{"ANO", "IPTU"},
		{"2023.0", "100"},
		{"2024", "200"},
		{"sem ano", "300"},
	})

	table, err := Normalize(raw, NormalizeOptions{HeaderRow: 0, YearColumn: "ANO"})
	require.NoError(t, err)

	// Every year value is text; integer-valued numerics lose the fraction.
	assert.Equal(t, []string{"2023", "2024", "sem ano"}, table.ColumnValues("ANO"))
}

func TestNormalizeMissingYearColumn(t *testing.T) {
	raw := rawSheet([][]string{
		{"EXERCICIO", "IPTU"},
		{"2023", "100"},
	})

	_, err := Normalize(raw, NormalizeOptions{HeaderRow: 0, YearColumn: "ANO"})

	var missing *types.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "ANO", missing.Column)
	assert.Equal(t, "Planilha1", missing.Sheet)
}

func TestNormalizeWithoutYearRequirement(t *testing.T) {
	raw := rawSheet([][]string{
		{"TRIBUTO", "Janeiro"},
		{"IPTU", "100"},
	})

	table, err := Normalize(raw, NormalizeOptions{HeaderRow: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"TRIBUTO", "JANEIRO"}, table.Columns)
}

func TestNormalizeDuplicateLabelsKeepFirst(t *testing.T) {
	raw := rawSheet([][]string{
		{"ANO", "IPTU", "iptu "},
		{"2023", "100", "999"},
	})

	table, err := Normalize(raw, NormalizeOptions{HeaderRow: 0, YearColumn: "ANO"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ANO", "IPTU"}, table.Columns)
	assert.Equal(t, "100", table.Cell("IPTU", 0))
}

func TestNormalizePadsShortRows(t *testing.T) {
	raw := rawSheet([][]string{
		{"ANO", "IPTU", "ISS"},
		{"2023", "100"},
	})

	table, err := Normalize(raw, NormalizeOptions{HeaderRow: 0, YearColumn: "ANO"})
	require.NoError(t, err)
	assert.Equal(t, "", table.Cell("ISS", 0))
}

func TestNormalizeHeaderBeyondLastRow(t *testing.T) {
	raw := rawSheet([][]string{{"só uma linha"}})

	_, err := Normalize(raw, NormalizeOptions{HeaderRow: 5})
	require.Error(t, err)
}
