package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazenda-digital/tributos/internal/types"
)

var monthlyColumns = []string{
	"TRIBUTO",
	"JANEIRO", "FEVEREIRO", "MARÇO", "ABRIL", "MAIO", "JUNHO",
	"JULHO", "AGOSTO", "SETEMBRO", "OUTUBRO", "NOVEMBRO", "DEZEMBRO",
	"ORÇADO", "ARRECADADO", "META",
}

func monthlyTable(rows [][]string) *types.Table {
	t := &types.Table{
		Source:  "evolucao.xlsx",
		Sheet:   "2023",
		Columns: monthlyColumns,
		Data:    make(map[string][]string),
	}
	for i, name := range monthlyColumns {
		for _, row := range rows {
			t.Data[name] = append(t.Data[name], row[i])
		}
	}
	return t
}

func monthlyRow(category string, months [12]string, budgeted, collected, target string) []string {
	row := []string{category}
	row = append(row, months[:]...)
	return append(row, budgeted, collected, target)
}

func defaultReshapeOptions() ReshapeOptions {
	return ReshapeOptions{
		Year:               "2023",
		CategoryCandidates: []string{"TRIBUTO/MÊS/ANO", "TRIBUTO"},
		BudgetedColumn:     "ORÇADO",
		CollectedColumn:    "ARRECADADO",
		TargetColumn:       "META",
		MonthOffset:        1,
	}
}

func TestReshapeAllZeroRowYieldsNothing(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("IPTU", [12]string{"0", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0"}, "1000", "0", "90"),
	})

	obs, diags, err := Reshape(table, defaultReshapeOptions())
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Empty(t, obs)
}

func TestReshapeSingleNonZeroMonth(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("IPTU", [12]string{3: "250,75"}, "1000", "1200", "90"),
	})

	obs, diags, err := Reshape(table, defaultReshapeOptions())
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, obs, 1)

	got := obs[0]
	assert.Equal(t, "2023", got.Year)
	assert.Equal(t, "IPTU", got.Category)
	assert.Equal(t, 4, got.Month)
	assert.Equal(t, "Abril", got.MonthName)
	assert.InDelta(t, 250.75, got.Value, 1e-9)
	assert.InDelta(t, 1000, got.Budgeted, 1e-9)
	assert.InDelta(t, 1200, got.Collected, 1e-9)
	assert.InDelta(t, 90, got.Target, 1e-9)
	assert.InDelta(t, 200, got.Balance, 1e-9)
	assert.InDelta(t, 200, got.Surplus, 1e-9)
	assert.Zero(t, got.Deficit)
}

func TestReshapeBroadcastsAnnualAmounts(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("ISS", [12]string{"100", "200", "300"}, "5000", "4000", "80"),
	})

	obs, _, err := Reshape(table, defaultReshapeOptions())
	require.NoError(t, err)
	require.Len(t, obs, 3)

	for _, o := range obs {
		assert.InDelta(t, 5000, o.Budgeted, 1e-9)
		assert.InDelta(t, 4000, o.Collected, 1e-9)
		assert.InDelta(t, -1000, o.Balance, 1e-9)
		assert.InDelta(t, 1000, o.Deficit, 1e-9)
		assert.Zero(t, o.Surplus)
	}
}

func TestReshapeCompositeCategoryColumnWins(t *testing.T) {
	cols := append([]string{"TRIBUTO/MÊS/ANO"}, monthlyColumns...)
	table := &types.Table{Sheet: "2023", Columns: cols, Data: make(map[string][]string)}
	table.Data["TRIBUTO/MÊS/ANO"] = []string{"ITBI"}
	table.Data["TRIBUTO"] = []string{"ignorado"}
	for _, name := range monthlyColumns[1:] {
		table.Data[name] = []string{"0"}
	}
	table.Data["JANEIRO"] = []string{"10"}
	table.Data["ORÇADO"] = []string{"100"}
	table.Data["ARRECADADO"] = []string{"100"}
	table.Data["META"] = []string{""}

	col, ok := ResolveCategoryColumn(table, []string{"TRIBUTO/MÊS/ANO", "TRIBUTO"})
	require.True(t, ok)
	assert.Equal(t, "TRIBUTO/MÊS/ANO", col)

	opts := defaultReshapeOptions()
	opts.MonthOffset = 2 // category columns shift the month block right
	obs, _, err := Reshape(table, opts)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "ITBI", obs[0].Category)
}

func TestReshapeMissingCategoryColumn(t *testing.T) {
	table := &types.Table{
		Sheet:   "2023",
		Columns: []string{"NOME", "ORÇADO", "ARRECADADO", "META"},
		Data: map[string][]string{
			"NOME": {"IPTU"}, "ORÇADO": {"1"}, "ARRECADADO": {"1"}, "META": {"1"},
		},
	}

	_, _, err := Reshape(table, defaultReshapeOptions())

	var missing *types.MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "TRIBUTO", missing.Column)
}

func TestReshapeUnparseableAmountSkipsRow(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("IPTU", [12]string{"100"}, "n/d", "1200", "90"),
		monthlyRow("ISS", [12]string{"100"}, "1000", "1200", "90"),
	})

	obs, diags, err := Reshape(table, defaultReshapeOptions())
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "IPTU", diags[0].Category)

	require.Len(t, obs, 1)
	assert.Equal(t, "ISS", obs[0].Category)
}

func TestReshapeUnparseableMonthCellSkipsCellOnly(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("IPTU", [12]string{"100", "???", "300"}, "1000", "1200", "90"),
	})

	obs, diags, err := Reshape(table, defaultReshapeOptions())
	require.NoError(t, err)
	assert.Len(t, diags, 1)
	require.Len(t, obs, 2)
	assert.Equal(t, 1, obs[0].Month)
	assert.Equal(t, 3, obs[1].Month)
}

func TestReshapeBlankTargetToleratedAsZero(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("IPTU", [12]string{"100"}, "1000", "1200", ""),
	})

	obs, diags, err := Reshape(table, defaultReshapeOptions())
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, obs, 1)
	assert.Zero(t, obs[0].Target)
}

func TestReshapeCategoryAndMonthRestriction(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("IPTU", [12]string{"100", "200", "300"}, "1000", "1200", "90"),
		monthlyRow("ISS", [12]string{"400", "500", "600"}, "2000", "1800", "85"),
	})

	opts := defaultReshapeOptions()
	opts.Categories = []string{"ISS"}
	opts.Months = []int{2, 3}

	obs, _, err := Reshape(table, opts)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	for _, o := range obs {
		assert.Equal(t, "ISS", o.Category)
	}
	assert.InDelta(t, 500, obs[0].Value, 1e-9)
	assert.InDelta(t, 600, obs[1].Value, 1e-9)
}

func TestReshapeSkipsEmptyCategoryRows(t *testing.T) {
	table := monthlyTable([][]string{
		monthlyRow("", [12]string{"100"}, "1000", "1200", "90"),
	})

	obs, diags, err := Reshape(table, defaultReshapeOptions())
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Empty(t, obs)
}

func TestParseAmountFormats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1200", 1200, true},
		{"1200.50", 1200.50, true},
		{"1.234,50", 1234.50, true},
		{"R$ 1.234,50", 1234.50, true},
		{"  250,75 ", 250.75, true},
		{"0", 0, true},
		{"", 0, false},
		{"n/d", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}
