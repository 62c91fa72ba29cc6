// =============================================================================
// Tributos - Annual Series Analysis
// =============================================================================
//
// Annual sources are wide single-sheet tables: one row per year, one column
// per tributo plus an aggregate TOTAL column. The series built here backs the
// per-year totals, year-over-year growth and per-category share figures of
// the collection dashboards.
//
// =============================================================================

package pipeline

import (
	"github.com/fazenda-digital/tributos/internal/types"
)

// AnnualSeries holds the numeric view of an annual table.
type AnnualSeries struct {
	// Years in row order, as text.
	Years []string

	// Categories in column order; aggregate columns are excluded.
	Categories []string

	// Values maps a category to its per-year amounts, index-aligned with
	// Years. Unparseable cells are zero.
	Values map[string][]float64
}

// GrowthPoint is one year-over-year growth figure. OK is false for the first
// year and whenever the previous year's value is zero, where the percentage
// is undefined.
type GrowthPoint struct {
	Year string
	Pct  float64
	OK   bool
}

// BuildAnnualSeries extracts an AnnualSeries from a normalized annual table.
// The year column must exist; its absence is a *types.MissingColumnError.
func BuildAnnualSeries(t *types.Table, yearColumn string, exclude []string) (*AnnualSeries, error) {
	if !t.HasColumn(yearColumn) {
		return nil, &types.MissingColumnError{Column: yearColumn, Sheet: t.Sheet, Source: t.Source}
	}

	series := &AnnualSeries{
		Years:      append([]string(nil), t.ColumnValues(yearColumn)...),
		Categories: categoryColumns(t, yearColumn, exclude),
		Values:     make(map[string][]float64),
	}

	for _, category := range series.Categories {
		values := make([]float64, len(series.Years))
		for i := range series.Years {
			v, _ := ParseAmount(t.Cell(category, i))
			values[i] = v
		}
		series.Values[category] = values
	}

	return series, nil
}

// Total returns the sum across categories for one year index.
func (s *AnnualSeries) Total(yearIndex int) float64 {
	var total float64
	for _, category := range s.Categories {
		values := s.Values[category]
		if yearIndex >= 0 && yearIndex < len(values) {
			total += values[yearIndex]
		}
	}
	return total
}

// Growth computes year-over-year growth percentages for one category.
func (s *AnnualSeries) Growth(category string) []GrowthPoint {
	values, ok := s.Values[category]
	if !ok {
		return nil
	}

	points := make([]GrowthPoint, len(values))
	for i := range values {
		points[i].Year = s.Years[i]
		if i == 0 || values[i-1] == 0 {
			continue
		}
		points[i].Pct = round1((values[i] - values[i-1]) / values[i-1] * 100)
		points[i].OK = true
	}
	return points
}

// Shares returns each category's share of the year total, in percent. When
// the year total is zero the map is empty.
func (s *AnnualSeries) Shares(yearIndex int) map[string]float64 {
	total := s.Total(yearIndex)
	shares := make(map[string]float64, len(s.Categories))
	if total == 0 {
		return shares
	}
	for _, category := range s.Categories {
		values := s.Values[category]
		if yearIndex >= 0 && yearIndex < len(values) {
			shares[category] = round1(values[yearIndex] / total * 100)
		}
	}
	return shares
}
