// =============================================================================
// Tributos - Filter Applicator
// =============================================================================
//
// Filters arrive as explicit parameters, never as ambient state: the caller
// hands a FilterSpec to the pipeline and gets back the filtered subset plus
// any advisories. The semantics are forgiving by design: an empty dimension
// passes everything, and requested values that a particular sheet simply does
// not have are dropped for that sheet with an advisory instead of excluding
// every row.
//
// =============================================================================

package pipeline

import (
	"github.com/fazenda-digital/tributos/internal/types"
)

// EffectiveValues intersects the requested filter values with the values
// available in a sheet.
//
// An empty request passes all (nil effective set, no advisory). Requested
// values missing from the sheet are dropped and reported; if every requested
// value is missing the effective filter falls back to pass-all rather than
// excluding every row, and the advisory carries PassAll.
func EffectiveValues(requested, available []string, dimension, sheet string) ([]string, *types.Advisory) {
	if len(requested) == 0 {
		return nil, nil
	}

	have := make(map[string]bool, len(available))
	for _, v := range available {
		have[v] = true
	}

	var effective, dropped []string
	for _, v := range requested {
		if have[v] {
			effective = append(effective, v)
		} else {
			dropped = append(dropped, v)
		}
	}

	if len(dropped) == 0 {
		return effective, nil
	}

	advisory := &types.Advisory{
		Dimension: dimension,
		Sheet:     sheet,
		Dropped:   dropped,
		PassAll:   len(effective) == 0,
	}
	return effective, advisory
}

// FilterObservations returns the observations matching the spec. Empty
// dimensions pass all; the caller is expected to have resolved sheet-level
// availability through EffectiveValues already, so no advisories arise here.
func FilterObservations(observations []types.Observation, spec types.FilterSpec) []types.Observation {
	if spec.IsZero() {
		return observations
	}

	years := stringSet(spec.Years)
	categories := stringSet(spec.Categories)
	months := make(map[int]bool, len(spec.Months))
	for _, m := range spec.Months {
		months[m] = true
	}

	var out []types.Observation
	for _, obs := range observations {
		if len(years) > 0 && !years[obs.Year] {
			continue
		}
		if len(categories) > 0 && !categories[obs.Category] {
			continue
		}
		if len(months) > 0 && !months[obs.Month] {
			continue
		}
		out = append(out, obs)
	}
	return out
}

// FilterTable restricts a normalized annual table to the requested years
// (rows) and categories (columns). Values absent from the table are dropped
// per the EffectiveValues semantics and reported as advisories.
func FilterTable(t *types.Table, spec types.FilterSpec, yearColumn string, exclude []string) (*types.Table, []types.Advisory) {
	var advisories []types.Advisory

	// Resolve the effective year filter against the years present.
	effectiveYears, adv := EffectiveValues(spec.Years, t.ColumnValues(yearColumn), "years", t.Sheet)
	if adv != nil {
		advisories = append(advisories, *adv)
	}

	// Resolve the effective category filter against the category columns.
	categoryCols := categoryColumns(t, yearColumn, exclude)
	effectiveCategories, adv := EffectiveValues(spec.Categories, categoryCols, "categories", t.Sheet)
	if adv != nil {
		advisories = append(advisories, *adv)
	}

	// Select surviving columns: the year column, then either the requested
	// categories or all of them, plus excluded aggregate columns.
	keepCol := func(name string) bool {
		if name == yearColumn {
			return true
		}
		if len(effectiveCategories) == 0 {
			return true
		}
		for _, c := range effectiveCategories {
			if c == name {
				return true
			}
		}
		for _, e := range exclude {
			if e == name {
				return true
			}
		}
		return false
	}

	// Select surviving rows by year.
	yearOK := func(y string) bool {
		if len(effectiveYears) == 0 {
			return true
		}
		for _, v := range effectiveYears {
			if v == y {
				return true
			}
		}
		return false
	}

	out := &types.Table{
		Source: t.Source,
		Sheet:  t.Sheet,
		Data:   make(map[string][]string),
	}
	for _, name := range t.Columns {
		if keepCol(name) {
			out.Columns = append(out.Columns, name)
			out.Data[name] = nil
		}
	}

	years := t.ColumnValues(yearColumn)
	for row := 0; row < t.RowCount(); row++ {
		if row < len(years) && !yearOK(years[row]) {
			continue
		}
		for _, name := range out.Columns {
			out.Data[name] = append(out.Data[name], t.Cell(name, row))
		}
	}

	return out, advisories
}

// categoryColumns lists the columns of an annual table that represent
// categories: everything except the year column and the excluded aggregates.
func categoryColumns(t *types.Table, yearColumn string, exclude []string) []string {
	excluded := stringSet(exclude)
	var out []string
	for _, name := range t.Columns {
		if name == yearColumn || excluded[name] {
			continue
		}
		out = append(out, name)
	}
	return out
}

func stringSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
