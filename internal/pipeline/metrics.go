// =============================================================================
// Tributos - Derived Metrics Calculator
// =============================================================================

package pipeline

import (
	"math"

	"github.com/fazenda-digital/tributos/internal/types"
)

// Consolidate aggregates observations into one row per (year, category)
// group, in order of first appearance.
//
// Budgeted, collected and target are taken from the first observation of each
// group, never summed: the reshaper broadcasts these annual values across the
// months of a row, so summing would count them once per active month.
func Consolidate(observations []types.Observation) []types.ConsolidatedRow {
	type groupKey struct {
		year, category string
	}

	var order []groupKey
	seen := make(map[groupKey]bool)

	for _, obs := range observations {
		key := groupKey{obs.Year, obs.Category}
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
		}
	}

	first := make(map[groupKey]types.Observation, len(order))
	for _, obs := range observations {
		key := groupKey{obs.Year, obs.Category}
		if _, ok := first[key]; !ok {
			first[key] = obs
		}
	}

	rows := make([]types.ConsolidatedRow, 0, len(order))
	for _, key := range order {
		obs := first[key]
		balance := obs.Collected - obs.Budgeted

		row := types.ConsolidatedRow{
			Year:      key.year,
			Category:  key.category,
			Budgeted:  obs.Budgeted,
			Collected: obs.Collected,
			Target:    obs.Target,
			Balance:   balance,
			Status:    statusFor(balance),
		}

		// Realization is undefined when nothing was budgeted. The source
		// left this division unguarded; here it is reported as "no value"
		// rather than 0% or a numeric fault.
		if obs.Budgeted != 0 {
			row.Realization = round1(obs.Collected / obs.Budgeted * 100)
			row.RealizationOK = true
		}

		rows = append(rows, row)
	}

	return rows
}

// statusFor classifies a balance. Zero is a deficit: surplus requires a
// strictly positive balance.
func statusFor(balance float64) string {
	if balance > 0 {
		return types.StatusSurplus
	}
	return types.StatusDeficit
}

// ComputeTotals derives cross-group summary metrics. The invariant
// Net == Surplus - Deficit holds by construction for any input.
func ComputeTotals(rows []types.ConsolidatedRow) types.Totals {
	var totals types.Totals
	for _, row := range rows {
		totals.Budgeted += row.Budgeted
		totals.Collected += row.Collected
		totals.Net += row.Balance
		switch {
		case row.Balance > 0:
			totals.Surplus += row.Balance
			totals.SurplusCount++
		case row.Balance < 0:
			totals.Deficit += -row.Balance
			totals.DeficitCount++
		}
	}
	return totals
}

// SumMonthly totals the monthly values of a set of observations.
func SumMonthly(observations []types.Observation) float64 {
	var total float64
	for _, obs := range observations {
		total += obs.Value
	}
	return total
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
