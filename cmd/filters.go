package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fazenda-digital/tributos/internal/types"
)

// filterFlags carries the raw filter flag values shared by the process and
// export commands.
type filterFlags struct {
	years      []string
	categories []string
	months     []string
}

// register adds the filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.years, "years", nil,
		"Years to analyze (default: all)")
	cmd.Flags().StringSliceVar(&f.categories, "categories", nil,
		"Tributos to analyze (default: all)")
	cmd.Flags().StringSliceVar(&f.months, "months", nil,
		"Months to analyze, by number (1-12) or name (Janeiro..Dezembro)")
}

// spec resolves the flags into a FilterSpec. Month values accept both the
// 1-based number and the Portuguese month name.
func (f *filterFlags) spec() (types.FilterSpec, error) {
	spec := types.FilterSpec{
		Years:      trimmed(f.years),
		Categories: trimmed(f.categories),
	}

	for _, raw := range f.months {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if n, err := strconv.Atoi(raw); err == nil {
			if n < 1 || n > 12 {
				return spec, fmt.Errorf("month out of range: %d", n)
			}
			spec.Months = append(spec.Months, n)
			continue
		}
		n, ok := types.MonthNumber(raw)
		if !ok {
			return spec, fmt.Errorf("unknown month: %q", raw)
		}
		spec.Months = append(spec.Months, n)
	}

	return spec, nil
}

func trimmed(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
