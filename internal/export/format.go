// =============================================================================
// Tributos - Display Formatting
// =============================================================================
//
// Exports are display-formatted text, not raw numeric data: monetary fields
// carry the localized "R$ 1.234,50" rendering and percentages the "N.N%"
// rendering, matching what the dashboards show on screen.
//
// =============================================================================

package export

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders numbers with Brazilian grouping: thousands separated by
// "." and decimals by ",".
var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders a numeric amount as "R$ 1.234,50". Non-numeric
// input is returned unchanged rather than raising; the export columns mix
// amounts with pre-rendered text in a few legacy sheets.
func FormatCurrency(v any) string {
	switch n := v.(type) {
	case float64:
		return printer.Sprintf("R$ %.2f", n)
	case float32:
		return printer.Sprintf("R$ %.2f", float64(n))
	case int:
		return printer.Sprintf("R$ %.2f", float64(n))
	case int64:
		return printer.Sprintf("R$ %.2f", float64(n))
	case string:
		return n
	default:
		return fmt.Sprint(v)
	}
}

// FormatPercent renders a percentage with one decimal, e.g. "98.7%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
