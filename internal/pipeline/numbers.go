package pipeline

import (
	"strconv"
	"strings"
)

// ParseAmount reads a monetary cell. Two layouts occur in the source sheets:
// plain machine numbers ("12345.67") and Brazilian display numbers
// ("12.345,67"), optionally prefixed "R$". They are tried in that order.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}

	// "12.345,67" -> 12345.67
	if strings.Contains(s, ",") {
		t := strings.ReplaceAll(s, ".", "")
		t = strings.ReplaceAll(t, ",", ".")
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
	}

	return 0, false
}
