// =============================================================================
// Tributos - Diagnostics
// =============================================================================

package pipeline

import (
	"fmt"
	"strings"
)

// MaxShownDiagnostics caps how many diagnostics are rendered in full; the
// remainder is summarized as a count. All diagnostics still count toward the
// total.
const MaxShownDiagnostics = 5

// Diagnostic records one local, non-fatal failure with its sheet and file
// context.
type Diagnostic struct {
	Source   string
	Sheet    string
	Category string
	Err      error
}

func (d Diagnostic) String() string {
	return d.Err.Error()
}

// Diagnostics accumulates the failures of one pipeline run.
type Diagnostics struct {
	items []Diagnostic
}

// Add records a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	d.items = append(d.items, diag)
}

// AddAll records a batch of diagnostics.
func (d *Diagnostics) AddAll(diags []Diagnostic) {
	d.items = append(d.items, diags...)
}

// Count returns the total number of diagnostics recorded.
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// Items returns all recorded diagnostics.
func (d *Diagnostics) Items() []Diagnostic {
	return d.items
}

// Render produces the user-facing lines: the first MaxShownDiagnostics in
// full, then a single line counting the rest.
func (d *Diagnostics) Render() []string {
	if len(d.items) == 0 {
		return nil
	}

	shown := len(d.items)
	if shown > MaxShownDiagnostics {
		shown = MaxShownDiagnostics
	}

	lines := make([]string, 0, shown+1)
	for _, diag := range d.items[:shown] {
		lines = append(lines, "  • "+diag.String())
	}
	if rest := len(d.items) - shown; rest > 0 {
		lines = append(lines, fmt.Sprintf("  • ... and %d more error(s)", rest))
	}
	return lines
}

// Summary returns a one-line description of the diagnostic volume.
func (d *Diagnostics) Summary() string {
	if len(d.items) == 0 {
		return ""
	}
	return fmt.Sprintf("%d error(s) during processing:\n%s",
		len(d.items), strings.Join(d.Render(), "\n"))
}
