// =============================================================================
// Tributos - Main Entry Point
// =============================================================================
//
// Tributos is a CLI tool that ingests municipal tax-revenue workbooks,
// normalizes their irregular headers, reshapes the wide per-tributo/month
// layout into long-form observations, derives surplus/deficit metrics and
// exports display-formatted consolidated tables.
//
// USAGE:
//   tributos process       - Run the pipeline over every configured source
//   tributos export        - Export the consolidated table for one source
//   tributos inspect       - List sheets, years and categories per workbook
//   tributos version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core pipeline logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/fazenda-digital/tributos/cmd"
)

func main() {
	cmd.Execute()
}
