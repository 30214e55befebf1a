// =============================================================================
// FSAE Cost Report - Main Entry Point
// =============================================================================
//
// USAGE:
//   costreport check    - Validate the component sheets
//   costreport report   - Write the LaTeX cost report and the eBOM
//   costreport convert  - Split system workbooks into component CSV files
//   costreport version  - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Reading, validation and report generation
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/fsae-cost-report/cmd"
)

func main() {
	cmd.Execute()
}
