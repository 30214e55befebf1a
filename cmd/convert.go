// =============================================================================
// FSAE Cost Report - Convert Command
// =============================================================================
//
// COMMAND USAGE:
//   costreport convert [SYSTEM...]
//
// Splits every workbook (*.xlsx, *.xlsm) found in a system folder into one
// CSV file per component sheet, in <system>/components. Sheets whose name is
// not a part number are skipped.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [SYSTEM...]",
	Short: "Convert system workbooks into component CSV files",
	RunE:  runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	results, err := newPipeline().Convert(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	files := 0
	for _, r := range results {
		files += len(r.Files)
		fmt.Fprintf(out, "✓ %s  %d sheets", filepath.Base(r.Workbook), len(r.Files))
		if len(r.Skipped) > 0 {
			fmt.Fprintf(out, ", skipped %v", r.Skipped)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "\n%d workbooks, %d component files\n", len(results), files)
	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
