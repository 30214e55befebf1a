// =============================================================================
// FSAE Cost Report - Check Command
// =============================================================================
//
// COMMAND USAGE:
//   costreport check [SYSTEM...]
//
// Reads and validates the selected systems (all by default) without writing
// anything, then prints one line per system.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [SYSTEM...]",
	Short: "Validate the component sheets of the vehicle",
	Long: `The check command reads every component of the selected systems, checks
part numbers, quantities and subtotals, and reports files that no
component accounts for. Nothing is written.

Systems are read in display order; the first failing system stops the check.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	result, err := newPipeline().Check(args)
	if result == nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range result.Systems {
		if r.Err != nil {
			fmt.Fprintf(out, "✗ %s  %s\n", r.System.Label, r.System.Name)
			continue
		}
		fmt.Fprintf(out, "✓ %s  %-30s %4d components  %12.2f  (%s)\n",
			r.System.Label, r.System.Name, r.System.Len(), r.System.Cost(), r.Duration)
	}

	if err != nil {
		return fmt.Errorf("check stopped after %d of %d systems: %w",
			len(result.Systems), len(result.Metadata.Systems), err)
	}

	fmt.Fprintf(out, "\nVehicle Total: %.2f\n", result.Metadata.Cost())
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
