// =============================================================================
// FSAE Cost Report - Report Command
// =============================================================================
//
// COMMAND USAGE:
//   costreport report [SYSTEM...] [flags]
//
// FLAGS:
//   --output          : Directory receiving the reports (default: the base path)
//   --no-archive      : Overwrite previous reports instead of archiving them
//   --archive-by-date : Archive under archive/YYYY/MM/DD
//
// Compile the .tex twice with pdflatex, then run report again so the eBOM
// picks up the cost table page numbers from the .aux file.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fsae-cost-report/internal/pipeline"
)

var (
	outputDir     string
	noArchive     bool
	archiveByDate bool
)

var reportCmd = &cobra.Command{
	Use:   "report [SYSTEM...]",
	Short: "Write the cost report and the eBOM",
	Long: `The report command validates the selected systems (all by default) and
writes the LaTeX cost report, the eBOM as CSV and XLSX, and a run summary.

Previous reports are moved to <output>/archive before being replaced.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	options := pipeline.DefaultOptions()
	options.OutputDir = outputDir
	options.ArchivePrevious = !noArchive
	options.ArchiveByDate = archiveByDate

	result, err := newPipeline().Report(args, options)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, output := range result.Outputs {
		fmt.Fprintf(out, "✓ %s\n", output)
	}
	fmt.Fprintf(out, "\nVehicle Total: %.2f\n", result.Metadata.Cost())
	fmt.Fprintf(out, "Summary:       %s\n", result.SummaryPath)
	return nil
}

func init() {
	reportCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory receiving the reports (default: the base path)")
	reportCmd.Flags().BoolVar(&noArchive, "no-archive", false, "Overwrite previous reports instead of archiving them")
	reportCmd.Flags().BoolVar(&archiveByDate, "archive-by-date", false, "Archive previous reports under archive/YYYY/MM/DD")

	rootCmd.AddCommand(reportCmd)
}
