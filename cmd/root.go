// =============================================================================
// FSAE Cost Report - Root Command
// =============================================================================
//
// This file defines the root command of the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (costreport)
//   ├── checkCmd   (costreport check [SYSTEM...])
//   ├── reportCmd  (costreport report [SYSTEM...])
//   ├── convertCmd (costreport convert [SYSTEM...])
//   └── versionCmd (costreport version)
//
// CONFIGURATION:
//   Settings come from the environment (and a .env file), then flags
//   override them:
//     COSTREPORT_BASEPATH    --basepath
//     COSTREPORT_LOG_LEVEL   --verbose (debug)
//     COSTREPORT_LOG_FORMAT  --log-format
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/fsae-cost-report/internal/config"
	"github.com/ginjaninja78/fsae-cost-report/internal/logging"
	"github.com/ginjaninja78/fsae-cost-report/internal/pipeline"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

var (
	basepath  string
	verbose   bool
	logFormat string
)

// logger is built in PersistentPreRunE, once flags are parsed.
var logger = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "costreport",
	Short: "FSAE Cost Report - Build the vehicle cost report from component sheets",
	Long: `FSAE Cost Report reads the bill of materials of a Formula SAE vehicle,
one CSV file per component, validates every cost table and writes the
cost report handed to the competition.

Outputs:
  - <car>_<university>_<competition>_CR.tex   LaTeX cost report
  - <car>_<university>_<competition>_CR.csv   eBOM
  - <car>_<university>_<competition>_CR.xlsx  eBOM workbook with a summary
  - <car>_<university>_<competition>_CR_summary.log

Example Usage:
  costreport check                      # Validate every system
  costreport report BR TM --output out  # Report on two systems
  costreport convert                    # Split system workbooks into CSV files`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("basepath") {
			basepath = settings.BasePath
		}
		if !cmd.Flags().Changed("log-format") {
			logFormat = settings.LogFormat
		}
		level := settings.LogLevel
		if verbose {
			level = "debug"
		}

		logger, err = logging.New(logging.Config{Level: level, Format: logFormat})
		return err
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(basepath, logger)
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&basepath,
		"basepath",
		".",
		"Folder holding costreport.yaml and the system folders",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"console",
		"Log format: console or json",
	)
}
