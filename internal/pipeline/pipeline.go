// =============================================================================
// FSAE Cost Report - Pipeline Module
// =============================================================================
//
// This module orchestrates a run, from the configuration in the base path to
// the files handed to the competition.
//
// REPORT PIPELINE:
//   1. Load the metadata (costreport.yaml, introduction, catalogue)
//   2. Select the systems named on the command line (all by default)
//   3. Read every selected system
//   4. Archive the previous outputs
//   5. Write the LaTeX cost report
//   6. Write the eBOM (CSV and XLSX), with the page numbers of the last
//      LaTeX compilation when its .aux file exists
//   7. Write the run summary log
//
// FAILURES:
//   Systems are read one after the other in display order. The first
//   system that fails to read stops the run; later systems are not read and
//   nothing is written.
//
// =============================================================================

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/config"
	"github.com/ginjaninja78/fsae-cost-report/internal/ebom"
	"github.com/ginjaninja78/fsae-cost-report/internal/latexwriter"
	"github.com/ginjaninja78/fsae-cost-report/internal/reader"
	"github.com/ginjaninja78/fsae-cost-report/internal/xlsxparser"
	"github.com/ginjaninja78/fsae-cost-report/pkg/utils"
)

// ErrUnknownSystem is returned when a requested label is not in the roster.
var ErrUnknownSystem = errors.New("unknown system")

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// SystemResult is the outcome of reading one system.
type SystemResult struct {
	System *bom.System

	// Err is nil when the system was read and validated.
	Err error

	Duration time.Duration
}

// Result is the outcome of a report run.
type Result struct {
	Metadata *bom.Metadata
	Systems  []SystemResult

	// Outputs contains the paths of the files written.
	Outputs []string

	// Archived contains the paths the previous outputs were moved to.
	Archived []string

	// SummaryPath is the path of the run summary log.
	SummaryPath string
}

// Options contains the options of a report run.
type Options struct {
	// OutputDir is the directory receiving the reports. Default: the base path
	OutputDir string

	// ArchivePrevious moves existing reports to <OutputDir>/archive before
	// they are overwritten. Default: true
	ArchivePrevious bool

	// ArchiveByDate files archived reports under archive/YYYY/MM/DD.
	ArchiveByDate bool
}

// DefaultOptions returns the default report options.
func DefaultOptions() Options {
	return Options{ArchivePrevious: true}
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline runs the commands against one base path.
type Pipeline struct {
	basepath string
	logger   *zap.Logger
	reader   *reader.Reader
}

// New creates a Pipeline. A nil logger disables logging.
func New(basepath string, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		basepath: basepath,
		logger:   logger,
		reader:   reader.New(logger),
	}
}

// Load reads the metadata and keeps the systems with the given labels, or
// all systems when labels is empty.
//
// RETURNS:
//   - ErrUnknownSystem, listing the known labels, if a label is not in the
//     roster.
func (p *Pipeline) Load(labels []string) (*bom.Metadata, error) {
	p.logger.Info("reading metadata", zap.String("basepath", p.basepath))

	metadata, err := config.LoadMetadata(p.basepath)
	if err != nil {
		return nil, err
	}

	if len(labels) == 0 {
		return metadata, nil
	}

	selected := make([]*bom.System, 0, len(labels))
	for _, label := range lo.Uniq(lo.Map(labels, func(l string, _ int) string { return strings.ToUpper(l) })) {
		system, ok := metadata.System(label)
		if !ok {
			return nil, fmt.Errorf("%w: %s (known systems: %s)",
				ErrUnknownSystem, label, strings.Join(metadata.Labels(), ", "))
		}
		selected = append(selected, system)
	}
	bom.SortSystems(selected)
	metadata.Systems = selected

	return metadata, nil
}

// ReadSystems reads the systems of the metadata in display order, stopping
// at the first one that fails.
//
// RETURNS:
//   - One result per system read, the failing one last.
//   - The error of the failing system.
func (p *Pipeline) ReadSystems(metadata *bom.Metadata) ([]SystemResult, error) {
	p.logger.Info("reading systems", zap.Strings("systems", metadata.Labels()))

	results := make([]SystemResult, 0, len(metadata.Systems))
	for _, system := range metadata.Systems {
		start := time.Now()
		err := p.reader.ReadSystem(p.basepath, system)
		results = append(results, SystemResult{System: system, Err: err, Duration: time.Since(start)})

		if err != nil {
			p.logger.Error("reading systems stopped", zap.String("system", system.Label), zap.Error(err))
			return results, err
		}
	}

	return results, nil
}

// Check loads the metadata and reads the selected systems without writing
// anything.
func (p *Pipeline) Check(labels []string) (*Result, error) {
	metadata, err := p.Load(labels)
	if err != nil {
		return nil, err
	}

	systems, err := p.ReadSystems(metadata)
	return &Result{Metadata: metadata, Systems: systems}, err
}

// Report reads the selected systems and writes the cost report, the eBOM and
// the run summary. Nothing is written when a system fails to read.
func (p *Pipeline) Report(labels []string, options Options) (*Result, error) {
	outputDir := options.OutputDir
	if outputDir == "" {
		outputDir = p.basepath
	}

	result, err := p.Check(labels)
	if err != nil {
		return result, err
	}
	metadata := result.Metadata
	stem := metadata.Filename()

	summary := utils.NewRunSummary(stem, p.basepath)

	files := utils.NewFileManager(outputDir)
	files.ArchivePrevious = options.ArchivePrevious
	files.UseTimestampSubdirs = options.ArchiveByDate
	if err := files.EnsureDirectories(); err != nil {
		return result, err
	}

	// Page numbers of the previous compilation, read before the .tex changes.
	pages, err := ebom.ReadPageRefs(files.OutputPath(stem, ".aux"))
	if err != nil {
		return result, err
	}

	writers := []struct {
		ext   string
		write func(path string) error
	}{
		{".tex", func(path string) error {
			return latexwriter.New(p.logger).WriteFile(path, p.basepath, metadata)
		}},
		{".csv", func(path string) error {
			return writeCSV(path, ebom.Build(metadata, pages))
		}},
		{".xlsx", func(path string) error {
			return ebom.WriteXLSX(path, ebom.Build(metadata, pages))
		}},
	}

	for _, w := range writers {
		path := files.OutputPath(stem, w.ext)

		archived, err := files.ArchiveExisting(path)
		if err != nil {
			return result, err
		}
		if archived != "" {
			p.logger.Debug("previous output archived", zap.String("path", archived))
			result.Archived = append(result.Archived, archived)
		}

		if err := w.write(path); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", path, err)
		}
		p.logger.Info("output written", zap.String("path", path))
		result.Outputs = append(result.Outputs, path)
	}

	summary.Systems = lo.Map(metadata.Systems, func(s *bom.System, _ int) utils.SystemSummary {
		return utils.SystemSummary{Label: s.Label, Name: s.Name, Components: s.Len(), Cost: s.Cost()}
	})
	summary.Total = metadata.Cost()
	summary.Outputs = result.Outputs
	summary.Archived = result.Archived
	summary.EndTime = time.Now()

	result.SummaryPath, err = utils.WriteSummaryLog(summary, outputDir)
	if err != nil {
		return result, err
	}

	p.logger.Info("report done",
		zap.String("run_id", summary.RunID),
		zap.Float64("total", summary.Total),
		zap.Duration("duration", summary.EndTime.Sub(summary.StartTime)),
	)
	return result, nil
}

// Convert converts the workbooks of the selected systems into component CSV
// files.
func (p *Pipeline) Convert(labels []string) ([]*xlsxparser.Result, error) {
	metadata, err := p.Load(labels)
	if err != nil {
		return nil, err
	}

	converter := xlsxparser.NewConverter(p.logger)

	var results []*xlsxparser.Result
	for _, system := range metadata.Systems {
		systemDir := filepath.Join(p.basepath, system.Label)
		converted, err := converter.ConvertSystem(systemDir, filepath.Join(systemDir, reader.ComponentsDir))
		if err != nil {
			return nil, fmt.Errorf("system %s: %w", system.Label, err)
		}
		results = append(results, converted...)
	}

	return results, nil
}

func writeCSV(path string, report *ebom.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := ebom.WriteCSV(file, report); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
