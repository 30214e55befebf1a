// =============================================================================
// FSAE Cost Report - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the report writers,
// including:
//   - Output directory management
//   - Output file naming
//   - Archival of the previous reports before they are overwritten
//   - Run summary log generation
//
// ARCHIVAL STRATEGY:
//   - A report about to be overwritten is moved to the archive directory
//   - With UseTimestampSubdirs, archives go to date-based subdirectories
//   - A missing previous report is not an error
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles the files produced by a report run.
type FileManager struct {
	// OutputDir is the directory where reports are written.
	OutputDir string

	// ArchiveDir is the directory for previous reports.
	ArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: archive/2024/01/15/049_McGill University_FSAEM_CR.csv
	UseTimestampSubdirs bool

	// ArchivePrevious determines whether existing reports are archived
	// before being overwritten.
	ArchivePrevious bool
}

// NewFileManager creates a new FileManager writing to outputDir and
// archiving to outputDir/archive.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{
		OutputDir:       outputDir,
		ArchiveDir:      filepath.Join(outputDir, "archive"),
		ArchivePrevious: true,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output and archive directories if they don't
// exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.OutputDir}
	if fm.ArchivePrevious {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// OutputPath returns the path of the report named stem with the extension.
func (fm *FileManager) OutputPath(stem, ext string) string {
	return filepath.Join(fm.OutputDir, stem+ext)
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveExisting moves an existing report to the archive directory.
//
// PARAMETERS:
//   - filePath: The path of the report about to be written.
//
// RETURNS:
//   - The path to the archived file, or "" when there was nothing to archive.
//   - An error if archival fails.
func (fm *FileManager) ArchiveExisting(filePath string) (string, error) {
	if !fm.ArchivePrevious || !FileExists(filePath) {
		return "", nil
	}

	archivePath := fm.getArchivePath(filePath)

	archiveDir := filepath.Dir(archivePath)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file. The modification
// time is part of the name so successive archives do not collide.
func (fm *FileManager) getArchivePath(filePath string) string {
	ext := filepath.Ext(filePath)
	base := filepath.Base(filePath)
	stem := base[:len(base)-len(ext)]

	stamp := time.Now()
	if modTime, err := GetFileModTime(filePath); err == nil {
		stamp = modTime
	}
	fileName := fmt.Sprintf("%s_%s%s", stem, stamp.Format("20060102_150405"), ext)

	if fm.UseTimestampSubdirs {
		subDir := filepath.Join(
			fm.ArchiveDir,
			fmt.Sprintf("%d", stamp.Year()),
			fmt.Sprintf("%02d", stamp.Month()),
			fmt.Sprintf("%02d", stamp.Day()),
		)
		return filepath.Join(subDir, fileName)
	}

	return filepath.Join(fm.ArchiveDir, fileName)
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about a report run.
type RunSummary struct {
	RunID     string
	Stem      string
	StartTime time.Time
	EndTime   time.Time
	BasePath  string
	Systems   []SystemSummary
	Total     float64
	Outputs   []string
	Archived  []string
}

// SystemSummary contains the figures of one system.
type SystemSummary struct {
	Label      string
	Name       string
	Components int
	Cost       float64
}

// NewRunSummary starts a summary with a fresh run id. The stem names the
// summary file.
func NewRunSummary(stem, basepath string) *RunSummary {
	return &RunSummary{
		RunID:     uuid.New().String(),
		Stem:      stem,
		StartTime: time.Now(),
		BasePath:  basepath,
	}
}

// WriteSummaryLog writes a run summary to <stem>_summary.log, replacing the
// previous one.
//
// PARAMETERS:
//   - summary: The run summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary *RunSummary, outputDir string) (string, error) {
	summaryPath := filepath.Join(outputDir, summary.Stem+"_summary.log")

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "FSAE Cost Report - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Base Path:      %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n",
		summary.RunID,
		summary.BasePath,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String())

	writer.WriteString("Systems:\n")
	writer.WriteString("--------------------------------------------------------------------------------\n")
	for _, s := range summary.Systems {
		fmt.Fprintf(writer, "  %s  %-30s %4d components  %12.2f\n", s.Label, s.Name, s.Components, s.Cost)
	}
	fmt.Fprintf(writer, "\n  Vehicle Total: %.2f\n\n", summary.Total)

	if len(summary.Outputs) > 0 {
		writer.WriteString("Outputs:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, output := range summary.Outputs {
			fmt.Fprintf(writer, "  %s\n", output)
		}
		writer.WriteString("\n")
	}

	if len(summary.Archived) > 0 {
		writer.WriteString("Archived:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, archived := range summary.Archived {
			fmt.Fprintf(writer, "  %s\n", archived)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileModTime returns the modification time of a file.
func GetFileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
