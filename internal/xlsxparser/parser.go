// =============================================================================
// FSAE Cost Report - XLSX Workbook Converter
// =============================================================================
//
// This module converts the cost workbooks maintained by each system into the
// flat per-component CSV files the reader consumes.
//
// WORKBOOK STRUCTURE:
//   One workbook per system, stored at <basepath>/<LABEL>/*.xlsx. Each sheet
//   whose name starts with a two-letter label and a dash (e.g. "BR-00001-AA")
//   is one component and becomes <LABEL>/components/<sheet>.csv. Other sheets
//   (summaries, lookup tables) are skipped.
//
// CELL VALUES:
//   Cells are exported raw (no number formatting) so currency formats such
//   as "$4.00" reach the CSV as "4". Formula cells export their cached value.
//   Rows are padded to the sheet width so blank separator rows are kept.
//
// =============================================================================

package xlsxparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// componentSheet matches the names of the sheets holding a component.
var componentSheet = regexp.MustCompile(`^[A-Z][A-Z]-`)

// minWidth keeps blank rows non-empty in the CSV output.
const minWidth = 2

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result describes one converted workbook.
type Result struct {
	// Workbook is the path to the source workbook.
	Workbook string

	// Files contains the paths of the CSV files written.
	Files []string

	// Skipped contains the names of the sheets that are not components.
	Skipped []string
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter converts workbooks to component CSV files.
type Converter struct {
	logger *zap.Logger
}

// NewConverter creates a Converter. A nil logger disables logging.
func NewConverter(logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{logger: logger}
}

// ConvertSystem converts every workbook of a system directory into its
// components directory.
//
// PARAMETERS:
//   - systemDir: The system directory, e.g. <basepath>/BR.
//   - componentsDir: The directory receiving the CSV files.
//
// RETURNS:
//   - One result per workbook, in file name order.
//   - An error if a workbook cannot be read or a CSV cannot be written.
func (c *Converter) ConvertSystem(systemDir, componentsDir string) ([]*Result, error) {
	workbooks, err := filepath.Glob(filepath.Join(systemDir, "*.xls[xm]"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", systemDir, err)
	}
	sort.Strings(workbooks)

	if err := os.MkdirAll(componentsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", componentsDir, err)
	}

	results := make([]*Result, 0, len(workbooks))
	for _, workbook := range workbooks {
		// Skip lock files left by an open spreadsheet.
		if strings.HasPrefix(filepath.Base(workbook), "~$") {
			continue
		}

		result, err := c.ConvertWorkbook(workbook, componentsDir)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// ConvertWorkbook writes every component sheet of the workbook to
// <outputDir>/<sheet>.csv, replacing existing files.
func (c *Converter) ConvertWorkbook(workbookPath, outputDir string) (*Result, error) {
	c.logger.Info("converting workbook", zap.String("workbook", workbookPath))

	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	result := &Result{Workbook: workbookPath}

	for _, sheetName := range f.GetSheetList() {
		if !componentSheet.MatchString(sheetName) {
			result.Skipped = append(result.Skipped, sheetName)
			continue
		}

		rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read rows of sheet '%s': %w", sheetName, err)
		}

		outputPath := filepath.Join(outputDir, sheetName+".csv")
		if err := writeCSV(outputPath, rows); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
		}

		c.logger.Debug("sheet converted", zap.String("sheet", sheetName), zap.Int("rows", len(rows)))
		result.Files = append(result.Files, outputPath)
	}

	c.logger.Info("converting workbook done",
		zap.String("workbook", workbookPath),
		zap.Int("files", len(result.Files)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// writeCSV writes the rows to outputPath. A failed close is an error: the
// file may be truncated.
func writeCSV(outputPath string, rows [][]string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	if err := writeRows(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// writeRows writes the rows, each padded to the width of the widest row.
func writeRows(out io.Writer, rows [][]string) error {
	width := minWidth
	for _, row := range rows {
		width = max(width, len(row))
	}

	w := csv.NewWriter(out)
	for _, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		if err := w.Write(padded); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}
