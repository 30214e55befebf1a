// =============================================================================
// FSAE Cost Report - CSV Parser Module
// =============================================================================
//
// This module reads the flat CSV files exported from the cost spreadsheets
// and exposes them as raw rows, plus a scanner for the tagged tables they
// contain.
//
// TAGGED TABLE LAYOUT:
//   | Row              | Content                                   |
//   |------------------|-------------------------------------------|
//   | tag row          | "Materials" (or Processes, Parts, ...)    |
//   | column headers   | ignored                                   |
//   | data rows        | one item per row                          |
//   | terminator       | first cell empty (may carry a total)      |
//
// Every reader of the repository (components, catalogue) goes through this
// module so rows are decoded the same way everywhere.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// =============================================================================
// SHEET STRUCTURE
// =============================================================================

// Sheet is a parsed CSV file.
type Sheet struct {
	// SourceFile is the path to the source CSV file.
	SourceFile string

	// Rows contains the raw rows. Rows may have different lengths.
	Rows [][]string
}

// Row is one row of a tagged table.
type Row struct {
	// Line is the 1-indexed line number in the source file.
	Line int

	// Cells contains the raw cell values.
	Cells []string
}

// Cell returns the trimmed value of a cell, or "" when the row is shorter.
func (r Row) Cell(index int) string {
	return cell(r.Cells, index)
}

// Table is a tagged table found in a sheet.
type Table struct {
	// Tag is the first cell of the tag row.
	Tag string

	// Rows contains the data rows.
	Rows []Row

	// Terminator is the row that ended the table, nil at end of file.
	Terminator *Row
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Read reads a CSV file and returns its raw rows.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - A pointer to the Sheet containing the rows.
//   - An error if the file cannot be read or parsed.
func Read(filePath string) (*Sheet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(bufio.NewReader(file))
	// Spreadsheet exports pad rows unevenly.
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return &Sheet{SourceFile: filePath, Rows: rows}, nil
}

// =============================================================================
// SHEET ACCESS
// =============================================================================

// Cell returns the trimmed value at the 0-indexed row and column, or "" when
// the position is outside the sheet.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	return cell(s.Rows[row], col)
}

// FindTag returns the index of the first row whose first cell equals the tag.
func (s *Sheet) FindTag(tag string) (int, bool) {
	for i, row := range s.Rows {
		if cell(row, 0) == tag {
			return i, true
		}
	}
	return -1, false
}

// Table scans the table introduced by the tag: the tag row and the column
// header row are skipped, then data rows are collected until a row whose
// first cell is empty.
//
// RETURNS:
//   - The table, and true when the tag was found.
func (s *Sheet) Table(tag string) (*Table, bool) {
	index, ok := s.FindTag(tag)
	if !ok {
		return nil, false
	}

	table := &Table{Tag: tag}
	for i := index + 2; i < len(s.Rows); i++ {
		row := Row{Line: i + 1, Cells: s.Rows[i]}
		if row.Cell(0) == "" {
			table.Terminator = &row
			break
		}
		table.Rows = append(table.Rows, row)
	}

	return table, true
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
