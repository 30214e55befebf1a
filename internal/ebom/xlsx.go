package ebom

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	// BOMSheet is the name of the eBOM sheet in the workbook.
	BOMSheet = "eBOM"

	// SummarySheet is the name of the cost summary sheet.
	SummarySheet = "Summary"

	moneyFormat = "$#,##0.00"
	headerFill  = "C0C0C0"
)

// summaryHeader holds the column headers of the summary sheet.
var summaryHeader = []any{"System", "Materials", "Processes", "Fasteners", "Tooling", "Total"}

// WriteXLSX writes the eBOM workbook: the eBOM sheet and a cost summary
// sheet with a pie chart of the cost per system.
func WriteXLSX(path string, report *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BOMSheet); err != nil {
		return err
	}
	if err := writeBOMSheet(f, report); err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", BOMSheet, err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if err := writeSummarySheet(f, report); err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", SummarySheet, err)
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeBOMSheet(f *excelize.File, report *Report) error {
	rows := report.Rows()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(BOMSheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return err
	}
	if err := setRowStyle(f, BOMSheet, HeaderRow, Columns, header); err != nil {
		return err
	}

	money, err := moneyStyle(f)
	if err != nil {
		return err
	}
	last := len(rows)
	// Unit Cost, then Material Cost to Total Cost.
	for _, span := range [][2]string{{"H", "H"}, {"J", "N"}} {
		if err := f.SetCellStyle(BOMSheet,
			fmt.Sprintf("%s%d", span[0], HeaderRow+1),
			fmt.Sprintf("%s%d", span[1], last), money); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(BOMSheet, "O1", "O1", money); err != nil {
		return err
	}

	for _, width := range []struct {
		start, end string
		value      float64
	}{
		{"A", "A", 10},
		{"B", "B", 24},
		{"E", "G", 30},
		{"H", "N", 14},
		{"O", "O", 20},
	} {
		if err := f.SetColWidth(BOMSheet, width.start, width.end, width.value); err != nil {
			return err
		}
	}

	return nil
}

func writeSummarySheet(f *excelize.File, report *Report) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return err
	}
	if err := setRowStyle(f, SummarySheet, 1, len(summaryHeader), header); err != nil {
		return err
	}

	for i, area := range report.Areas {
		row := i + 2
		values := []any{area.System.Name}
		values = append(values, breakdownCells(area.Total)...)
		values = append(values, area.Total.Total())
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}

		colour, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{area.System.Colour.Hex()}},
		})
		if err != nil {
			return err
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellStyle(SummarySheet, cell, cell, colour); err != nil {
			return err
		}
	}

	last := len(report.Areas) + 2
	total := []any{"Total Vehicle"}
	total = append(total, breakdownCells(report.Total)...)
	total = append(total, report.Total.Total())
	if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", last), &total); err != nil {
		return err
	}

	money, err := moneyStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "B2", fmt.Sprintf("F%d", last), money); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "F", 14); err != nil {
		return err
	}

	if len(report.Areas) == 0 {
		return nil
	}

	return f.AddChart(SummarySheet, "H2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       "Cost",
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SummarySheet, last-1),
			Values:     fmt.Sprintf("%s!$F$2:$F$%d", SummarySheet, last-1),
		}},
		Title:     []excelize.RichTextRun{{Text: "Cost Summary"}},
		Legend:    excelize.ChartLegend{Position: "right"},
		PlotArea:  excelize.ChartPlotArea{ShowPercent: true},
		Dimension: excelize.ChartDimension{Width: 640, Height: 400},
	})
}

func moneyStyle(f *excelize.File) (int, error) {
	format := moneyFormat
	return f.NewStyle(&excelize.Style{CustomNumFmt: &format})
}

func setRowStyle(f *excelize.File, sheet string, row, width, style int) error {
	end, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), end, style)
}
