// =============================================================================
// FSAE Cost Report - Electronic Bill of Materials
// =============================================================================
//
// This module lays out the eBOM submitted with the cost report: one line per
// component, grouped by system, with the cost split by cost table kind.
//
// SHEET LAYOUT (15 columns):
//   Row 1   University | <name> | ... | Total Vehicle Cost | | <total>
//   Row 2   Competition Code | <abbrev>
//   Row 3   Year | <two digits>
//   Row 4   Car # | <three digits>
//   Row 5   (blank)
//   Row 6   column headers
//   Then, per system in display order:
//     one line per component in hierarchy order, numbered from 1
//     an "Area Total" line
//   Last    the "Vehicle Total" line
//
// COSTS:
//   Component lines carry the per-unit table cost (children excluded) so
//   that nothing is counted twice; the line total is table cost × quantity.
//   Area and vehicle totals are quantity-weighted.
//
// =============================================================================

package ebom

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/normalize"
)

// Columns is the width of every eBOM row.
const Columns = 15

// HeaderRow is the 1-indexed row of the column headers.
const HeaderRow = 6

// Header holds the column headers.
var Header = []string{
	"Line Num.",
	"Area of Commodity",
	"Asm/Prt #",
	"Rev. Lvl.",
	"Asm",
	"Component",
	"Description",
	"Unit Cost",
	"Quantity",
	"Material Cost",
	"Process Cost",
	"Fastener Cost",
	"Tooling Cost",
	"Total Cost",
	"Details Page Number",
}

// =============================================================================
// REPORT STRUCTURE
// =============================================================================

// Line is the eBOM line of one component.
type Line struct {
	Number      int
	Area        string
	Base        string
	Revision    string
	Assembly    string
	Component   string
	Description string

	// PartNumber is not printed; it keys the page references.
	PartNumber string

	// UnitCost is the table cost of one instance.
	UnitCost float64
	Quantity int

	// Costs is the per-unit table cost split by kind.
	Costs bom.Breakdown

	// Total is UnitCost × Quantity.
	Total float64

	// Page is the cost table page in the LaTeX report, 0 when unknown.
	Page int
}

// Area is the block of lines of one system.
type Area struct {
	System *bom.System
	Lines  []Line

	// Total is the quantity-weighted cost of the system.
	Total bom.Breakdown
}

// Report is a complete eBOM.
type Report struct {
	University      string
	CompetitionCode string
	Year            int
	CarNumber       int

	Areas []Area

	// Total is the cost of the vehicle.
	Total bom.Breakdown
}

// =============================================================================
// BUILDING
// =============================================================================

// Build lays out the eBOM of the systems in metadata. pages maps a part
// number to the page of its cost table; it may be nil.
func Build(metadata *bom.Metadata, pages map[string]int) *Report {
	report := &Report{
		University:      metadata.University,
		CompetitionCode: metadata.CompetitionAbbrev,
		Year:            metadata.Year,
		CarNumber:       metadata.CarNumber,
	}

	for _, system := range metadata.Systems {
		area := buildArea(system, pages)
		report.Areas = append(report.Areas, area)
		report.Total = report.Total.Add(area.Total)
	}

	return report
}

func buildArea(system *bom.System, pages map[string]int) Area {
	area := Area{System: system}

	for i, component := range system.Hierarchy() {
		costs := component.Breakdown()
		quantity := component.Quantity()

		parents := lo.Map(component.Parents(), func(p *bom.Component, _ int) string {
			return normalize.Capitalize(p.Name)
		})

		area.Lines = append(area.Lines, Line{
			Number:      i + 1,
			Area:        system.Name,
			Base:        component.Base(),
			Revision:    component.Revision(),
			Assembly:    normalize.HumanJoin(parents, true, "&"),
			Component:   normalize.Capitalize(component.Name),
			Description: normalize.Capitalize(component.Details),
			PartNumber:  component.PartNumber(),
			UnitCost:    costs.Total(),
			Quantity:    quantity,
			Costs:       costs,
			Total:       costs.Total() * float64(quantity),
			Page:        pages[component.PartNumber()],
		})

		area.Total = area.Total.Add(costs.Scale(float64(quantity)))
	}

	return area
}

// =============================================================================
// ROWS
// =============================================================================

// Rows returns the sheet, row by row. Cells are strings, ints or float64s;
// every row has Columns cells.
func (r *Report) Rows() [][]any {
	rows := [][]any{
		pad("University", r.University, blank(10), "Total Vehicle Cost", "", r.Total.Total()),
		pad("Competition Code", r.CompetitionCode),
		pad("Year", fmt.Sprintf("%02d", r.Year%100)),
		pad("Car #", fmt.Sprintf("%03d", r.CarNumber)),
		pad(),
		pad(lo.ToAnySlice(Header)),
	}

	for _, area := range r.Areas {
		for _, line := range area.Lines {
			var page any = ""
			if line.Page > 0 {
				page = line.Page
			}

			rows = append(rows, pad(
				line.Number,
				line.Area,
				line.Base,
				line.Revision,
				line.Assembly,
				line.Component,
				line.Description,
				line.UnitCost,
				line.Quantity,
				breakdownCells(line.Costs),
				line.Total,
				page,
			))
		}

		rows = append(rows, pad("", area.System.Name, blank(3), "Area Total", blank(3),
			breakdownCells(area.Total), area.Total.Total(), ""))
	}

	rows = append(rows, pad("", "Vehicle Total", blank(3), "Total", blank(3),
		breakdownCells(r.Total), r.Total.Total(), ""))

	return rows
}

func breakdownCells(b bom.Breakdown) []any {
	return []any{b.Materials, b.Processes, b.Fasteners, b.Toolings}
}

func blank(n int) []any {
	return lo.ToAnySlice(make([]string, n))
}

// pad flattens the values (a []any is spliced in place) and fills the row
// with empty strings up to Columns cells.
func pad(values ...any) []any {
	row := make([]any, 0, Columns)
	for _, value := range values {
		if cells, ok := value.([]any); ok {
			row = append(row, cells...)
			continue
		}
		row = append(row, value)
	}
	for len(row) < Columns {
		row = append(row, "")
	}
	return row
}
