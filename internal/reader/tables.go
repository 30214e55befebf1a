package reader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/costtable"
	"github.com/ginjaninja78/fsae-cost-report/internal/csvparser"
	"github.com/ginjaninja78/fsae-cost-report/internal/normalize"
	"github.com/ginjaninja78/fsae-cost-report/internal/validation"
)

// =============================================================================
// TABLE SCHEMAS
// =============================================================================
//
// COLUMNS (0-indexed):
//   Materials, Fasteners: id, name, use, unit cost, size1, unit1, size2,
//                         unit2, quantity, subtotal
//   Processes:            id, name, use, unit cost, unit, quantity,
//                         multiplier id, multiplier, subtotal
//   Tooling:              id, name, use, unit cost, unit, quantity, pvf,
//                         (unused), subtotal
//   Parts:                part number, name, unit cost, quantity, subtotal
//

const partsTag = "Parts"

// tableSchema names a cost table and the column of its subtotal.
type tableSchema struct {
	tag         string
	label       string
	subtotalCol int
}

var (
	materialsSchema = tableSchema{tag: "Materials", label: "material", subtotalCol: 9}
	processesSchema = tableSchema{tag: "Processes", label: "process", subtotalCol: 8}
	fastenersSchema = tableSchema{tag: "Fasteners", label: "fastener", subtotalCol: 9}
	toolingsSchema  = tableSchema{tag: "Tooling", label: "tooling", subtotalCol: 8}
)

// readCostTables fills the four cost tables of the component. A table whose
// tag is absent is empty.
func (s *session) readCostTables(component *bom.Component, sheet *csvparser.Sheet) error {
	var err error

	if component.Materials, err = readTable(sheet, materialsSchema, decodeMaterial); err != nil {
		return err
	}
	if component.Processes, err = readTable(sheet, processesSchema, decodeProcess); err != nil {
		return err
	}
	if component.Fasteners, err = readTable(sheet, fastenersSchema, decodeFastener); err != nil {
		return err
	}
	if component.Toolings, err = readTable(sheet, toolingsSchema, decodeTooling); err != nil {
		return err
	}
	return nil
}

// readTable decodes every row of a cost table and checks each declared
// subtotal. When the terminator row carries a number in the subtotal column
// it is checked as the table total.
func readTable[T costtable.Item](sheet *csvparser.Sheet, schema tableSchema, decode func(rowDecoder) (T, error)) ([]T, error) {
	table, ok := sheet.Table(schema.tag)
	if !ok {
		return nil, nil
	}

	items := make([]T, 0, len(table.Rows))
	for _, row := range table.Rows {
		d := rowDecoder{file: sheet.SourceFile, row: row}

		item, err := decode(d)
		if err != nil {
			return nil, err
		}

		declared, err := d.number(schema.subtotalCol, "subtotal")
		if err != nil {
			return nil, err
		}
		loc := validation.Location{File: sheet.SourceFile, Row: row.Line}
		if err := validation.CheckAmount(loc, schema.label+" subtotal", item.Subtotal(), declared); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if table.Terminator != nil {
		if declared, err := parseNumber(table.Terminator.Cell(schema.subtotalCol)); err == nil {
			loc := validation.Location{File: sheet.SourceFile, Row: table.Terminator.Line}
			if err := validation.CheckAmount(loc, schema.label+" total", costtable.Sum(items), declared); err != nil {
				return nil, err
			}
		}
	}

	return items, nil
}

// =============================================================================
// ROW DECODERS
// =============================================================================

func decodeLine(d rowDecoder, quantityCol int) (costtable.Line, error) {
	id, err := d.integer(0, "id")
	if err != nil {
		return costtable.Line{}, err
	}
	unitCost, err := d.nonNegative(3, "unit cost")
	if err != nil {
		return costtable.Line{}, err
	}
	quantity, err := d.nonNegative(quantityCol, "quantity")
	if err != nil {
		return costtable.Line{}, err
	}

	return costtable.Line{
		ID:       id,
		Name:     d.text(1),
		Use:      d.text(2),
		UnitCost: unitCost,
		Quantity: quantity,
	}, nil
}

// sizes decodes the two optional (value, unit) pairs at columns 4 to 7. A
// value is only read when its unit is given.
func sizes(d rowDecoder) (*costtable.Size, *costtable.Size, error) {
	var result [2]*costtable.Size
	for i := range result {
		valueCol, unitCol := 4+2*i, 5+2*i

		unit := d.text(unitCol)
		if unit == "" {
			continue
		}
		value, err := d.number(valueCol, fmt.Sprintf("size %d", i+1))
		if err != nil {
			return nil, nil, err
		}
		result[i] = &costtable.Size{Value: value, Unit: unit}
	}
	return result[0], result[1], nil
}

func decodeMaterial(d rowDecoder) (costtable.Material, error) {
	line, err := decodeLine(d, 8)
	if err != nil {
		return costtable.Material{}, err
	}
	size1, size2, err := sizes(d)
	if err != nil {
		return costtable.Material{}, err
	}
	return costtable.Material{Line: line, Size1: size1, Size2: size2}, nil
}

func decodeFastener(d rowDecoder) (costtable.Fastener, error) {
	line, err := decodeLine(d, 8)
	if err != nil {
		return costtable.Fastener{}, err
	}
	size1, size2, err := sizes(d)
	if err != nil {
		return costtable.Fastener{}, err
	}
	return costtable.Fastener{Line: line, Size1: size1, Size2: size2}, nil
}

func decodeProcess(d rowDecoder) (costtable.Process, error) {
	line, err := decodeLine(d, 5)
	if err != nil {
		return costtable.Process{}, err
	}

	process := costtable.Process{Line: line, Unit: d.text(4)}
	if d.text(6) == "" {
		return process, nil
	}

	multiplierID, err := d.integer(6, "multiplier id")
	if err != nil {
		return costtable.Process{}, err
	}
	multiplier, err := d.nonNegative(7, "multiplier")
	if err != nil {
		return costtable.Process{}, err
	}
	process.MultiplierID = &multiplierID
	process.Multiplier = multiplier
	return process, nil
}

func decodeTooling(d rowDecoder) (costtable.Tooling, error) {
	line, err := decodeLine(d, 5)
	if err != nil {
		return costtable.Tooling{}, err
	}
	pvf, err := d.number(6, "pvf")
	if err != nil {
		return costtable.Tooling{}, err
	}
	if pvf <= 0 {
		return costtable.Tooling{}, d.wrap(bom.ErrInvalidRecord, "pvf must be positive, got %v", pvf)
	}
	return costtable.Tooling{Line: line, Unit: d.text(4), PVF: pvf}, nil
}

// =============================================================================
// CELL DECODING
// =============================================================================

// rowDecoder reads typed cells from a table row and reports failures with
// their file and line.
type rowDecoder struct {
	file string
	row  csvparser.Row
}

// text returns the cleaned text of a cell.
func (d rowDecoder) text(col int) string {
	return normalize.Cell(d.row.Cell(col))
}

// number parses a cell as a float.
func (d rowDecoder) number(col int, field string) (float64, error) {
	raw := d.row.Cell(col)
	value, err := parseNumber(raw)
	if err != nil {
		return 0, d.wrap(bom.ErrInvalidRecord, "%s %q is not a number", field, raw)
	}
	return value, nil
}

// nonNegative parses a cell as a float that must not be negative.
func (d rowDecoder) nonNegative(col int, field string) (float64, error) {
	value, err := d.number(col, field)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, d.wrap(bom.ErrInvalidRecord, "%s must not be negative, got %v", field, value)
	}
	return value, nil
}

// integer parses a cell as a non-negative whole number. Spreadsheet exports
// sometimes write integers as "2.0", which is accepted.
func (d rowDecoder) integer(col int, field string) (int, error) {
	value, err := d.nonNegative(col, field)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || value > math.MaxInt32 {
		return 0, d.wrap(bom.ErrInvalidRecord, "%s must be a whole number, got %v", field, value)
	}
	return int(value), nil
}

// wrap builds an error located at the row.
func (d rowDecoder) wrap(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s, row %d: %s", err, d.file, d.row.Line, fmt.Sprintf(format, args...))
}

func parseNumber(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}
