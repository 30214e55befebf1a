package reader

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/csvparser"
	"github.com/ginjaninja78/fsae-cost-report/internal/normalize"
	"github.com/ginjaninja78/fsae-cost-report/internal/partnumber"
	"github.com/ginjaninja78/fsae-cost-report/internal/validation"
	"github.com/ginjaninja78/fsae-cost-report/pkg/utils"
)

// =============================================================================
// HEADER LAYOUT
// =============================================================================

// headerLayout gives the 0-indexed rows of the identity fields. Every field
// sits in column 1.
type headerLayout struct {
	name     int
	base     int
	revision int
	details  int
}

var (
	partHeader     = headerLayout{name: 3, base: 4, revision: 5, details: 6}
	assemblyHeader = headerLayout{name: 2, base: 3, revision: 4, details: 5}
)

const (
	headerCol = 1

	// The declared quantity of an assembly sits at row 1, column 7.
	assemblyQuantityRow = 1
	assemblyQuantityCol = 7
)

// =============================================================================
// PARTS
// =============================================================================

func (s *session) readPart(filePath string) (*bom.Component, error) {
	s.logger.Debug("reading part", zap.String("file", filePath))

	sheet, err := csvparser.Read(filePath)
	if err != nil {
		return nil, err
	}

	part, err := s.newComponent(sheet, partHeader)
	if err != nil {
		return nil, err
	}
	if part.IsAssembly() {
		return nil, fmt.Errorf("%w: %s is an assembly but was read as a part", bom.ErrUnknownPartNumberShape, part.PartNumber())
	}
	if err := s.readCostTables(part, sheet); err != nil {
		return nil, err
	}

	s.attach(part)
	if err := s.system.AddComponent(part); err != nil {
		return nil, err
	}
	return part, nil
}

// =============================================================================
// ASSEMBLIES
// =============================================================================

func (s *session) readAssembly(filePath string) (*bom.Component, error) {
	s.logger.Debug("reading assembly", zap.String("file", filePath))

	sheet, err := csvparser.Read(filePath)
	if err != nil {
		return nil, err
	}

	assembly, err := s.newComponent(sheet, assemblyHeader)
	if err != nil {
		return nil, err
	}
	if !assembly.IsAssembly() {
		return nil, fmt.Errorf("%w: %s is a part but was read as an assembly", bom.ErrUnknownPartNumberShape, assembly.PartNumber())
	}

	quantity, err := declaredQuantity(sheet)
	if err != nil {
		return nil, err
	}
	assembly.SetStoredQuantity(quantity)

	if err := s.readCostTables(assembly, sheet); err != nil {
		return nil, err
	}

	pn := assembly.PartNumber()
	s.inProgress[pn] = true
	err = s.readChildren(assembly, sheet)
	delete(s.inProgress, pn)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", pn, err)
	}

	s.attach(assembly)
	if err := s.system.AddComponent(assembly); err != nil {
		return nil, err
	}
	return assembly, nil
}

// readChildren resolves every row of the Parts table, reading child files
// from disk when they are not in the system yet, and cross-checks the quoted
// costs against the computed ones.
func (s *session) readChildren(assembly *bom.Component, sheet *csvparser.Sheet) error {
	table, ok := sheet.Table(partsTag)
	if !ok {
		return nil
	}

	dir := filepath.Dir(assembly.FilePath)
	for _, row := range table.Rows {
		d := rowDecoder{file: sheet.SourceFile, row: row}

		childPN := d.text(0)
		kind := partnumber.Classify(childPN)
		if kind != partnumber.KindPart && kind != partnumber.KindSubAssembly {
			return d.wrap(bom.ErrUnknownPartNumberShape, "%q cannot be listed as a child", childPN)
		}
		if _, dup := assembly.ChildQuantity(childPN); dup {
			return d.wrap(bom.ErrDuplicateComponent, "%s is listed twice", childPN)
		}

		quotedUnitCost, err := d.nonNegative(2, "unit cost")
		if err != nil {
			return err
		}
		quantity, err := d.integer(3, "quantity")
		if err != nil {
			return err
		}
		quotedSubtotal, err := d.nonNegative(4, "subtotal")
		if err != nil {
			return err
		}

		child, err := s.resolve(dir, childPN, kind)
		if err != nil {
			return err
		}

		if err := assembly.AddChild(child, quantity); err != nil {
			return d.wrap(err, "%s", childPN)
		}

		loc := validation.Location{File: sheet.SourceFile, Row: row.Line}
		unitCost := child.UnitCost()
		if err := validation.CheckAmount(loc, childPN+" unit cost", unitCost, quotedUnitCost); err != nil {
			return err
		}
		if err := validation.CheckAmount(loc, childPN+" subtotal", unitCost*float64(quantity), quotedSubtotal); err != nil {
			return err
		}
	}

	return nil
}

// resolve returns the child already in the system, or reads it from the file
// named after it in dir.
func (s *session) resolve(dir, pn string, kind partnumber.Kind) (*bom.Component, error) {
	if s.inProgress[pn] {
		return nil, fmt.Errorf("%w: %s contains itself", bom.ErrCyclicAssembly, pn)
	}
	if child, err := s.system.Component(pn); err == nil {
		return child, nil
	}

	filePath := filepath.Join(dir, pn+ComponentExt)
	if !utils.FileExists(filePath) {
		return nil, fmt.Errorf("%w: %s (expected %s)", bom.ErrMissingComponent, pn, filePath)
	}

	if kind == partnumber.KindPart {
		return s.readPart(filePath)
	}
	return s.readAssembly(filePath)
}

// =============================================================================
// IDENTITY
// =============================================================================

// newComponent builds a component from the identity header and checks that
// its part number is the file name.
func (s *session) newComponent(sheet *csvparser.Sheet, layout headerLayout) (*bom.Component, error) {
	field := func(row int) string {
		return normalize.Cell(sheet.Cell(row, headerCol))
	}

	component, err := bom.NewComponent(
		sheet.SourceFile,
		s.system.Label,
		field(layout.name),
		field(layout.base),
		field(layout.revision),
		field(layout.details),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sheet.SourceFile, err)
	}

	if want := stem(sheet.SourceFile); component.PartNumber() != want {
		return nil, fmt.Errorf("%w: %s contains %s", bom.ErrFilenameMismatch, sheet.SourceFile, component.PartNumber())
	}
	return component, nil
}

func declaredQuantity(sheet *csvparser.Sheet) (int, error) {
	d := rowDecoder{
		file: sheet.SourceFile,
		row:  csvparser.Row{Line: assemblyQuantityRow + 1},
	}
	if assemblyQuantityRow < len(sheet.Rows) {
		d.row.Cells = sheet.Rows[assemblyQuantityRow]
	}
	return d.integer(assemblyQuantityCol, "assembly quantity")
}

// attach records the drawings and pictures of the component.
func (s *session) attach(component *bom.Component) {
	systemDir := filepath.Dir(filepath.Dir(component.FilePath))
	pn := component.PartNumber()

	component.Drawings = s.findAttachments(filepath.Join(systemDir, DrawingsDir), pn, DrawingExt)
	component.Pictures = s.findAttachments(filepath.Join(systemDir, PicturesDir), pn, PictureExt)
}
