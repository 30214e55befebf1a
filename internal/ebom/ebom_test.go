package ebom

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
	"github.com/ginjaninja78/fsae-cost-report/internal/costtable"
	"github.com/ginjaninja78/fsae-cost-report/internal/partnumber"
)

func newComponent(t *testing.T, pn, name string, material float64) *bom.Component {
	t.Helper()

	parsed, err := partnumber.Parse(pn)
	require.NoError(t, err)

	c, err := bom.NewComponent(pn+".csv", parsed.SystemLabel, name, parsed.Base, parsed.Revision, "")
	require.NoError(t, err)
	c.Materials = []costtable.Material{{Line: costtable.Line{Name: "Steel", UnitCost: material, Quantity: 1}}}
	return c
}

// newMetadata builds one system:
//
//	TM-A1000-AA (1) -> 2 × TM-A0001-AA -> 2 × TM-00001-AA
//	TM-A0002-AA (1) -> 3 × TM-00001-AA
func newMetadata(t *testing.T) *bom.Metadata {
	t.Helper()

	system, err := bom.NewSystem(1, "TM", "Random stuff", bom.RGB{R: 255, G: 128})
	require.NoError(t, err)

	top := newComponent(t, "TM-A1000-AA", "trolley", 1)
	pushBar := newComponent(t, "TM-A0001-AA", "push bar", 2)
	cart := newComponent(t, "TM-A0002-AA", "cart", 3)
	cup := newComponent(t, "TM-00001-AA", "cup holder", 4)
	cup.Details = "holds a cup"

	top.SetStoredQuantity(1)
	cart.SetStoredQuantity(1)
	require.NoError(t, pushBar.AddChild(cup, 2))
	require.NoError(t, top.AddChild(pushBar, 2))
	require.NoError(t, cart.AddChild(cup, 3))
	for _, c := range []*bom.Component{cup, pushBar, top, cart} {
		require.NoError(t, system.AddComponent(c))
	}

	return &bom.Metadata{
		Year:              2011,
		CarNumber:         49,
		University:        "McGill University",
		CompetitionAbbrev: "FSAEM",
		Systems:           []*bom.System{system},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	report := Build(newMetadata(t), map[string]int{"TM-00001-AA": 14})

	require.Len(t, report.Areas, 1)
	lines := report.Areas[0].Lines
	require.Len(t, lines, 4)

	assert.Equal(t, []string{"A1000", "A0001", "00001", "A0002"}, []string{
		lines[0].Base, lines[1].Base, lines[2].Base, lines[3].Base,
	})
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, 4, lines[3].Number)

	cup := lines[2]
	assert.Equal(t, "Random stuff", cup.Area)
	assert.Equal(t, "Cup holder", cup.Component)
	assert.Equal(t, "Holds a cup", cup.Description)
	assert.Equal(t, "Cart & Push bar", cup.Assembly)
	assert.Equal(t, 7, cup.Quantity)
	assert.InDelta(t, 4.0, cup.UnitCost, 1e-9)
	assert.InDelta(t, 28.0, cup.Total, 1e-9)
	assert.Equal(t, 14, cup.Page)

	assert.Equal(t, "Trolley", lines[1].Assembly)
	assert.Empty(t, lines[0].Assembly)
	assert.Zero(t, lines[0].Page)

	assert.InDelta(t, 36.0, report.Areas[0].Total.Materials, 1e-9)
	assert.InDelta(t, 36.0, report.Total.Total(), 1e-9)
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := Build(newMetadata(t), nil).Rows()
	require.Len(t, rows, HeaderRow+4+2)
	for _, row := range rows {
		assert.Len(t, row, Columns)
	}

	assert.Equal(t, "University", rows[0][0])
	assert.Equal(t, "Total Vehicle Cost", rows[0][12])
	assert.InDelta(t, 36.0, rows[0][14], 1e-9)
	assert.Equal(t, "11", rows[2][1])
	assert.Equal(t, "049", rows[3][1])
	assert.Equal(t, "Line Num.", rows[HeaderRow-1][0])

	area := rows[len(rows)-2]
	assert.Equal(t, "Random stuff", area[1])
	assert.Equal(t, "Area Total", area[5])
	assert.InDelta(t, 36.0, area[13], 1e-9)

	vehicle := rows[len(rows)-1]
	assert.Equal(t, "Vehicle Total", vehicle[1])
	assert.Equal(t, "Total", vehicle[5])
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Build(newMetadata(t), map[string]int{"TM-00001-AA": 14})))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 12)

	assert.Equal(t, "36", records[0][14])
	assert.Equal(t, []string{
		"3", "Random stuff", "00001", "AA", "Cart & Push bar", "Cup holder", "Holds a cup",
		"4", "7", "4", "0", "0", "0", "28", "14",
	}, records[HeaderRow+2])
}

func TestFormatCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.8333", formatCell(5.0/6.0))
	assert.Equal(t, "12.1", formatCell(12.1))
	assert.Equal(t, "7", formatCell(7))
	assert.Equal(t, "", formatCell(""))
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	workbook := filepath.Join(t.TempDir(), "049_ebom.xlsx")
	require.NoError(t, WriteXLSX(workbook, Build(newMetadata(t), nil)))

	f, err := excelize.OpenFile(workbook)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{BOMSheet, SummarySheet}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}
	value, err := f.GetCellValue(BOMSheet, "A6", raw)
	require.NoError(t, err)
	assert.Equal(t, "Line Num.", value)

	value, err = f.GetCellValue(BOMSheet, "N9", raw)
	require.NoError(t, err)
	assert.Equal(t, "28", value)

	value, err = f.GetCellValue(SummarySheet, "A2", raw)
	require.NoError(t, err)
	assert.Equal(t, "Random stuff", value)

	value, err = f.GetCellValue(SummarySheet, "A3", raw)
	require.NoError(t, err)
	assert.Equal(t, "Total Vehicle", value)

	value, err = f.GetCellValue(SummarySheet, "F2", raw)
	require.NoError(t, err)
	assert.Equal(t, "36", value)

	styleID, err := f.GetCellStyle(SummarySheet, "F2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, moneyFormat, *style.CustomNumFmt)

	archive, err := zip.OpenReader(workbook)
	require.NoError(t, err)
	defer archive.Close()
	charts := 0
	for _, file := range archive.File {
		if ok, _ := path.Match("xl/charts/chart*.xml", file.Name); ok {
			charts++
		}
	}
	assert.Equal(t, 1, charts)
}

func TestReadPageRefs(t *testing.T) {
	t.Parallel()

	auxPath := filepath.Join(t.TempDir(), "report.aux")
	aux := `\relax
\newlabel{ct:TM-00001-AA}{{A.2.3}{14}{Cup holder (TM-00001-AA)}{subsection.A.2.3}{}}
\newlabel{ct:TM-00001-AA}{{A.2.3}{15}{Cup holder (TM-00001-AA)}{subsection.A.2.3}{}}
\newlabel{ct:TM-A1000-AA}{{A.2.1}{12}{Trolley (TM-A1000-AA)}{subsection.A.2.1}{}}
\newlabel{dwg:TM-00001-AA-0}{{1}{30}}
`
	require.NoError(t, os.WriteFile(auxPath, []byte(aux), 0o644))

	pages, err := ReadPageRefs(auxPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"TM-00001-AA": 14, "TM-A1000-AA": 12}, pages)

	pages, err = ReadPageRefs(filepath.Join(t.TempDir(), "missing.aux"))
	require.NoError(t, err)
	assert.Empty(t, pages)
}
