package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"github.com/ginjaninja78/fsae-cost-report/internal/bom"
)

const (
	basepath = "testdata/basepath"
	stem     = "049_McGill University_FSAEM_CR"
)

func labels(systems []*bom.System) []string {
	return lo.Map(systems, func(s *bom.System, _ int) string { return s.Label })
}

func TestLoad(t *testing.T) {
	t.Parallel()

	p := New(basepath, zaptest.NewLogger(t))

	metadata, err := p.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"BR", "TM"}, labels(metadata.Systems))
	assert.Equal(t, stem, metadata.Filename())

	metadata, err = p.Load([]string{"tm", "TM"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TM"}, labels(metadata.Systems))
}

func TestLoadUnknownSystem(t *testing.T) {
	t.Parallel()

	_, err := New(basepath, nil).Load([]string{"TM", "XX"})
	require.ErrorIs(t, err, ErrUnknownSystem)
	assert.Contains(t, err.Error(), "XX")
	assert.Contains(t, err.Error(), "BR, TM")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	result, err := New(basepath, zaptest.NewLogger(t)).Check(nil)
	require.NoError(t, err)
	require.Len(t, result.Systems, 2)

	br, tm := result.Systems[0], result.Systems[1]
	assert.NoError(t, br.Err)
	assert.NoError(t, tm.Err)
	assert.Equal(t, 2, br.System.Len())
	assert.Equal(t, 4, tm.System.Len())
	assert.InDelta(t, 4.0, br.System.Cost(), 1e-9)
	assert.InDelta(t, 36.0, tm.System.Cost(), 1e-9)
	assert.InDelta(t, 40.0, result.Metadata.Cost(), 1e-9)
}

func TestCheckStopsAtFirstFailingSystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(basepath)))
	for _, pn := range []string{"BR-00001-AA", "TM-00001-AA"} {
		require.NoError(t, os.Remove(filepath.Join(dir, pn[:2], "components", pn+".csv")))
	}

	result, err := New(dir, nil).Check(nil)
	require.ErrorIs(t, err, bom.ErrMissingComponent)
	assert.Contains(t, err.Error(), "system BR")
	assert.NotContains(t, err.Error(), "system TM")

	// BR comes first in display order; TM is never read.
	require.Len(t, result.Systems, 1)
	assert.Equal(t, "BR", result.Systems[0].System.Label)
	assert.Error(t, result.Systems[0].Err)

	tm, ok := result.Metadata.System("TM")
	require.True(t, ok)
	assert.Zero(t, tm.Len())
}

func TestReport(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	p := New(basepath, zaptest.NewLogger(t))
	options := DefaultOptions()
	options.OutputDir = outputDir

	result, err := p.Report(nil, options)
	require.NoError(t, err)
	assert.Empty(t, result.Archived)
	assert.Equal(t, []string{
		filepath.Join(outputDir, stem+".tex"),
		filepath.Join(outputDir, stem+".csv"),
		filepath.Join(outputDir, stem+".xlsx"),
	}, result.Outputs)
	for _, output := range result.Outputs {
		assert.FileExists(t, output)
	}

	tex, err := os.ReadFile(result.Outputs[0])
	require.NoError(t, err)
	assert.Contains(t, string(tex), `\chapter{Brake System}`)
	assert.Contains(t, string(tex), `\chapter{Random stuff}`)

	summary, err := os.ReadFile(result.SummaryPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, stem+"_summary.log"), result.SummaryPath)
	assert.Contains(t, string(summary), "Vehicle Total: 40.00")
}

func TestReportArchivesPreviousOutputs(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	p := New(basepath, nil)
	options := Options{OutputDir: outputDir, ArchivePrevious: true}

	_, err := p.Report([]string{"TM"}, options)
	require.NoError(t, err)

	// Page numbers of a compiled report flow into the next eBOM.
	aux := `\newlabel{ct:TM-00001-AA}{{1.1}{14}{cup holder}{section*.2}{}}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, stem+".aux"), []byte(aux), 0o644))

	result, err := p.Report([]string{"TM"}, options)
	require.NoError(t, err)
	require.Len(t, result.Archived, 3)
	for _, archived := range result.Archived {
		assert.FileExists(t, archived)
		assert.True(t, strings.HasPrefix(archived, filepath.Join(outputDir, "archive")), archived)
	}

	file, err := os.Open(filepath.Join(outputDir, stem+".csv"))
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	cup, found := lo.Find(records, func(record []string) bool {
		return len(record) > 2 && record[2] == "00001"
	})
	require.True(t, found)
	assert.Equal(t, "14", cup[14])
}

func TestReportArchivesByDate(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	p := New(basepath, nil)
	options := Options{OutputDir: outputDir, ArchivePrevious: true, ArchiveByDate: true}

	_, err := p.Report([]string{"BR"}, options)
	require.NoError(t, err)

	result, err := p.Report([]string{"BR"}, options)
	require.NoError(t, err)
	require.Len(t, result.Archived, 3)
	for _, archived := range result.Archived {
		rel, err := filepath.Rel(filepath.Join(outputDir, "archive"), archived)
		require.NoError(t, err)
		// YYYY/MM/DD/<file>
		assert.Len(t, strings.Split(rel, string(filepath.Separator)), 4, rel)
	}
}

func TestReportWritesNothingOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(basepath)))
	require.NoError(t, os.Remove(filepath.Join(dir, "BR", "components", "BR-00001-AA.csv")))

	outputDir := filepath.Join(dir, "out")
	_, err := New(dir, nil).Report(nil, Options{OutputDir: outputDir})
	require.Error(t, err)
	assert.NoDirExists(t, outputDir)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.CopyFS(dir, os.DirFS(basepath)))

	workbook := excelize.NewFile()
	require.NoError(t, workbook.SetSheetName("Sheet1", "BR-00002-AA"))
	require.NoError(t, workbook.SetSheetRow("BR-00002-AA", "A1", &[]any{"Part"}))
	_, err := workbook.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, workbook.SaveAs(filepath.Join(dir, "BR", "brakes.xlsx")))
	require.NoError(t, workbook.Close())

	results, err := New(dir, zaptest.NewLogger(t)).Convert([]string{"BR"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{filepath.Join(dir, "BR", "components", "BR-00002-AA.csv")}, results[0].Files)
	assert.Equal(t, []string{"Notes"}, results[0].Skipped)
	assert.FileExists(t, results[0].Files[0])
}
