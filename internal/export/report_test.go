package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	result := buildTestResult()
	result.Skipped = []string{"/in/notes.txt"}
	require.NoError(t, ExportReport(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reportSummarySheet, reportSheetsSheet, reportPlacementsSheet}, f.GetSheetList())

	summary, err := f.GetRows(reportSummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 7)
	assert.Equal(t, []string{"Job", "a1b2c3d4"}, summary[0])
	assert.Equal(t, []string{"Sheets", "2"}, summary[2])
	assert.Equal(t, []string{"Tiles Placed", "3"}, summary[3])
	assert.Equal(t, []string{"Skipped", "/in/notes.txt"}, summary[6])

	sheets, err := f.GetRows(reportSheetsSheet)
	require.NoError(t, err)
	require.Len(t, sheets, 3)
	assert.Equal(t, "Coverage %", sheets[0][5])
	assert.Equal(t, []string{"1", "4R", "1200", "1800", "2", "72.9", "doublespace_image_1_20261018_101500.jpg"}, sheets[1])

	placements, err := f.GetRows(reportPlacementsSheet)
	require.NoError(t, err)
	require.Len(t, placements, 4)
	assert.Equal(t, []string{"1", "2R", "100", "900", "1050", "750", "/in/dog.png"}, placements[2])
	assert.Equal(t, "2", placements[3][0])
}

func TestExportReport_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	assert.Error(t, ExportReport(path, model.LayoutResult{}))
}

func TestExportReport_PlannedSheetHasNoOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	sheet := model.NewSheetResult(model.Paper5R, 1)
	sheet.Placements = []model.Placement{{X: 100, Y: 100, Width: 600, Height: 600, Tile: "2x2"}}
	require.NoError(t, ExportReport(path, model.LayoutResult{Profile: "5r-2x2-1x1", Sheets: []model.SheetResult{sheet}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheetsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[1][4])
	if len(rows[1]) > 6 {
		assert.Empty(t, rows[1][6])
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 72.9, round1(72.9166))
	assert.Equal(t, 50.0, round1(49.96))
}
