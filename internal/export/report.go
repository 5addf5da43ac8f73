package export

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/xuri/excelize/v2"
)

// Worksheet names used by ExportReport.
const (
	reportSummarySheet    = "Summary"
	reportSheetsSheet     = "Sheets"
	reportPlacementsSheet = "Placements"
)

// ExportReport writes a spreadsheet describing a layout job: a summary, one
// row per sheet and one row per placed tile.
func ExportReport(path string, result model.LayoutResult) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to report")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, name := range []string{reportSheetsSheet, reportPlacementsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create %s sheet: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	summary := [][]interface{}{
		{"Job", result.JobID},
		{"Profile", result.Profile},
		{"Sheets", len(result.Sheets)},
		{"Tiles Placed", result.TotalPlacements()},
		{"Coverage %", round1(result.TotalEfficiency())},
		{"Skipped Files", len(result.Skipped)},
	}
	for _, path := range result.Skipped {
		summary = append(summary, []interface{}{"Skipped", path})
	}
	if err := writeRows(f, reportSummarySheet, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSummarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return err
	}

	sheets := [][]interface{}{{"Sheet", "Paper", "Width (px)", "Height (px)", "Tiles", "Coverage %", "Output"}}
	placements := [][]interface{}{{"Sheet", "Tile", "X", "Y", "Width", "Height", "Source"}}
	for _, sheet := range result.Sheets {
		sheets = append(sheets, []interface{}{
			sheet.Index,
			sheet.Paper.Name,
			sheet.Paper.Width,
			sheet.Paper.Height,
			len(sheet.Placements),
			round1(sheet.Efficiency()),
			outputName(sheet),
		})
		for _, p := range sheet.Placements {
			placements = append(placements, []interface{}{
				sheet.Index, p.Tile, p.X, p.Y, p.Width, p.Height, p.Source,
			})
		}
	}
	if err := writeRows(f, reportSheetsSheet, sheets); err != nil {
		return err
	}
	if err := writeRows(f, reportPlacementsSheet, placements); err != nil {
		return err
	}
	for _, name := range []string{reportSheetsSheet, reportPlacementsSheet} {
		if err := f.SetCellStyle(name, "A1", "G1", bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func outputName(sheet model.SheetResult) string {
	if sheet.OutputPath == "" {
		return ""
	}
	return filepath.Base(sheet.OutputPath)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
