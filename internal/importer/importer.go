// Package importer reads paper and tile presets from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/xuri/excelize/v2"
)

// Kind says whether a row describes a paper size or a tile size.
type Kind string

const (
	KindPaper Kind = "paper"
	KindTile  Kind = "tile"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Papers   []model.PaperSpec
	Tiles    []model.TileSpec
	Errors   []string
	Warnings []string
}

// Count returns the number of imported presets.
func (r ImportResult) Count() int {
	return len(r.Papers) + len(r.Tiles)
}

// Inventory returns the imported presets as an inventory.
func (r ImportResult) Inventory() model.Inventory {
	return model.Inventory{Papers: r.Papers, Tiles: r.Tiles}
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label  int
	Width  int
	Height int
	Kind   int
	Unit   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":  {"label", "name", "size", "description", "desc", "preset"},
	"width":  {"width", "w", "x"},
	"height": {"height", "h", "y"},
	"kind":   {"kind", "type", "category"},
	"unit":   {"unit", "units", "uom"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a positional
// mapping (label, width, height, kind, unit) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Kind: -1, Unit: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				var slot *int
				switch role {
				case "label":
					slot = &mapping.Label
				case "width":
					slot = &mapping.Width
				case "height":
					slot = &mapping.Height
				case "kind":
					slot = &mapping.Kind
				case "unit":
					slot = &mapping.Unit
				}
				if *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, Kind: 3, Unit: 4}, false
	}
	return mapping, true
}

// parseKind converts a kind cell. Empty cells use the fallback.
func parseKind(s string, fallback Kind) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return fallback, true
	case "paper", "sheet", "p":
		return KindPaper, true
	case "tile", "photo", "picture", "print", "t":
		return KindTile, true
	default:
		return fallback, false
	}
}

// toPixels converts a length in the given unit to pixels at DefaultDPI.
func toPixels(v float64, unit string) (int, bool) {
	dpi := float64(model.DefaultDPI)
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "px", "pixel", "pixels":
		return int(math.Round(v)), true
	case "mm":
		return int(math.Round(v / 25.4 * dpi)), true
	case "cm":
		return int(math.Round(v / 2.54 * dpi)), true
	case "in", "inch", "inches", "\"":
		return int(math.Round(v * dpi)), true
	default:
		return 0, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

type parsedRow struct {
	kind   Kind
	label  string
	width  int
	height int
}

// parseRow extracts a preset from a row using the given column mapping.
// Returns the preset, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, fallback Kind) (parsedRow, string, string) {
	var warning string

	kind, ok := parseKind(getCell(row, mapping.Kind), fallback)
	if !ok {
		warning = fmt.Sprintf("%s: Unknown kind '%s', defaulting to %s", rowLabel, getCell(row, mapping.Kind), fallback)
	}

	label := getCell(row, mapping.Label)
	if label == "" {
		return parsedRow{}, fmt.Sprintf("%s: Missing name", rowLabel), ""
	}

	unit := getCell(row, mapping.Unit)
	dims := [2]int{}
	for i, col := range []struct {
		name string
		idx  int
	}{{"width", mapping.Width}, {"height", mapping.Height}} {
		raw := getCell(row, col.idx)
		if raw == "" {
			return parsedRow{}, fmt.Sprintf("%s: Missing %s value", rowLabel, col.name), ""
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return parsedRow{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, col.name, raw), ""
		}
		px, ok := toPixels(v, unit)
		if !ok {
			return parsedRow{}, fmt.Sprintf("%s: Unknown unit '%s'", rowLabel, unit), ""
		}
		dims[i] = px
	}

	if dims[0] <= 0 || dims[1] <= 0 {
		return parsedRow{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
	}

	return parsedRow{kind: kind, label: label, width: dims[0], height: dims[1]}, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports presets from a CSV file. Rows without a kind column
// are treated as fallback.
func ImportCSV(path string, fallback Kind) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", fallback, result.Warnings)
}

// ImportCSVFromReader imports presets from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, fallback Kind) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", fallback, nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports presets from the first sheet of an Excel file.
func ImportExcel(path string, fallback Kind) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", fallback, nil)
}

// ImportFile picks the CSV or Excel importer by extension.
func ImportFile(path string, fallback Kind) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, fallback)
	}
	return ImportCSV(path, fallback)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, fallback Kind, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Label == -1 {
			missing = append(missing, "Name")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header: skip it but keep positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		parsed, errMsg, warning := parseRow(row, mapping, rowLabel, fallback)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		switch parsed.kind {
		case KindTile:
			result.Tiles = append(result.Tiles, model.NewTileSpec(parsed.label, parsed.width, parsed.height))
		default:
			result.Papers = append(result.Papers, model.NewPaperSpec(parsed.label, parsed.width, parsed.height))
		}
	}

	return result
}
