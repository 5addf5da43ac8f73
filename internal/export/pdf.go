// Package export writes layout results to proof sheets, labels, reports and
// cut guides.
package export

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/DoubleSpace/internal/model"
)

// tileColor represents an RGB fill for a placed tile.
type tileColor struct {
	R, G, B int
}

// tileColors are assigned per source so every copy of one picture shares a color.
var tileColors = []tileColor{
	{R: 129, G: 199, B: 132}, // green
	{R: 100, G: 181, B: 246}, // blue
	{R: 255, G: 183, B: 77},  // orange
	{R: 186, G: 104, B: 200}, // purple
	{R: 77, G: 208, B: 225},  // cyan
	{R: 229, G: 115, B: 115}, // red
	{R: 255, G: 241, B: 118}, // yellow
	{R: 161, G: 136, B: 127}, // brown
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 10.0
	legendHeight = 30.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// pxToInch converts sheet pixels to inches at DefaultDPI.
func pxToInch(px int) float64 {
	return float64(px) / float64(model.DefaultDPI)
}

// ExportProofPDF renders every sheet of a layout as a scaled proof page,
// followed by a summary page. Proofs show where each tile lands without
// embedding the pictures.
func ExportProofPDF(path string, result model.LayoutResult) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(fmt.Sprintf("DoubleSpace proof %s", result.JobID), false)

	colors := sourceColors(result)
	for _, sheet := range result.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, colors)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// sourceColors assigns a color index to every distinct source in order of
// first appearance.
func sourceColors(result model.LayoutResult) map[string]int {
	colors := map[string]int{}
	for _, sheet := range result.Sheets {
		for _, src := range sheet.Sources() {
			if _, ok := colors[src]; !ok {
				colors[src] = len(colors)
			}
		}
	}
	return colors
}

// renderSheetPage draws a single sheet on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetResult, colors map[string]int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%.1f x %.1f in)", sheet.Index, sheet.Paper.Name,
		pxToInch(sheet.Paper.Width), pxToInch(sheet.Paper.Height))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tiles: %d | Coverage: %.1f%% | %d x %d px",
		len(sheet.Placements), sheet.Efficiency(), sheet.Paper.Width, sheet.Paper.Height)
	if sheet.OutputPath != "" {
		stats += " | " + filepath.Base(sheet.OutputPath)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/float64(sheet.Paper.Width), drawHeight/float64(sheet.Paper.Height))

	canvasW := float64(sheet.Paper.Width) * scale
	canvasH := float64(sheet.Paper.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Paper
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sheet.Placements {
		col := tileColors[colorIndex(colors, p.Source, i)%len(tileColors)]
		pw := float64(p.Width) * scale
		ph := float64(p.Height) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 12 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			text := p.Tile
			if textW := pdf.GetStringWidth(text); textW < pw-2 {
				pdf.SetXY(px+(pw-textW)/2, py+ph/2-2)
				pdf.CellFormat(textW, 4, text, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet.Paper, offsetX, offsetY, canvasW, canvasH)
	drawSourceLegend(pdf, sheet, colors, offsetY+canvasH+6)
}

func colorIndex(colors map[string]int, source string, fallback int) int {
	if idx, ok := colors[source]; ok {
		return idx
	}
	return fallback
}

// drawDimensionAnnotations adds width and height labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, paper model.PaperSpec, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d px", paper.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d px", paper.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawSourceLegend lists the pictures placed on the sheet with their colors.
func drawSourceLegend(pdf *fpdf.Fpdf, sheet model.SheetResult, colors map[string]int, startY float64) {
	sources := sheet.Sources()
	if len(sources) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pictures:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 20
	maxX := pageWidth - marginRight

	for i, src := range sources {
		col := tileColors[colorIndex(colors, src, i)%len(tileColors)]
		label := filepath.Base(src)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.LayoutResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Job", result.JobID},
		{"Profile", result.Profile},
		{"Sheets", fmt.Sprintf("%d", len(result.Sheets))},
		{"Tiles Placed", fmt.Sprintf("%d", result.TotalPlacements())},
		{"Overall Coverage", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Skipped Files", fmt.Sprintf("%d", len(result.Skipped))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 25, 35, 20, 25, 60}
	headers := []string{"Sheet", "Paper", "Size (px)", "Tiles", "Coverage", "Output"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, sheet := range result.Sheets {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		output := "-"
		if sheet.OutputPath != "" {
			output = filepath.Base(sheet.OutputPath)
		}
		rowData := []string{
			fmt.Sprintf("%d", sheet.Index),
			sheet.Paper.Name,
			fmt.Sprintf("%d x %d", sheet.Paper.Width, sheet.Paper.Height),
			fmt.Sprintf("%d", len(sheet.Placements)),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
			output,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.Skipped) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(180, 7, "Skipped Files", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, path := range result.Skipped {
			if y > pageHeight-marginBottom {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(170, 5, "- "+filepath.Base(path), "", 0, "L", false, 0, "")
			y += 5
		}
	}
}

// labelFontSize picks a font size that fits the tile rectangle.
func labelFontSize(w, h float64) float64 {
	size := math.Min(w/6, h/3)
	return math.Max(5, math.Min(10, size))
}
