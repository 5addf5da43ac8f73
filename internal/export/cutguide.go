package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names written by ExportCutGuide.
const (
	LayerSheet = "SHEET"
	LayerTiles = "TILES"
	LayerCuts  = "CUTS"
)

// pxToMM converts sheet pixels to millimetres at DefaultDPI.
func pxToMM(px int) float64 {
	return float64(px) * 25.4 / float64(model.DefaultDPI)
}

// CutLines returns the x and y coordinates (in pixels) of tile edges that can
// be cut edge to edge across the sheet without passing through any tile.
func CutLines(sheet model.SheetResult) (xs, ys []int) {
	xSet := map[int]bool{}
	ySet := map[int]bool{}
	for _, p := range sheet.Placements {
		xSet[p.X] = true
		xSet[p.Right()] = true
		ySet[p.Y] = true
		ySet[p.Bottom()] = true
	}

	for x := range xSet {
		if x <= 0 || x >= sheet.Paper.Width {
			continue
		}
		clear := true
		for _, p := range sheet.Placements {
			if x > p.X && x < p.Right() {
				clear = false
				break
			}
		}
		if clear {
			xs = append(xs, x)
		}
	}
	for y := range ySet {
		if y <= 0 || y >= sheet.Paper.Height {
			continue
		}
		clear := true
		for _, p := range sheet.Placements {
			if y > p.Y && y < p.Bottom() {
				clear = false
				break
			}
		}
		if clear {
			ys = append(ys, y)
		}
	}
	sort.Ints(xs)
	sort.Ints(ys)
	return xs, ys
}

// ExportCutGuide writes a DXF drawing of one sheet in millimetres with the
// paper outline, every tile rectangle and the straight cuts that separate
// the tiles. The drawing uses a bottom-left origin.
func ExportCutGuide(path string, sheet model.SheetResult) error {
	if sheet.Paper.Width <= 0 || sheet.Paper.Height <= 0 {
		return fmt.Errorf("sheet %d has no paper size", sheet.Index)
	}

	d := dxf.NewDrawing()
	h := sheet.Paper.Height
	flip := func(y int) float64 { return pxToMM(h - y) }

	rect := func(x, y, w, hh int) error {
		x1, x2 := pxToMM(x), pxToMM(x+w)
		y1, y2 := flip(y), flip(y+hh)
		edges := [][4]float64{
			{x1, y1, x2, y1},
			{x2, y1, x2, y2},
			{x2, y2, x1, y2},
			{x1, y2, x1, y1},
		}
		for _, e := range edges {
			if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := d.AddLayer(LayerSheet, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add sheet layer: %w", err)
	}
	if err := rect(0, 0, sheet.Paper.Width, sheet.Paper.Height); err != nil {
		return fmt.Errorf("draw sheet outline: %w", err)
	}

	if _, err := d.AddLayer(LayerTiles, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add tile layer: %w", err)
	}
	for _, p := range sheet.Placements {
		if err := rect(p.X, p.Y, p.Width, p.Height); err != nil {
			return fmt.Errorf("draw tile at (%d, %d): %w", p.X, p.Y, err)
		}
	}

	if _, err := d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add cut layer: %w", err)
	}
	xs, ys := CutLines(sheet)
	for _, x := range xs {
		if _, err := d.Line(pxToMM(x), flip(0), 0, pxToMM(x), flip(h), 0); err != nil {
			return fmt.Errorf("draw cut x=%d: %w", x, err)
		}
	}
	for _, y := range ys {
		if _, err := d.Line(0, flip(y), 0, pxToMM(sheet.Paper.Width), flip(y), 0); err != nil {
			return fmt.Errorf("draw cut y=%d: %w", y, err)
		}
	}

	return d.SaveAs(path)
}

// ExportCutGuides writes one cut guide per sheet. A single-sheet result is
// written to path itself; otherwise the sheet index is appended to the file
// name (guide.dxf becomes guide_1.dxf, guide_2.dxf and so on).
func ExportCutGuides(path string, result model.LayoutResult) ([]string, error) {
	if len(result.Sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	var written []string
	for _, sheet := range result.Sheets {
		target := path
		if len(result.Sheets) > 1 {
			ext := filepath.Ext(path)
			target = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), sheet.Index, ext)
		}
		if err := ExportCutGuide(target, sheet); err != nil {
			return written, fmt.Errorf("sheet %d: %w", sheet.Index, err)
		}
		written = append(written, target)
	}
	return written, nil
}
