package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultDPI is the resolution every built-in paper and tile size is expressed in.
const DefaultDPI = 600

// Orientation classifies a source image by its aspect.
type Orientation int

const (
	OrientationSquare    Orientation = iota // Width equals height
	OrientationPortrait                     // Taller than wide
	OrientationLandscape                    // Wider than tall
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "Portrait"
	case OrientationLandscape:
		return "Landscape"
	default:
		return "Square"
	}
}

// Classify returns the orientation of an image with the given dimensions.
func Classify(width, height int) Orientation {
	switch {
	case height > width:
		return OrientationPortrait
	case height < width:
		return OrientationLandscape
	default:
		return OrientationSquare
	}
}

// PaperSpec is a printable sheet size in pixels at DefaultDPI.
type PaperSpec struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Width  int    `json:"width" yaml:"width"`   // px
	Height int    `json:"height" yaml:"height"` // px
}

func NewPaperSpec(name string, w, h int) PaperSpec {
	return PaperSpec{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
	}
}

// Area returns the sheet area in square pixels.
func (p PaperSpec) Area() int {
	return p.Width * p.Height
}

// TileSpec is the size of one placed copy.
type TileSpec struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Width  int    `json:"width" yaml:"width"`   // px
	Height int    `json:"height" yaml:"height"` // px
}

func NewTileSpec(name string, w, h int) TileSpec {
	return TileSpec{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Width:  w,
		Height: h,
	}
}

// Orientation returns the orientation of the tile itself.
func (t TileSpec) Orientation() Orientation {
	return Classify(t.Width, t.Height)
}

// Margins controls the spacing of a raster layout.
type Margins struct {
	Interval    int `json:"interval" yaml:"interval"`         // Gap between neighbouring tiles
	StartOffset int `json:"start_offset" yaml:"start_offset"` // Inset of the first tile from the top-left corner
	ColumnGap   int `json:"column_gap" yaml:"column_gap"`     // Extra horizontal gap added to each column step
}

// Built-in paper sizes (600 DPI).
var (
	Paper4R     = PaperSpec{ID: "4r", Name: "4R", Width: 1200, Height: 1800}
	Paper5R     = PaperSpec{ID: "5r", Name: "5R", Width: 1500, Height: 2100}
	PaperA4     = PaperSpec{ID: "a4", Name: "A4", Width: 2481, Height: 3507}
	PaperLetter = PaperSpec{ID: "letter", Name: "Letter", Width: 2550, Height: 3300}
)

// Built-in tile sizes (600 DPI).
var (
	Tile1x1        = TileSpec{ID: "1x1", Name: "1x1", Width: 300, Height: 300}
	Tile15x15      = TileSpec{ID: "1.5x1.5", Name: "1.5x1.5", Width: 450, Height: 450}
	Tile2x2        = TileSpec{ID: "2x2", Name: "2x2", Width: 600, Height: 600}
	Tile2R         = TileSpec{ID: "2r", Name: "2R", Width: 1050, Height: 750}
	TilePHPassport = TileSpec{ID: "ph-passport", Name: "PH Passport", Width: 411, Height: 531}
)

// PaperSizes lists the built-in papers in menu order.
var PaperSizes = []PaperSpec{Paper4R, Paper5R, PaperA4, PaperLetter}

// TileSizes lists the built-in tiles in menu order.
var TileSizes = []TileSpec{Tile1x1, Tile15x15, Tile2x2, Tile2R, TilePHPassport}

// LookupPaper finds a built-in paper by name, ignoring case.
func LookupPaper(name string) (PaperSpec, error) {
	for _, p := range PaperSizes {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return PaperSpec{}, &ConfigurationError{Reason: fmt.Sprintf("unknown paper size %q", name)}
}

// LookupTile finds a built-in tile by name, ignoring case.
func LookupTile(name string) (TileSpec, error) {
	for _, t := range TileSizes {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return TileSpec{}, &ConfigurationError{Reason: fmt.Sprintf("unknown tile size %q", name)}
}

// PaperNames returns the names of the built-in papers.
func PaperNames() []string {
	names := make([]string, len(PaperSizes))
	for i, p := range PaperSizes {
		names[i] = p.Name
	}
	return names
}

// Placement is the rectangle one tile copy occupies on a sheet.
type Placement struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tile   string `json:"tile,omitempty"`   // Tile name the copy was cut to
	Source string `json:"source,omitempty"` // Originating file in batch mode
}

// Right returns the exclusive right edge.
func (p Placement) Right() int { return p.X + p.Width }

// Bottom returns the exclusive bottom edge.
func (p Placement) Bottom() int { return p.Y + p.Height }

// Area returns the rectangle's area in square pixels.
func (p Placement) Area() int { return p.Width * p.Height }

// Overlaps reports whether two placements share any interior area.
func (p Placement) Overlaps(o Placement) bool {
	return p.X < o.Right() && o.X < p.Right() && p.Y < o.Bottom() && o.Y < p.Bottom()
}

// Within reports whether the placement lies inside a width x height sheet
// after reserving margin pixels along the right and bottom edges.
func (p Placement) Within(width, height, margin int) bool {
	return p.X >= 0 && p.Y >= 0 && p.Right() <= width-margin && p.Bottom() <= height-margin
}

// SourceImage describes one input file of a batch job.
type SourceImage struct {
	Path        string      `json:"path"`
	Orientation Orientation `json:"orientation"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
}

// NewSourceImage classifies an image of the given size.
func NewSourceImage(path string, w, h int) SourceImage {
	return SourceImage{
		Path:        path,
		Orientation: Classify(w, h),
		Width:       w,
		Height:      h,
	}
}

// SheetResult is one planned or produced print sheet.
type SheetResult struct {
	ID         string      `json:"id"`
	Index      int         `json:"index"` // 1-based position within the job
	Paper      PaperSpec   `json:"paper"`
	Placements []Placement `json:"placements"`
	OutputPath string      `json:"output_path,omitempty"`
}

// NewSheetResult starts an empty sheet.
func NewSheetResult(paper PaperSpec, index int) SheetResult {
	return SheetResult{
		ID:    uuid.New().String()[:8],
		Index: index,
		Paper: paper,
	}
}

// UsedArea returns the total area covered by tiles.
func (sr SheetResult) UsedArea() int {
	var total int
	for _, p := range sr.Placements {
		total += p.Area()
	}
	return total
}

// TotalArea returns the paper area.
func (sr SheetResult) TotalArea() int {
	return sr.Paper.Area()
}

// Efficiency returns the covered percentage of the paper.
func (sr SheetResult) Efficiency() float64 {
	ta := sr.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(sr.UsedArea()) / float64(ta) * 100.0
}

// Sources returns the distinct source files placed on the sheet, in order.
func (sr SheetResult) Sources() []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range sr.Placements {
		if p.Source == "" || seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		out = append(out, p.Source)
	}
	return out
}

// LayoutResult holds every sheet of one job.
type LayoutResult struct {
	JobID   string        `json:"job_id"`
	Profile string        `json:"profile"`
	Sheets  []SheetResult `json:"sheets"`
	Skipped []string      `json:"skipped,omitempty"` // Inputs that could not be decoded
}

// TotalPlacements returns the number of tiles across all sheets.
func (lr LayoutResult) TotalPlacements() int {
	n := 0
	for _, s := range lr.Sheets {
		n += len(s.Placements)
	}
	return n
}

// TotalEfficiency returns overall paper usage percentage.
func (lr LayoutResult) TotalEfficiency() float64 {
	var used, total int
	for _, s := range lr.Sheets {
		used += s.UsedArea()
		total += s.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}
