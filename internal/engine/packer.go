// Package engine computes where tiles go on a print sheet. It never touches
// pixels: the layout driver turns its placements into paste operations.
package engine

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/model"
)

// SheetPacker places fixed-size tiles left to right, then top to bottom,
// and reports when the sheet is full. It is not safe for concurrent use.
type SheetPacker struct {
	paper   model.PaperSpec
	tile    model.TileSpec
	margins model.Margins

	x, y   int
	sheet  int
	placed int
	full   bool
}

// NewSheetPacker validates the geometry and returns a packer positioned on
// sheet 1. A tile that cannot fit even once is a ConfigurationError.
func NewSheetPacker(paper model.PaperSpec, tile model.TileSpec, margins model.Margins) (*SheetPacker, error) {
	if paper.Width <= 0 || paper.Height <= 0 {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("invalid paper size %dx%d", paper.Width, paper.Height)}
	}
	if tile.Width <= 0 || tile.Height <= 0 {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("invalid tile size %dx%d", tile.Width, tile.Height)}
	}
	if margins.Interval < 0 || margins.StartOffset < 0 || margins.ColumnGap < 0 {
		return nil, &model.ConfigurationError{Reason: "margins must not be negative"}
	}

	p := &SheetPacker{paper: paper, tile: tile, margins: margins}
	if p.rowExtent() > paper.Width-margins.StartOffset || p.stepY() > paper.Height-margins.StartOffset {
		return nil, &model.ConfigurationError{
			Reason: fmt.Sprintf("tile %s (%dx%d) does not fit on %s (%dx%d) with interval %d and offset %d",
				tile.Name, tile.Width, tile.Height, paper.Name, paper.Width, paper.Height,
				margins.Interval, margins.StartOffset),
		}
	}
	p.sheet = 1
	p.rewind()
	return p, nil
}

func (p *SheetPacker) stepX() int {
	return p.tile.Width + p.margins.Interval + p.margins.ColumnGap
}

// rowExtent is the room the last tile of a row needs. The column gap only
// separates neighbours, so it is not reserved after the final column.
func (p *SheetPacker) rowExtent() int {
	return p.tile.Width + p.margins.Interval
}

func (p *SheetPacker) stepY() int {
	return p.tile.Height + p.margins.Interval
}

func (p *SheetPacker) rewind() {
	p.x = p.margins.StartOffset
	p.y = p.margins.StartOffset
	p.placed = 0
	p.full = false
}

// Reset starts a fresh sheet.
func (p *SheetPacker) Reset() {
	p.sheet++
	p.rewind()
}

// Next returns the placement at the cursor and advances it. The placement
// that fills the sheet is still returned with ok=true; every call after
// that returns ok=false until Reset.
func (p *SheetPacker) Next() (model.Placement, bool) {
	if p.full {
		return model.Placement{}, false
	}

	pl := model.Placement{
		X:      p.x,
		Y:      p.y,
		Width:  p.tile.Width,
		Height: p.tile.Height,
		Tile:   p.tile.Name,
	}
	p.placed++

	p.x += p.stepX()
	if p.x > p.paper.Width-p.rowExtent() {
		p.x = p.margins.StartOffset
		p.y += p.stepY()
		if p.y > p.paper.Height-p.stepY() {
			p.full = true
		}
	}
	return pl, true
}

// Full reports whether the current sheet has no room left.
func (p *SheetPacker) Full() bool { return p.full }

// Placed returns the number of placements on the current sheet.
func (p *SheetPacker) Placed() int { return p.placed }

// SheetIndex returns the 1-based index of the current sheet.
func (p *SheetPacker) SheetIndex() int { return p.sheet }

// Paper returns the sheet size the packer fills.
func (p *SheetPacker) Paper() model.PaperSpec { return p.paper }

// Tile returns the tile size the packer places.
func (p *SheetPacker) Tile() model.TileSpec { return p.tile }

// Columns returns the number of tiles per row: the first one at the start
// offset plus every further step that still leaves room for rowExtent.
func (p *SheetPacker) Columns() int {
	return (p.paper.Width-p.margins.StartOffset-p.rowExtent())/p.stepX() + 1
}

// Rows returns the number of rows per sheet.
func (p *SheetPacker) Rows() int {
	return (p.paper.Height - p.margins.StartOffset) / p.stepY()
}

// Capacity returns the number of placements before the sheet is full.
func (p *SheetPacker) Capacity() int {
	return p.Columns() * p.Rows()
}

// Remaining returns the free slots left on the current sheet.
func (p *SheetPacker) Remaining() int {
	return p.Capacity() - p.placed
}
