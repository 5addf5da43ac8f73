package engine

import (
	"fmt"

	"github.com/piwi3910/DoubleSpace/internal/model"
)

// Compose expands a fixed composition into placements. Rows are stacked
// from the origin; each row advances by its tile height plus the row gap,
// and tiles within a row advance by their width plus the row's gap.
func Compose(paper model.PaperSpec, comp model.Composition) ([]model.Placement, error) {
	if len(comp.Rows) == 0 {
		return nil, &model.ConfigurationError{Reason: "composition has no rows"}
	}

	var placements []model.Placement
	y := comp.OriginY
	for i, row := range comp.Rows {
		if row.Count <= 0 || row.Tile.Width <= 0 || row.Tile.Height <= 0 {
			return nil, &model.ConfigurationError{Reason: fmt.Sprintf("composition row %d is empty or has an invalid tile", i+1)}
		}
		x := comp.OriginX
		for j := 0; j < row.Count; j++ {
			pl := model.Placement{
				X:      x,
				Y:      y,
				Width:  row.Tile.Width,
				Height: row.Tile.Height,
				Tile:   row.Tile.Name,
			}
			if !pl.Within(paper.Width, paper.Height, 0) {
				return nil, &model.ConfigurationError{
					Reason: fmt.Sprintf("composition row %d tile %d at (%d, %d) runs off %s (%dx%d)",
						i+1, j+1, x, y, paper.Name, paper.Width, paper.Height),
				}
			}
			placements = append(placements, pl)
			x += row.Tile.Width + row.Gap
		}
		y += row.Tile.Height + comp.RowGap
	}
	return placements, nil
}
