package engine

import (
	"github.com/piwi3910/DoubleSpace/internal/model"
)

// PaperComparison holds the capacity of one paper size for a given tile.
type PaperComparison struct {
	Paper        model.PaperSpec
	Fits         bool
	Reason       string // Why the tile does not fit, when Fits is false
	Columns      int
	Rows         int
	Capacity     int
	SheetsNeeded int
	Efficiency   float64 // Covered percentage of a full sheet
}

// ComparePapers computes capacity and sheet count of each paper for the
// given tile, margins and number of prints. Results keep the paper order.
func ComparePapers(papers []model.PaperSpec, tile model.TileSpec, margins model.Margins, prints int) []PaperComparison {
	results := make([]PaperComparison, 0, len(papers))

	for _, paper := range papers {
		cmp := PaperComparison{Paper: paper}
		packer, err := NewSheetPacker(paper, tile, margins)
		if err != nil {
			cmp.Reason = err.Error()
			results = append(results, cmp)
			continue
		}
		cmp.Fits = true
		cmp.Columns = packer.Columns()
		cmp.Rows = packer.Rows()
		cmp.Capacity = packer.Capacity()
		cmp.SheetsNeeded = SheetsNeeded(prints, cmp.Capacity)
		cmp.Efficiency = float64(cmp.Capacity*tile.Width*tile.Height) / float64(paper.Area()) * 100.0
		results = append(results, cmp)
	}

	return results
}

// BestPaper picks the comparison needing the fewest sheets, breaking ties
// by higher efficiency. It returns false when no paper fits.
func BestPaper(results []PaperComparison) (PaperComparison, bool) {
	var best PaperComparison
	found := false
	for _, r := range results {
		if !r.Fits {
			continue
		}
		if !found ||
			r.SheetsNeeded < best.SheetsNeeded ||
			(r.SheetsNeeded == best.SheetsNeeded && r.Efficiency > best.Efficiency) {
			best = r
			found = true
		}
	}
	return best, found
}
