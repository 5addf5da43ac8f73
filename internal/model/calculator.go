package model

import "math"

// PaperEstimate holds the result of a paper purchasing calculation.
type PaperEstimate struct {
	Prints          int     `json:"prints"`            // Tiles to print
	PerSheet        int     `json:"per_sheet"`         // Sheet capacity
	SheetsNeeded    int     `json:"sheets_needed"`     // ceil(prints / per sheet)
	SheetsWithWaste int     `json:"sheets_with_waste"` // Recommended sheets including waste factor
	WastePercent    float64 `json:"waste_percent"`     // Waste factor applied (e.g., 10 for 10%)
	EmptySlots      int     `json:"empty_slots"`       // Unused slots on the last sheet
	PricePerSheet   float64 `json:"price_per_sheet"`
	EstimatedCost   float64 `json:"estimated_cost"`
}

// CalculatePaperEstimate computes how many sheets to buy to print the given
// number of tiles at perSheet tiles per sheet. wastePercent covers misprints.
func CalculatePaperEstimate(prints, perSheet int, wastePercent, pricePerSheet float64) PaperEstimate {
	est := PaperEstimate{
		Prints:        prints,
		PerSheet:      perSheet,
		WastePercent:  wastePercent,
		PricePerSheet: pricePerSheet,
	}
	if perSheet <= 0 || prints <= 0 {
		return est
	}

	est.SheetsNeeded = (prints + perSheet - 1) / perSheet
	est.EmptySlots = est.SheetsNeeded*perSheet - prints

	wasteFactor := 1.0 + (wastePercent / 100.0)
	// Epsilon keeps 1.1*10 from rounding up to 12.
	est.SheetsWithWaste = int(math.Ceil(float64(est.SheetsNeeded)*wasteFactor - 1e-9))
	if est.SheetsWithWaste < est.SheetsNeeded {
		est.SheetsWithWaste = est.SheetsNeeded
	}

	est.EstimatedCost = float64(est.SheetsWithWaste) * pricePerSheet
	return est
}
