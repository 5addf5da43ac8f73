package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/piwi3910/DoubleSpace/internal/model"
)

// Plan lays out a job without touching pixels. Replicate and composition
// profiles produce a single sheet; the first input, if any, is recorded as
// the source. Batch profiles place one tile per input and start a new sheet
// whenever the packer fills up.
func Plan(profile model.LayoutProfile, inputs []string) (model.LayoutResult, error) {
	if err := profile.Validate(); err != nil {
		return model.LayoutResult{}, err
	}

	result := model.LayoutResult{
		JobID:   uuid.New().String()[:8],
		Profile: profile.Name,
	}
	var source string
	if len(inputs) > 0 {
		source = inputs[0]
	}

	switch profile.Mode {
	case model.ModeComposition:
		placements, err := Compose(profile.Paper, *profile.Composition)
		if err != nil {
			return result, err
		}
		sheet := model.NewSheetResult(profile.Paper, 1)
		for _, pl := range placements {
			pl.Source = source
			sheet.Placements = append(sheet.Placements, pl)
		}
		result.Sheets = append(result.Sheets, sheet)

	case model.ModeReplicate:
		packer, err := NewSheetPacker(profile.Paper, profile.Tile, profile.Margins)
		if err != nil {
			return result, err
		}
		sheet := model.NewSheetResult(profile.Paper, 1)
		for {
			pl, ok := packer.Next()
			if !ok {
				break
			}
			pl.Source = source
			sheet.Placements = append(sheet.Placements, pl)
		}
		result.Sheets = append(result.Sheets, sheet)

	case model.ModeBatch:
		packer, err := NewSheetPacker(profile.Paper, profile.Tile, profile.Margins)
		if err != nil {
			return result, err
		}
		var current *model.SheetResult
		for _, in := range inputs {
			if current == nil {
				s := model.NewSheetResult(profile.Paper, packer.SheetIndex())
				current = &s
			}
			pl, _ := packer.Next()
			pl.Source = in
			current.Placements = append(current.Placements, pl)
			if packer.Full() {
				result.Sheets = append(result.Sheets, *current)
				current = nil
				packer.Reset()
			}
		}
		if current != nil {
			result.Sheets = append(result.Sheets, *current)
		}

	default:
		return result, &model.ConfigurationError{Reason: fmt.Sprintf("unknown mode %q", profile.Mode)}
	}
	return result, nil
}

// SheetsNeeded returns how many sheets a batch of n inputs fills at the
// given capacity.
func SheetsNeeded(n, capacity int) int {
	if n <= 0 || capacity <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}
