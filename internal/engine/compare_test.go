package engine

import (
	"testing"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparePapers(t *testing.T) {
	margins := model.Margins{Interval: 50, StartOffset: 100}
	tiny := model.PaperSpec{Name: "tiny", Width: 1000, Height: 1000}
	papers := append([]model.PaperSpec{tiny}, model.PaperSizes...)

	results := ComparePapers(papers, model.Tile2R, margins, 10)
	require.Len(t, results, 5)

	assert.False(t, results[0].Fits)
	assert.NotEmpty(t, results[0].Reason)

	byName := map[string]PaperComparison{}
	for _, r := range results[1:] {
		require.True(t, r.Fits, r.Paper.Name)
		byName[r.Paper.Name] = r
	}
	assert.Equal(t, 2, byName["4R"].Capacity)
	assert.Equal(t, 5, byName["4R"].SheetsNeeded)
	assert.Equal(t, 2, byName["5R"].Capacity)
	assert.Equal(t, 8, byName["A4"].Capacity)
	assert.Equal(t, 2, byName["A4"].Columns)
	assert.Equal(t, 4, byName["A4"].Rows)
	assert.Equal(t, 2, byName["Letter"].SheetsNeeded)

	// 4R: two 1050x750 tiles on 1200x1800.
	assert.InDelta(t, 72.916, byName["4R"].Efficiency, 0.01)
}

func TestBestPaper(t *testing.T) {
	margins := model.Margins{Interval: 50, StartOffset: 100}
	results := ComparePapers(model.PaperSizes, model.Tile2R, margins, 10)

	best, ok := BestPaper(results)
	require.True(t, ok)
	// A4 and Letter both need two sheets; Letter wastes less.
	assert.Equal(t, "Letter", best.Paper.Name)

	_, ok = BestPaper([]PaperComparison{{Fits: false}})
	assert.False(t, ok)
}
