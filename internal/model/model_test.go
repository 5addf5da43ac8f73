package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want Orientation
	}{
		{"portrait", 600, 800, OrientationPortrait},
		{"landscape", 800, 600, OrientationLandscape},
		{"square", 600, 600, OrientationSquare},
		{"one pixel taller", 599, 600, OrientationPortrait},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.w, tt.h))
		})
	}
}

func TestOrientationString(t *testing.T) {
	assert.Equal(t, "Portrait", OrientationPortrait.String())
	assert.Equal(t, "Landscape", OrientationLandscape.String())
	assert.Equal(t, "Square", OrientationSquare.String())
}

func TestLookupPaper(t *testing.T) {
	p, err := LookupPaper("letter")
	require.NoError(t, err)
	assert.Equal(t, 2550, p.Width)
	assert.Equal(t, 3300, p.Height)

	p, err = LookupPaper(" 4r ")
	require.NoError(t, err)
	assert.Equal(t, Paper4R, p)

	_, err = LookupPaper("A3")
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr), "unknown paper should be a ConfigurationError")
}

func TestLookupTile(t *testing.T) {
	tile, err := LookupTile("2R")
	require.NoError(t, err)
	assert.Equal(t, 1050, tile.Width)
	assert.Equal(t, 750, tile.Height)
	assert.Equal(t, OrientationLandscape, tile.Orientation())

	_, err = LookupTile("3x3")
	assert.Error(t, err)
}

func TestPaperNames(t *testing.T) {
	assert.Equal(t, []string{"4R", "5R", "A4", "Letter"}, PaperNames())
}

func TestPlacementOverlaps(t *testing.T) {
	a := Placement{X: 100, Y: 100, Width: 450, Height: 450}
	b := Placement{X: 600, Y: 100, Width: 450, Height: 450}
	c := Placement{X: 500, Y: 500, Width: 100, Height: 100}
	touching := Placement{X: 550, Y: 100, Width: 10, Height: 10}

	assert.False(t, a.Overlaps(b))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(a))
	assert.False(t, a.Overlaps(touching), "shared edge is not an overlap")
}

func TestPlacementWithin(t *testing.T) {
	p := Placement{X: 100, Y: 100, Width: 1050, Height: 750}
	assert.True(t, p.Within(1200, 1800, 50))
	assert.False(t, p.Within(1200, 1800, 51))
	assert.False(t, Placement{X: -1, Y: 0, Width: 10, Height: 10}.Within(100, 100, 0))
}

func TestSheetResultEfficiency(t *testing.T) {
	sr := NewSheetResult(Paper4R, 1)
	sr.Placements = []Placement{
		{X: 0, Y: 0, Width: 600, Height: 900},
		{X: 600, Y: 900, Width: 600, Height: 900},
	}
	assert.Equal(t, 1080000, sr.UsedArea())
	assert.Equal(t, 2160000, sr.TotalArea())
	assert.InDelta(t, 50.0, sr.Efficiency(), 0.001)
	assert.NotEmpty(t, sr.ID)

	empty := SheetResult{}
	assert.Equal(t, 0.0, empty.Efficiency())
}

func TestSheetResultSources(t *testing.T) {
	sr := SheetResult{Placements: []Placement{
		{Source: "a.jpg"}, {Source: "b.jpg"}, {Source: "a.jpg"}, {},
	}}
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, sr.Sources())
}

func TestLayoutResultTotals(t *testing.T) {
	lr := LayoutResult{Sheets: []SheetResult{
		{Paper: Paper4R, Placements: []Placement{{Width: 1200, Height: 1800}}},
		{Paper: Paper4R},
	}}
	assert.Equal(t, 1, lr.TotalPlacements())
	assert.InDelta(t, 50.0, lr.TotalEfficiency(), 0.001)
	assert.Equal(t, 0.0, LayoutResult{}.TotalEfficiency())
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk full")

	enc := &EncodeError{Path: "/out/a.jpg", Err: cause}
	assert.ErrorIs(t, enc, cause)
	assert.Contains(t, enc.Error(), "/out/a.jpg")

	dec := &DecodeError{Path: "notes.txt", Err: cause}
	assert.ErrorIs(t, dec, cause)

	cfg := &ConfigurationError{Reason: "tile too large", Err: cause}
	assert.ErrorIs(t, cfg, cause)
	assert.Contains(t, cfg.Error(), "tile too large")

	shape := &ImageShapeError{Width: 599, Height: 599, Reason: "too small"}
	assert.Contains(t, shape.Error(), "599x599")
}
