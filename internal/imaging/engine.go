// Package imaging hides pixel work behind the Engine interface. Layout code
// only sees opaque handles and never depends on pixel types.
package imaging

import (
	"image/color"

	"github.com/piwi3910/DoubleSpace/internal/model"
)

// Handle is an opaque reference to an image owned by an Engine. The caller
// must Release every handle it receives, on every exit path.
type Handle interface {
	Width() int
	Height() int
	Release()
}

// EncodeOptions controls how a sheet is written to disk.
type EncodeOptions struct {
	Format      string // model.FormatJPEG or model.FormatPNG
	Quality     int    // JPEG quality, 1-100
	Compression int    // PNG compression, 0-9
}

// OptionsFromConfig derives encode options from the application config.
func OptionsFromConfig(cfg model.AppConfig) EncodeOptions {
	return EncodeOptions{
		Format:      cfg.Format,
		Quality:     cfg.Quality,
		Compression: cfg.Compression,
	}
}

// Engine is the set of image operations a layout job needs.
type Engine interface {
	// Decode loads an image file. Failures are *model.DecodeError.
	Decode(path string) (Handle, error)
	// Encode writes the image with its resolution metadata. Failures are
	// *model.EncodeError.
	Encode(h Handle, path string, opts EncodeOptions) error

	NewCanvas(width, height int) Handle
	Resize(h Handle, width, height int) (Handle, error)
	// Fill scales the image to cover width x height, keeping its aspect
	// ratio, and crops the overflow evenly from both sides.
	Fill(h Handle, width, height int) (Handle, error)
	// Rotate turns the image clockwise by a multiple of 90 degrees.
	Rotate(h Handle, degrees int) (Handle, error)
	Crop(h Handle, x, y, width, height int) (Handle, error)
	// Paste draws src onto dst with its top-left corner at (x, y). The
	// target rectangle is filled with bg first.
	Paste(src, dst Handle, x, y int, bg color.Color) error
	// Flatten composites any transparency onto white.
	Flatten(h Handle) error
	SetResolution(h Handle, dpiX, dpiY int) error

	// ListDirectory returns the regular files in dir sorted by name.
	ListDirectory(dir string) ([]string, error)
}

// White is the sheet background.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
