package model

import (
	"os"
	"path/filepath"
)

// Output formats understood by the image engine.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// AppConfig holds application-wide preferences and job defaults.
type AppConfig struct {
	OutputDir      string `json:"output_dir"`      // Where sheets are written
	InputDir       string `json:"input_dir"`       // Default batch source directory
	DefaultProfile string `json:"default_profile"` // Profile used when none is given
	DefaultPaper   string `json:"default_paper"`   // Paper override, empty = profile default
	Format         string `json:"format"`          // "jpeg" or "png"
	Quality        int    `json:"quality"`         // JPEG quality 1-100
	Compression    int    `json:"compression"`     // PNG compression level 0-9
	Resolution     int    `json:"resolution"`      // DPI written into output files
	FilePrefix     string `json:"file_prefix"`     // Output file name prefix
}

// DefaultOutputDir is the documented fallback output folder,
// ~/Desktop/doublespace.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Desktop", "doublespace")
}

// DefaultAppConfig returns an AppConfig populated with the defaults of the
// built-in layouts: JPEG at quality 90, 600 DPI.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		OutputDir:      DefaultOutputDir(),
		InputDir:       DefaultOutputDir(),
		DefaultProfile: "2r",
		Format:         FormatJPEG,
		Quality:        90,
		Compression:    9,
		Resolution:     DefaultDPI,
		FilePrefix:     "doublespace_image",
	}
}

// Normalize fills zero values with defaults so partially written config
// files keep working.
func (c AppConfig) Normalize() AppConfig {
	d := DefaultAppConfig()
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.InputDir == "" {
		c.InputDir = d.InputDir
	}
	if c.DefaultProfile == "" {
		c.DefaultProfile = d.DefaultProfile
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.Quality <= 0 || c.Quality > 100 {
		c.Quality = d.Quality
	}
	if c.Compression < 0 || c.Compression > 9 {
		c.Compression = d.Compression
	}
	if c.Resolution <= 0 {
		c.Resolution = d.Resolution
	}
	if c.FilePrefix == "" {
		c.FilePrefix = d.FilePrefix
	}
	return c
}

// Extension returns the output file extension for the configured format.
func (c AppConfig) Extension() string {
	if c.Format == FormatPNG {
		return ".png"
	}
	return ".jpg"
}
