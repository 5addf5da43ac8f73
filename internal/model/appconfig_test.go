package model

import (
	"path/filepath"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.Quality != 90 {
		t.Errorf("expected quality 90, got %d", cfg.Quality)
	}
	if cfg.Resolution != DefaultDPI {
		t.Errorf("expected resolution %d, got %d", DefaultDPI, cfg.Resolution)
	}
	if cfg.Format != FormatJPEG {
		t.Errorf("expected jpeg format, got %s", cfg.Format)
	}
	if cfg.FilePrefix != "doublespace_image" {
		t.Errorf("expected doublespace_image prefix, got %s", cfg.FilePrefix)
	}
	if filepath.Base(cfg.OutputDir) != "doublespace" {
		t.Errorf("expected output dir to end in doublespace, got %s", cfg.OutputDir)
	}
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := AppConfig{OutputDir: "/tmp/out", Quality: 150, Compression: -1}
	n := cfg.Normalize()

	if n.OutputDir != "/tmp/out" {
		t.Errorf("explicit output dir should be kept, got %s", n.OutputDir)
	}
	if n.Quality != 90 {
		t.Errorf("out-of-range quality should fall back to 90, got %d", n.Quality)
	}
	if n.Compression != 9 {
		t.Errorf("out-of-range compression should fall back to 9, got %d", n.Compression)
	}
	if n.DefaultProfile != "2r" {
		t.Errorf("expected default profile 2r, got %s", n.DefaultProfile)
	}
}

func TestExtension(t *testing.T) {
	if ext := (AppConfig{Format: FormatPNG}).Extension(); ext != ".png" {
		t.Errorf("expected .png, got %s", ext)
	}
	if ext := (AppConfig{Format: FormatJPEG}).Extension(); ext != ".jpg" {
		t.Errorf("expected .jpg, got %s", ext)
	}
}
