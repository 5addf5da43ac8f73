package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/DoubleSpace/internal/model"
	"github.com/piwi3910/DoubleSpace/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvOutputDir, EnvInputDir, EnvQuality, EnvFormat, EnvPaper} {
		t.Setenv(k, "")
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("DOUBLESPACE_TEST_INT", "")
	assert.Equal(t, 7, envInt("DOUBLESPACE_TEST_INT", 7))

	t.Setenv("DOUBLESPACE_TEST_INT", "42")
	assert.Equal(t, 42, envInt("DOUBLESPACE_TEST_INT", 7))

	t.Setenv("DOUBLESPACE_TEST_INT", "-3")
	assert.Equal(t, 7, envInt("DOUBLESPACE_TEST_INT", 7))

	t.Setenv("DOUBLESPACE_TEST_INT", "abc")
	assert.Equal(t, 7, envInt("DOUBLESPACE_TEST_INT", 7))
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOutputDir, "/tmp/prints")
	t.Setenv(EnvInputDir, "/tmp/photos")
	t.Setenv(EnvQuality, "75")
	t.Setenv(EnvFormat, "PNG")
	t.Setenv(EnvPaper, "A4")

	cfg := ApplyEnv(model.DefaultAppConfig())
	assert.Equal(t, "/tmp/prints", cfg.OutputDir)
	assert.Equal(t, "/tmp/photos", cfg.InputDir)
	assert.Equal(t, 75, cfg.Quality)
	assert.Equal(t, model.FormatPNG, cfg.Format)
	assert.Equal(t, "A4", cfg.DefaultPaper)
}

func TestApplyEnvKeepsFileValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFormat, "gif")
	t.Setenv(EnvQuality, "500")

	in := model.DefaultAppConfig()
	in.OutputDir = "/srv/out"
	in.Quality = 80

	cfg := ApplyEnv(in)
	assert.Equal(t, "/srv/out", cfg.OutputDir)
	assert.Equal(t, model.FormatJPEG, cfg.Format, "unknown format is ignored")
	assert.Equal(t, 90, cfg.Quality, "out-of-range quality falls back to the default")
}

func TestLoadReadsConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")

	stored := model.DefaultAppConfig()
	stored.OutputDir = "/data/out"
	stored.FilePrefix = "studio"
	require.NoError(t, project.SaveAppConfig(path, stored))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvQuality, "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "/data/out", cfg.App.OutputDir)
	assert.Equal(t, "studio", cfg.App.FilePrefix)
	assert.Equal(t, 60, cfg.App.Quality)
}

func TestLoadInvalidConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	t.Setenv(EnvConfig, path)

	_, err := Load()
	assert.Error(t, err)
}

func TestPaperPrice(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Greater(t, cfg.Prices.PaperPrice("4r"), 0.0)
	assert.Greater(t, cfg.Prices.PaperPrice("Letter"), 0.0)
	assert.Equal(t, 0.0, cfg.Prices.PaperPrice("Panorama"))
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DOUBLESPACE_PAPER=5R\n"), 0644))

	// t.Setenv registers cleanup; unset so godotenv can fill the value.
	require.NoError(t, os.Unsetenv(EnvPaper))
	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "5R", os.Getenv(EnvPaper))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestPathDefault(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, project.DefaultConfigPath(), Path())
}
