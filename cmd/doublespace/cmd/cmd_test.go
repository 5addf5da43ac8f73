package cmd

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/DoubleSpace/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly within one test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with an isolated home directory and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfig, filepath.Join(home, "config.json"))
	for _, k := range []string{config.EnvOutputDir, config.EnvInputDir, config.EnvQuality, config.EnvFormat, config.EnvPaper} {
		t.Setenv(k, "")
	}

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "doublespace dev")
}

func TestPlanBatchCount(t *testing.T) {
	out, err := run(t, "plan", "--profile", "multi-images-2r", "--count", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "3 sheet(s), 5 tile(s)")
}

func TestPlanBatchNeedsInputs(t *testing.T) {
	_, err := run(t, "plan", "--profile", "multi-images-2r")
	assert.Error(t, err)
}

func TestPlanWithPaperAndReport(t *testing.T) {
	report := filepath.Join(t.TempDir(), "plan.xlsx")
	out, err := run(t, "plan", "--profile", "2r", "--paper", "A4", "--report", report)
	require.NoError(t, err)
	assert.Contains(t, out, "1 sheet(s), 8 tile(s)")
	_, err = os.Stat(report)
	assert.NoError(t, err)
}

func TestPlanRejectsUnsupportedPaper(t *testing.T) {
	_, err := run(t, "plan", "--profile", "multi-15x15", "--paper", "A4")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	out, err := run(t, "compare", "--tile", "2R", "--prints", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "<- best")
	assert.Contains(t, out, "Letter")
}

func TestEstimate(t *testing.T) {
	out, err := run(t, "estimate", "--profile", "multi-15x15", "--prints", "13", "--waste", "0", "--price", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Per sheet:      6")
	assert.Contains(t, out, "Sheets needed:  3")
}

func TestProfilesList(t *testing.T) {
	out, err := run(t, "profiles", "list")
	require.NoError(t, err)
	for _, name := range []string{"2r", "multi-15x15", "5r-2x2-1x1", "multi-images-2r"} {
		assert.Contains(t, out, name)
	}
}

func TestReplicateWritesSheet(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	writeJPEG(t, src, 1200, 900)
	outDir := filepath.Join(dir, "out")

	out, err := run(t, "replicate", src, "--profile", "2r", "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 sheet(s), 2 tile(s)")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".jpg", filepath.Ext(entries[0].Name()))
}

func TestReplicateRejectsBatchProfile(t *testing.T) {
	_, err := run(t, "replicate", "missing.jpg", "--profile", "multi-images-2r")
	assert.Error(t, err)
}

func TestBatchSkipsNonImages(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	require.NoError(t, os.MkdirAll(in, 0755))
	writeJPEG(t, filepath.Join(in, "a.jpg"), 400, 300)
	writeJPEG(t, filepath.Join(in, "b.jpg"), 300, 400)
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hello"), 0644))

	outDir := filepath.Join(dir, "out")
	out, err := run(t, "batch", in, "--output", outDir, "--no-progress", "--format", "png")
	require.NoError(t, err)
	assert.Contains(t, out, "1 file(s) skipped")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))
}

func TestConfigInitAndShow(t *testing.T) {
	out, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	out, err = run(t, "config", "show", "--quality", "70")
	require.NoError(t, err)
	assert.Contains(t, out, `"quality": 70`)
}
