// Package layout drives layout jobs: it asks the engine package where tiles
// go and uses an imaging.Engine to put them there and write the sheets.
package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/DoubleSpace/internal/engine"
	"github.com/piwi3910/DoubleSpace/internal/imaging"
	"github.com/piwi3910/DoubleSpace/internal/model"
)

// Progress is reported once per batch input.
type Progress struct {
	Index   int    // 1-based position in the listing
	Total   int    // Number of files in the listing
	Path    string // Input being processed
	Skipped bool   // True when the input was rejected
}

// Job runs one layout profile against an input.
type Job struct {
	Profile    model.LayoutProfile
	Engine     imaging.Engine
	Config     model.AppConfig
	Logger     *slog.Logger
	Clock      func() time.Time
	OnProgress func(Progress)

	id string
}

// NewJob returns a job with a fresh ID, normalized config, the default
// logger and the wall clock.
func NewJob(profile model.LayoutProfile, eng imaging.Engine, cfg model.AppConfig) *Job {
	return &Job{
		Profile: profile,
		Engine:  eng,
		Config:  cfg.Normalize(),
		Logger:  slog.Default(),
		Clock:   time.Now,
		id:      uuid.New().String()[:8],
	}
}

// ID returns the job identifier used in logs and results.
func (j *Job) ID() string {
	if j.id == "" {
		j.id = uuid.New().String()[:8]
	}
	return j.id
}

func (j *Job) log() *slog.Logger {
	l := j.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("job", j.ID(), "profile", j.Profile.Name)
}

func (j *Job) now() time.Time {
	if j.Clock == nil {
		return time.Now()
	}
	return j.Clock()
}

// Run dispatches on the profile mode. Replicate and composition profiles
// take an image path; batch profiles take a directory.
func (j *Job) Run(ctx context.Context, input string) (model.LayoutResult, error) {
	switch j.Profile.Mode {
	case model.ModeReplicate:
		return j.RunReplicate(ctx, input)
	case model.ModeComposition:
		return j.RunComposition(ctx, input)
	case model.ModeBatch:
		return j.RunBatch(ctx, input)
	default:
		return model.LayoutResult{}, &model.ConfigurationError{Reason: fmt.Sprintf("unknown mode %q", j.Profile.Mode)}
	}
}

// RunReplicate fills one sheet with copies of a single picture.
func (j *Job) RunReplicate(ctx context.Context, path string) (model.LayoutResult, error) {
	if j.Profile.Mode != model.ModeReplicate {
		return model.LayoutResult{}, &model.ConfigurationError{Reason: fmt.Sprintf("profile %q is not a replicate layout", j.Profile.Name)}
	}
	return j.runSingle(ctx, path, []model.TileSpec{j.Profile.Tile})
}

// RunComposition places the profile's fixed composition of a single
// picture on one sheet.
func (j *Job) RunComposition(ctx context.Context, path string) (model.LayoutResult, error) {
	if j.Profile.Mode != model.ModeComposition || j.Profile.Composition == nil {
		return model.LayoutResult{}, &model.ConfigurationError{Reason: fmt.Sprintf("profile %q is not a composition layout", j.Profile.Name)}
	}
	return j.runSingle(ctx, path, j.Profile.Composition.Tiles())
}

func (j *Job) runSingle(ctx context.Context, path string, tiles []model.TileSpec) (model.LayoutResult, error) {
	log := j.log()

	plan, err := engine.Plan(j.Profile, []string{path})
	if err != nil {
		return model.LayoutResult{}, err
	}
	plan.JobID = j.ID()
	if err := ctx.Err(); err != nil {
		return plan, err
	}
	if err := j.ensureOutputDir(); err != nil {
		return plan, err
	}

	src, err := j.Engine.Decode(path)
	if err != nil {
		return plan, err
	}
	defer src.Release()

	if err := j.Profile.Shape.Check(src.Width(), src.Height()); err != nil {
		return plan, err
	}

	prepared := make(map[string]imaging.Handle, len(tiles))
	defer func() {
		for _, h := range prepared {
			h.Release()
		}
	}()
	for _, tile := range tiles {
		h, err := j.prepare(log, src, tile)
		if err != nil {
			return plan, err
		}
		prepared[tile.Name] = h
	}

	sheet := &plan.Sheets[0]
	canvas := j.Engine.NewCanvas(sheet.Paper.Width, sheet.Paper.Height)
	defer canvas.Release()
	for _, pl := range sheet.Placements {
		if err := j.Engine.Paste(prepared[pl.Tile], canvas, pl.X, pl.Y, imaging.White); err != nil {
			return plan, fmt.Errorf("failed to place tile at (%d, %d): %w", pl.X, pl.Y, err)
		}
	}
	log.Debug("Reached maximum number of drawings!", "placements", len(sheet.Placements))

	out := filepath.Join(j.Config.OutputDir, j.singleName())
	if err := j.flush(canvas, out); err != nil {
		return plan, err
	}
	sheet.OutputPath = out
	log.Info("sheet written", "path", out, "placements", len(sheet.Placements))
	return plan, nil
}

// RunBatch places one copy of every image in dir, starting a new sheet
// whenever the current one is full. Files that cannot be decoded or that
// fail the shape rule are logged and skipped. The last sheet is written
// even when it is only partly filled.
func (j *Job) RunBatch(ctx context.Context, dir string) (model.LayoutResult, error) {
	log := j.log()
	result := model.LayoutResult{JobID: j.ID(), Profile: j.Profile.Name}

	if j.Profile.Mode != model.ModeBatch {
		return result, &model.ConfigurationError{Reason: fmt.Sprintf("profile %q is not a batch layout", j.Profile.Name)}
	}
	if err := j.Profile.Validate(); err != nil {
		return result, err
	}
	packer, err := engine.NewSheetPacker(j.Profile.Paper, j.Profile.Tile, j.Profile.Margins)
	if err != nil {
		return result, err
	}

	files, err := j.Engine.ListDirectory(dir)
	if err != nil {
		return result, &model.ConfigurationError{Reason: "cannot list input directory", Err: err}
	}
	if err := j.ensureOutputDir(); err != nil {
		return result, err
	}

	var canvas imaging.Handle
	var sheet model.SheetResult
	defer func() {
		if canvas != nil {
			canvas.Release()
		}
	}()

	counter := 0
	flushSheet := func() error {
		counter++
		out := filepath.Join(j.Config.OutputDir, j.batchName(counter))
		if err := j.flush(canvas, out); err != nil {
			return err
		}
		sheet.OutputPath = out
		result.Sheets = append(result.Sheets, sheet)
		log.Info("sheet written", "path", out, "sheet", sheet.Index, "placements", len(sheet.Placements))
		canvas.Release()
		canvas = nil
		return nil
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		log.Debug("File: "+filepath.Base(path), "index", i+1, "total", len(files))

		tile, err := j.loadTile(log, path)
		if err != nil {
			if !skippable(err) {
				return result, err
			}
			log.Warn("skipping file", "path", path, "error", err)
			result.Skipped = append(result.Skipped, path)
			j.progress(Progress{Index: i + 1, Total: len(files), Path: path, Skipped: true})
			continue
		}

		if canvas == nil {
			canvas = j.Engine.NewCanvas(j.Profile.Paper.Width, j.Profile.Paper.Height)
			sheet = model.NewSheetResult(j.Profile.Paper, packer.SheetIndex())
		}
		pl, _ := packer.Next()
		pl.Source = path
		err = j.Engine.Paste(tile, canvas, pl.X, pl.Y, imaging.White)
		tile.Release()
		if err != nil {
			return result, fmt.Errorf("failed to place %s: %w", path, err)
		}
		sheet.Placements = append(sheet.Placements, pl)
		j.progress(Progress{Index: i + 1, Total: len(files), Path: path})

		if packer.Full() {
			log.Debug("Reached maximum number of drawings!", "sheet", packer.SheetIndex())
			if err := flushSheet(); err != nil {
				return result, err
			}
			packer.Reset()
		}
	}

	if canvas != nil {
		if err := flushSheet(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// loadTile decodes one batch input and prepares its tile. The decoded
// source is released before returning.
func (j *Job) loadTile(log *slog.Logger, path string) (imaging.Handle, error) {
	src, err := j.Engine.Decode(path)
	if err != nil {
		return nil, err
	}
	defer src.Release()

	if err := j.Profile.Shape.Check(src.Width(), src.Height()); err != nil {
		return nil, err
	}
	return j.prepare(log.With("path", path), src, j.Profile.Tile)
}

func skippable(err error) bool {
	var decErr *model.DecodeError
	var shapeErr *model.ImageShapeError
	return errors.As(err, &decErr) || errors.As(err, &shapeErr)
}

func (j *Job) progress(p Progress) {
	if j.OnProgress != nil {
		j.OnProgress(p)
	}
}

func (j *Job) ensureOutputDir() error {
	if err := os.MkdirAll(j.Config.OutputDir, 0755); err != nil {
		return &model.ConfigurationError{Reason: fmt.Sprintf("cannot create output directory %s", j.Config.OutputDir), Err: err}
	}
	return nil
}

// flush flattens the sheet, stamps the resolution and encodes it.
func (j *Job) flush(canvas imaging.Handle, path string) error {
	if err := j.Engine.Flatten(canvas); err != nil {
		return &model.EncodeError{Path: path, Err: err}
	}
	dpi := j.Config.Resolution
	if dpi <= 0 {
		dpi = model.DefaultDPI
	}
	if err := j.Engine.SetResolution(canvas, dpi, dpi); err != nil {
		return &model.EncodeError{Path: path, Err: err}
	}
	return j.Engine.Encode(canvas, path, imaging.OptionsFromConfig(j.Config))
}

const timestampLayout = "20060102_150405"

func (j *Job) singleName() string {
	return fmt.Sprintf("%s_%s%s", j.Config.FilePrefix, j.now().Format(timestampLayout), j.Config.Extension())
}

func (j *Job) batchName(counter int) string {
	return fmt.Sprintf("%s_%d_%s%s", j.Config.FilePrefix, counter, j.now().Format(timestampLayout), j.Config.Extension())
}
