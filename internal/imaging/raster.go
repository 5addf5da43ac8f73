package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"

	imgkit "github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/DoubleSpace/internal/model"
)

// rasterImage is the Handle used by Raster.
type rasterImage struct {
	img  *image.NRGBA
	dpiX int
	dpiY int
}

func (r *rasterImage) Width() int {
	if r.img == nil {
		return 0
	}
	return r.img.Bounds().Dx()
}

func (r *rasterImage) Height() int {
	if r.img == nil {
		return 0
	}
	return r.img.Bounds().Dy()
}

func (r *rasterImage) Release() {
	r.img = nil
}

// Raster implements Engine in memory with github.com/disintegration/imaging.
// Scaling uses Catmull-Rom resampling.
type Raster struct{}

// NewRaster returns the in-memory raster engine.
func NewRaster() *Raster {
	return &Raster{}
}

func (e *Raster) unwrap(h Handle) (*rasterImage, error) {
	r, ok := h.(*rasterImage)
	if !ok {
		return nil, fmt.Errorf("handle %T does not belong to the raster engine", h)
	}
	if r.img == nil {
		return nil, fmt.Errorf("handle already released")
	}
	return r, nil
}

// wrap adopts img as a handle carrying the resolution of like.
func wrap(img *image.NRGBA, like *rasterImage) *rasterImage {
	r := &rasterImage{img: img, dpiX: 72, dpiY: 72}
	if like != nil {
		r.dpiX, r.dpiY = like.dpiX, like.dpiY
	}
	return r
}

func newRaster(w, h int) *rasterImage {
	return wrap(image.NewNRGBA(image.Rect(0, 0, w, h)), nil)
}

// Decode reads JPEG, PNG, GIF, BMP, TIFF and WebP files. JPEG sources are
// turned upright according to their EXIF orientation tag.
func (e *Raster) Decode(path string) (Handle, error) {
	src, err := imgkit.Open(path, imgkit.AutoOrientation(true))
	if err != nil {
		return nil, &model.DecodeError{Path: path, Err: err}
	}
	return wrap(imgkit.Clone(src), nil), nil
}

// Encode writes h as JPEG or PNG and stamps its resolution into the file.
func (e *Raster) Encode(h Handle, path string, opts EncodeOptions) error {
	r, err := e.unwrap(h)
	if err != nil {
		return &model.EncodeError{Path: path, Err: err}
	}

	var buf bytes.Buffer
	var stamp func(io.WriteSeeker, []byte, int, int) error
	switch opts.Format {
	case model.FormatPNG:
		if err := imgkit.Encode(&buf, r.img, imgkit.PNG, imgkit.PNGCompressionLevel(pngLevel(opts.Compression))); err != nil {
			return &model.EncodeError{Path: path, Err: err}
		}
		stamp = writePNG
	case model.FormatJPEG, "":
		quality := opts.Quality
		if quality < 1 || quality > 100 {
			quality = 90
		}
		if err := imgkit.Encode(&buf, r.img, imgkit.JPEG, imgkit.JPEGQuality(quality)); err != nil {
			return &model.EncodeError{Path: path, Err: err}
		}
		stamp = writeJFIF
	default:
		return &model.EncodeError{Path: path, Err: fmt.Errorf("unsupported format %q", opts.Format)}
	}

	f, err := os.Create(path)
	if err != nil {
		return &model.EncodeError{Path: path, Err: err}
	}
	if err := stamp(f, buf.Bytes(), r.dpiX, r.dpiY); err != nil {
		f.Close()
		os.Remove(path)
		return &model.EncodeError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &model.EncodeError{Path: path, Err: err}
	}
	return nil
}

// pngLevel maps the 0-9 compression scale onto the encoder's levels.
func pngLevel(c int) png.CompressionLevel {
	switch {
	case c <= 0:
		return png.NoCompression
	case c <= 3:
		return png.BestSpeed
	case c <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// NewCanvas returns an opaque white sheet.
func (e *Raster) NewCanvas(width, height int) Handle {
	return wrap(imgkit.New(width, height, White), nil)
}

// Resize returns a scaled copy of h.
func (e *Raster) Resize(h Handle, width, height int) (Handle, error) {
	src, err := e.unwrap(h)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resize target %dx%d", width, height)
	}
	return wrap(imgkit.Resize(src.img, width, height, imgkit.CatmullRom), src), nil
}

// Fill scales h to cover width x height and crops the centre.
func (e *Raster) Fill(h Handle, width, height int) (Handle, error) {
	src, err := e.unwrap(h)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid fill target %dx%d", width, height)
	}
	return wrap(imgkit.Fill(src.img, width, height, imgkit.Center, imgkit.CatmullRom), src), nil
}

// Rotate returns a copy of h turned clockwise.
func (e *Raster) Rotate(h Handle, degrees int) (Handle, error) {
	src, err := e.unwrap(h)
	if err != nil {
		return nil, err
	}
	// imgkit rotates counter-clockwise.
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return wrap(imgkit.Clone(src.img), src), nil
	case 90:
		return wrap(imgkit.Rotate270(src.img), src), nil
	case 180:
		return wrap(imgkit.Rotate180(src.img), src), nil
	case 270:
		return wrap(imgkit.Rotate90(src.img), src), nil
	default:
		return nil, fmt.Errorf("rotation must be a multiple of 90 degrees, got %d", degrees)
	}
}

// Crop returns a copy of the given rectangle of h.
func (e *Raster) Crop(h Handle, x, y, width, height int) (Handle, error) {
	src, err := e.unwrap(h)
	if err != nil {
		return nil, err
	}
	rect := image.Rect(x, y, x+width, y+height)
	if width <= 0 || height <= 0 || !rect.In(src.img.Bounds()) {
		return nil, fmt.Errorf("crop %v outside image %v", rect, src.img.Bounds())
	}
	return wrap(imgkit.Crop(src.img, rect), src), nil
}

// Paste draws src onto dst. Pixels falling outside dst are clipped.
func (e *Raster) Paste(src, dst Handle, x, y int, bg color.Color) error {
	s, err := e.unwrap(src)
	if err != nil {
		return err
	}
	d, err := e.unwrap(dst)
	if err != nil {
		return err
	}
	at := image.Pt(x, y)
	if image.Rect(x, y, x+s.Width(), y+s.Height()).Intersect(d.img.Bounds()).Empty() {
		return fmt.Errorf("paste at (%d, %d) falls outside the %dx%d canvas", x, y, d.Width(), d.Height())
	}
	if bg == nil {
		d.img = imgkit.Overlay(d.img, s.img, at, 1.0)
		return nil
	}
	tile := imgkit.Overlay(imgkit.New(s.Width(), s.Height(), bg), s.img, image.Point{}, 1.0)
	d.img = imgkit.Paste(d.img, tile, at)
	return nil
}

// Flatten makes every pixel opaque by compositing it onto white.
func (e *Raster) Flatten(h Handle) error {
	r, err := e.unwrap(h)
	if err != nil {
		return err
	}
	r.img = imgkit.Overlay(imgkit.New(r.Width(), r.Height(), White), r.img, image.Point{}, 1.0)
	return nil
}

// SetResolution records the DPI written by Encode.
func (e *Raster) SetResolution(h Handle, dpiX, dpiY int) error {
	r, err := e.unwrap(h)
	if err != nil {
		return err
	}
	if dpiX <= 0 || dpiY <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", dpiX, dpiY)
	}
	r.dpiX, r.dpiY = dpiX, dpiY
	return nil
}

// ListDirectory returns full paths of the regular files in dir, sorted by
// name. Subdirectories are skipped.
func (e *Raster) ListDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Resolution reports the DPI stored on a raster handle.
func Resolution(h Handle) (int, int) {
	if r, ok := h.(*rasterImage); ok {
		return r.dpiX, r.dpiY
	}
	return 0, 0
}
