package layout

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/piwi3910/DoubleSpace/internal/imaging"
	"github.com/piwi3910/DoubleSpace/internal/model"
)

type fakeHandle struct {
	id       int
	w, h     int
	released bool
}

func (h *fakeHandle) Width() int  { return h.w }
func (h *fakeHandle) Height() int { return h.h }
func (h *fakeHandle) Release()    { h.released = true }

type pasteCall struct {
	W, H int
	X, Y int
}

// fakeEngine records every operation and tracks handle ownership.
type fakeEngine struct {
	images    map[string][2]int // path -> width, height; missing paths fail to decode
	listing   []string
	encodeErr error

	handles  []*fakeHandle
	resizes  []string
	rotates  int
	crops    int
	fills    []string
	pastes   []pasteCall
	encoded  []string
	dpi      []int
	released int
}

var _ imaging.Engine = (*fakeEngine)(nil)

func newFakeEngine() *fakeEngine {
	return &fakeEngine{images: map[string][2]int{}}
}

func (e *fakeEngine) add(path string, w, h int) {
	e.images[path] = [2]int{w, h}
	e.listing = append(e.listing, path)
}

func (e *fakeEngine) newHandle(w, h int) *fakeHandle {
	fh := &fakeHandle{id: len(e.handles) + 1, w: w, h: h}
	e.handles = append(e.handles, fh)
	return fh
}

func (e *fakeEngine) get(h imaging.Handle) (*fakeHandle, error) {
	fh, ok := h.(*fakeHandle)
	if !ok || fh == nil {
		return nil, errors.New("foreign handle")
	}
	if fh.released {
		return nil, fmt.Errorf("handle %d used after release", fh.id)
	}
	return fh, nil
}

// leaked returns the handles that were never released.
func (e *fakeEngine) leaked() []int {
	var ids []int
	for _, h := range e.handles {
		if !h.released {
			ids = append(ids, h.id)
		}
	}
	return ids
}

func (e *fakeEngine) Decode(path string) (imaging.Handle, error) {
	dims, ok := e.images[path]
	if !ok {
		return nil, &model.DecodeError{Path: path, Err: errors.New("unknown format")}
	}
	return e.newHandle(dims[0], dims[1]), nil
}

func (e *fakeEngine) Encode(h imaging.Handle, path string, _ imaging.EncodeOptions) error {
	if _, err := e.get(h); err != nil {
		return &model.EncodeError{Path: path, Err: err}
	}
	if e.encodeErr != nil {
		return &model.EncodeError{Path: path, Err: e.encodeErr}
	}
	e.encoded = append(e.encoded, path)
	return nil
}

func (e *fakeEngine) NewCanvas(width, height int) imaging.Handle {
	return e.newHandle(width, height)
}

func (e *fakeEngine) Resize(h imaging.Handle, width, height int) (imaging.Handle, error) {
	if _, err := e.get(h); err != nil {
		return nil, err
	}
	e.resizes = append(e.resizes, fmt.Sprintf("%dx%d", width, height))
	return e.newHandle(width, height), nil
}

func (e *fakeEngine) Rotate(h imaging.Handle, degrees int) (imaging.Handle, error) {
	fh, err := e.get(h)
	if err != nil {
		return nil, err
	}
	e.rotates++
	if degrees%180 != 0 {
		return e.newHandle(fh.h, fh.w), nil
	}
	return e.newHandle(fh.w, fh.h), nil
}

func (e *fakeEngine) Crop(h imaging.Handle, _, _, width, height int) (imaging.Handle, error) {
	if _, err := e.get(h); err != nil {
		return nil, err
	}
	e.crops++
	return e.newHandle(width, height), nil
}

func (e *fakeEngine) Fill(h imaging.Handle, width, height int) (imaging.Handle, error) {
	if _, err := e.get(h); err != nil {
		return nil, err
	}
	e.fills = append(e.fills, fmt.Sprintf("%dx%d", width, height))
	return e.newHandle(width, height), nil
}

func (e *fakeEngine) Paste(src, dst imaging.Handle, x, y int, _ color.Color) error {
	s, err := e.get(src)
	if err != nil {
		return err
	}
	if _, err := e.get(dst); err != nil {
		return err
	}
	e.pastes = append(e.pastes, pasteCall{W: s.w, H: s.h, X: x, Y: y})
	return nil
}

func (e *fakeEngine) Flatten(h imaging.Handle) error {
	_, err := e.get(h)
	return err
}

func (e *fakeEngine) SetResolution(h imaging.Handle, dpiX, _ int) error {
	if _, err := e.get(h); err != nil {
		return err
	}
	e.dpi = append(e.dpi, dpiX)
	return nil
}

func (e *fakeEngine) ListDirectory(string) ([]string, error) {
	files := append([]string(nil), e.listing...)
	sort.Strings(files)
	return files, nil
}
