package model

import "fmt"

// ConfigurationError reports a layout that cannot be built: an unknown
// paper or tile name, or a tile that does not fit on the sheet.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ImageShapeError reports a source image that does not satisfy a profile's
// shape rule (not square, or below the minimum resolution).
type ImageShapeError struct {
	Width  int
	Height int
	Reason string
}

func (e *ImageShapeError) Error() string {
	return fmt.Sprintf("image %dx%d rejected: %s", e.Width, e.Height, e.Reason)
}

// DecodeError reports an unreadable or unsupported input file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failure writing an output sheet.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
