package layout

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/piwi3910/DoubleSpace/internal/imaging"
	"github.com/piwi3910/DoubleSpace/internal/model"
)

// prepare returns a working copy of src rotated and scaled for tile. The
// caller owns the returned handle; src is left untouched.
func (j *Job) prepare(log *slog.Logger, src imaging.Handle, tile model.TileSpec) (imaging.Handle, error) {
	orientation := model.Classify(src.Width(), src.Height())
	log.Debug("Image is "+orientation.String(), "width", src.Width(), "height", src.Height())

	work := src
	owned := false
	release := func() {
		if owned {
			work.Release()
		}
	}

	if needsRotation(j.Profile.Rotation, orientation, tile.Orientation()) {
		rotated, err := j.Engine.Rotate(src, 90)
		if err != nil {
			return nil, err
		}
		work, owned = rotated, true
	}

	w, h := work.Width(), work.Height()
	switch j.Profile.Fit {
	case model.FitDerive:
		derived := int(math.Round(float64(h) * float64(tile.Width) / float64(w)))
		if derived < 1 {
			release()
			return nil, &model.ImageShapeError{
				Width:  src.Width(),
				Height: src.Height(),
				Reason: fmt.Sprintf("aspect ratio leaves no height at tile width %d", tile.Width),
			}
		}
		if derived != tile.Height {
			log.Warn("derived tile height differs from nominal tile height",
				"tile", tile.Name, "nominal", tile.Height, "derived", derived)
		}
		resized, err := j.Engine.Resize(work, tile.Width, derived)
		release()
		return resized, err

	case model.FitCover:
		filled, err := j.Engine.Fill(work, tile.Width, tile.Height)
		release()
		return filled, err

	default:
		resized, err := j.Engine.Resize(work, tile.Width, tile.Height)
		release()
		return resized, err
	}
}

// needsRotation applies the rotation policy. Portrait-only turns every
// portrait source; match-tile turns a non-square source whose orientation
// differs from a non-square tile.
func needsRotation(policy model.RotationPolicy, src, tile model.Orientation) bool {
	switch policy {
	case model.RotatePortraitOnly:
		return src == model.OrientationPortrait
	case model.RotateMatchTile:
		return src != model.OrientationSquare && tile != model.OrientationSquare && src != tile
	default:
		return false
	}
}
