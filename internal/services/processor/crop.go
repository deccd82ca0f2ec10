package processor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/pdf-watermark/internal/models"
)

// RotateAndCrop rotates a rendered layer counter-clockwise by angle degrees
// and brings it back to the original size.
//
// Quarter and half turns need no crop because CanvasSize already swapped or
// kept the dimensions. Any other angle rotates with expansion and cuts a
// window of the original size out of the centre of the result.
func RotateAndCrop(img image.Image, angle float64, original models.Rect) (*image.NRGBA, error) {
	if err := (models.RotationSpec{Angle: angle}).Validate(); err != nil {
		return nil, err
	}

	switch angle {
	case 0:
		return imaging.Clone(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 90:
		return imaging.Rotate90(img), nil
	case -90:
		return imaging.Rotate270(img), nil
	}

	rotated := imaging.Rotate(img, angle, color.Transparent)
	return cropWindow(rotated, original, cropOffset(original, angle)), nil
}

// cropOffset is the margin the expanded rotation adds on each side:
// (h·cos·sin, w·cos·sin).
func cropOffset(original models.Rect, angle float64) image.Point {
	sin, cos := absSincos(angle)
	return image.Point{
		X: int(float64(original.Height) * cos * sin),
		Y: int(float64(original.Width) * cos * sin),
	}
}

// cropWindow cuts size out of img starting at offset. Parts of the window
// outside img stay transparent, so the result is always exactly size.
func cropWindow(img image.Image, size models.Rect, offset image.Point) *image.NRGBA {
	canvas := imaging.New(size.Width, size.Height, color.Transparent)
	return imaging.Paste(canvas, img, image.Pt(-offset.X, -offset.Y))
}
