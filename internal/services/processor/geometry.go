package processor

import (
	"fmt"
	"math"

	"github.com/phambaophuc/pdf-watermark/internal/models"
)

// Anchor is a reference point inside a canvas together with the way a text
// block is attached to it.
type Anchor struct {
	X, Y  int
	H     models.HAnchor
	V     models.VAnchor
	Align models.Align
}

// CanvasSize returns the canvas needed to hold a layer of size original once
// it is rotated by angle degrees.
func CanvasSize(original models.Rect, angle float64) (models.Rect, error) {
	if !original.Valid() {
		return models.Rect{}, models.NewConfigError("rect", fmt.Sprintf("dimensions must be positive, got %s", original))
	}
	if err := (models.RotationSpec{Angle: angle}).Validate(); err != nil {
		return models.Rect{}, err
	}

	switch angle {
	case 0, 180:
		return original, nil
	case 90, -90:
		return original.Swap(), nil
	}

	w, h := rotatedBounds(float64(original.Width), float64(original.Height), angle)
	return models.Rect{Width: int(w), Height: int(h)}, nil
}

// rotatedBounds is the axis-aligned bounding box of a w×h rectangle rotated
// by angle degrees.
func rotatedBounds(w, h, angle float64) (float64, float64) {
	sin, cos := absSincos(angle)
	return w*cos + h*sin, h*cos + w*sin
}

func absSincos(angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return math.Abs(sin), math.Abs(cos)
}

// AnchorPoint maps a position code to its point in rect.
func AnchorPoint(rect models.Rect, pos models.Position) (Anchor, error) {
	h, v, align, err := pos.Anchors()
	if err != nil {
		return Anchor{}, err
	}

	a := Anchor{H: h, V: v, Align: align}
	switch h {
	case models.AnchorLeft:
		a.X = 0
	case models.AnchorCenter:
		a.X = rect.Width / 2
	case models.AnchorRight:
		a.X = rect.Width
	}
	switch v {
	case models.AnchorTop:
		a.Y = 0
	case models.AnchorMiddle:
		a.Y = rect.Height / 2
	case models.AnchorBottom:
		a.Y = rect.Height
	}
	return a, nil
}
