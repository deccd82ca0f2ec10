package processor

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/pdf-watermark/internal/models"
)

// RenderedLayer is one layer rendered, rotated and cropped for a given
// canvas. It is not modified after creation.
type RenderedLayer struct {
	Name  string
	Image *image.NRGBA
}

func (l RenderedLayer) Size() models.Rect {
	return models.RectOf(l.Image)
}

// Stack collects layers of a single canvas size and composites them in
// insertion order.
type Stack struct {
	canvas models.Rect
	layers []RenderedLayer
}

func NewStack(canvas models.Rect) *Stack {
	return &Stack{canvas: canvas}
}

func (s *Stack) Canvas() models.Rect { return s.canvas }

func (s *Stack) Len() int { return len(s.layers) }

// AddLayer appends l. A layer whose size differs from the canvas is rejected
// with a *models.SizeMismatchError and the stack is left unchanged.
func (s *Stack) AddLayer(l RenderedLayer) error {
	if l.Image == nil {
		return &models.SizeMismatchError{Layer: l.Name, Want: s.canvas}
	}
	if got := l.Size(); got != s.canvas {
		return &models.SizeMismatchError{Layer: l.Name, Got: got, Want: s.canvas}
	}
	s.layers = append(s.layers, l)
	return nil
}

// Composite draws every layer source-over onto a fully transparent canvas.
// An empty stack yields the transparent canvas.
func (s *Stack) Composite() *image.NRGBA {
	dst := image.NewRGBA(s.canvas.Bounds())
	for _, l := range s.layers {
		draw.Draw(dst, dst.Bounds(), l.Image, l.Image.Bounds().Min, draw.Over)
	}
	return imaging.Clone(dst)
}
