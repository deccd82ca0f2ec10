package models

import (
	"fmt"
	"image"
)

// Rect is a width/height pair in pixels.
type Rect struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func NewRect(width, height int) (Rect, error) {
	if width <= 0 || height <= 0 {
		return Rect{}, NewConfigError("rect", fmt.Sprintf("dimensions must be positive, got %dx%d", width, height))
	}
	return Rect{Width: width, Height: height}, nil
}

// Swap returns the rectangle with width and height exchanged.
func (r Rect) Swap() Rect {
	return Rect{Width: r.Height, Height: r.Width}
}

func (r Rect) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// RectOf returns the size of an image's bounds.
func RectOf(img image.Image) Rect {
	b := img.Bounds()
	return Rect{Width: b.Dx(), Height: b.Dy()}
}
