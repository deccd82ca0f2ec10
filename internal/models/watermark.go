package models

import (
	"fmt"
	"image/color"
	"math"
)

// FontRef names a font by family and pixel size.
type FontRef struct {
	Family string  `json:"family" yaml:"family"`
	Size   float64 `json:"size" yaml:"size"`
}

type TextSpec struct {
	Text  string
	Color color.NRGBA
	Font  FontRef
}

// RotationSpec holds the counter-clockwise rotation of a layer in degrees.
type RotationSpec struct {
	Angle float64 `json:"angle" yaml:"angle"`
}

// Validate accepts 0, 180, -90, 90 and any angle strictly between 0 and 180.
func (r RotationSpec) Validate() error {
	a := r.Angle
	switch {
	case math.IsNaN(a) || math.IsInf(a, 0):
		return NewConfigError("rotation", "angle must be a finite number")
	case a == 0 || a == 180 || a == 90 || a == -90:
		return nil
	case a > 0 && a < 180:
		return nil
	}
	return NewConfigError("rotation", fmt.Sprintf("angle %g outside supported range {0, ±90, 180} ∪ (0, 180)", a))
}

type RepeatSpec struct {
	SpacingW float64 `json:"spacing_w" yaml:"spacing-w"`
	SpacingH float64 `json:"spacing_h" yaml:"spacing-h"`
}

func (r RepeatSpec) Validate() error {
	if r.SpacingW < 0 || r.SpacingH < 0 {
		return NewConfigError("repeat", fmt.Sprintf("spacing must not be negative, got %g/%g", r.SpacingW, r.SpacingH))
	}
	return nil
}

// LayerConfig describes one watermark layer before it is rendered.
type LayerConfig struct {
	Name     string
	Text     TextSpec
	Position Position
	Rotation RotationSpec
	Repeat   *RepeatSpec
}

func (l LayerConfig) Validate() error {
	if l.Text.Font.Family == "" {
		return NewConfigError("font", fmt.Sprintf("layer %q: font family is required", l.Name))
	}
	if l.Text.Font.Size <= 0 {
		return NewConfigError("font", fmt.Sprintf("layer %q: font size must be positive", l.Name))
	}
	if err := l.Rotation.Validate(); err != nil {
		return err
	}
	if l.Repeat != nil {
		if err := l.Repeat.Validate(); err != nil {
			return err
		}
	} else if !l.Position.Valid() {
		return NewConfigError("position", fmt.Sprintf("layer %q: unknown position code %q", l.Name, string(l.Position)))
	}
	return nil
}

// PageImagePair is the embeddable form of one composited watermark image:
// a JPEG base image and a JPEG grayscale soft mask of the same size.
type PageImagePair struct {
	Base []byte
	Mask []byte
	Size Rect
}
