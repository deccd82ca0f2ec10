package processor

import (
	"errors"
	"fmt"
	"image"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"go.uber.org/zap"
)

type MismatchPolicy string

const (
	// MismatchSkip drops the offending layer and records a warning.
	MismatchSkip MismatchPolicy = "skip"
	// MismatchAbort fails the page, and with it the document.
	MismatchAbort MismatchPolicy = "abort"
)

func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch MismatchPolicy(s) {
	case "", MismatchSkip:
		return MismatchSkip, nil
	case MismatchAbort:
		return MismatchAbort, nil
	}
	return "", models.NewConfigError("mismatch_policy", fmt.Sprintf("unknown policy %q (want skip or abort)", s))
}

// Generator turns layer configurations into embeddable watermark images.
// A Generator owns font faces and must not be shared between goroutines.
type Generator struct {
	faces   *faceCache
	quality int
	policy  MismatchPolicy
	logger  *zap.Logger
}

func NewGenerator(registry *FontRegistry, quality int, policy MismatchPolicy, logger *zap.Logger) *Generator {
	if policy == "" {
		policy = MismatchSkip
	}
	return &Generator{
		faces:   newFaceCache(registry),
		quality: quality,
		policy:  policy,
		logger:  logger,
	}
}

// Close releases the faces held by the generator.
func (g *Generator) Close() {
	g.faces.Close()
}

// RenderLayer runs render, rotate and crop for one layer and one page size.
func (g *Generator) RenderLayer(cfg models.LayerConfig, rect models.Rect) (RenderedLayer, error) {
	if err := cfg.Validate(); err != nil {
		return RenderedLayer{}, err
	}

	canvas, err := CanvasSize(rect, cfg.Rotation.Angle)
	if err != nil {
		return RenderedLayer{}, err
	}

	face, err := g.faces.face(cfg.Text.Font)
	if err != nil {
		return RenderedLayer{}, err
	}

	var img *image.NRGBA
	if cfg.Repeat != nil {
		img = RenderTiled(canvas, cfg.Text, face, *cfg.Repeat)
	} else {
		anchor, err := AnchorPoint(canvas, cfg.Position)
		if err != nil {
			return RenderedLayer{}, err
		}
		img = RenderSingle(canvas, cfg.Text, face, anchor)
	}

	if cfg.Rotation.Angle != 0 {
		img, err = RotateAndCrop(img, cfg.Rotation.Angle, rect)
		if err != nil {
			return RenderedLayer{}, fmt.Errorf("failed to rotate layer %q: %w", cfg.Name, err)
		}
	}

	return RenderedLayer{Name: cfg.Name, Image: img}, nil
}

// Generate renders every layer for rect, composites them and splits the
// result into a base image and a mask. The returned warnings list layers
// dropped under the skip policy.
func (g *Generator) Generate(layers []models.LayerConfig, rect models.Rect) (*models.PageImagePair, []string, error) {
	if !rect.Valid() {
		return nil, nil, models.NewConfigError("rect", fmt.Sprintf("invalid page size %s", rect))
	}

	rendered := make([]RenderedLayer, 0, len(layers))
	for _, cfg := range layers {
		layer, err := g.RenderLayer(cfg, rect)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to render layer %q: %w", cfg.Name, err)
		}
		rendered = append(rendered, layer)
	}

	stack, warnings, err := g.compose(rect, rendered)
	if err != nil {
		return nil, warnings, err
	}

	pair, err := Split(stack.Composite(), g.quality)
	if err != nil {
		return nil, warnings, err
	}

	g.logger.Debug("Generated watermark image",
		zap.String("page_size", stack.Canvas().String()),
		zap.Int("layers", stack.Len()),
		zap.Int("base_bytes", len(pair.Base)),
		zap.Int("mask_bytes", len(pair.Mask)),
	)

	return pair, warnings, nil
}

// compose stacks layers on a canvas of size rect, applying the mismatch
// policy to layers of the wrong size.
func (g *Generator) compose(rect models.Rect, layers []RenderedLayer) (*Stack, []string, error) {
	stack := NewStack(rect)
	var warnings []string

	for _, layer := range layers {
		err := stack.AddLayer(layer)
		if err == nil {
			continue
		}
		var mismatch *models.SizeMismatchError
		if errors.As(err, &mismatch) && g.policy == MismatchSkip {
			g.logger.Warn("Skipping watermark layer",
				zap.String("layer", layer.Name),
				zap.String("got", mismatch.Got.String()),
				zap.String("want", mismatch.Want.String()),
			)
			warnings = append(warnings, err.Error())
			continue
		}
		return nil, warnings, err
	}
	return stack, warnings, nil
}
