package processor

import (
	"errors"
	"image/color"
	"testing"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_AddLayerSizeMismatch(t *testing.T) {
	canvas := models.Rect{Width: 100, Height: 80}
	s := NewStack(canvas)

	err := s.AddLayer(RenderedLayer{Name: "small", Image: filled(models.Rect{Width: 50, Height: 80}, testInk)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSizeMismatch))

	var mismatch *models.SizeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "small", mismatch.Layer)
	assert.Equal(t, models.Rect{Width: 50, Height: 80}, mismatch.Got)
	assert.Equal(t, canvas, mismatch.Want)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.AddLayer(RenderedLayer{Name: "ok", Image: filled(canvas, testInk)}))
	assert.Equal(t, 1, s.Len())
}

func TestStack_CompositeEmptyIsTransparent(t *testing.T) {
	canvas := models.Rect{Width: 16, Height: 16}
	out := NewStack(canvas).Composite()
	assert.Equal(t, canvas, models.RectOf(out))
	assert.True(t, inkBounds(out).Empty())
}

func TestStack_CompositeIsOrderSensitive(t *testing.T) {
	canvas := models.Rect{Width: 8, Height: 8}
	red := RenderedLayer{Name: "red", Image: filled(canvas, color.NRGBA{R: 255, A: 128})}
	blue := RenderedLayer{Name: "blue", Image: filled(canvas, color.NRGBA{B: 255, A: 128})}

	ab := NewStack(canvas)
	require.NoError(t, ab.AddLayer(red))
	require.NoError(t, ab.AddLayer(blue))

	ba := NewStack(canvas)
	require.NoError(t, ba.AddLayer(blue))
	require.NoError(t, ba.AddLayer(red))

	p1 := ab.Composite().NRGBAAt(4, 4)
	p2 := ba.Composite().NRGBAAt(4, 4)
	assert.NotEqual(t, p1, p2)
	// the layer added last dominates
	assert.Greater(t, p1.B, p1.R)
	assert.Greater(t, p2.R, p2.B)
	assert.Equal(t, p1.A, p2.A)
}

func TestStack_CompositeKeepsOpaqueTop(t *testing.T) {
	canvas := models.Rect{Width: 4, Height: 4}
	s := NewStack(canvas)
	require.NoError(t, s.AddLayer(RenderedLayer{Image: filled(canvas, color.NRGBA{R: 255, A: 128})}))
	require.NoError(t, s.AddLayer(RenderedLayer{Image: filled(canvas, color.NRGBA{G: 255, A: 255})}))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, s.Composite().NRGBAAt(1, 1))
}
