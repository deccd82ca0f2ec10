package processor

import (
	"image"
	"testing"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateAndCrop_NoRotationRoundTrip(t *testing.T) {
	face := testFace(t, 24)
	rect := models.Rect{Width: 320, Height: 240}

	canvas, err := CanvasSize(rect, 0)
	require.NoError(t, err)
	anchor, err := AnchorPoint(canvas, models.CenterMiddle)
	require.NoError(t, err)
	rendered := RenderSingle(canvas, models.TextSpec{Text: "round trip", Color: testInk}, face, anchor)

	out, err := RotateAndCrop(rendered, 0, rect)
	require.NoError(t, err)
	assert.Equal(t, rect, models.RectOf(out))
	assert.Equal(t, rendered.Pix, out.Pix)
}

func TestRotateAndCrop_QuarterTurns(t *testing.T) {
	rect := models.Rect{Width: 300, Height: 200}
	for _, a := range []float64{90, -90, 180} {
		canvas, err := CanvasSize(rect, a)
		require.NoError(t, err)
		out, err := RotateAndCrop(filled(canvas, testInk), a, rect)
		require.NoError(t, err)
		assert.Equal(t, rect, models.RectOf(out), "angle %g", a)
	}
}

// A marker drawn at the centre of the expanded canvas must stay at the centre
// of the page once rotated and cropped.
func TestRotateAndCrop_KeepsCentre(t *testing.T) {
	rect := models.Rect{Width: 300, Height: 200}
	for a := 10.0; a < 180; a += 20 {
		canvas, err := CanvasSize(rect, a)
		require.NoError(t, err)

		img := image.NewNRGBA(canvas.Bounds())
		cx, cy := canvas.Width/2, canvas.Height/2
		for y := cy - 10; y < cy+10; y++ {
			for x := cx - 10; x < cx+10; x++ {
				img.SetNRGBA(x, y, testInk)
			}
		}

		out, err := RotateAndCrop(img, a, rect)
		require.NoError(t, err)
		require.Equal(t, rect, models.RectOf(out), "angle %g", a)

		ink := inkBounds(out)
		require.False(t, ink.Empty(), "angle %g", a)
		mid := ink.Min.Add(ink.Max).Div(2)
		assert.InDelta(t, rect.Width/2, mid.X, 3, "angle %g", a)
		assert.InDelta(t, rect.Height/2, mid.Y, 3, "angle %g", a)
	}
}

func TestRotateAndCrop_FullCoverage(t *testing.T) {
	// a fully opaque expanded canvas must leave no transparent hole in the
	// cropped page away from the borders
	rect := models.Rect{Width: 200, Height: 200}
	canvas, err := CanvasSize(rect, 30)
	require.NoError(t, err)

	out, err := RotateAndCrop(filled(canvas, testInk), 30, rect)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.NRGBAAt(100, 100).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(10, 100).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(100, 190).A)
}

func TestRotateAndCrop_InvalidAngle(t *testing.T) {
	_, err := RotateAndCrop(image.NewNRGBA(image.Rect(0, 0, 4, 4)), 270, models.Rect{Width: 4, Height: 4})
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestCropOffset(t *testing.T) {
	rect := models.Rect{Width: 612, Height: 792}
	off := cropOffset(rect, 30)
	// cos 30 · sin 30 = 0.4330
	assert.Equal(t, image.Pt(342, 265), off)
	assert.Equal(t, off, cropOffset(rect, 150))
}
