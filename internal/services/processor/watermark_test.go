package processor

import (
	"testing"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestRenderSingle_RightTop(t *testing.T) {
	face := testFace(t, 20)
	canvas := models.Rect{Width: 300, Height: 100}
	spec := models.TextSpec{Text: "Hello", Color: testInk}

	anchor, err := AnchorPoint(canvas, models.RightTop)
	require.NoError(t, err)
	img := RenderSingle(canvas, spec, face, anchor)

	require.Equal(t, canvas, models.RectOf(img))
	ink := inkBounds(img)
	require.False(t, ink.Empty())

	width := font.MeasureString(face, "Hello").Ceil()
	assert.LessOrEqual(t, ink.Max.X, 300)
	assert.GreaterOrEqual(t, ink.Min.X, 300-width-1)
	assert.Less(t, ink.Max.Y, 30)
}

func TestRenderSingle_CenterMiddle(t *testing.T) {
	face := testFace(t, 20)
	canvas := models.Rect{Width: 300, Height: 100}
	spec := models.TextSpec{Text: "HHHH", Color: testInk}

	anchor, err := AnchorPoint(canvas, models.CenterMiddle)
	require.NoError(t, err)
	ink := inkBounds(RenderSingle(canvas, spec, face, anchor))
	require.False(t, ink.Empty())

	centre := (ink.Min.X + ink.Max.X) / 2
	assert.InDelta(t, 150, centre, 4)
	assert.Greater(t, ink.Min.Y, 25)
	assert.Less(t, ink.Max.Y, 75)
}

func TestRenderSingle_MultiLineBottom(t *testing.T) {
	face := testFace(t, 20)
	canvas := models.Rect{Width: 400, Height: 200}
	spec := models.TextSpec{Text: "first line\nsecond", Color: testInk}

	anchor, err := AnchorPoint(canvas, models.LeftBottom)
	require.NoError(t, err)
	ink := inkBounds(RenderSingle(canvas, spec, face, anchor))
	require.False(t, ink.Empty())

	m := face.Metrics()
	blockHeight := (m.Ascent+m.Descent).Ceil()*2 + lineSpacing
	assert.LessOrEqual(t, ink.Max.Y, 200)
	assert.GreaterOrEqual(t, ink.Min.Y, 200-blockHeight-1)
	assert.Less(t, ink.Min.X, 5)
}

func TestRenderSingle_EmptyText(t *testing.T) {
	face := testFace(t, 20)
	canvas := models.Rect{Width: 50, Height: 50}
	img := RenderSingle(canvas, models.TextSpec{Color: testInk}, face, Anchor{})
	assert.True(t, inkBounds(img).Empty())
}

func TestRenderTiled_CoversCanvas(t *testing.T) {
	face := testFace(t, 20)
	canvas := models.Rect{Width: 400, Height: 400}
	spec := models.TextSpec{Text: "alice@example.com", Color: testInk}

	img := RenderTiled(canvas, spec, face, models.RepeatSpec{SpacingW: 0.5, SpacingH: 1})
	require.Equal(t, canvas, models.RectOf(img))

	ink := inkBounds(img)
	require.False(t, ink.Empty())
	assert.Less(t, ink.Min.Y, 20)
	assert.Greater(t, ink.Max.Y, 300)
	assert.Greater(t, ink.Min.X, 0, "tiles are offset from the left edge")
}

func TestRenderTiled_EmptyText(t *testing.T) {
	face := testFace(t, 20)
	img := RenderTiled(models.Rect{Width: 64, Height: 64}, models.TextSpec{Color: testInk}, face, models.RepeatSpec{})
	assert.True(t, inkBounds(img).Empty())
}
