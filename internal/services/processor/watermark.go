package processor

import (
	"image"
	"strings"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Extra pixels between the lines of a multi-line block.
const lineSpacing = 4

// tileOffset shifts every tile right by this fraction of the horizontal pitch
// so the first column does not sit on the canvas edge.
const tileOffset = 0.15

type textBlock struct {
	lines   []string
	widths  []fixed.Int26_6
	width   fixed.Int26_6
	height  fixed.Int26_6
	ascent  fixed.Int26_6
	lineGap fixed.Int26_6
}

func measureBlock(face font.Face, text string) textBlock {
	m := face.Metrics()
	lines := strings.Split(text, "\n")
	b := textBlock{
		lines:   lines,
		widths:  make([]fixed.Int26_6, len(lines)),
		ascent:  m.Ascent,
		lineGap: m.Ascent + m.Descent + fixed.I(lineSpacing),
	}
	for i, line := range lines {
		w := font.MeasureString(face, line)
		b.widths[i] = w
		if w > b.width {
			b.width = w
		}
	}
	b.height = m.Ascent + m.Descent + fixed.Int26_6(len(lines)-1)*b.lineGap
	return b
}

func (b textBlock) size() (float64, float64) {
	return fixedToFloat(b.width), fixedToFloat(b.height)
}

// draw renders the block with its top-left corner at origin.
func (b textBlock) draw(dst *image.NRGBA, face font.Face, src image.Image, origin fixed.Point26_6, align models.Align) {
	d := &font.Drawer{Dst: dst, Src: src, Face: face}
	for i, line := range b.lines {
		x := origin.X
		switch align {
		case models.AlignCenter:
			x += (b.width - b.widths[i]) / 2
		case models.AlignRight:
			x += b.width - b.widths[i]
		}
		d.Dot = fixed.Point26_6{
			X: x,
			Y: origin.Y + b.ascent + fixed.Int26_6(i)*b.lineGap,
		}
		d.DrawString(line)
	}
}

// RenderSingle draws one instance of the text on a transparent canvas so that
// the anchor of the text block lands on the anchor point.
func RenderSingle(canvas models.Rect, spec models.TextSpec, face font.Face, anchor Anchor) *image.NRGBA {
	img := image.NewNRGBA(canvas.Bounds())
	if spec.Text == "" {
		return img
	}

	block := measureBlock(face, spec.Text)
	origin := fixed.P(anchor.X, anchor.Y)
	switch anchor.H {
	case models.AnchorCenter:
		origin.X -= block.width / 2
	case models.AnchorRight:
		origin.X -= block.width
	}
	switch anchor.V {
	case models.AnchorMiddle:
		origin.Y -= block.height / 2
	case models.AnchorBottom:
		origin.Y -= block.height
	}

	block.draw(img, face, image.NewUniform(spec.Color), origin, anchor.Align)
	return img
}

// RenderTiled repeats the text over the whole canvas. The pitch of the grid is
// the text block size scaled by one plus the spacing ratios. Tiles are always
// left aligned and anchored at their top-left corner.
func RenderTiled(canvas models.Rect, spec models.TextSpec, face font.Face, repeat models.RepeatSpec) *image.NRGBA {
	img := image.NewNRGBA(canvas.Bounds())
	if spec.Text == "" {
		return img
	}

	block := measureBlock(face, spec.Text)
	txtW, txtH := block.size()
	if txtW <= 0 || txtH <= 0 {
		return img
	}

	pitchW := txtW * (1 + repeat.SpacingW)
	pitchH := txtH * (1 + repeat.SpacingH)
	src := image.NewUniform(spec.Color)
	w, h := float64(canvas.Width), float64(canvas.Height)

	for i := 0; float64(i)*pitchW <= w; i++ {
		for j := 0; float64(j)*pitchH <= h; j++ {
			origin := fixed.Point26_6{
				X: floatToFixed((float64(i) + tileOffset) * pitchW),
				Y: floatToFixed(float64(j) * pitchH),
			}
			block.draw(img, face, src, origin, models.AlignLeft)
		}
	}
	return img
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
