package processor

import (
	"image"
	"image/color"
	"testing"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

var testInk = color.NRGBA{A: 255}

func testFace(t *testing.T, size float64) font.Face {
	t.Helper()
	faces := newFaceCache(NewFontRegistry())
	t.Cleanup(faces.Close)
	face, err := faces.face(models.FontRef{Family: "go", Size: size})
	require.NoError(t, err)
	return face
}

// inkBounds is the smallest rectangle containing every non-transparent pixel.
func inkBounds(img *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A == 0 {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if r.Empty() {
				r = px
			} else {
				r = r.Union(px)
			}
		}
	}
	return r
}

func filled(r models.Rect, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}
