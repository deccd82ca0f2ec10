package processor

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/pdf-watermark/internal/models"
)

const DefaultJPEGQuality = 85

// Split separates img into an opaque colour image and a grayscale alpha
// mask and encodes both as JPEG.
func Split(img image.Image, quality int) (*models.PageImagePair, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	src := imaging.Clone(img)
	b := src.Bounds()
	base := image.NewNRGBA(b)
	mask := image.NewGray(b)

	for y := 0; y < b.Dy(); y++ {
		si := y * src.Stride
		bi := y * base.Stride
		mi := y * mask.Stride
		for x := 0; x < b.Dx(); x++ {
			base.Pix[bi+0] = src.Pix[si+0]
			base.Pix[bi+1] = src.Pix[si+1]
			base.Pix[bi+2] = src.Pix[si+2]
			base.Pix[bi+3] = 0xff
			mask.Pix[mi] = src.Pix[si+3]
			si += 4
			bi += 4
			mi++
		}
	}

	baseData, err := encodeJPEG(base, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode base image: %w", err)
	}
	maskData, err := encodeJPEG(mask, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mask image: %w", err)
	}

	return &models.PageImagePair{
		Base: baseData,
		Mask: maskData,
		Size: models.Rect{Width: b.Dx(), Height: b.Dy()},
	}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buffer := &bytes.Buffer{}
	if err := imaging.Encode(buffer, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
