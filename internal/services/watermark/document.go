package watermark

import (
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"github.com/phambaophuc/pdf-watermark/internal/services/document"
	"github.com/phambaophuc/pdf-watermark/internal/services/storage"
	"go.uber.org/zap"
)

// pageGenerator produces the watermark image for one page size.
type pageGenerator interface {
	Generate(layers []models.LayerConfig, rect models.Rect) (*models.PageImagePair, []string, error)
}

// processDocument stamps every page of src and saves the result as dst.
// Pages of a size seen before in the same document reuse both the generated
// image and the image object already stored in the PDF.
func (s *Service) processDocument(gen pageGenerator, layers []models.LayerConfig, src, dst string, logger *zap.Logger) (models.DocumentResult, error) {
	result := models.DocumentResult{Source: src}
	logger = logger.With(zap.String("document", src))

	doc, err := document.Open(src)
	if err != nil {
		return result, err
	}
	defer doc.Close()
	result.Pages = doc.NumPages()

	cache := storage.NewPageCache[*models.PageImagePair]()
	handles := make(map[models.Rect]document.ImageHandle)

	for i := 0; i < doc.NumPages(); i++ {
		box, err := doc.MediaBox(i)
		if err != nil {
			return result, err
		}
		size := box.Scaled(s.opts.Supersample)

		pair, err := cache.GetOrCreate(size, func() (*models.PageImagePair, error) {
			s.renders.Add(1)
			pair, warnings, err := gen.Generate(layers, size)
			result.Warnings = append(result.Warnings, warnings...)
			return pair, err
		})
		if err != nil {
			return result, &models.DocumentError{Path: src, Err: err}
		}

		if h, ok := handles[size]; ok {
			if err := doc.PlaceImage(i, h); err != nil {
				return result, err
			}
			result.Reused++
			continue
		}

		h, err := doc.EmbedImage(i, pair)
		if err != nil {
			return result, err
		}
		handles[size] = h
		result.Rendered++

		logger.Debug("Embedded watermark",
			zap.Int("page", i+1),
			zap.String("media_box", box.String()),
			zap.String("page_size", size.String()),
		)
	}

	if err := s.store.SaveFile(dst, doc.Write); err != nil {
		return result, &models.DocumentError{Path: src, Err: err}
	}
	result.Output = dst

	stats := cache.Stats()
	logger.Info("Document watermarked",
		zap.String("output", dst),
		zap.Int("pages", result.Pages),
		zap.Int("cache_hits", stats.Hits),
		zap.Int("cache_misses", stats.Misses),
	)
	return result, nil
}
