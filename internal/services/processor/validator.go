package processor

import (
	"github.com/phambaophuc/pdf-watermark/internal/models"
	"go.uber.org/multierr"
)

// ValidateLayers checks every layer and makes sure its font can be loaded.
// All problems are reported together.
func ValidateLayers(layers []models.LayerConfig, registry *FontRegistry) error {
	if len(layers) == 0 {
		return models.NewConfigError("layers", "at least one watermark layer is required")
	}

	faces := newFaceCache(registry)
	defer faces.Close()

	var errs error
	for _, l := range layers {
		if err := l.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, err := faces.face(l.Text.Font); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
