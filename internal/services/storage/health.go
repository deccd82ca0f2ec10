package storage

import (
	"fmt"
	"os"

	"github.com/phambaophuc/pdf-watermark/internal/models"
)

// HealthCheck verifies that the source folder can be read and the output
// folder can be created before any job starts.
func (s *FileStore) HealthCheck() error {
	info, err := os.Stat(s.sourceDir)
	if err != nil {
		return models.NewConfigError("source_dir", err.Error())
	}
	if !info.IsDir() {
		return models.NewConfigError("source_dir", fmt.Sprintf("%s is not a directory", s.sourceDir))
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return models.NewConfigError("output_dir", err.Error())
	}
	return nil
}
