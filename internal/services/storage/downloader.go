package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ListPDFs returns the PDF files directly inside the source folder, sorted
// by name. Sub-folders are not searched.
func (s *FileStore) ListPDFs() ([]string, error) {
	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list source folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(s.sourceDir, e.Name()))
	}
	sort.Strings(files)

	s.logger.Debug("Listed source documents",
		zap.String("source_dir", s.sourceDir),
		zap.Int("documents", len(files)),
	)
	return files, nil
}
