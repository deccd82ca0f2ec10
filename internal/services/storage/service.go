package storage

import (
	"go.uber.org/zap"
)

// FileStore gives access to the source documents and the per-recipient
// output folders.
type FileStore struct {
	sourceDir string
	outputDir string
	logger    *zap.Logger
}

func NewFileStore(sourceDir, outputDir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		sourceDir: sourceDir,
		outputDir: outputDir,
		logger:    logger,
	}
}

func (s *FileStore) SourceDir() string { return s.sourceDir }

func (s *FileStore) OutputDir() string { return s.outputDir }
