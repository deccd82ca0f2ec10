package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phambaophuc/pdf-watermark/pkg/utils"
)

// RecipientDir creates, if needed, and returns the output folder of userID.
func (s *FileStore) RecipientDir(userID string) (string, error) {
	if !utils.IsValidFolderName(userID) {
		return "", fmt.Errorf("invalid output folder name %q", userID)
	}
	dir := filepath.Join(s.outputDir, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output folder: %w", err)
	}
	return dir, nil
}

// OutputPath is the path of source's copy inside dir.
func OutputPath(dir, source string) string {
	return filepath.Join(dir, filepath.Base(source))
}

// outputFileMode matches what os.Create gives under the usual 022 umask.
const outputFileMode = 0o644

// SaveFile writes path through write. The data goes to a temporary file in
// the same folder first, so an interrupted run never leaves a truncated PDF
// under the final name.
func (s *FileStore) SaveFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(outputFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
