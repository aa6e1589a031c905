package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PhotoStorage writes uploaded photos to the local filesystem
type PhotoStorage struct {
	baseDir string
}

// NewPhotoStorage creates a photo storage rooted at baseDir,
// creating the directory if needed
func NewPhotoStorage(baseDir string) (*PhotoStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &PhotoStorage{baseDir: baseDir}, nil
}

// Save writes the uploaded file under a generated name and returns that
// name. The original filename only contributes its extension; the stored
// name is a timestamp plus a random id so uploads never collide.
func (s *PhotoStorage) Save(r io.Reader, originalFilename string) (string, error) {
	ext := filepath.Ext(originalFilename)
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)

	dst, err := os.Create(filepath.Join(s.baseDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}

	return filename, nil
}
