package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PhotoStorage defines the contract for persisting uploaded photos.
// Files are referenced by filename only; the HTTP layer serves the backing
// directory statically.
type PhotoStorage interface {
	// Save persists the uploaded file and returns the generated filename.
	Save(file *multipart.FileHeader) (string, error)
	// Remove deletes a stored file by filename. Missing files are not an error.
	Remove(filename string) error
}

type localStorage struct {
	dir string
}

// NewLocalStorage returns disk-backed photo storage rooted at dir, creating
// the directory if needed.
func NewLocalStorage(dir string) (PhotoStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &localStorage{dir: dir}, nil
}

func (s *localStorage) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Generated name keeps uploads collision-free; original name is discarded.
	filename := uuid.NewString() + filepath.Ext(file.Filename)

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return filename, nil
}

func (s *localStorage) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
