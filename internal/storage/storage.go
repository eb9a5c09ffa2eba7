package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file too large")
	// ErrUnsupportedType is returned for file extensions outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedExtensions is the set of image extensions accepted for upload.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// FileStore writes uploaded files under a fixed public root and serves
// storage-relative URLs of the form /uploads/<name> back to callers.
type FileStore struct {
	dir      string
	maxBytes int64
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string, maxBytes int64) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save writes the uploaded file to disk under a timestamp-prefixed name and
// returns its storage-relative URL.
func (fs *FileStore) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > fs.maxBytes {
		return "", ErrFileTooLarge
	}

	// Base-name sanitization: strip any path components from the client name.
	original := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), original)
	dst, err := os.Create(filepath.Join(fs.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Best-effort cleanup of the partial write
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes the physical file behind a storage-relative URL. A missing
// file is tolerated and reported as success.
func (fs *FileStore) Remove(imageURL string) error {
	name := filepath.Base(imageURL)
	if name == "." || name == "/" {
		return nil
	}

	err := os.Remove(filepath.Join(fs.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// Dir returns the root directory files are stored under.
func (fs *FileStore) Dir() string {
	return fs.dir
}
