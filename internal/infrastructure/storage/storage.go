// Package storage keeps document bytes outside the database. Paths are
// slash-separated and relative to the backend root, e.g. patients/1/<id>.pdf.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"health-records-api/config"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid storage path")
)

// FileStorage is implemented by every storage backend.
type FileStorage interface {
	Write(ctx context.Context, filePath string, content io.Reader) error
	// Read returns ErrFileNotFound when nothing is stored at filePath.
	Read(ctx context.Context, filePath string) (io.ReadCloser, error)
	// Delete is a no-op for a path that holds nothing.
	Delete(ctx context.Context, filePath string) error
	Exists(ctx context.Context, filePath string) (bool, error)
}

// New builds the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (FileStorage, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocalStorage(cfg.LocalRoot)
	case config.StorageDriverS3:
		return NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// cleanPath normalises a relative storage path and refuses anything that
// would escape the storage root.
func cleanPath(filePath string) (string, error) {
	if filePath == "" || strings.HasPrefix(filePath, "/") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(filePath)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
