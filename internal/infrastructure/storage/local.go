package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o750
	filePerm = 0o640
)

// LocalStorage keeps files on a filesystem rooted at a single directory.
type LocalStorage struct {
	fs afero.Fs
}

// NewLocalStorage stores files under root on the host filesystem.
func NewLocalStorage(root string) (*LocalStorage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return NewLocalStorageFs(afero.NewBasePathFs(osFs, root)), nil
}

// NewLocalStorageFs stores files on the given filesystem.
func NewLocalStorageFs(fsys afero.Fs) *LocalStorage {
	return &LocalStorage{fs: fsys}
}

func (s *LocalStorage) Write(_ context.Context, filePath string, content io.Reader) error {
	p, err := cleanPath(filePath)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(path.Dir(p), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", p, err)
	}

	f, err := s.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", p, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		s.fs.Remove(p)
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(p)
		return fmt.Errorf("failed to close %s: %w", p, err)
	}
	return nil
}

func (s *LocalStorage) Read(_ context.Context, filePath string) (io.ReadCloser, error) {
	p, err := cleanPath(filePath)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(_ context.Context, filePath string) error {
	p, err := cleanPath(filePath)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", p, err)
	}
	return nil
}

func (s *LocalStorage) Exists(_ context.Context, filePath string) (bool, error) {
	p, err := cleanPath(filePath)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, p)
}
