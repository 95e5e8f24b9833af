package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestLocalStorage_WriteReadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorageFs(afero.NewMemMapFs())
	p := "patients/7/abc.pdf"

	if err := s.Write(ctx, p, strings.NewReader("%PDF-1.7 body")); err != nil {
		t.Fatalf("write: %v", err)
	}

	ok, err := s.Exists(ctx, p)
	if err != nil || !ok {
		t.Fatalf("expected file to exist, ok=%v err=%v", ok, err)
	}

	rc, err := s.Read(ctx, p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "%PDF-1.7 body" {
		t.Errorf("unexpected content %q", data)
	}

	if err := s.Delete(ctx, p); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := s.Exists(ctx, p); ok {
		t.Error("expected file to be gone")
	}

	// Deleting again is not an error.
	if err := s.Delete(ctx, p); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestLocalStorage_ReadMissing(t *testing.T) {
	s := NewLocalStorageFs(afero.NewMemMapFs())

	_, err := s.Read(context.Background(), "patients/1/missing.pdf")
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	s := NewLocalStorageFs(afero.NewMemMapFs())

	for _, p := range []string{"", "/etc/passwd", "../secret.pdf", "patients/../../x.pdf"} {
		if err := s.Write(context.Background(), p, strings.NewReader("x")); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("path %q: expected ErrInvalidPath, got %v", p, err)
		}
	}
}

func TestNewLocalStorage_OnDisk(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := s.Write(ctx, "patients/1/a.pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ok, err := s.Exists(ctx, "patients/1/a.pdf"); err != nil || !ok {
		t.Fatalf("expected file on disk, ok=%v err=%v", ok, err)
	}
	if _, err := s.Read(ctx, "patients/1/b.pdf"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}
