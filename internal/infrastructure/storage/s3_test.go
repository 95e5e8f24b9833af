package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// fakeS3 answers the handful of object calls S3Storage makes, path-style.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/records/")
	switch r.Method {
	case http.MethodPut:
		io.Copy(io.Discard, r.Body)
		f.objects[key] = true
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		if !f.objects[key] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		if !f.objects[key] {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "%PDF")
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeS3Storage(t *testing.T) (*S3Storage, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string]bool{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("key", "secret", ""),
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
	})
	return NewS3StorageFromClient(client, "records"), fake
}

func TestS3Storage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, fake := newFakeS3Storage(t)
	p := "patients/3/doc.pdf"

	if ok, err := s.Exists(ctx, p); err != nil || ok {
		t.Fatalf("expected missing object, ok=%v err=%v", ok, err)
	}

	if err := s.Write(ctx, p, strings.NewReader("%PDF-1.4")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !fake.objects[p] {
		t.Fatalf("expected object %s to be stored", p)
	}

	if ok, err := s.Exists(ctx, p); err != nil || !ok {
		t.Fatalf("expected object to exist, ok=%v err=%v", ok, err)
	}

	if err := s.Delete(ctx, p); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fake.objects[p] {
		t.Fatal("expected object to be removed")
	}
}

func TestS3Storage_ReadMissing(t *testing.T) {
	s, _ := newFakeS3Storage(t)

	_, err := s.Read(context.Background(), "patients/3/none.pdf")
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}
