package dto

import (
	"io"
	"time"
)

// UploadDocumentRequest is built by the handler from the multipart form.
type UploadDocumentRequest struct {
	PatientID int64
	FileName  string
	Size      int64
	Content   io.Reader
}

type DocumentResponse struct {
	DocumentID   int64     `json:"document_id"`
	UploadedTime time.Time `json:"uploaded_time"`
	Patient      int64     `json:"patient"`
	UploadedBy   *int64    `json:"uploaded_by"`
	FilePath     string    `json:"file_path"`
	DownloadURL  string    `json:"download_url"`
}

// DocumentDownload is an open stream of a stored document. The caller closes
// Content.
type DocumentDownload struct {
	FileName string
	Content  io.ReadCloser
}
