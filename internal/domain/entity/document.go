package entity

import (
	"fmt"
	"path"
	"time"
)

// Document is a PDF attached to a patient. FilePath is fixed at creation and
// points at the stored bytes.
type Document struct {
	ID           int64     `gorm:"column:document_id;primaryKey;autoIncrement" json:"document_id"`
	PatientID    int64     `gorm:"not null;index" json:"patient_id"`
	UploadedByID *int64    `gorm:"column:uploaded_by_id;index" json:"uploaded_by"`
	FilePath     string    `gorm:"type:varchar(500);not null" json:"file_path"`
	UploadedAt   time.Time `gorm:"column:uploaded_time;autoCreateTime;index" json:"uploaded_time"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// FileName is the base name of the stored file.
func (d *Document) FileName() string {
	return path.Base(d.FilePath)
}

// IsUploadedBy reports whether userID created this document.
func (d *Document) IsUploadedBy(userID int64) bool {
	return d.UploadedByID != nil && *d.UploadedByID == userID
}

// DocumentStoragePath builds the storage location of a patient document. The
// extension is always .pdf whatever the client called the file.
func DocumentStoragePath(patientID int64, fileID string) string {
	return fmt.Sprintf("patients/%d/%s.pdf", patientID, fileID)
}
