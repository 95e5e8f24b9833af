package repository

import (
	"context"

	"health-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, db *gorm.DB, document *entity.Document) error
	// FindByIDAndPatient looks a document up by its composite key. A document
	// that belongs to another patient is reported as missing.
	FindByIDAndPatient(ctx context.Context, db *gorm.DB, id, patientID int64) (*entity.Document, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Document, error)
	Delete(ctx context.Context, db *gorm.DB, id, patientID int64) (int64, error)
}
