package repository

import (
	"context"
	"errors"

	"health-records-api/internal/domain/entity"
	domainRepo "health-records-api/internal/domain/repository"

	"gorm.io/gorm"
)

type documentRepository struct{}

func NewDocumentRepository() domainRepo.DocumentRepository {
	return &documentRepository{}
}

func (r *documentRepository) Create(ctx context.Context, db *gorm.DB, document *entity.Document) error {
	return db.WithContext(ctx).Omit("Patient").Create(document).Error
}

func (r *documentRepository) FindByIDAndPatient(ctx context.Context, db *gorm.DB, id, patientID int64) (*entity.Document, error) {
	var document entity.Document
	err := db.WithContext(ctx).
		Where("document_id = ? AND patient_id = ?", id, patientID).
		First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Document, error) {
	documents := []entity.Document{}
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("uploaded_time DESC, document_id DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// Delete removes the document row and reports how many rows went away, so a
// second delete of the same document can be told apart from the first.
func (r *documentRepository) Delete(ctx context.Context, db *gorm.DB, id, patientID int64) (int64, error) {
	result := db.WithContext(ctx).
		Where("document_id = ? AND patient_id = ?", id, patientID).
		Delete(&entity.Document{})
	return result.RowsAffected, result.Error
}
