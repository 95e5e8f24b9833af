package repository

import (
	"context"

	"health-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	FindByIDWithUser(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.Patient, error)
	FindAllWithUser(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
}
