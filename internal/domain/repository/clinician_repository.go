package repository

import (
	"context"

	"health-records-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicianRepository interface {
	Create(ctx context.Context, db *gorm.DB, clinician *entity.Clinician) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Clinician, error)
	FindByIDWithUser(ctx context.Context, db *gorm.DB, id int64) (*entity.Clinician, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.Clinician, error)
	ExistsByUserID(ctx context.Context, db *gorm.DB, userID int64) (bool, error)
}
