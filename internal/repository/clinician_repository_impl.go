package repository

import (
	"context"
	"errors"

	"health-records-api/internal/domain/entity"
	domainRepo "health-records-api/internal/domain/repository"

	"gorm.io/gorm"
)

type clinicianRepository struct{}

func NewClinicianRepository() domainRepo.ClinicianRepository {
	return &clinicianRepository{}
}

func (r *clinicianRepository) Create(ctx context.Context, db *gorm.DB, clinician *entity.Clinician) error {
	return db.WithContext(ctx).Omit("User").Create(clinician).Error
}

func (r *clinicianRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Clinician, error) {
	var clinician entity.Clinician
	err := db.WithContext(ctx).Where("clinician_id = ?", id).First(&clinician).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinician, nil
}

func (r *clinicianRepository) FindByIDWithUser(ctx context.Context, db *gorm.DB, id int64) (*entity.Clinician, error) {
	var clinician entity.Clinician
	err := db.WithContext(ctx).Preload("User").Where("clinician_id = ?", id).First(&clinician).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinician, nil
}

func (r *clinicianRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.Clinician, error) {
	var clinician entity.Clinician
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&clinician).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinician, nil
}

func (r *clinicianRepository) ExistsByUserID(ctx context.Context, db *gorm.DB, userID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Clinician{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
