package service

import (
	"context"

	"health-records-api/internal/domain/entity"
	"health-records-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccessService decides who may touch which record. Each rule stands on its
// own: clinicians see every patient, a clinician record is visible to its
// owner only, and a document may be deleted by its uploader only. A lookup
// miss is a denial, never an error.
type AccessService interface {
	CanAccessPatient(ctx context.Context, userID, patientID int64) (bool, error)
	CanAccessClinician(ctx context.Context, userID, clinicianID int64) (bool, error)
	CanDeleteDocument(userID int64, document *entity.Document) bool
	IsClinician(ctx context.Context, userID int64) (bool, error)
}

type accessService struct {
	db            *gorm.DB
	log           *logrus.Logger
	patientRepo   repository.PatientRepository
	clinicianRepo repository.ClinicianRepository
}

func NewAccessService(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	clinicianRepo repository.ClinicianRepository,
) AccessService {
	return &accessService{
		db:            db,
		log:           log,
		patientRepo:   patientRepo,
		clinicianRepo: clinicianRepo,
	}
}

func (s *accessService) CanAccessPatient(ctx context.Context, userID, patientID int64) (bool, error) {
	patient, err := s.patientRepo.FindByID(ctx, s.db, patientID)
	if err != nil {
		s.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return false, err
	}
	if patient == nil {
		return false, nil
	}

	isClinician, err := s.IsClinician(ctx, userID)
	if err != nil {
		return false, err
	}
	if isClinician {
		return true, nil
	}

	return patient.UserID == userID, nil
}

func (s *accessService) CanAccessClinician(ctx context.Context, userID, clinicianID int64) (bool, error) {
	clinician, err := s.clinicianRepo.FindByID(ctx, s.db, clinicianID)
	if err != nil {
		s.log.Warnf("Failed to find clinician %d: %+v", clinicianID, err)
		return false, err
	}
	if clinician == nil {
		return false, nil
	}
	return clinician.UserID == userID, nil
}

func (s *accessService) CanDeleteDocument(userID int64, document *entity.Document) bool {
	return document != nil && document.IsUploadedBy(userID)
}

func (s *accessService) IsClinician(ctx context.Context, userID int64) (bool, error) {
	exists, err := s.clinicianRepo.ExistsByUserID(ctx, s.db, userID)
	if err != nil {
		s.log.Warnf("Failed to check clinician role for user %d: %+v", userID, err)
		return false, err
	}
	return exists, nil
}
