package usecase

import (
	"context"
	"strings"

	"health-records-api/internal/converter"
	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
	"health-records-api/internal/domain/repository"
	"health-records-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientUsecase interface {
	RegisterPatient(ctx context.Context, actorID int64, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, requesterID, patientID int64) (*dto.PatientResponse, error)
	// ListPatients is reserved for clinicians.
	ListPatients(ctx context.Context, requesterID int64) ([]dto.PatientResponse, error)
}

type patientUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	patientRepo   repository.PatientRepository
	accessService service.AccessService
	auditService  service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	accessService service.AccessService,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		patientRepo:   patientRepo,
		accessService: accessService,
		auditService:  auditService,
	}
}

func (u *patientUsecase) RegisterPatient(ctx context.Context, actorID int64, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	if req.Age == nil {
		return nil, newValidationError("age is required")
	}
	if *req.Age < 0 || *req.Age > maxAge {
		return nil, newValidationError("age must be between 0 and %d", maxAge)
	}
	if req.Sex != entity.SexMale && req.Sex != entity.SexFemale {
		return nil, newValidationError("sex must be one of Male Female")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := u.patientRepo.FindByUserID(ctx, tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient by user ID: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientAlreadyExists
	}

	patient := &entity.Patient{
		UserID:            user.ID,
		Age:               *req.Age,
		Sex:               req.Sex,
		HealthDescription: strings.TrimSpace(req.HealthDescription),
	}

	if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
		if isDuplicateKeyError(err, "patients_user_id") {
			return nil, ErrPatientAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}
	patient.User = *user

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionPatientRegister, "patient", patient.ID, converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, requesterID, patientID int64) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByIDWithUser(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	allowed, err := u.accessService.CanAccessPatient(ctx, requesterID, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, requesterID int64) ([]dto.PatientResponse, error) {
	isClinician, err := u.accessService.IsClinician(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !isClinician {
		return nil, ErrForbidden
	}

	patients, err := u.patientRepo.FindAllWithUser(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponse(patients), nil
}
