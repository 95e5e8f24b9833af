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

type ClinicianUsecase interface {
	RegisterClinician(ctx context.Context, actorID int64, req *dto.RegisterClinicianRequest) (*dto.ClinicianResponse, error)
	GetClinician(ctx context.Context, requesterID, clinicianID int64) (*dto.ClinicianResponse, error)
}

type clinicianUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	clinicianRepo repository.ClinicianRepository
	accessService service.AccessService
	auditService  service.AuditService
}

func NewClinicianUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	clinicianRepo repository.ClinicianRepository,
	accessService service.AccessService,
	auditService service.AuditService,
) ClinicianUsecase {
	return &clinicianUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		clinicianRepo: clinicianRepo,
		accessService: accessService,
		auditService:  auditService,
	}
}

func (u *clinicianUsecase) RegisterClinician(ctx context.Context, actorID int64, req *dto.RegisterClinicianRequest) (*dto.ClinicianResponse, error) {
	if req.Age == nil {
		return nil, newValidationError("age is required")
	}
	if *req.Age < 0 || *req.Age > maxAge {
		return nil, newValidationError("age must be between 0 and %d", maxAge)
	}
	speciality := strings.TrimSpace(req.Speciality)
	if speciality == "" {
		return nil, newValidationError("speciality is required")
	}

	gender := req.Gender
	switch gender {
	case "":
		gender = entity.GenderNotDisclosed
	case entity.GenderMale, entity.GenderFemale, entity.GenderNotDisclosed:
	default:
		return nil, newValidationError("gender must be one of Male Female Not disclosed")
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

	exists, err := u.clinicianRepo.ExistsByUserID(ctx, tx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to check clinician by user ID: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrClinicianAlreadyExists
	}

	clinician := &entity.Clinician{
		UserID:     user.ID,
		Age:        *req.Age,
		Gender:     gender,
		Speciality: speciality,
	}

	if err := u.clinicianRepo.Create(ctx, tx, clinician); err != nil {
		if isDuplicateKeyError(err, "clinicians_user_id") {
			return nil, ErrClinicianAlreadyExists
		}
		u.log.Warnf("Failed to create clinician: %+v", err)
		return nil, err
	}
	clinician.User = *user

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionClinicianRegister, "clinician", clinician.ID, converter.ClinicianToResponse(clinician)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClinicianToResponse(clinician), nil
}

func (u *clinicianUsecase) GetClinician(ctx context.Context, requesterID, clinicianID int64) (*dto.ClinicianResponse, error) {
	clinician, err := u.clinicianRepo.FindByIDWithUser(ctx, u.db, clinicianID)
	if err != nil {
		u.log.Warnf("Failed to find clinician: %+v", err)
		return nil, err
	}
	if clinician == nil {
		return nil, ErrClinicianNotFound
	}

	allowed, err := u.accessService.CanAccessClinician(ctx, requesterID, clinicianID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	return converter.ClinicianToResponse(clinician), nil
}
